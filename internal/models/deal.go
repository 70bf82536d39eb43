package models

// Deal маркетинговая акция бизнес-профиля. На бизнес допускается
// не больше пяти живых акций; лимит проверяется при создании.
type Deal struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Images       []string `json:"images"` // не больше трех
	BusinessID   string   `json:"business_id"`
	BusinessName string   `json:"business_name"`
	Category     string   `json:"category"`
	City         string   `json:"city"`
}

// DummyDeal используется для приёма данных акции из JSON-запроса.
type DummyDeal struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"max=3,dive,url"`
	Category    string   `json:"category" validate:"required"`
	City        string   `json:"city"`
}
