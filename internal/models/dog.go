package models

import "time"

// MediaType тип вложения в галерее собаки.
type MediaType string

// Возможные типы вложений.
const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

// DogMedia единица галереи собаки. Список пополняется только операцией
// добавления; удаление отдельного вложения поддерживается, при этом
// ссылки из альбомов могут остаться висячими — это допустимо.
type DogMedia struct {
	ID   string    `json:"id"`
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
	Date time.Time `json:"date"`
}

// DogAlbum альбом воспоминаний. MediaIDs ссылаются на элементы галереи;
// целостность ссылок после удаления вложений не гарантируется.
type DogAlbum struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Month     string    `json:"month"`
	Year      int       `json:"year"`
	Summary   string    `json:"summary"`
	MediaIDs  []string  `json:"media_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Dog собака домохозяйства. Принадлежит профилю владельца и доступна
// его соавторам. Позиция в списке (порядок добавления) определяет
// множитель цены подписки.
type Dog struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Breed  string     `json:"breed"`
	Age    int        `json:"age"`
	Gender string     `json:"gender"`
	Notes  string     `json:"notes"`
	Media  []DogMedia `json:"media"`
	Albums []DogAlbum `json:"albums,omitempty"`
}

// DummyDog используется для приёма данных собаки из JSON-запроса.
type DummyDog struct {
	Name   string `json:"name" validate:"required"`
	Breed  string `json:"breed" validate:"required"`
	Age    int    `json:"age" validate:"gte=0"`
	Gender string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Notes  string `json:"notes"`
}

// DummyMedia используется для приёма нового вложения галереи.
type DummyMedia struct {
	Type string `json:"type" validate:"required,oneof=IMAGE VIDEO"`
	URL  string `json:"url" validate:"required,url"`
}

// DummyAlbum используется для приёма нового альбома.
type DummyAlbum struct {
	Title    string   `json:"title" validate:"required"`
	Month    string   `json:"month" validate:"required"`
	Year     int      `json:"year" validate:"required,gte=2000"`
	Summary  string   `json:"summary"`
	MediaIDs []string `json:"media_ids"`
}
