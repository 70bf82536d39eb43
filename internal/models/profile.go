// Package models содержит доменные структуры платформы: профиль пользователя,
// собак, бронирования и маркетинговые акции, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// UserRole роль аккаунта. Назначается при регистрации и не меняется.
type UserRole string

// Возможные роли аккаунта.
const (
	RoleOwner        UserRole = "OWNER"
	RoleWalker       UserRole = "WALKER"
	RoleProfessional UserRole = "PROFESSIONAL"
	RoleStoreOwner   UserRole = "STORE_OWNER"
	RoleAdmin        UserRole = "ADMIN"
)

// IsBusiness сообщает, относится ли роль к бизнес-аккаунтам
// (догвокеры, специалисты и владельцы магазинов).
func (r UserRole) IsBusiness() bool {
	return r == RoleWalker || r == RoleProfessional || r == RoleStoreOwner
}

// SubscriptionStatus статус подписки владельца.
// EXPIRED никогда не записывается в хранилище: блокировка считается
// по датам на каждое обращение, а не хранится терминальным состоянием.
type SubscriptionStatus string

// Возможные статусы подписки владельца.
const (
	StatusTrial   SubscriptionStatus = "TRIAL"
	StatusActive  SubscriptionStatus = "ACTIVE"
	StatusExpired SubscriptionStatus = "EXPIRED"
)

// SubscriptionTier тариф платной подписки владельца.
type SubscriptionTier string

// Возможные тарифы подписки.
const (
	TierMonthly SubscriptionTier = "MONTHLY"
	TierAnnual  SubscriptionTier = "ANNUAL"
)

// PromotionTier уровень продвижения бизнес-аккаунта. Отдельная ось
// от подписки владельца: бизнес блокируется по ней, владелец — по статусу.
type PromotionTier string

// Возможные уровни продвижения.
const (
	PromotionFree    PromotionTier = "FREE"
	PromotionMonthly PromotionTier = "MONTHLY"
	PromotionAnnual  PromotionTier = "ANNUAL"
)

// AddonTier уровень дополнения "куб акций" для бизнеса.
// Покупается независимо от уровня продвижения.
type AddonTier string

// Возможные уровни дополнения.
const (
	AddonNone        AddonTier = "NONE"
	AddonMonthlyCube AddonTier = "MONTHLY_CUBE"
	AddonAnnualCube  AddonTier = "ANNUAL_CUBE"
)

// Collaborator второстепенный пользователь с доступом к домохозяйству.
// Порядок в списке значим: надбавка считается по числу людей сверх лимита.
type Collaborator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserProfile профиль залогиненного пользователя. Одна запись на аккаунт.
// RegistrationDate и TrialStartDate выставляются при создании и далее
// не мутируются; статусные поля меняет только слой жизненного цикла.
type UserProfile struct {
	ID                 string             `json:"id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	City               string             `json:"city"`
	UserRole           UserRole           `json:"user_role"`
	RegistrationDate   time.Time          `json:"registration_date"`
	TrialStartDate     *time.Time         `json:"trial_start_date,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	SubscriptionTier   SubscriptionTier   `json:"subscription_tier,omitempty"`
	PromotionTier      PromotionTier      `json:"promotion_tier"`
	HasPromotionsAddon bool               `json:"has_promotions_addon"`
	PromotionsAddonTier AddonTier         `json:"promotions_addon_tier"`
	Collaborators      []Collaborator     `json:"collaborators,omitempty"`
	Deals              []Deal             `json:"deals,omitempty"`
}

// TrialReference возвращает опорную дату пробного периода:
// дату старта триала, если она есть, иначе дату регистрации.
func (p UserProfile) TrialReference() time.Time {
	if p.TrialStartDate != nil {
		return *p.TrialStartDate
	}
	return p.RegistrationDate
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Username  string `json:"username" validate:"required,alphanum"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	City      string `json:"city"`
	UserRole  string `json:"user_role" validate:"required,oneof=OWNER WALKER PROFESSIONAL STORE_OWNER ADMIN"`
	// Данные первой собаки, опционально заполняются владельцем при регистрации.
	InitialDog *DummyDog `json:"initial_dog,omitempty"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}

// DummySubscribe запрос на оформление подписки владельца.
type DummySubscribe struct {
	Tier string `json:"tier" validate:"required,oneof=MONTHLY ANNUAL"`
}

// DummyPromotion запрос на покупку уровня продвижения бизнеса.
type DummyPromotion struct {
	Tier string `json:"tier" validate:"required,oneof=MONTHLY ANNUAL"`
}

// DummyAddon запрос на покупку дополнения "куб акций".
type DummyAddon struct {
	Tier string `json:"tier" validate:"required,oneof=MONTHLY_CUBE ANNUAL_CUBE"`
}

// DummyProfileUpdate запрос на обновление анкетных полей профиля.
// Роль и даты регистрации обновлению не подлежат.
type DummyProfileUpdate struct {
	FirstName     string         `json:"first_name" validate:"required"`
	LastName      string         `json:"last_name" validate:"required"`
	City          string         `json:"city"`
	Collaborators []Collaborator `json:"collaborators" validate:"omitempty,dive"`
}

// TrialStatus сводка по пробному периоду для клиента:
// возраст триала, оставшиеся дни по обеим границам и флаг блокировки.
type TrialStatus struct {
	TrialAgeDays       int  `json:"trial_age_days"`
	RemainingOwnerDays int  `json:"remaining_owner_days"`
	RemainingBusinessDays int `json:"remaining_business_days"`
	Blocked            bool `json:"blocked"`
}
