// Package lifecycle реализует машину состояний профиля по двум независимым
// осям: подписка владельца (TRIAL -> ACTIVE) и продвижение бизнеса
// (FREE -> MONTHLY/ANNUAL плюс независимое дополнение акций).
//
// Операции принимают снимок профиля и возвращают новый снимок; хранилище
// не трогается — сохранение нового значения лежит на вызывающем. Все
// переходы идемпотентны: повторный вызов с теми же аргументами дает то же
// конечное состояние. Статус EXPIRED никогда не записывается: блокировка
// вычисляется политикой по датам на каждое обращение.
package lifecycle

import (
	"time"

	"github.com/godogapp/godog/internal/models"
	"github.com/godogapp/godog/internal/policy"
)

// Lifecycle управляет переходами статусов профиля.
type Lifecycle struct {
	policy *policy.Policy
}

// New создает Lifecycle поверх тарифной политики.
func New(p *policy.Policy) *Lifecycle {
	return &Lifecycle{policy: p}
}

// Subscribe переводит подписку владельца в ACTIVE с выбранным тарифом.
// Данные собак и бронирований не затрагиваются.
func (l *Lifecycle) Subscribe(profile models.UserProfile, tier models.SubscriptionTier) models.UserProfile {
	profile.SubscriptionStatus = models.StatusActive
	profile.SubscriptionTier = tier
	return profile
}

// PurchasePromotion поднимает уровень продвижения бизнес-профиля.
func (l *Lifecycle) PurchasePromotion(profile models.UserProfile, tier models.PromotionTier) models.UserProfile {
	profile.PromotionTier = tier
	return profile
}

// PurchaseAddon включает дополнение "куб акций" выбранного уровня.
// Покупка допускается при любом уровне продвижения, в том числе FREE,
// и не влияет на триальную блокировку.
func (l *Lifecycle) PurchaseAddon(profile models.UserProfile, tier models.AddonTier) models.UserProfile {
	profile.HasPromotionsAddon = true
	profile.PromotionsAddonTier = tier
	return profile
}

// BlockCheck отвечает, закрыт ли профилю доступ на данный момент.
// Только чтение, профиль не мутируется.
func (l *Lifecycle) BlockCheck(profile models.UserProfile, now time.Time) (bool, error) {
	return l.policy.IsBlocked(profile, now)
}
