// Package policy содержит чистые функции тарифной политики: решение о
// блокировке доступа по возрасту пробного периода и расчет многоуровневых
// цен (лестница скидок на собак, надбавка за дополнительных участников).
// Пакет не делает ввода-вывода: профиль и текущее время приходят
// параметрами, результат детерминирован.
package policy

import (
	"errors"
	"fmt"
	"time"

	"github.com/godogapp/godog/internal/config"
	"github.com/godogapp/godog/internal/lib/money"
	"github.com/godogapp/godog/internal/models"
)

// ErrBadDate возвращается, когда у профиля нет пригодной опорной даты
// пробного периода. Вызывающие обязаны трактовать эту ошибку как
// блокировку (fail closed), а не как «триал не истек».
var ErrBadDate = errors.New("profile has no valid trial reference date")

// Policy решает вопросы блокировки и ценообразования по правилам
// тарификации из конфига.
type Policy struct {
	rules config.Billing
}

// New создает Policy с заданными правилами тарификации.
func New(rules config.Billing) *Policy {
	return &Policy{rules: rules}
}

// Rules возвращает правила тарификации, на которых работает политика.
func (p *Policy) Rules() config.Billing { return p.rules }

// TrialAgeDays возвращает возраст пробного периода в целых днях:
// floor((now - опорная дата) / сутки). Опорная дата — старт триала,
// если он задан, иначе дата регистрации. Нулевая опорная дата — ErrBadDate.
func (p *Policy) TrialAgeDays(profile models.UserProfile, now time.Time) (int, error) {
	const op = "policy.TrialAgeDays"
	ref := profile.TrialReference()
	if ref.IsZero() {
		return 0, fmt.Errorf("%s: %w", op, ErrBadDate)
	}
	return int(now.Sub(ref).Hours() / 24), nil
}

// IsBlocked решает, закрыт ли профилю доступ к продукту.
//
// Бизнес-аккаунты блокируются по оси продвижения: уровень FREE и возраст
// триала строго больше бизнес-лимита. Владельцы — по оси подписки: статус
// TRIAL и возраст строго больше лимита владельца. Администратор не
// блокируется никогда. Для каждой роли срабатывает ровно одна ветка.
//
// При непригодной опорной дате возвращает true вместе с ErrBadDate:
// испорченные даты не должны открывать вечный триал.
func (p *Policy) IsBlocked(profile models.UserProfile, now time.Time) (bool, error) {
	switch {
	case profile.UserRole.IsBusiness():
		if profile.PromotionTier != models.PromotionFree {
			return false, nil
		}
		age, err := p.TrialAgeDays(profile, now)
		if err != nil {
			return true, err
		}
		return age > p.rules.BusinessTrialDays, nil
	case profile.UserRole == models.RoleOwner:
		if profile.SubscriptionStatus != models.StatusTrial {
			return false, nil
		}
		age, err := p.TrialAgeDays(profile, now)
		if err != nil {
			return true, err
		}
		return age > p.rules.OwnerTrialDays, nil
	default:
		// ADMIN и прочие служебные роли.
		return false, nil
	}
}

// RemainingTrialDays возвращает max(0, cap - возраст триала).
// Используется и для лимита владельца, и для бизнес-лимита.
func (p *Policy) RemainingTrialDays(profile models.UserProfile, now time.Time, capDays int) (int, error) {
	age, err := p.TrialAgeDays(profile, now)
	if err != nil {
		return 0, err
	}
	if remaining := capDays - age; remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

// TrialStatus собирает сводку по пробному периоду для клиента.
func (p *Policy) TrialStatus(profile models.UserProfile, now time.Time) (models.TrialStatus, error) {
	age, err := p.TrialAgeDays(profile, now)
	if err != nil {
		return models.TrialStatus{Blocked: true}, err
	}
	ownerLeft, _ := p.RemainingTrialDays(profile, now, p.rules.OwnerTrialDays)
	businessLeft, _ := p.RemainingTrialDays(profile, now, p.rules.BusinessTrialDays)
	blocked, _ := p.IsBlocked(profile, now)
	return models.TrialStatus{
		TrialAgeDays:          age,
		RemainingOwnerDays:    ownerLeft,
		RemainingBusinessDays: businessLeft,
		Blocked:               blocked,
	}, nil
}

// DogTierMultiplier возвращает множитель цены для собаки на заданной
// позиции домохозяйства (нумерация с нуля, порядок — порядок добавления).
// Лестница: 1.00, 0.75, 0.50, 0.50, дальше 0.05.
func DogTierMultiplier(index int) float64 {
	if index < 0 {
		return 0
	}
	if index < len(config.DogTierMultipliers) {
		return config.DogTierMultipliers[index]
	}
	return config.DogTierTail
}

// CollaboratorSurcharge считает надбавку за участников сверх бесплатного
// лимита: по тарифной ставке за каждого человека, строго линейно, без потолка.
func (p *Policy) CollaboratorSurcharge(collaboratorCount int, tier models.SubscriptionTier) float64 {
	extra := collaboratorCount - p.rules.IncludedCollaborators
	if extra <= 0 {
		return 0
	}
	rate := p.rules.ExtraPersonMonthly
	if tier == models.TierAnnual {
		rate = p.rules.ExtraPersonAnnual
	}
	return money.Round2(float64(extra) * rate)
}

// SubscriptionQuote считает месячную стоимость подписки владельца:
// базовая цена тарифа за каждую собаку с учетом лестницы скидок плюс
// надбавка за дополнительных участников.
func (p *Policy) SubscriptionQuote(profile models.UserProfile, dogCount int, tier models.SubscriptionTier) float64 {
	base := p.rules.OwnerPriceMonthly
	if tier == models.TierAnnual {
		base = p.rules.OwnerPriceAnnual
	}
	var total float64
	for i := range dogCount {
		total += base * DogTierMultiplier(i)
	}
	total += p.CollaboratorSurcharge(len(profile.Collaborators), tier)
	return money.Round2(total)
}
