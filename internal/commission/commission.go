// Package commission реализует расчет комиссии платформы: разбиение суммы
// бронирования на сбор платформы и заработок исполнителя, агрегацию сборов
// и административную сводку выручки. Функции чистые, без ввода-вывода.
package commission

import (
	"errors"
	"fmt"

	"github.com/godogapp/godog/internal/lib/money"
	"github.com/godogapp/godog/internal/models"
)

// ErrNegativeAmount возвращается при попытке разбить отрицательную сумму.
var ErrNegativeAmount = errors.New("gross amount must not be negative")

// Split результат разбиения платежа.
type Split struct {
	Fee float64 // Сбор платформы
	Net float64 // Заработок исполнителя
}

// SplitPayment делит валовую сумму на сбор платформы и заработок
// исполнителя по заданной ставке. Сначала округляется сбор, затем
// заработок выводится вычитанием, поэтому Fee + Net == gross без
// расхождений округления.
func SplitPayment(gross, rate float64) (Split, error) {
	const op = "commission.SplitPayment"
	if gross < 0 {
		return Split{}, fmt.Errorf("%s: %w: %f", op, ErrNegativeAmount, gross)
	}
	fee := money.Round2(gross * rate)
	return Split{
		Fee: fee,
		Net: gross - fee,
	}, nil
}

// AggregateFees суммирует сборы платформы по списку бронирований.
// Простая сумма: результат не зависит от порядка элементов,
// пустой список дает ноль.
func AggregateFees(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.PlatformFee
	}
	return total
}

// ReportInput входные данные сводки выручки. Четыре потока независимы
// и складываются без пропорционального перерасчета: фиксированная ставка
// за период берется целиком независимо от дня подключения бизнеса —
// осознанное упрощение биллинга, а не дефект.
type ReportInput struct {
	Bookings          []models.Booking
	PromotedBusinesses int     // Бизнесы с платным продвижением
	AddonBusinesses    int     // Бизнесы с купленным дополнением акций
	PromotionMonthly   float64 // Месячная ставка продвижения
	AddonMonthly       float64 // Месячная ставка дополнения
	OwnerRevenue       float64 // Отдельно учитываемая выручка подписок владельцев
}

// BuildReport собирает сводку выручки платформы.
func BuildReport(in ReportInput) models.RevenueReport {
	report := models.RevenueReport{
		CommissionTotal:  money.Round2(AggregateFees(in.Bookings)),
		PromotionRevenue: money.Round2(float64(in.PromotedBusinesses) * in.PromotionMonthly),
		AddonRevenue:     money.Round2(float64(in.AddonBusinesses) * in.AddonMonthly),
		OwnerRevenue:     money.Round2(in.OwnerRevenue),
	}
	report.Total = money.Round2(report.CommissionTotal + report.PromotionRevenue + report.AddonRevenue + report.OwnerRevenue)
	return report
}
