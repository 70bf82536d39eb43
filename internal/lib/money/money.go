// Package money содержит вспомогательную арифметику денежных сумм.
// Все суммы платформы ведутся в валютных единицах с точностью до агоры,
// поэтому округление всегда идет до двух знаков.
package money

import "math"

// Round2 округляет сумму до двух десятичных знаков.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
