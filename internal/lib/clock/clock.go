// Package clock предоставляет источник текущего времени. Вся датовая
// арифметика (возраст триала, блокировки) зависит от этого интерфейса,
// что позволяет подменять время в тестах фиксированным значением.
package clock

import "time"

// Clock отдает текущее время.
type Clock interface {
	Now() time.Time
}

// System реализует Clock через time.Now.
type System struct{}

// Now возвращает системное время.
func (System) Now() time.Time { return time.Now() }

// Fixed реализует Clock с неподвижным моментом времени, для тестов.
type Fixed struct {
	Moment time.Time
}

// Now возвращает зафиксированный момент.
func (f Fixed) Now() time.Time { return f.Moment }
