// Package ident предоставляет генератор идентификаторов для доменных
// сущностей. Продакшен-реализация опирается на UUID v4; в тестах
// используется детерминированная последовательность.
package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator выдает новый уникальный идентификатор.
type Generator interface {
	NewID() string
}

// UUID реализует Generator на базе google/uuid.
type UUID struct{}

// NewID возвращает случайный UUID v4 в строковом виде.
func (UUID) NewID() string { return uuid.New().String() }

// Sequence детерминированный генератор для тестов: id-1, id-2, ...
type Sequence struct {
	n int
}

// NewID возвращает следующий идентификатор последовательности.
func (s *Sequence) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}
