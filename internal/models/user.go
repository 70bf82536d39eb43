package models

import "time"

// User учетная запись для аутентификации. Профиль с доменными данными
// хранится отдельно и связан по UUID.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль аккаунта
	CreatedAt    time.Time // Дата создания записи
}
