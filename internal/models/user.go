// Package models содержит доменные структуры библиотеки: пользователей,
// книги, отзывы, подписки и тарифные планы. Структуры используются
// в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не сериализуется в ответы API.
type User struct {
	UID                string     `json:"id"`           // Уникальный идентификатор пользователя
	Name               string     `json:"name"`         // Отображаемое имя
	Email              string     `json:"email"`        // Электронная почта (уникальная, сравнение чувствительно к регистру)
	PasswordHash       string     `json:"-"`            // Хэш пароля пользователя
	Role               string     `json:"role"`         // Роль пользователя, admin или user
	SubscriptionPlan   string     `json:"subscription"` // Текущий план: none, basic, premium, family
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ContactMessage представляет сообщение из формы обратной связи.
// Сообщения не сохраняются в базе, а публикуются в почтовую очередь.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
