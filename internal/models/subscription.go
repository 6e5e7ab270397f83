package models

import "time"

// Subscription представляет запись о покупке подписки.
// Запись неизменяема после создания: хранимый флаг IsActive выставляется
// один раз и со временем устаревает, актуальность всегда пересчитывается
// по ExpiryDate в момент чтения.
type Subscription struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_id"`
	Plan       string    `json:"plan"`
	StartDate  time.Time `json:"start_date"`
	ExpiryDate time.Time `json:"expiry_date"`
	IsActive   bool      `json:"is_active"`
	Amount     float64   `json:"amount"`
	PaymentID  string    `json:"payment_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubscriptionWithUser дополняет запись подписки данными владельца
// для административного списка.
type SubscriptionWithUser struct {
	Subscription
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// SubscriptionFilter задает фильтры административного списка подписок.
type SubscriptionFilter struct {
	Search string // Поиск по имени или email владельца
	Plan   string // Фильтр по плану
	Status string // "active", "expired" или пусто
}

// ExpiringEntitlement описывает пользователя, чья подписка скоро истечет.
// Используется планировщиком напоминаний.
type ExpiringEntitlement struct {
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Plan   string    `json:"plan"`
	Expiry time.Time `json:"expiry"`
}
