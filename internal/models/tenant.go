// Package models содержит доменные структуры системы:
// арендаторы (tenants), пользователи, заметки и подписки.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

// Тарифные планы арендатора.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// Tenant представляет изолированный аккаунт клиента —
// единицу разделения данных и тарификации.
type Tenant struct {
	ID   string `json:"id"`   // Уникальный идентификатор арендатора
	Name string `json:"name"` // Название организации
	Slug string `json:"slug"` // Уникальный человекочитаемый идентификатор
	Plan string `json:"plan"` // Тарифный план, FREE или PRO
}
