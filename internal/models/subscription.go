package models

// SubscriptionStatusActive — статус действующей подписки.
const SubscriptionStatusActive = "ACTIVE"

// Subscription отражает тарифный план арендатора; у каждого арендатора
// не более одной подписки. Обновляется атомарно вместе с Tenant.Plan.
type Subscription struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Plan     string `json:"plan"`
	Status   string `json:"status"`
}
