package models

// Роли пользователей внутри арендатора.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// User представляет пользователя, принадлежащего ровно одному арендатору.
type User struct {
	ID           string // Уникальный идентификатор пользователя
	Email        string // Электронная почта (уникальная)
	PasswordHash string // bcrypt-хэш пароля
	Role         string // Роль пользователя, ADMIN или MEMBER
	TenantID     string // Идентификатор арендатора
}

// UserWithTenant объединяет пользователя с его арендатором.
// Используется при аутентификации: токен валиден только пока
// существуют и пользователь, и его арендатор.
type UserWithTenant struct {
	User   User
	Tenant Tenant
}

// Principal — аутентифицированная личность запроса: снимок данных
// пользователя и его привязки к арендатору на момент выпуска токена.
type Principal struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	TenantID   string `json:"tenantId"`
	TenantSlug string `json:"tenantSlug"`
}
