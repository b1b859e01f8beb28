package models

import (
	"strings"
	"time"
)

// Роли пользователей системы.
const (
	RoleNoAuth  = "no_auth"
	RoleClient  = "client"
	RoleManager = "manager"
	RoleService = "service"
)

// User - пользователь системы
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;default:'no_auth'" json:"role"` // no_auth, client, manager, service

	ClientID         *uint `json:"client_id"`          // для роли client
	ServiceCompanyID *uint `json:"service_company_id"` // для роли service

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Client         *Client         `gorm:"foreignKey:ClientID" json:"-"`
	ServiceCompany *ServiceCompany `gorm:"foreignKey:ServiceCompanyID" json:"-"`
}

// NormalizeRole приводит строку роли к каноническому виду: нижний регистр,
// последний сегмент после точки. Бэкенды на enum-ах отдают роли вида
// "Role.manager" - после нормализации остаётся "manager".
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if i := strings.LastIndex(role, "."); i >= 0 {
		role = role[i+1:]
	}
	return role
}

// HasRole сравнивает роли после нормализации обеих сторон.
func HasRole(userRole, required string) bool {
	return NormalizeRole(userRole) == NormalizeRole(required)
}
