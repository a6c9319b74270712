package models

import (
	"auroragov/tools"
	"time"
)

/************************************************
/**** MARK: USER ROLES ****/
/************************************************/
const USER_ROLE_SUPER_ADMIN = "super_admin"
const USER_ROLE_GESTOR = "gestor"
const USER_ROLE_USUARIO = "usuario"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_ATIVO = 0
const USER_STATUS_BLOQUEADO = 1

// User representa um usuário (perfil) do sistema.
// O papel (Role) controla o acesso ao /manage-users:
// super_admin enxerga tudo, gestor só a própria organização.
type User struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name           string     `gorm:"not null" json:"name" form:"name"`
	Email          string     `gorm:"not null;unique" json:"email" form:"email"`
	Password       string     `gorm:"not null" json:"password,omitempty" form:"password"`
	Role           string     `gorm:"not null;default:'usuario'" json:"role" form:"role"`
	OrganizationID int64      `gorm:"index" json:"organization_id" form:"organization_id"`
	Cargo          string     `gorm:"default:''" json:"cargo" form:"cargo"`
	Status         int        `gorm:"not null;default:0" json:"status" form:"status"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}

func IsValidRole(role string) bool {
	switch role {
	case USER_ROLE_SUPER_ADMIN, USER_ROLE_GESTOR, USER_ROLE_USUARIO:
		return true
	}
	return false
}
