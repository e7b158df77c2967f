package model

import (
	"time"

	"github.com/google/uuid"
)

// The closed set of roles. Anything else is rejected at creation and by the
// route guards.
const (
	RolComercial      = "comercial"
	RolAdministrativo = "administrativo"
	RolSuperusuario   = "superusuario"
)

// Usuario stores system users with role-based access.
// Rol: "comercial" | "administrativo" | "superusuario"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Documento    string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Apellido     string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	// SucursalID scopes a comercial user to a single branch; nil for
	// administrativo / superusuario.
	SucursalID *uuid.UUID `gorm:"type:uuid;index"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
