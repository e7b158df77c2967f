package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is a supplier of catalog products.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	NIT         string    `gorm:"column:nit;uniqueIndex;not null"`
	Telefono    *string
	Email       *string
	Direccion   *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization (proveedors → proveedores).
func (Proveedor) TableName() string { return "proveedores" }
