package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Liquidacion is a branch cash-out. Figures are computed server-side from the
// branch balance at creation time; creating one resets the branch saldo to zero.
// Estado: "pendiente" | "procesada" | "pagada"
type Liquidacion struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID       uuid.UUID       `gorm:"type:uuid;not null"`
	MontoDisponible decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Comision        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IVA             decimal.Decimal `gorm:"column:iva;type:decimal(14,2);not null"`
	MontoLiquidado  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// CantidadOperaciones counts the approved credits backing the settlement.
	CantidadOperaciones int    `gorm:"not null"`
	Banco               string `gorm:"not null"`
	NumeroCuenta        string `gorm:"not null"`
	Estado              string `gorm:"type:varchar(20);not null;default:'pendiente'"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}

// TableName overrides GORM's default pluralization (liquidacions → liquidaciones).
func (Liquidacion) TableName() string { return "liquidaciones" }
