package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Abono is a payment against a credit, attributed to the branch and user that
// recorded it. Abonos are immutable: created once per payment event, never
// updated or deleted.
type Abono struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreditoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SucursalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt  time.Time

	Credito  *Credito  `gorm:"foreignKey:CreditoID"`
	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}
