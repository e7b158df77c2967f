package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sucursal is a commercial branch. SaldoDisponible is the branch ledger:
// incremented when a credit is approved at the branch, debited when the branch
// fronts cash for another branch's credit, and zeroed by a liquidación.
// The balance is only ever mutated through atomic UPDATE expressions
// (SucursalRepository.AjustarSaldoTx / ResetSaldoTx) — never read-modify-write.
type Sucursal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"uniqueIndex;not null"`
	Direccion     string    `gorm:"not null"`
	ResponsableID uuid.UUID `gorm:"type:uuid;not null"`
	// SaldoDisponible reflects the net of approved credits issued here, minus
	// external abonos fronted by this branch, minus amounts zeroed on settlement.
	SaldoDisponible decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Activa          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Responsable *Usuario `gorm:"foreignKey:ResponsableID"`
}

// TableName overrides GORM's default pluralization (sucursals → sucursales).
func (Sucursal) TableName() string { return "sucursales" }
