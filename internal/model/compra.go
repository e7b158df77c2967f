package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a stock purchase from a supplier.
// Estado: "registrada" | "anulada". Updating a compra reverses the previous
// items' stock effect and applies the new one inside a single transaction.
type Compra struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero      int             `gorm:"autoIncrement;uniqueIndex"`
	ProveedorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID   uuid.UUID       `gorm:"type:uuid;not null"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'registrada'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items     []CompraItem `gorm:"foreignKey:CompraID"`
	Proveedor *Proveedor   `gorm:"foreignKey:ProveedorID"`
}

type CompraItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad      int             `gorm:"not null"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
