package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Credito is a micro-credit issued at a branch by a comercial user.
// Estado: "solicitado" | "en_validacion" | "aprobado" | "rechazado" | "finalizado".
// Records are created at approval and afterwards mutated only to change estado;
// they are never deleted.
type Credito struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SucursalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// Plazo is the term in monthly installments.
	Plazo      int             `gorm:"not null"`
	ValorCuota decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado     string          `gorm:"type:varchar(20);not null;default:'solicitado'"`
	// CodigoVerificacion comes from the identity-validation step;
	// CodigoEntrega is handed to the customer to claim the disbursement.
	CodigoVerificacion string `gorm:"type:varchar(12);not null"`
	CodigoEntrega      string `gorm:"type:varchar(12);not null"`
	FechaAprobacion    *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}
