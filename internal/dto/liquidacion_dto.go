package dto

import "github.com/shopspring/decimal"

type CalcularLiquidacionRequest struct {
	SucursalID string `json:"sucursal_id" validate:"required,uuid"`
}

// LiquidacionQuote is the settlement calculation for a branch. CreditosAprobados
// and AbonosExternos are informational audit figures; the payable amounts derive
// exclusively from the stored branch saldo.
type LiquidacionQuote struct {
	SucursalID          string          `json:"sucursal_id"`
	Sucursal            string          `json:"sucursal"`
	CantidadOperaciones int             `json:"cantidad_operaciones"`
	CreditosAprobados   decimal.Decimal `json:"creditos_aprobados"`
	AbonosExternos      decimal.Decimal `json:"abonos_externos"`
	MontoDisponible     decimal.Decimal `json:"monto_disponible"`
	Comision            decimal.Decimal `json:"comision"`
	IVA                 decimal.Decimal `json:"iva"`
	MontoLiquidado      decimal.Decimal `json:"monto_liquidado"`
}

// CrearLiquidacionRequest persists a settlement. Monetary figures the client may
// display from a previous quote are deliberately absent: the server recomputes
// everything from the branch's current saldo at creation time.
type CrearLiquidacionRequest struct {
	SucursalID   string `json:"sucursal_id"   validate:"required,uuid"`
	Banco        string `json:"banco"         validate:"required"`
	NumeroCuenta string `json:"numero_cuenta" validate:"required"`
}

type ActualizarLiquidacionRequest struct {
	Estado string `json:"estado" validate:"required,oneof=procesada pagada"`
}

type LiquidacionFilter struct {
	SucursalID string `form:"sucursal_id"`
	Estado     string `form:"estado"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type LiquidacionResponse struct {
	ID                  string          `json:"id"`
	SucursalID          string          `json:"sucursal_id"`
	UsuarioID           string          `json:"usuario_id"`
	MontoDisponible     decimal.Decimal `json:"monto_disponible"`
	Comision            decimal.Decimal `json:"comision"`
	IVA                 decimal.Decimal `json:"iva"`
	MontoLiquidado      decimal.Decimal `json:"monto_liquidado"`
	CantidadOperaciones int             `json:"cantidad_operaciones"`
	Banco               string          `json:"banco"`
	NumeroCuenta        string          `json:"numero_cuenta"`
	Estado              string          `json:"estado"`
	CreatedAt           string          `json:"created_at"`
}

type LiquidacionListResponse struct {
	Data  []LiquidacionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
