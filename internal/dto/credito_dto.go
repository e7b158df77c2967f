package dto

import "github.com/shopspring/decimal"

// ─── Simulación ──────────────────────────────────────────────────────────────

type SimulacionRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
	Plazo int             `json:"plazo" validate:"required,min=1,max=60"`
}

// SimulacionResponse carries the amortization quote. Every monetary figure is
// rounded to the nearest integer unit.
type SimulacionResponse struct {
	Monto       decimal.Decimal `json:"monto"`
	Plazo       int             `json:"plazo"`
	TasaMensual decimal.Decimal `json:"tasa_mensual"`
	ValorCuota  decimal.Decimal `json:"valor_cuota"`
	Intereses   decimal.Decimal `json:"intereses"`
	SeguroVida  decimal.Decimal `json:"seguro_vida"`
	CostoTotal  decimal.Decimal `json:"costo_total"`
	Total       decimal.Decimal `json:"total"`
}

// ─── Validación de identidad ─────────────────────────────────────────────────

type ValidarClienteRequest struct {
	Documento string `json:"documento" validate:"required"`
	Nombre    string `json:"nombre"    validate:"required"`
	Apellido  string `json:"apellido"  validate:"required"`
}

type ValidarClienteResponse struct {
	Aprobado bool `json:"aprobado"`
	// CodigoVerificacion is only present when aprobado; it must be echoed back
	// when creating the credit and expires after 15 minutes.
	CodigoVerificacion string `json:"codigo_verificacion,omitempty"`
	Mensaje            string `json:"mensaje"`
}

// ─── Creación / listado ──────────────────────────────────────────────────────

type ClienteCreditoRequest struct {
	Documento       string  `json:"documento"        validate:"required"`
	Nombre          string  `json:"nombre"           validate:"required"`
	Apellido        string  `json:"apellido"         validate:"required"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
}

type CrearCreditoRequest struct {
	Cliente            ClienteCreditoRequest `json:"cliente"             validate:"required"`
	Monto              decimal.Decimal       `json:"monto"               validate:"required"`
	Plazo              int                   `json:"plazo"               validate:"required,min=1,max=60"`
	CodigoVerificacion string                `json:"codigo_verificacion" validate:"required"`
	// SucursalID is only honored for administrativo/superusuario callers;
	// comercial users always issue at their own branch.
	SucursalID *string `json:"sucursal_id" validate:"omitempty,uuid"`
}

type ActualizarEstadoCreditoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=en_validacion aprobado rechazado finalizado"`
}

type CreditoFilter struct {
	Estado     string `form:"estado"`
	SucursalID string `form:"sucursal_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreditoResponse struct {
	ID              string          `json:"id"`
	Cliente         string          `json:"cliente"`
	Documento       string          `json:"documento"`
	SucursalID      string          `json:"sucursal_id"`
	UsuarioID       string          `json:"usuario_id"`
	Monto           decimal.Decimal `json:"monto"`
	Plazo           int             `json:"plazo"`
	ValorCuota      decimal.Decimal `json:"valor_cuota"`
	Estado          string          `json:"estado"`
	CodigoEntrega   string          `json:"codigo_entrega,omitempty"`
	FechaAprobacion *string         `json:"fecha_aprobacion,omitempty"`
	// SaldoPendiente = monto - sum(abonos); only populated on detail reads.
	SaldoPendiente *decimal.Decimal `json:"saldo_pendiente,omitempty"`
	CreatedAt      string           `json:"created_at"`
}

type CreditoListResponse struct {
	Data  []CreditoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
