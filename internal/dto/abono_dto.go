package dto

import "github.com/shopspring/decimal"

type RegistrarAbonoRequest struct {
	CreditoID string          `json:"credito_id" validate:"required,uuid"`
	Monto     decimal.Decimal `json:"monto"      validate:"required"`
}

type AbonoFilter struct {
	CreditoID  string `form:"credito_id"`
	SucursalID string `form:"sucursal_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AbonoResponse struct {
	ID         string          `json:"id"`
	CreditoID  string          `json:"credito_id"`
	SucursalID string          `json:"sucursal_id"`
	UsuarioID  string          `json:"usuario_id"`
	Monto      decimal.Decimal `json:"monto"`
	// ExternoASucursal marks abonos recorded at a branch other than the
	// credit's issuing branch (those debit the recording branch's saldo).
	ExternoASucursal bool   `json:"externo_a_sucursal"`
	CreatedAt        string `json:"created_at"`
}

type AbonoListResponse struct {
	Data  []AbonoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
