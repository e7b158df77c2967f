package dto

import "github.com/shopspring/decimal"

type CrearSucursalRequest struct {
	Nombre        string `json:"nombre"         validate:"required"`
	Direccion     string `json:"direccion"      validate:"required"`
	ResponsableID string `json:"responsable_id" validate:"required,uuid"`
}

type ActualizarSucursalRequest struct {
	Nombre        string  `json:"nombre,omitempty"`
	Direccion     string  `json:"direccion,omitempty"`
	ResponsableID *string `json:"responsable_id" validate:"omitempty,uuid"`
	// SaldoDisponible allows an admin-only manual override of the ledger.
	SaldoDisponible *decimal.Decimal `json:"saldo_disponible"`
	Activa          *bool            `json:"activa"`
}

type SucursalResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Direccion       string          `json:"direccion"`
	ResponsableID   string          `json:"responsable_id"`
	Responsable     string          `json:"responsable,omitempty"`
	SaldoDisponible decimal.Decimal `json:"saldo_disponible"`
	Activa          bool            `json:"activa"`
	CreatedAt       string          `json:"created_at"`
}
