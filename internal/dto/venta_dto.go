package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	Items     []ItemVentaRequest `json:"items"      validate:"required,min=1,dive"`
	ClienteID *string            `json:"cliente_id" validate:"omitempty,uuid"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type VentaFilter struct {
	Fecha      string `form:"fecha"`  // YYYY-MM-DD; empty = all
	Estado     string `form:"estado"` // completada | anulada | all
	SucursalID string `form:"sucursal_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemVentaResponse struct {
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Numero     int                 `json:"numero"`
	SucursalID string              `json:"sucursal_id"`
	UsuarioID  string              `json:"usuario_id"`
	Items      []ItemVentaResponse `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	Estado     string              `json:"estado"`
	CreatedAt  string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
