package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID    string          `json:"producto_id"    validate:"required,uuid"`
	Cantidad      int             `json:"cantidad"       validate:"required,min=1"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

type RegistrarCompraRequest struct {
	ProveedorID string              `json:"proveedor_id" validate:"required,uuid"`
	Items       []ItemCompraRequest `json:"items"        validate:"required,min=1,dive"`
}

// ActualizarCompraRequest replaces the item set of a registered compra. The
// previous items' stock effect is reversed and the new one applied atomically.
type ActualizarCompraRequest struct {
	Items []ItemCompraRequest `json:"items" validate:"required,min=1,dive"`
}

type AnularCompraRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type CompraFilter struct {
	ProveedorID string `form:"proveedor_id"`
	Estado      string `form:"estado"` // registrada | anulada | all
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemCompraResponse struct {
	Producto      string          `json:"producto"`
	ProductoID    string          `json:"producto_id"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID          string               `json:"id"`
	Numero      int                  `json:"numero"`
	ProveedorID string               `json:"proveedor_id"`
	UsuarioID   string               `json:"usuario_id"`
	Items       []ItemCompraResponse `json:"items"`
	Total       decimal.Decimal      `json:"total"`
	Estado      string               `json:"estado"`
	CreatedAt   string               `json:"created_at"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
