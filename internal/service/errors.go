package service

import "errors"

// Sentinel errors that handlers translate to 404 responses.
var (
	ErrSucursalNoEncontrada    = errors.New("sucursal no encontrada")
	ErrCreditoNoEncontrado     = errors.New("crédito no encontrado")
	ErrClienteNoEncontrado     = errors.New("cliente no encontrado")
	ErrProductoNoEncontrado    = errors.New("producto no encontrado")
	ErrProveedorNoEncontrado   = errors.New("proveedor no encontrado")
	ErrVentaNoEncontrada       = errors.New("venta no encontrada")
	ErrCompraNoEncontrada      = errors.New("compra no encontrada")
	ErrUsuarioNoEncontrado     = errors.New("usuario no encontrado")
	ErrLiquidacionNoEncontrada = errors.New("liquidación no encontrada")
)
