package service

import (
	"context"
	"testing"

	"credipos/internal/dto"
	"credipos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCompraSvc() (CompraService, *stubCompraRepo, *stubProductoRepo, *stubProveedorRepo, *stubMovimientoRepo) {
	compraRepo := newStubCompraRepo()
	productoRepo := newStubProductoRepo()
	proveedorRepo := newStubProveedorRepo()
	movimientoRepo := &stubMovimientoRepo{}
	svc := NewCompraService(compraRepo, productoRepo, proveedorRepo, movimientoRepo)
	return svc, compraRepo, productoRepo, proveedorRepo, movimientoRepo
}

func seedProveedor(repo *stubProveedorRepo) *model.Proveedor {
	p := &model.Proveedor{
		ID:          uuid.New(),
		RazonSocial: "Distribuidora Andina SAS",
		NIT:         "900123456-7",
		Activo:      true,
	}
	repo.proveedores[p.ID] = p
	return p
}

func TestRegistrarCompra_IncrementaStock(t *testing.T) {
	svc, _, productoRepo, proveedorRepo, movimientoRepo := buildCompraSvc()
	proveedor := seedProveedor(proveedorRepo)
	p := seedProducto(productoRepo, "Harina 1kg", "7702001", 5, 5000)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: proveedor.ID.String(),
		Items: []dto.ItemCompraRequest{
			{ProductoID: p.ID.String(), Cantidad: 30, CostoUnitario: decimal.NewFromInt(2800)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "registrada", resp.Estado)
	assert.Equal(t, "84000", resp.Total.String()) // 30 × 2800
	assert.Equal(t, 35, p.StockActual)

	require.Len(t, movimientoRepo.movimientos, 1)
	assert.Equal(t, "compra", movimientoRepo.movimientos[0].Tipo)
	assert.Equal(t, 30, movimientoRepo.movimientos[0].Cantidad)
}

func TestRegistrarCompra_ProveedorInexistente(t *testing.T) {
	svc, compraRepo, productoRepo, _, _ := buildCompraSvc()
	p := seedProducto(productoRepo, "Harina 1kg", "7702001", 5, 5000)

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: uuid.NewString(),
		Items: []dto.ItemCompraRequest{
			{ProductoID: p.ID.String(), Cantidad: 10, CostoUnitario: decimal.NewFromInt(2800)},
		},
	})
	assert.ErrorIs(t, err, ErrProveedorNoEncontrado)
	assert.Empty(t, compraRepo.compras)
}

func TestRegistrarCompra_CostoInvalido(t *testing.T) {
	svc, _, productoRepo, proveedorRepo, _ := buildCompraSvc()
	proveedor := seedProveedor(proveedorRepo)
	p := seedProducto(productoRepo, "Harina 1kg", "7702001", 5, 5000)

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: proveedor.ID.String(),
		Items: []dto.ItemCompraRequest{
			{ProductoID: p.ID.String(), Cantidad: 10, CostoUnitario: decimal.Zero},
		},
	})
	assert.ErrorContains(t, err, "costo unitario inválido")
	assert.Equal(t, 5, p.StockActual)
}

func TestActualizarCompra_ReemplazaItemsYAjustaStock(t *testing.T) {
	svc, _, productoRepo, proveedorRepo, _ := buildCompraSvc()
	proveedor := seedProveedor(proveedorRepo)
	harina := seedProducto(productoRepo, "Harina 1kg", "7702001", 0, 5000)
	azucar := seedProducto(productoRepo, "Azucar 1kg", "7702002", 0, 4000)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: proveedor.ID.String(),
		Items: []dto.ItemCompraRequest{
			{ProductoID: harina.ID.String(), Cantidad: 20, CostoUnitario: decimal.NewFromInt(2800)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, harina.StockActual)

	// El reemplazo revierte el efecto anterior y aplica el nuevo
	actualizada, err := svc.Actualizar(context.Background(), uuid.MustParse(resp.ID), dto.ActualizarCompraRequest{
		Items: []dto.ItemCompraRequest{
			{ProductoID: azucar.ID.String(), Cantidad: 15, CostoUnitario: decimal.NewFromInt(2200)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, harina.StockActual)
	assert.Equal(t, 15, azucar.StockActual)
	assert.Equal(t, "33000", actualizada.Total.String()) // 15 × 2200
}

func TestAnularCompra_RevierteStock(t *testing.T) {
	svc, compraRepo, productoRepo, proveedorRepo, _ := buildCompraSvc()
	proveedor := seedProveedor(proveedorRepo)
	p := seedProducto(productoRepo, "Harina 1kg", "7702001", 5, 5000)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		ProveedorID: proveedor.ID.String(),
		Items: []dto.ItemCompraRequest{
			{ProductoID: p.ID.String(), Cantidad: 10, CostoUnitario: decimal.NewFromInt(2800)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, p.StockActual)

	anulada, err := svc.Anular(context.Background(), uuid.MustParse(resp.ID), "pedido duplicado")
	require.NoError(t, err)
	assert.Equal(t, "anulada", anulada.Estado)
	assert.Equal(t, 5, p.StockActual)

	// Una compra anulada no admite más cambios
	_, err = svc.Actualizar(context.Background(), uuid.MustParse(resp.ID), dto.ActualizarCompraRequest{
		Items: []dto.ItemCompraRequest{
			{ProductoID: p.ID.String(), Cantidad: 1, CostoUnitario: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorContains(t, err, "registrada")

	stored, _ := compraRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	assert.Equal(t, "anulada", stored.Estado)
}
