package service

import (
	"context"
	"testing"

	"credipos/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVentaSvc() (VentaService, *stubVentaRepo, *stubProductoRepo, *stubMovimientoRepo) {
	ventaRepo := newStubVentaRepo()
	productoRepo := newStubProductoRepo()
	movimientoRepo := &stubMovimientoRepo{}
	svc := NewVentaService(ventaRepo, productoRepo, movimientoRepo)
	return svc, ventaRepo, productoRepo, movimientoRepo
}

func TestRegistrarVenta_PrecioDeCatalogo(t *testing.T) {
	svc, _, productoRepo, movimientoRepo := buildVentaSvc()
	arroz := seedProducto(productoRepo, "Arroz 500g", "7701001", 20, 3500)
	aceite := seedProducto(productoRepo, "Aceite 1L", "7701002", 10, 12000)

	resp, err := svc.Registrar(context.Background(), uuid.New(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: arroz.ID.String(), Cantidad: 2},
			{ProductoID: aceite.ID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)

	// 2×3500 + 1×12000
	assert.Equal(t, "19000", resp.Total.String())
	assert.Equal(t, "completada", resp.Estado)
	assert.Equal(t, 1, resp.Numero)
	assert.Len(t, resp.Items, 2)

	// Stock descontado y un movimiento por ítem
	assert.Equal(t, 18, productoRepo.productos[arroz.ID].StockActual)
	assert.Equal(t, 9, productoRepo.productos[aceite.ID].StockActual)
	require.Len(t, movimientoRepo.movimientos, 2)
	assert.Equal(t, "venta", movimientoRepo.movimientos[0].Tipo)
	assert.Equal(t, -2, movimientoRepo.movimientos[0].Cantidad)
}

func TestRegistrarVenta_StockInsuficiente(t *testing.T) {
	svc, ventaRepo, productoRepo, _ := buildVentaSvc()
	p := seedProducto(productoRepo, "Azucar 1kg", "7701003", 2, 4000)

	_, err := svc.Registrar(context.Background(), uuid.New(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 5}},
	})
	assert.ErrorContains(t, err, "stock insuficiente")
	assert.Empty(t, ventaRepo.ventas)
	assert.Equal(t, 2, p.StockActual)
}

func TestRegistrarVenta_ProductoInactivo(t *testing.T) {
	svc, _, productoRepo, _ := buildVentaSvc()
	p := seedProducto(productoRepo, "Descontinuado", "7701004", 50, 1000)
	p.Activo = false

	_, err := svc.Registrar(context.Background(), uuid.New(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
	})
	assert.ErrorContains(t, err, "inactivo")
}

func TestAnularVenta_RestauraStock(t *testing.T) {
	svc, ventaRepo, productoRepo, movimientoRepo := buildVentaSvc()
	p := seedProducto(productoRepo, "Cafe 250g", "7701005", 10, 9000)

	resp, err := svc.Registrar(context.Background(), uuid.New(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.StockActual)

	anulada, err := svc.Anular(context.Background(), uuid.MustParse(resp.ID), "error de digitación")
	require.NoError(t, err)
	assert.Equal(t, "anulada", anulada.Estado)
	assert.Equal(t, 10, p.StockActual)

	stored, _ := ventaRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	assert.Equal(t, "anulada", stored.Estado)

	// Movimiento inverso registrado
	var tieneInverso bool
	for _, m := range movimientoRepo.movimientos {
		if m.Tipo == "anulacion_venta" && m.Cantidad == 3 {
			tieneInverso = true
		}
	}
	assert.True(t, tieneInverso)

	// No se puede anular dos veces
	_, err = svc.Anular(context.Background(), uuid.MustParse(resp.ID), "otra vez")
	assert.ErrorContains(t, err, "ya fue anulada")
}
