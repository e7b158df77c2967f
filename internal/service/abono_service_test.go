package service

import (
	"context"
	"testing"

	"credipos/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAbonoSvc() (AbonoService, *stubCreditoRepo, *stubSucursalRepo) {
	creditoRepo := newStubCreditoRepo()
	sucursalRepo := newStubSucursalRepo()
	abonoRepo := &stubAbonoRepo{creditoRepo: creditoRepo}
	svc := NewAbonoService(abonoRepo, creditoRepo, sucursalRepo)
	return svc, creditoRepo, sucursalRepo
}

func TestRegistrarAbono_MismaSucursal(t *testing.T) {
	svc, creditoRepo, sucursalRepo := buildAbonoSvc()
	sucursal := seedSucursal(sucursalRepo, "Centro", decimal.NewFromInt(500_000))
	credito := seedCredito(creditoRepo, sucursal.ID, decimal.NewFromInt(500_000), "aprobado")

	resp, err := svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
		CreditoID: credito.ID.String(),
		Monto:     decimal.NewFromInt(100_000),
	})
	require.NoError(t, err)
	assert.False(t, resp.ExternoASucursal)

	// Un abono en la sucursal emisora no toca su saldo
	assert.Equal(t, "500000", sucursal.SaldoDisponible.String())
}

func TestRegistrarAbono_SucursalExternaDebitaSaldo(t *testing.T) {
	svc, creditoRepo, sucursalRepo := buildAbonoSvc()
	emisora := seedSucursal(sucursalRepo, "Centro", decimal.NewFromInt(500_000))
	receptora := seedSucursal(sucursalRepo, "Norte", decimal.NewFromInt(200_000))
	credito := seedCredito(creditoRepo, emisora.ID, decimal.NewFromInt(500_000), "aprobado")

	resp, err := svc.Registrar(context.Background(), uuid.New(), receptora.ID, dto.RegistrarAbonoRequest{
		CreditoID: credito.ID.String(),
		Monto:     decimal.NewFromInt(80_000),
	})
	require.NoError(t, err)
	assert.True(t, resp.ExternoASucursal)

	// La sucursal que adelantó el dinero queda debitada; la emisora intacta
	assert.Equal(t, "120000", receptora.SaldoDisponible.String())
	assert.Equal(t, "500000", emisora.SaldoDisponible.String())
}

func TestRegistrarAbono_RechazaSobrepago(t *testing.T) {
	svc, creditoRepo, sucursalRepo := buildAbonoSvc()
	sucursal := seedSucursal(sucursalRepo, "Centro", decimal.NewFromInt(300_000))
	credito := seedCredito(creditoRepo, sucursal.ID, decimal.NewFromInt(300_000), "aprobado")

	_, err := svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
		CreditoID: credito.ID.String(),
		Monto:     decimal.NewFromInt(250_000),
	})
	require.NoError(t, err)

	// 250.000 + 100.000 > 300.000
	_, err = svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
		CreditoID: credito.ID.String(),
		Monto:     decimal.NewFromInt(100_000),
	})
	assert.ErrorContains(t, err, "excede el saldo pendiente")

	// Pagar el saldo exacto sí se acepta
	_, err = svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
		CreditoID: credito.ID.String(),
		Monto:     decimal.NewFromInt(50_000),
	})
	assert.NoError(t, err)
}

func TestRegistrarAbono_SoloCreditosAprobados(t *testing.T) {
	svc, creditoRepo, sucursalRepo := buildAbonoSvc()
	sucursal := seedSucursal(sucursalRepo, "Centro", decimal.Zero)

	for _, estado := range []string{"solicitado", "en_validacion", "rechazado", "finalizado"} {
		credito := seedCredito(creditoRepo, sucursal.ID, decimal.NewFromInt(100_000), estado)
		_, err := svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
			CreditoID: credito.ID.String(),
			Monto:     decimal.NewFromInt(10_000),
		})
		assert.ErrorContains(t, err, "aprobados", "estado %s", estado)
	}
}

func TestRegistrarAbono_MontoNoPositivo(t *testing.T) {
	svc, creditoRepo, sucursalRepo := buildAbonoSvc()
	sucursal := seedSucursal(sucursalRepo, "Centro", decimal.Zero)
	credito := seedCredito(creditoRepo, sucursal.ID, decimal.NewFromInt(100_000), "aprobado")

	_, err := svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
		CreditoID: credito.ID.String(),
		Monto:     decimal.Zero,
	})
	assert.ErrorContains(t, err, "mayor que cero")
}

func TestRegistrarAbono_CreditoInexistente(t *testing.T) {
	svc, _, sucursalRepo := buildAbonoSvc()
	sucursal := seedSucursal(sucursalRepo, "Centro", decimal.Zero)

	_, err := svc.Registrar(context.Background(), uuid.New(), sucursal.ID, dto.RegistrarAbonoRequest{
		CreditoID: uuid.NewString(),
		Monto:     decimal.NewFromInt(10_000),
	})
	assert.ErrorIs(t, err, ErrCreditoNoEncontrado)
}
