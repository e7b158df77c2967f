package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimularCredito_CuotaAnualidad(t *testing.T) {
	// 1.000.000 a 12 meses al 2.5% mensual
	sim, err := SimularCredito(decimal.NewFromInt(1_000_000), 12)
	require.NoError(t, err)

	assert.Equal(t, "97487", sim.ValorCuota.String())
	assert.Equal(t, "1169844", sim.CostoTotal.String())
	assert.Equal(t, "169844", sim.Intereses.String())
	assert.Equal(t, "5000", sim.SeguroVida.String())
	assert.Equal(t, "1174844", sim.Total.String())
	assert.Equal(t, 12, sim.Plazo)
	assert.Equal(t, "0.025", sim.TasaMensual.String())
}

func TestSimularCredito_PlazoUnMes(t *testing.T) {
	// Con una sola cuota, la cuota es exactamente P·(1+r)
	sim, err := SimularCredito(decimal.NewFromInt(1_000_000), 1)
	require.NoError(t, err)
	assert.Equal(t, "1025000", sim.ValorCuota.String())
	assert.Equal(t, "25000", sim.Intereses.String())
}

func TestSimularCredito_MontoMedioPlazoCorto(t *testing.T) {
	sim, err := SimularCredito(decimal.NewFromInt(500_000), 6)
	require.NoError(t, err)
	assert.Equal(t, "90775", sim.ValorCuota.String())
}

func TestSimularCredito_CostoTotalCubrePrincipal(t *testing.T) {
	for _, plazo := range []int{1, 6, 12, 24, 36, 60} {
		sim, err := SimularCredito(decimal.NewFromInt(750_000), plazo)
		require.NoError(t, err)
		assert.True(t, sim.CostoTotal.GreaterThanOrEqual(sim.Monto),
			"plazo %d: costo total %s < monto %s", plazo, sim.CostoTotal, sim.Monto)
	}
}

func TestSimularCredito_EntradasInvalidas(t *testing.T) {
	_, err := SimularCredito(decimal.Zero, 12)
	assert.ErrorContains(t, err, "monto")

	_, err = SimularCredito(decimal.NewFromInt(-100), 12)
	assert.ErrorContains(t, err, "monto")

	_, err = SimularCredito(decimal.NewFromInt(100_000), 0)
	assert.ErrorContains(t, err, "plazo")
}
