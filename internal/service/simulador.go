package service

import (
	"errors"

	"credipos/internal/dto"

	"github.com/shopspring/decimal"
)

// Amortization parameters: fixed 2.5% monthly rate, 0.5% of principal as
// life-insurance premium.
var (
	tasaMensual = decimal.NewFromFloat(0.025)
	tasaSeguro  = decimal.NewFromFloat(0.005)
)

// SimularCredito computes the amortization quote for a credit of monto over
// plazo monthly installments using the standard annuity formula:
//
//	cuota = P * r * (1+r)^n / ((1+r)^n - 1)
//
// Every monetary output is rounded to the nearest integer unit. Pure
// computation, no side effects.
func SimularCredito(monto decimal.Decimal, plazo int) (*dto.SimulacionResponse, error) {
	if monto.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("el monto debe ser mayor a cero")
	}
	if plazo <= 0 {
		return nil, errors.New("el plazo debe ser mayor a cero")
	}

	// (1+r)^n is exact decimal arithmetic for integer n; with n >= 1 the
	// denominator (1+r)^n - 1 >= r, so there is no division by zero.
	factor := decimal.NewFromInt(1).Add(tasaMensual).Pow(decimal.NewFromInt(int64(plazo)))
	valorCuota := monto.Mul(tasaMensual).Mul(factor).
		Div(factor.Sub(decimal.NewFromInt(1))).
		Round(0)

	costoTotal := valorCuota.Mul(decimal.NewFromInt(int64(plazo)))
	intereses := costoTotal.Sub(monto)
	seguroVida := monto.Mul(tasaSeguro).Round(0)

	return &dto.SimulacionResponse{
		Monto:       monto,
		Plazo:       plazo,
		TasaMensual: tasaMensual,
		ValorCuota:  valorCuota,
		Intereses:   intereses,
		SeguroVida:  seguroVida,
		CostoTotal:  costoTotal,
		Total:       costoTotal.Add(seguroVida).Round(0),
	}, nil
}
