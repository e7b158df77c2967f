package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settlement fee parameters. Rates apply to the branch saldo at settlement
// time; results are rounded to 2 decimal places.
var (
	tasaComision = decimal.NewFromFloat(0.05)
	tasaIVA      = decimal.NewFromFloat(0.19)
)

// Enqueuer pushes background jobs (receipt PDF + email after a settlement is
// marked procesada). A nil Enqueuer disables the async step, nothing more.
type Enqueuer interface {
	EnqueueLiquidacion(ctx context.Context, liquidacionID string) error
}

type LiquidacionService interface {
	Calcular(ctx context.Context, sucursalID uuid.UUID) (*dto.LiquidacionQuote, error)
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearLiquidacionRequest) (*dto.LiquidacionResponse, error)
	Listar(ctx context.Context, filter dto.LiquidacionFilter) (*dto.LiquidacionListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.LiquidacionResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.LiquidacionResponse, error)
}

type liquidacionService struct {
	repo         repository.LiquidacionRepository
	sucursalRepo repository.SucursalRepository
	creditoRepo  repository.CreditoRepository
	abonoRepo    repository.AbonoRepository
	enqueuer     Enqueuer
}

func NewLiquidacionService(
	repo repository.LiquidacionRepository,
	sucursalRepo repository.SucursalRepository,
	creditoRepo repository.CreditoRepository,
	abonoRepo repository.AbonoRepository,
	enqueuer Enqueuer,
) LiquidacionService {
	return &liquidacionService{
		repo:         repo,
		sucursalRepo: sucursalRepo,
		creditoRepo:  creditoRepo,
		abonoRepo:    abonoRepo,
		enqueuer:     enqueuer,
	}
}

// Calcular builds the settlement quote for a branch. The payable figures come
// from the stored saldo_disponible; the credit and abono aggregates are audit
// context for the operator reviewing the quote.
func (s *liquidacionService) Calcular(ctx context.Context, sucursalID uuid.UUID) (*dto.LiquidacionQuote, error) {
	sucursal, err := s.sucursalRepo.FindByID(ctx, sucursalID)
	if err != nil {
		return nil, ErrSucursalNoEncontrada
	}

	resumen, err := s.creditoRepo.SumAprobadosPorSucursal(ctx, sucursalID)
	if err != nil {
		return nil, err
	}
	externos, err := s.abonoRepo.SumExternosPorSucursal(ctx, sucursalID)
	if err != nil {
		return nil, err
	}

	comision, iva, liquidado := calcularTarifas(sucursal.SaldoDisponible)
	return &dto.LiquidacionQuote{
		SucursalID:          sucursal.ID.String(),
		Sucursal:            sucursal.Nombre,
		CantidadOperaciones: int(resumen.Cantidad),
		CreditosAprobados:   resumen.Total,
		AbonosExternos:      externos,
		MontoDisponible:     sucursal.SaldoDisponible,
		Comision:            comision,
		IVA:                 iva,
		MontoLiquidado:      liquidado,
	}, nil
}

// Crear persists a settlement and zeroes the branch saldo in one transaction.
// Every monetary figure is recomputed here from the current saldo; the saldo
// reset is conditional on the value read, so a credit approved between the
// read and the write aborts the settlement instead of silently losing money.
func (s *liquidacionService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearLiquidacionRequest) (*dto.LiquidacionResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, ErrSucursalNoEncontrada
	}
	sucursal, err := s.sucursalRepo.FindByID(ctx, sucursalID)
	if err != nil {
		return nil, ErrSucursalNoEncontrada
	}
	if !sucursal.SaldoDisponible.IsPositive() {
		return nil, errors.New("la sucursal no tiene saldo disponible para liquidar")
	}

	resumen, err := s.creditoRepo.SumAprobadosPorSucursal(ctx, sucursalID)
	if err != nil {
		return nil, err
	}

	monto := sucursal.SaldoDisponible
	comision, iva, liquidado := calcularTarifas(monto)

	liquidacion := model.Liquidacion{
		SucursalID:          sucursalID,
		UsuarioID:           usuarioID,
		MontoDisponible:     monto,
		Comision:            comision,
		IVA:                 iva,
		MontoLiquidado:      liquidado,
		CantidadOperaciones: int(resumen.Cantidad),
		Banco:               req.Banco,
		NumeroCuenta:        req.NumeroCuenta,
		Estado:              "pendiente",
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &liquidacion); err != nil {
			return err
		}
		if err := s.sucursalRepo.ResetSaldoTx(tx, sucursalID, monto); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("el saldo de la sucursal cambió durante la liquidación, intente de nuevo")
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return liquidacionToResponse(&liquidacion), nil
}

func (s *liquidacionService) Listar(ctx context.Context, filter dto.LiquidacionFilter) (*dto.LiquidacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	liquidaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LiquidacionResponse, 0, len(liquidaciones))
	for i := range liquidaciones {
		items = append(items, *liquidacionToResponse(&liquidaciones[i]))
	}
	return &dto.LiquidacionListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *liquidacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.LiquidacionResponse, error) {
	liquidacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrLiquidacionNoEncontrada
	}
	return liquidacionToResponse(liquidacion), nil
}

var transicionesLiquidacion = map[string][]string{
	"pendiente": {"procesada"},
	"procesada": {"pagada"},
}

// ActualizarEstado advances the settlement workflow. Moving to procesada
// enqueues the receipt job (PDF + email); a queue failure is logged but does
// not roll back the state change.
func (s *liquidacionService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.LiquidacionResponse, error) {
	liquidacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrLiquidacionNoEncontrada
	}
	permitido := false
	for _, destino := range transicionesLiquidacion[liquidacion.Estado] {
		if destino == estado {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, fmt.Errorf("transición de estado inválida: %s → %s", liquidacion.Estado, estado)
	}
	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	liquidacion.Estado = estado

	if estado == "procesada" && s.enqueuer != nil {
		if err := s.enqueuer.EnqueueLiquidacion(ctx, id.String()); err != nil {
			log.Error().Err(err).Str("liquidacion_id", id.String()).
				Msg("no se pudo encolar el comprobante de liquidación")
		}
	}
	return liquidacionToResponse(liquidacion), nil
}

func calcularTarifas(monto decimal.Decimal) (comision, iva, liquidado decimal.Decimal) {
	comision = monto.Mul(tasaComision).Round(2)
	iva = comision.Mul(tasaIVA).Round(2)
	liquidado = monto.Sub(comision).Sub(iva)
	return comision, iva, liquidado
}

func liquidacionToResponse(l *model.Liquidacion) *dto.LiquidacionResponse {
	return &dto.LiquidacionResponse{
		ID:                  l.ID.String(),
		SucursalID:          l.SucursalID.String(),
		UsuarioID:           l.UsuarioID.String(),
		MontoDisponible:     l.MontoDisponible,
		Comision:            l.Comision,
		IVA:                 l.IVA,
		MontoLiquidado:      l.MontoLiquidado,
		CantidadOperaciones: l.CantidadOperaciones,
		Banco:               l.Banco,
		NumeroCuenta:        l.NumeroCuenta,
		Estado:              l.Estado,
		CreatedAt:           l.CreatedAt.Format(time.RFC3339),
	}
}
