package service

import (
	"context"
	"errors"
	"time"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AbonoService interface {
	Registrar(ctx context.Context, usuarioID, sucursalID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error)
	Listar(ctx context.Context, filter dto.AbonoFilter) (*dto.AbonoListResponse, error)
}

type abonoService struct {
	repo         repository.AbonoRepository
	creditoRepo  repository.CreditoRepository
	sucursalRepo repository.SucursalRepository
}

func NewAbonoService(
	repo repository.AbonoRepository,
	creditoRepo repository.CreditoRepository,
	sucursalRepo repository.SucursalRepository,
) AbonoService {
	return &abonoService{repo: repo, creditoRepo: creditoRepo, sucursalRepo: sucursalRepo}
}

// Registrar records a payment against a credit. When the recording branch is
// not the credit's issuing branch, the recording branch advanced money it does
// not own, so its saldo is debited by the same amount in the same transaction.
// Abonos are append-only; there is no update or delete path.
func (s *abonoService) Registrar(ctx context.Context, usuarioID, sucursalID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, errors.New("el monto del abono debe ser mayor que cero")
	}

	creditoID, err := uuid.Parse(req.CreditoID)
	if err != nil {
		return nil, ErrCreditoNoEncontrado
	}
	credito, err := s.creditoRepo.FindByID(ctx, creditoID)
	if err != nil {
		return nil, ErrCreditoNoEncontrado
	}
	if credito.Estado != "aprobado" {
		return nil, errors.New("solo se aceptan abonos sobre créditos aprobados")
	}

	abonado, err := s.creditoRepo.SumAbonos(ctx, creditoID)
	if err != nil {
		return nil, err
	}
	if abonado.Add(req.Monto).GreaterThan(credito.Monto) {
		return nil, errors.New("el abono excede el saldo pendiente del crédito")
	}

	externo := sucursalID != credito.SucursalID

	abono := model.Abono{
		CreditoID:  creditoID,
		SucursalID: sucursalID,
		UsuarioID:  usuarioID,
		Monto:      req.Monto,
	}
	txErr := runTx(ctx, s.creditoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &abono); err != nil {
			return err
		}
		if externo {
			return s.sucursalRepo.AjustarSaldoTx(tx, sucursalID, req.Monto.Neg())
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.AbonoResponse{
		ID:               abono.ID.String(),
		CreditoID:        abono.CreditoID.String(),
		SucursalID:       abono.SucursalID.String(),
		UsuarioID:        abono.UsuarioID.String(),
		Monto:            abono.Monto,
		ExternoASucursal: externo,
		CreatedAt:        abono.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *abonoService) Listar(ctx context.Context, filter dto.AbonoFilter) (*dto.AbonoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	abonos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AbonoResponse, 0, len(abonos))
	for i := range abonos {
		a := abonos[i]
		resp := dto.AbonoResponse{
			ID:         a.ID.String(),
			CreditoID:  a.CreditoID.String(),
			SucursalID: a.SucursalID.String(),
			UsuarioID:  a.UsuarioID.String(),
			Monto:      a.Monto,
			CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		}
		if a.Credito != nil {
			resp.ExternoASucursal = a.SucursalID != a.Credito.SucursalID
		}
		items = append(items, resp)
	}
	return &dto.AbonoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}
