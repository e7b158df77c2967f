package service

import (
	"context"
	"errors"
	"time"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
)

type SucursalService interface {
	Crear(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.SucursalResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type sucursalService struct {
	repo        repository.SucursalRepository
	usuarioRepo repository.UsuarioRepository
}

func NewSucursalService(repo repository.SucursalRepository, usuarioRepo repository.UsuarioRepository) SucursalService {
	return &sucursalService{repo: repo, usuarioRepo: usuarioRepo}
}

// validarResponsable enforces the branch invariant: the responsable must be an
// active user with rol comercial.
func (s *sucursalService) validarResponsable(ctx context.Context, id uuid.UUID) error {
	usuario, err := s.usuarioRepo.FindByID(ctx, id)
	if err != nil {
		return ErrUsuarioNoEncontrado
	}
	if !usuario.Activo {
		return errors.New("el responsable está inactivo")
	}
	if usuario.Rol != model.RolComercial {
		return errors.New("el responsable de una sucursal debe tener rol comercial")
	}
	return nil
}

func (s *sucursalService) Crear(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	responsableID, err := uuid.Parse(req.ResponsableID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	if err := s.validarResponsable(ctx, responsableID); err != nil {
		return nil, err
	}

	sucursal := model.Sucursal{
		Nombre:        req.Nombre,
		Direccion:     req.Direccion,
		ResponsableID: responsableID,
		Activa:        true,
	}
	if err := s.repo.Create(ctx, &sucursal); err != nil {
		return nil, err
	}

	// Bind the responsable to their new branch so scoped tokens resolve it.
	if usuario, err := s.usuarioRepo.FindByID(ctx, responsableID); err == nil {
		usuario.SucursalID = &sucursal.ID
		_ = s.usuarioRepo.Update(ctx, usuario)
	}
	return sucursalToResponse(&sucursal), nil
}

func (s *sucursalService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.SucursalResponse, error) {
	sucursales, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		result = append(result, *sucursalToResponse(&sucursales[i]))
	}
	return result, nil
}

func (s *sucursalService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error) {
	sucursal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSucursalNoEncontrada
	}
	return sucursalToResponse(sucursal), nil
}

// Actualizar mutates branch metadata. The saldo override is an administrative
// escape hatch (data correction), not part of the normal ledger flow.
func (s *sucursalService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error) {
	sucursal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSucursalNoEncontrada
	}

	if req.Nombre != "" {
		sucursal.Nombre = req.Nombre
	}
	if req.Direccion != "" {
		sucursal.Direccion = req.Direccion
	}
	if req.ResponsableID != nil {
		responsableID, err := uuid.Parse(*req.ResponsableID)
		if err != nil {
			return nil, ErrUsuarioNoEncontrado
		}
		if err := s.validarResponsable(ctx, responsableID); err != nil {
			return nil, err
		}
		sucursal.ResponsableID = responsableID
		sucursal.Responsable = nil
	}
	if req.SaldoDisponible != nil {
		if req.SaldoDisponible.IsNegative() {
			return nil, errors.New("el saldo disponible no puede ser negativo")
		}
		sucursal.SaldoDisponible = *req.SaldoDisponible
	}
	if req.Activa != nil {
		sucursal.Activa = *req.Activa
	}

	if err := s.repo.Update(ctx, sucursal); err != nil {
		return nil, err
	}
	return sucursalToResponse(sucursal), nil
}

func (s *sucursalService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrSucursalNoEncontrada
	}
	return s.repo.SoftDelete(ctx, id)
}

func sucursalToResponse(s *model.Sucursal) *dto.SucursalResponse {
	resp := &dto.SucursalResponse{
		ID:              s.ID.String(),
		Nombre:          s.Nombre,
		Direccion:       s.Direccion,
		ResponsableID:   s.ResponsableID.String(),
		SaldoDisponible: s.SaldoDisponible,
		Activa:          s.Activa,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
	if s.Responsable != nil {
		resp.Responsable = s.Responsable.Nombre + " " + s.Responsable.Apellido
	}
	return resp
}
