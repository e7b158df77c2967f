package service

import (
	"context"
	"errors"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type usuarioService struct {
	repo repository.UsuarioRepository
}

func NewUsuarioService(repo repository.UsuarioRepository) UsuarioService {
	return &usuarioService{repo: repo}
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if req.Rol == model.RolComercial && req.SucursalID == nil {
		return nil, errors.New("un usuario comercial requiere sucursal asignada")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	usuario := model.Usuario{
		Documento:    req.Documento,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if req.Rol == model.RolComercial {
		sucursalID, err := uuid.Parse(*req.SucursalID)
		if err != nil {
			return nil, ErrSucursalNoEncontrada
		}
		usuario.SucursalID = &sucursalID
	}

	if err := s.repo.Create(ctx, &usuario); err != nil {
		return nil, err
	}
	return UsuarioToResponse(&usuario), nil
}

func (s *usuarioService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var usuarios []model.Usuario
	var err error
	if incluirInactivos {
		usuarios, err = s.repo.ListAll(ctx)
	} else {
		usuarios, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	result := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		result = append(result, *UsuarioToResponse(&usuarios[i]))
	}
	return result, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	return UsuarioToResponse(usuario), nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}

	if req.Nombre != "" {
		usuario.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		usuario.Apellido = req.Apellido
	}
	if req.Email != nil {
		usuario.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	if req.Rol != "" {
		usuario.Rol = req.Rol
	}
	if req.SucursalID != nil {
		sucursalID, err := uuid.Parse(*req.SucursalID)
		if err != nil {
			return nil, ErrSucursalNoEncontrada
		}
		usuario.SucursalID = &sucursalID
	}
	if usuario.Rol == model.RolComercial && usuario.SucursalID == nil {
		return nil, errors.New("un usuario comercial requiere sucursal asignada")
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return UsuarioToResponse(usuario), nil
}

func (s *usuarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrUsuarioNoEncontrado
	}
	return s.repo.SoftDelete(ctx, id)
}
