package service

import (
	"context"
	"time"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ObtenerPorDocumento(ctx context.Context, documento string) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := model.Cliente{
		Documento: req.Documento,
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
	}
	if err := aplicarFechaNacimiento(&cliente, req.FechaNacimiento); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(&cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) ObtenerPorDocumento(ctx context.Context, documento string) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByDocumento(ctx, documento)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}

	if req.Nombre != "" {
		cliente.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		cliente.Apellido = req.Apellido
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if err := aplicarFechaNacimiento(cliente, req.FechaNacimiento); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrClienteNoEncontrado
	}
	return s.repo.Delete(ctx, id)
}

func aplicarFechaNacimiento(c *model.Cliente, fecha *string) error {
	if fecha == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *fecha)
	if err != nil {
		return err
	}
	c.FechaNacimiento = &t
	return nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:        c.ID.String(),
		Documento: c.Documento,
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.FechaNacimiento != nil {
		f := c.FechaNacimiento.Format("2006-01-02")
		resp.FechaNacimiento = &f
	}
	return resp
}
