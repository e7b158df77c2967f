package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand"
	"time"

	"credipos/internal/dto"
	"credipos/internal/model"
	"credipos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CodigoStore holds short-lived verification codes issued by the
// identity-validation step. Codes expire server-side (15 min TTL) and are
// consumed exactly once by credit creation.
type CodigoStore interface {
	Guardar(ctx context.Context, documento, codigo string) error
	Consumir(ctx context.Context, documento string) (string, error)
}

type CreditoService interface {
	ValidarCliente(ctx context.Context, req dto.ValidarClienteRequest) (*dto.ValidarClienteResponse, error)
	Crear(ctx context.Context, usuarioID, sucursalID uuid.UUID, req dto.CrearCreditoRequest) (*dto.CreditoResponse, error)
	Listar(ctx context.Context, filter dto.CreditoFilter) (*dto.CreditoListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CreditoResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CreditoResponse, error)
}

type creditoService struct {
	repo         repository.CreditoRepository
	clienteRepo  repository.ClienteRepository
	sucursalRepo repository.SucursalRepository
	codigos      CodigoStore
}

func NewCreditoService(
	repo repository.CreditoRepository,
	clienteRepo repository.ClienteRepository,
	sucursalRepo repository.SucursalRepository,
	codigos CodigoStore,
) CreditoService {
	return &creditoService{
		repo:         repo,
		clienteRepo:  clienteRepo,
		sucursalRepo: sucursalRepo,
		codigos:      codigos,
	}
}

// ── ValidarCliente ────────────────────────────────────────────────────────────
// Identity-validation stub: approves 80% of requests. The bureau integration
// it stands in for is out of scope; the verification code contract is real —
// the code issued here must be presented on credit creation.

func (s *creditoService) ValidarCliente(ctx context.Context, req dto.ValidarClienteRequest) (*dto.ValidarClienteResponse, error) {
	if mrand.Float64() >= 0.8 {
		return &dto.ValidarClienteResponse{
			Aprobado: false,
			Mensaje:  "El cliente no superó la validación de identidad",
		}, nil
	}

	codigo := nuevoCodigo()
	if err := s.codigos.Guardar(ctx, req.Documento, codigo); err != nil {
		return nil, err
	}
	return &dto.ValidarClienteResponse{
		Aprobado:           true,
		CodigoVerificacion: codigo,
		Mensaje:            "Cliente validado correctamente",
	}, nil
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Approval is the only transition with side effects. One transaction covers:
//  1. upsert Cliente by documento
//  2. insert Credito (estado=aprobado, fecha_aprobacion=now, codigo de entrega)
//  3. atomic increment of the issuing branch saldo by the principal
// A failure at any step rolls back every previous one.

func (s *creditoService) Crear(ctx context.Context, usuarioID, sucursalID uuid.UUID, req dto.CrearCreditoRequest) (*dto.CreditoResponse, error) {
	sucursal, err := s.sucursalRepo.FindByID(ctx, sucursalID)
	if err != nil {
		return nil, ErrSucursalNoEncontrada
	}
	if !sucursal.Activa {
		return nil, errors.New("la sucursal está inactiva")
	}

	guardado, err := s.codigos.Consumir(ctx, req.Cliente.Documento)
	if err != nil || guardado != req.CodigoVerificacion {
		return nil, errors.New("código de verificación inválido o expirado")
	}

	// Recompute the installment server-side; the client never supplies it.
	sim, err := SimularCredito(req.Monto, req.Plazo)
	if err != nil {
		return nil, err
	}

	var credito model.Credito
	var cliente *model.Cliente
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cliente, err = s.clienteRepo.FindByDocumentoTx(tx, req.Cliente.Documento)
		if err != nil {
			cliente = &model.Cliente{
				Documento: req.Cliente.Documento,
				Nombre:    req.Cliente.Nombre,
				Apellido:  req.Cliente.Apellido,
				Telefono:  req.Cliente.Telefono,
				Email:     req.Cliente.Email,
				Direccion: req.Cliente.Direccion,
			}
			if fn := req.Cliente.FechaNacimiento; fn != nil {
				if t, perr := time.Parse("2006-01-02", *fn); perr == nil {
					cliente.FechaNacimiento = &t
				}
			}
			if cerr := s.clienteRepo.CreateTx(tx, cliente); cerr != nil {
				return fmt.Errorf("error creando cliente: %w", cerr)
			}
		}

		ahora := time.Now()
		credito = model.Credito{
			ClienteID:          cliente.ID,
			SucursalID:         sucursalID,
			UsuarioID:          usuarioID,
			Monto:              req.Monto,
			Plazo:              req.Plazo,
			ValorCuota:         sim.ValorCuota,
			Estado:             "aprobado",
			CodigoVerificacion: req.CodigoVerificacion,
			CodigoEntrega:      nuevoCodigo(),
			FechaAprobacion:    &ahora,
		}
		if cerr := s.repo.CreateTx(tx, &credito); cerr != nil {
			return cerr
		}

		return s.sucursalRepo.AjustarSaldoTx(tx, sucursalID, req.Monto)
	})
	if txErr != nil {
		return nil, txErr
	}

	credito.Cliente = cliente
	return creditoToResponse(&credito, nil), nil
}

func (s *creditoService) Listar(ctx context.Context, filter dto.CreditoFilter) (*dto.CreditoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	creditos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CreditoResponse, 0, len(creditos))
	for i := range creditos {
		items = append(items, *creditoToResponse(&creditos[i], nil))
	}
	return &dto.CreditoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Obtener returns the credit with its outstanding balance, derived on read as
// monto - sum(abonos). The balance is never stored.
func (s *creditoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CreditoResponse, error) {
	credito, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCreditoNoEncontrado
	}
	abonado, err := s.repo.SumAbonos(ctx, id)
	if err != nil {
		return nil, err
	}
	saldo := credito.Monto.Sub(abonado)
	return creditoToResponse(credito, &saldo), nil
}

// Transitions allowed by the credit state machine. "rechazado" and
// "finalizado" are terminal.
var transicionesCredito = map[string][]string{
	"solicitado":    {"en_validacion"},
	"en_validacion": {"aprobado", "rechazado"},
	"aprobado":      {"finalizado"},
}

func (s *creditoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CreditoResponse, error) {
	credito, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCreditoNoEncontrado
	}
	permitido := false
	for _, destino := range transicionesCredito[credito.Estado] {
		if destino == estado {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, fmt.Errorf("transición de estado inválida: %s → %s", credito.Estado, estado)
	}
	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	credito.Estado = estado
	return creditoToResponse(credito, nil), nil
}

// nuevoCodigo returns 6 random hex characters (verification / delivery codes).
func nuevoCodigo() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func creditoToResponse(c *model.Credito, saldoPendiente *decimal.Decimal) *dto.CreditoResponse {
	resp := &dto.CreditoResponse{
		ID:             c.ID.String(),
		SucursalID:     c.SucursalID.String(),
		UsuarioID:      c.UsuarioID.String(),
		Monto:          c.Monto,
		Plazo:          c.Plazo,
		ValorCuota:     c.ValorCuota,
		Estado:         c.Estado,
		CodigoEntrega:  c.CodigoEntrega,
		SaldoPendiente: saldoPendiente,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
	if c.Cliente != nil {
		resp.Cliente = c.Cliente.Nombre + " " + c.Cliente.Apellido
		resp.Documento = c.Cliente.Documento
	}
	if c.FechaAprobacion != nil {
		f := c.FechaAprobacion.Format(time.RFC3339)
		resp.FechaAprobacion = &f
	}
	return resp
}
