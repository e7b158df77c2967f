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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompraService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) (*dto.CompraResponse, error)
}

type compraService struct {
	repo           repository.CompraRepository
	productoRepo   repository.ProductoRepository
	proveedorRepo  repository.ProveedorRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewCompraService(
	repo repository.CompraRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	movimientoRepo repository.MovimientoStockRepository,
) CompraService {
	return &compraService{
		repo:           repo,
		productoRepo:   productoRepo,
		proveedorRepo:  proveedorRepo,
		movimientoRepo: movimientoRepo,
	}
}

// Registrar records a purchase: compra + items, stock increments and one
// movimiento per item, all in a single transaction.
func (s *compraService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, ErrProveedorNoEncontrado
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, ErrProveedorNoEncontrado
	}

	var compra model.Compra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		items, total, err := s.construirItems(tx, req.Items)
		if err != nil {
			return err
		}
		compra = model.Compra{
			ProveedorID: proveedorID,
			UsuarioID:   usuarioID,
			Total:       total,
			Estado:      "registrada",
			Items:       items,
		}
		if err := s.repo.CreateTx(tx, &compra); err != nil {
			return err
		}
		return s.aplicarStock(tx, compra.Items, compra.ID, "compra", fmt.Sprintf("compra #%d", compra.Numero))
	})
	if txErr != nil {
		return nil, txErr
	}
	return compraToResponse(&compra), nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	compras, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, *compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCompraNoEncontrada
	}
	return compraToResponse(compra), nil
}

// Actualizar replaces the item set of a registered compra. The old items'
// stock effect is reversed, the new one applied, and the item rows swapped —
// one transaction, so a failure midway leaves stock untouched.
func (s *compraService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCompraNoEncontrada
	}
	if compra.Estado != "registrada" {
		return nil, errors.New("solo se pueden modificar compras en estado registrada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		motivo := fmt.Sprintf("ajuste compra #%d", compra.Numero)
		if err := s.revertirStock(tx, compra.Items, compra.ID, "ajuste_compra", motivo); err != nil {
			return err
		}

		items, total, err := s.construirItems(tx, req.Items)
		if err != nil {
			return err
		}
		compra.Total = total
		if err := s.repo.ReplaceItemsTx(tx, compra, items); err != nil {
			return err
		}
		compra.Items = items
		return s.aplicarStock(tx, items, compra.ID, "ajuste_compra", motivo)
	})
	if txErr != nil {
		return nil, txErr
	}
	return compraToResponse(compra), nil
}

// Anular cancels a purchase and reverses its stock effect.
func (s *compraService) Anular(ctx context.Context, id uuid.UUID, motivo string) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCompraNoEncontrada
	}
	if compra.Estado == "anulada" {
		return nil, errors.New("la compra ya fue anulada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, "anulada"); err != nil {
			return err
		}
		return s.revertirStock(tx, compra.Items, compra.ID, "anulacion_compra", motivo)
	})
	if txErr != nil {
		return nil, txErr
	}
	compra.Estado = "anulada"
	return compraToResponse(compra), nil
}

// construirItems validates products and builds item rows with subtotals.
func (s *compraService) construirItems(tx *gorm.DB, reqItems []dto.ItemCompraRequest) ([]model.CompraItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]model.CompraItem, 0, len(reqItems))
	for _, it := range reqItems {
		productoID, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, decimal.Zero, ErrProductoNoEncontrado
		}
		producto, err := s.productoRepo.FindByIDTx(tx, productoID)
		if err != nil {
			return nil, decimal.Zero, ErrProductoNoEncontrado
		}
		if !it.CostoUnitario.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("costo unitario inválido para %s", producto.Codigo)
		}
		subtotal := it.CostoUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		total = total.Add(subtotal)
		items = append(items, model.CompraItem{
			ProductoID:    productoID,
			Cantidad:      it.Cantidad,
			CostoUnitario: it.CostoUnitario,
			Subtotal:      subtotal,
			Producto:      producto,
		})
	}
	return items, total, nil
}

func (s *compraService) aplicarStock(tx *gorm.DB, items []model.CompraItem, compraID uuid.UUID, tipo, motivo string) error {
	return s.moverStock(tx, items, compraID, tipo, motivo, 1)
}

func (s *compraService) revertirStock(tx *gorm.DB, items []model.CompraItem, compraID uuid.UUID, tipo, motivo string) error {
	return s.moverStock(tx, items, compraID, tipo, motivo, -1)
}

func (s *compraService) moverStock(tx *gorm.DB, items []model.CompraItem, compraID uuid.UUID, tipo, motivo string, signo int) error {
	for i := range items {
		item := &items[i]
		producto, err := s.productoRepo.FindByIDTx(tx, item.ProductoID)
		if err != nil {
			return err
		}
		delta := signo * item.Cantidad
		if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, delta); err != nil {
			return err
		}
		mov := model.MovimientoStock{
			ProductoID:    item.ProductoID,
			Tipo:          tipo,
			Cantidad:      delta,
			StockAnterior: producto.StockActual,
			StockNuevo:    producto.StockActual + delta,
			Motivo:        motivo,
			ReferenciaID:  &compraID,
		}
		if err := s.movimientoRepo.CreateTx(tx, &mov); err != nil {
			return err
		}
	}
	return nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	items := make([]dto.ItemCompraResponse, 0, len(c.Items))
	for i := range c.Items {
		item := c.Items[i]
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemCompraResponse{
			Producto:      nombre,
			ProductoID:    item.ProductoID.String(),
			Cantidad:      item.Cantidad,
			CostoUnitario: item.CostoUnitario,
			Subtotal:      item.Subtotal,
		})
	}
	return &dto.CompraResponse{
		ID:          c.ID.String(),
		Numero:      c.Numero,
		ProveedorID: c.ProveedorID.String(),
		UsuarioID:   c.UsuarioID.String(),
		Items:       items,
		Total:       c.Total,
		Estado:      c.Estado,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}
