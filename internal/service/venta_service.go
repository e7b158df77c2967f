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

type VentaService interface {
	Registrar(ctx context.Context, usuarioID, sucursalID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Anular(ctx context.Context, id uuid.UUID, motivo string) (*dto.VentaResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
) VentaService {
	return &ventaService{repo: repo, productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

// Registrar creates the sale, decrements stock and writes one movimiento per
// item in a single transaction. Prices come from the catalog at sale time,
// never from the request.
func (s *ventaService) Registrar(ctx context.Context, usuarioID, sucursalID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]model.VentaItem, 0, len(req.Items))

		for _, it := range req.Items {
			productoID, err := uuid.Parse(it.ProductoID)
			if err != nil {
				return ErrProductoNoEncontrado
			}
			producto, err := s.productoRepo.FindByIDTx(tx, productoID)
			if err != nil {
				return ErrProductoNoEncontrado
			}
			if !producto.Activo {
				return fmt.Errorf("el producto %s está inactivo", producto.Codigo)
			}
			if producto.StockActual < it.Cantidad {
				return fmt.Errorf("stock insuficiente para %s: disponible %d, solicitado %d",
					producto.Codigo, producto.StockActual, it.Cantidad)
			}

			subtotal := producto.PrecioVenta.Mul(decimal.NewFromInt(int64(it.Cantidad)))
			total = total.Add(subtotal)
			items = append(items, model.VentaItem{
				ProductoID:     productoID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: producto.PrecioVenta,
				Subtotal:       subtotal,
				Producto:       producto,
			})
		}

		venta = model.Venta{
			SucursalID: sucursalID,
			UsuarioID:  usuarioID,
			Total:      total,
			Estado:     "completada",
			Items:      items,
		}
		if req.ClienteID != nil {
			if cid, err := uuid.Parse(*req.ClienteID); err == nil {
				venta.ClienteID = &cid
			}
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		for i := range venta.Items {
			item := &venta.Items[i]
			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, -item.Cantidad); err != nil {
				return err
			}
			mov := model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "venta",
				Cantidad:      -item.Cantidad,
				StockAnterior: item.Producto.StockActual,
				StockNuevo:    item.Producto.StockActual - item.Cantidad,
				Motivo:        fmt.Sprintf("venta #%d", venta.Numero),
				ReferenciaID:  &venta.ID,
			}
			if err := s.movimientoRepo.CreateTx(tx, &mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return ventaToResponse(&venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVentaNoEncontrada
	}
	return ventaToResponse(venta), nil
}

// Anular marks the sale anulada and restores every item's stock with inverse
// movimientos, all in one transaction. Already-cancelled sales are rejected.
func (s *ventaService) Anular(ctx context.Context, id uuid.UUID, motivo string) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVentaNoEncontrada
	}
	if venta.Estado == "anulada" {
		return nil, errors.New("la venta ya fue anulada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, "anulada"); err != nil {
			return err
		}
		for i := range venta.Items {
			item := &venta.Items[i]
			producto, err := s.productoRepo.FindByIDTx(tx, item.ProductoID)
			if err != nil {
				return err
			}
			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return err
			}
			mov := model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          "anulacion_venta",
				Cantidad:      item.Cantidad,
				StockAnterior: producto.StockActual,
				StockNuevo:    producto.StockActual + item.Cantidad,
				Motivo:        motivo,
				ReferenciaID:  &venta.ID,
			}
			if err := s.movimientoRepo.CreateTx(tx, &mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	venta.Estado = "anulada"
	return ventaToResponse(venta), nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for i := range v.Items {
		item := v.Items[i]
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:         v.ID.String(),
		Numero:     v.Numero,
		SucursalID: v.SucursalID.String(),
		UsuarioID:  v.UsuarioID.String(),
		Items:      items,
		Total:      v.Total,
		Estado:     v.Estado,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
}
