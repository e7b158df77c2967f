package service

import (
	"context"
	"encoding/json"
	"time"

	"credipos/internal/dto"
	"credipos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Report results are cached in Redis for a short window; dashboards poll these
// endpoints aggressively and the aggregations scan whole tables.
const statsCacheTTL = 60 * time.Second

type StatsService interface {
	Ventas(ctx context.Context) (*dto.StatsVentasResponse, error)
	Deuda(ctx context.Context) (*dto.StatsDeudaResponse, error)
	Inventario(ctx context.Context) (*dto.StatsInventarioResponse, error)
}

type statsService struct {
	repo repository.StatsRepository
	rdb  *redis.Client // nil disables caching
}

func NewStatsService(repo repository.StatsRepository, rdb *redis.Client) StatsService {
	return &statsService{repo: repo, rdb: rdb}
}

func (s *statsService) Ventas(ctx context.Context) (*dto.StatsVentasResponse, error) {
	var cached dto.StatsVentasResponse
	if s.fromCache(ctx, "stats:ventas", &cached) {
		return &cached, nil
	}

	porMes, err := s.repo.VentasPorMes(ctx)
	if err != nil {
		return nil, err
	}
	porDia, err := s.repo.VentasPorDiaSemana(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProductos(ctx, 10)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsVentasResponse{PorMes: porMes, PorDiaSemana: porDia, TopProductos: top}
	s.toCache(ctx, "stats:ventas", resp)
	return resp, nil
}

func (s *statsService) Deuda(ctx context.Context) (*dto.StatsDeudaResponse, error) {
	var cached dto.StatsDeudaResponse
	if s.fromCache(ctx, "stats:deuda", &cached) {
		return &cached, nil
	}

	porEstado, err := s.repo.DeudaPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	porRango, err := s.repo.DeudaPorRango(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsDeudaResponse{PorEstado: porEstado, PorRango: porRango}
	s.toCache(ctx, "stats:deuda", resp)
	return resp, nil
}

func (s *statsService) Inventario(ctx context.Context) (*dto.StatsInventarioResponse, error) {
	var cached dto.StatsInventarioResponse
	if s.fromCache(ctx, "stats:inventario", &cached) {
		return &cached, nil
	}

	porCategoria, err := s.repo.InventarioPorCategoria(ctx)
	if err != nil {
		return nil, err
	}
	bajoStock, err := s.repo.ProductosBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.TotalProductos(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsInventarioResponse{
		PorCategoria:   porCategoria,
		BajoStock:      bajoStock,
		TotalProductos: total,
	}
	s.toCache(ctx, "stats:inventario", resp)
	return resp, nil
}

// fromCache / toCache degrade gracefully: a Redis failure means a direct DB
// query, never an error surfaced to the caller.

func (s *statsService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *statsService) toCache(ctx context.Context, key string, value any) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear el reporte")
	}
}
