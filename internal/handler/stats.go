package handler

import (
	"net/http"

	"credipos/internal/apierror"
	"credipos/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

// Ventas godoc
// @Summary Estadísticas de ventas
// @Description Ventas por mes, por día de la semana (ISO: 1 = lunes) y top de productos. Cacheado 60s.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsVentasResponse
// @Router /api/stats/ventas [get]
func (h *StatsHandler) Ventas(c *gin.Context) {
	resp, err := h.svc.Ventas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas de ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deuda godoc
// @Summary Estadísticas de cartera
// @Description Créditos agrupados por estado y por rango de monto. Cacheado 60s.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsDeudaResponse
// @Router /api/stats/deuda [get]
func (h *StatsHandler) Deuda(c *gin.Context) {
	resp, err := h.svc.Deuda(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas de cartera"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inventario godoc
// @Summary Estadísticas de inventario
// @Description Valoración por categoría y conteo de productos bajo stock mínimo. Cacheado 60s.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsInventarioResponse
// @Router /api/stats/inventario [get]
func (h *StatsHandler) Inventario(c *gin.Context) {
	resp, err := h.svc.Inventario(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas de inventario"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
