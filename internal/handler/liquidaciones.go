package handler

import (
	"net/http"

	"credipos/internal/apierror"
	"credipos/internal/dto"
	"credipos/internal/middleware"
	"credipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LiquidacionesHandler struct{ svc service.LiquidacionService }

func NewLiquidacionesHandler(svc service.LiquidacionService) *LiquidacionesHandler {
	return &LiquidacionesHandler{svc: svc}
}

// Calcular godoc
// @Summary Calcular liquidación de una sucursal
// @Description Calcula comisión (5%), IVA sobre comisión (19%) y monto a liquidar sobre el saldo disponible actual. No persiste nada.
// @Tags liquidaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CalcularLiquidacionRequest true "Sucursal"
// @Success 200 {object} dto.LiquidacionQuote
// @Failure 404 {object} apierror.APIError
// @Router /api/liquidaciones/calcular [post]
func (h *LiquidacionesHandler) Calcular(c *gin.Context) {
	var req dto.CalcularLiquidacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("sucursal_id invalido"))
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), sucursalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crear una liquidación
// @Description Recalcula las cifras en el servidor a partir del saldo actual, persiste la liquidación y deja el saldo de la sucursal en cero — una sola transacción.
// @Tags liquidaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearLiquidacionRequest true "Sucursal y cuenta destino"
// @Success 201 {object} dto.LiquidacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/liquidaciones [post]
func (h *LiquidacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearLiquidacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar liquidaciones
// @Tags liquidaciones
// @Produce json
// @Security BearerAuth
// @Param sucursal_id query string false "UUID de sucursal"
// @Param estado query string false "pendiente | procesada | pagada | all"
// @Success 200 {object} dto.LiquidacionListResponse
// @Router /api/liquidaciones [get]
func (h *LiquidacionesHandler) Listar(c *gin.Context) {
	var filter dto.LiquidacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar liquidaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de una liquidación
// @Tags liquidaciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la liquidación"
// @Success 200 {object} dto.LiquidacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/liquidaciones/{id} [get]
func (h *LiquidacionesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary Cambiar el estado de una liquidación
// @Description pendiente → procesada → pagada. Al pasar a procesada se encola la generación del comprobante PDF y su envío por correo.
// @Tags liquidaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la liquidación"
// @Param body body dto.ActualizarLiquidacionRequest true "Nuevo estado"
// @Success 200 {object} dto.LiquidacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/liquidaciones/{id}/estado [patch]
func (h *LiquidacionesHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarLiquidacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
