package handler

import (
	"net/http"

	"credipos/internal/apierror"
	"credipos/internal/dto"
	"credipos/internal/middleware"
	"credipos/internal/model"
	"credipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Registrar godoc
// @Summary Registrar una nueva venta
// @Description Crea la venta, descuenta stock y registra los movimientos — todo en una transacción. Los precios salen del catálogo, nunca del request.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success 201 {object} dto.VentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	sucursalID, ok := claims.SucursalUUID()
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New(errUsuarioSinSucursal.Error()))
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, sucursalID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar ventas
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD"
// @Param estado query string false "completada | anulada | all"
// @Success 200 {object} dto.VentaListResponse
// @Router /api/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolComercial {
		if id, ok := claims.SucursalUUID(); ok {
			filter.SucursalID = id.String()
		}
	}

	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de una venta
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la venta"
// @Success 200 {object} dto.VentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/ventas/{id} [get]
func (h *VentasHandler) Obtener(c *gin.Context) {
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

// Anular godoc
// @Summary Anular venta
// @Description Anula una venta y restaura el stock con movimientos inversos.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la venta"
// @Param body body dto.AnularVentaRequest true "Motivo de anulación"
// @Success 200 {object} dto.VentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/ventas/{id} [delete]
func (h *VentasHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AnularVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Anular(c.Request.Context(), id, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
