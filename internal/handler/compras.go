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

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar una compra a proveedor
// @Description Crea la compra, incrementa stock y registra los movimientos en una transacción.
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarCompraRequest true "Proveedor e items"
// @Success 201 {object} dto.CompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar compras
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param proveedor_id query string false "UUID del proveedor"
// @Param estado query string false "registrada | anulada | all"
// @Success 200 {object} dto.CompraListResponse
// @Router /api/compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
	var filter dto.CompraFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de una compra
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la compra"
// @Success 200 {object} dto.CompraResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/compras/{id} [get]
func (h *ComprasHandler) Obtener(c *gin.Context) {
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

// Actualizar godoc
// @Summary Actualizar los items de una compra
// @Description Reemplaza el conjunto de items: revierte el efecto de stock anterior y aplica el nuevo atómicamente.
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la compra"
// @Param body body dto.ActualizarCompraRequest true "Nuevo conjunto de items"
// @Success 200 {object} dto.CompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/compras/{id} [put]
func (h *ComprasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary Anular una compra
// @Description Anula la compra y revierte su efecto de stock.
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la compra"
// @Param body body dto.AnularCompraRequest true "Motivo de anulación"
// @Success 200 {object} dto.CompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/compras/{id} [delete]
func (h *ComprasHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AnularCompraRequest
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
