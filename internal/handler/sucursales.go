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

type SucursalesHandler struct{ svc service.SucursalService }

func NewSucursalesHandler(svc service.SucursalService) *SucursalesHandler {
	return &SucursalesHandler{svc: svc}
}

// Crear godoc
// @Summary Crear una sucursal
// @Description El responsable debe ser un usuario activo con rol comercial; queda asignado a la nueva sucursal.
// @Tags sucursales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearSucursalRequest true "Datos de la sucursal"
// @Success 201 {object} dto.SucursalResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/sucursales [post]
func (h *SucursalesHandler) Crear(c *gin.Context) {
	var req dto.CrearSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar sucursales
// @Tags sucursales
// @Produce json
// @Security BearerAuth
// @Param incluir_inactivas query bool false "Incluir sucursales desactivadas"
// @Success 200 {array} dto.SucursalResponse
// @Router /api/sucursales [get]
func (h *SucursalesHandler) Listar(c *gin.Context) {
	incluirInactivas := c.Query("incluir_inactivas") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar sucursales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de una sucursal con su saldo disponible
// @Description Los usuarios comerciales solo pueden consultar su propia sucursal.
// @Tags sucursales
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la sucursal"
// @Success 200 {object} dto.SucursalResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/sucursales/{id} [get]
func (h *SucursalesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolComercial {
		propia, ok := claims.SucursalUUID()
		if !ok || propia != id {
			c.JSON(http.StatusForbidden, apierror.New("Solo puede consultar su propia sucursal"))
			return
		}
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualizar una sucursal
// @Description Metadatos y, para administradores, corrección manual del saldo disponible.
// @Tags sucursales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la sucursal"
// @Param body body dto.ActualizarSucursalRequest true "Campos a actualizar"
// @Success 200 {object} dto.SucursalResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/sucursales/{id} [put]
func (h *SucursalesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarSucursalRequest
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

// Desactivar godoc
// @Summary Desactivar una sucursal (borrado lógico)
// @Tags sucursales
// @Security BearerAuth
// @Param id path string true "UUID de la sucursal"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/sucursales/{id} [delete]
func (h *SucursalesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
