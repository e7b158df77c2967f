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

type CreditosHandler struct{ svc service.CreditoService }

func NewCreditosHandler(svc service.CreditoService) *CreditosHandler {
	return &CreditosHandler{svc: svc}
}

// Simular godoc
// @Summary Simular un crédito
// @Description Calcula cuota, intereses, seguro de vida y costo total. Endpoint público: no requiere autenticación ni persiste nada.
// @Tags creditos
// @Accept json
// @Produce json
// @Param body body dto.SimulacionRequest true "Monto y plazo"
// @Success 200 {object} dto.SimulacionResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /api/creditos/simular [post]
func (h *CreditosHandler) Simular(c *gin.Context) {
	var req dto.SimulacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := service.SimularCredito(req.Monto, req.Plazo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidarCliente godoc
// @Summary Validar identidad del cliente
// @Description Corre la validación de identidad y, si aprueba, emite un código de verificación de un solo uso (expira en 15 minutos).
// @Tags creditos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ValidarClienteRequest true "Datos del cliente"
// @Success 200 {object} dto.ValidarClienteResponse
// @Router /api/creditos/validar-cliente [post]
func (h *CreditosHandler) ValidarCliente(c *gin.Context) {
	var req dto.ValidarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ValidarCliente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crear (aprobar) un crédito
// @Description Consume el código de verificación, crea/actualiza el cliente, registra el crédito aprobado e incrementa el saldo de la sucursal — todo en una transacción.
// @Tags creditos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCreditoRequest true "Solicitud de crédito"
// @Success 201 {object} dto.CreditoResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/creditos [post]
func (h *CreditosHandler) Crear(c *gin.Context) {
	var req dto.CrearCreditoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	sucursalID, err := resolverSucursal(claims, req.SucursalID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, sucursalID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar créditos
// @Description Lista paginada. Los usuarios comerciales solo ven los créditos de su propia sucursal.
// @Tags creditos
// @Produce json
// @Security BearerAuth
// @Param estado query string false "solicitado | en_validacion | aprobado | rechazado | finalizado | all"
// @Param sucursal_id query string false "UUID de sucursal (ignorado para comerciales)"
// @Success 200 {object} dto.CreditoListResponse
// @Router /api/creditos [get]
func (h *CreditosHandler) Listar(c *gin.Context) {
	var filter dto.CreditoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	// Branch scoping: comercial users are pinned to their own sucursal.
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolComercial {
		if id, ok := claims.SucursalUUID(); ok {
			filter.SucursalID = id.String()
		}
	}

	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar creditos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Detalle de un crédito con su saldo pendiente
// @Tags creditos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del crédito"
// @Success 200 {object} dto.CreditoResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/creditos/{id} [get]
func (h *CreditosHandler) Obtener(c *gin.Context) {
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
// @Summary Cambiar el estado de un crédito
// @Description Solo transiciones válidas del flujo: solicitado → en_validacion → aprobado/rechazado; aprobado → finalizado.
// @Tags creditos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del crédito"
// @Param body body dto.ActualizarEstadoCreditoRequest true "Nuevo estado"
// @Success 200 {object} dto.CreditoResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/creditos/{id}/estado [patch]
func (h *CreditosHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarEstadoCreditoRequest
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

// resolverSucursal picks the branch an operation runs against: comercial users
// always use their token's branch; admins may name one explicitly.
func resolverSucursal(claims *middleware.JWTClaims, explicit *string) (uuid.UUID, error) {
	if claims.Rol == model.RolComercial {
		id, ok := claims.SucursalUUID()
		if !ok {
			return uuid.Nil, errUsuarioSinSucursal
		}
		return id, nil
	}
	if explicit == nil {
		return uuid.Nil, errSucursalRequerida
	}
	return uuid.Parse(*explicit)
}
