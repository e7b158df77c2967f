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

type AbonosHandler struct{ svc service.AbonoService }

func NewAbonosHandler(svc service.AbonoService) *AbonosHandler { return &AbonosHandler{svc: svc} }

// Registrar godoc
// @Summary Registrar un abono
// @Description Registra un pago contra un crédito. Si la sucursal que recibe el pago no es la emisora del crédito, su saldo se debita por el mismo monto en la misma transacción.
// @Tags abonos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarAbonoRequest true "Crédito y monto"
// @Success 201 {object} dto.AbonoResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/abonos [post]
func (h *AbonosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarAbonoRequest
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
// @Summary Listar abonos
// @Tags abonos
// @Produce json
// @Security BearerAuth
// @Param credito_id query string false "UUID del crédito"
// @Param sucursal_id query string false "UUID de sucursal (ignorado para comerciales)"
// @Success 200 {object} dto.AbonoListResponse
// @Router /api/abonos [get]
func (h *AbonosHandler) Listar(c *gin.Context) {
	var filter dto.AbonoFilter
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
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar abonos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
