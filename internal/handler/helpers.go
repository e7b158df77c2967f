package handler

import (
	"errors"
	"net/http"
	"reflect"

	"credipos/internal/apierror"
	"credipos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

var (
	errUsuarioSinSucursal = errors.New("el usuario comercial no tiene sucursal asignada")
	errSucursalRequerida  = errors.New("sucursal_id es requerido para este rol")
)

var notFoundErrs = []error{
	service.ErrSucursalNoEncontrada,
	service.ErrCreditoNoEncontrado,
	service.ErrClienteNoEncontrado,
	service.ErrProductoNoEncontrado,
	service.ErrProveedorNoEncontrado,
	service.ErrVentaNoEncontrada,
	service.ErrCompraNoEncontrada,
	service.ErrUsuarioNoEncontrado,
	service.ErrLiquidacionNoEncontrada,
}

// respondError maps service errors onto HTTP status codes: not-found
// sentinels become 404, anything else a 400 with the domain message.
func respondError(c *gin.Context, err error) {
	for _, sentinel := range notFoundErrs {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
