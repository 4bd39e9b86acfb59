package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/model"
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

// responderError maps a service error kind to its HTTP status and writes the
// standard envelope.
func responderError(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.New(err.Error()))
}

// fechaParam parses a YYYY-MM-DD path or query value.
func fechaParam(c *gin.Context, raw string) (model.Fecha, bool) {
	f, err := model.ParseFecha(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida: "+raw))
		return model.Fecha{}, false
	}
	return f, true
}

// fechaQueryOpcional parses an optional YYYY-MM-DD query value; absent is nil.
func fechaQueryOpcional(c *gin.Context, name string) (*model.Fecha, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	f, ok := fechaParam(c, raw)
	if !ok {
		return nil, false
	}
	return &f, true
}
