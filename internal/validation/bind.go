package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Bind binds the JSON body into out. On failure it writes a 400 and
// returns the error so the handler can short-circuit.
func Bind(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}
	return nil
}

// Check validates out and writes a structured 400 on failure.
func Check(c *gin.Context, v *validatorv10.Validate, out interface{}) error {
	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": validationErrorsToMap(err),
		})
		return err
	}
	return nil
}

// BindAndValidate binds and validates in one step for handlers that do
// not normalize fields in between.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := Bind(c, out); err != nil {
		return err
	}
	return Check(c, v, out)
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
