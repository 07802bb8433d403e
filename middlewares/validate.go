package middlewares

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator builds the shared validator and teaches it to report field
// names from the json tag, so validation errors match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindAndValidate parses the request body into dst and validates it.
// Parse failures become 400s; validation failures surface as
// validator.ValidationErrors for the error handler to format.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// Slices/arrays are not handled here; validate elements individually.
	return validate.Struct(dst)
}

// ValidateStruct validates a struct value using the shared validator.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
