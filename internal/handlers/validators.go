package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators teaches gin's validator about the status enums and
// makes it report JSON field names instead of Go field names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
		return models.PaymentStatus(fl.Field().String()).Valid()
	})
}

// badRequest answers a failed bind with a 400. Validation failures list
// one message per offending field.
func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}

func fieldMessage(fe validator.FieldError) string {
	// Namespace looks like "PlaceOrderInput.items[0].quantity"; drop the struct name.
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
	case "order_status":
		return fmt.Sprintf("%s must be one of pending, confirmed, out_for_delivery, delivered, cancelled", field)
	case "payment_status":
		return fmt.Sprintf("%s must be one of unpaid, paid, failed, refunded", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
