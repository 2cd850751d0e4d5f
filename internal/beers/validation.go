package beers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldViolation describe un campo inválido del payload.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

// ValidationError junta todas las violaciones de un payload.
// errors.Is(err, ErrorInvalidInput) es true para que el service lo trate como input inválido.
type ValidationError struct {
	Violations []FieldViolation
}

func (validationError *ValidationError) Error() string {
	parts := make([]string, 0, len(validationError.Violations))
	for _, violation := range validationError.Violations {
		parts = append(parts, violation.Field+" "+violation.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (validationError *ValidationError) Unwrap() error {
	return ErrorInvalidInput
}

// Validator aplica las reglas declarativas de BeerInput.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registra las reglas propias: notblank, beerstyle y decimal como número.
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Reportamos el nombre JSON del campo, que es lo que ve el cliente.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			number, _ := value.Float64()
			return number
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("beerstyle", func(fl validator.FieldLevel) bool {
		return Style(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return strings.TrimSpace(value) == value
	})

	return &Validator{validate: validate}
}

// maxPrice es el mayor valor que entra en numeric(10,2).
var maxPrice = decimal.RequireFromString("99999999.99")

// Validate devuelve *ValidationError con detalle por campo, o nil.
func (beerValidator *Validator) Validate(input BeerInput) error {
	var violations []FieldViolation

	if err := beerValidator.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate beer: %w", err)
		}
		for _, fieldError := range validationErrors {
			violations = append(violations, FieldViolation{
				Field:   fieldError.Field(),
				Message: violationMessage(fieldError),
			})
		}
	}

	// La escala y el máximo se chequean sobre el decimal: el float64 que ve el validator redondea.
	if input.Price != nil && !hasViolation(violations, "price") {
		if message := priceViolation(*input.Price); message != "" {
			violations = append(violations, FieldViolation{Field: "price", Message: message})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func priceViolation(price decimal.Decimal) string {
	switch {
	case !price.Equal(price.Round(2)):
		return "must have at most 2 decimal places"
	case price.GreaterThan(maxPrice):
		return "must be at most " + maxPrice.String()
	default:
		return ""
	}
}

func hasViolation(violations []FieldViolation, field string) bool {
	for _, violation := range violations {
		if violation.Field == field {
			return true
		}
	}
	return false
}

func violationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required", "notblank":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldError.Param())
	case "trimmed":
		return "must not have leading or trailing spaces"
	case "beerstyle":
		names := make([]string, 0, len(styles))
		for _, style := range styles {
			names = append(names, string(style))
		}
		return "must be one of: " + strings.Join(names, ", ")
	default:
		if fieldError.Param() != "" {
			return fmt.Sprintf("%s:%s", fieldError.Tag(), fieldError.Param())
		}
		return fieldError.Tag()
	}
}
