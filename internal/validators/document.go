package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/go-playground/validator/v10"
)

// Field names accepted by [DocumentValidator.Validate] for partial validation.
const (
	FieldEmail      = "Email"
	FieldName       = "Name"
	FieldPrice      = "Price"
	FieldProduct    = "Product"
	FieldBuyerEmail = "BuyerEmail"
	FieldBidPrice   = "BidPrice"
)

// DocumentValidator checks marketplace documents against the rules declared
// in their `validate` struct tags.
type DocumentValidator struct {
	validate *validator.Validate
}

// NewDocumentValidator returns a [Validator] for users, products, product
// updates and bids.
func NewDocumentValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, _, _ := strings.Cut(field.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
		return snakeCase(field.Name)
	})

	return &DocumentValidator{validate: v}
}

// Validate implements [Validator]. With fields given only those struct fields
// are checked.
func (d *DocumentValidator) Validate(ctx context.Context, v any, fields ...string) error {
	value := reflect.Indirect(reflect.ValueOf(v))
	if !value.IsValid() {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	switch value.Interface().(type) {
	case models.User, models.Product, models.ProductUpdate, models.Bid:
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	for _, field := range fields {
		if _, ok := value.Type().FieldByName(field); !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, value.Type().Name(), field)
		}
	}

	var err error
	if len(fields) > 0 {
		err = d.validate.StructPartialCtx(ctx, value.Interface(), fields...)
	} else {
		err = d.validate.StructCtx(ctx, value.Interface())
	}

	return describe(err)
}

// describe turns validator errors into a single ErrInvalidDocument message.
func describe(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		problem := fmt.Sprintf("%s failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag())
		if fieldErr.Param() != "" {
			problem = fmt.Sprintf("%s failed on the '%s=%s' rule", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param())
		}
		problems = append(problems, problem)
	}

	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
}

// snakeCase maps Go field names to document keys: BuyerEmail -> buyer_email, ID -> id.
func snakeCase(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
			prevLower = false
		} else {
			prevLower = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
