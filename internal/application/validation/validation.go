// Package validation valida las estructuras de entrada de los casos de uso con
// go-playground/validator antes de cualquier escritura.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre del contrato (json o query), no el del campo Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})
	// decimal.Decimal se valida como número (min, gte, gt).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Error agrupa las reglas incumplidas por campo. Es un domain.ErrInvalidInput.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" ("+e.Fields[name]+")")
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput.Error(), strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Field construye un error de validación para un único campo.
func Field(name, rule string) error {
	return &Error{Fields: map[string]string{name: rule}}
}

// Struct valida v según sus tags `validate`.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &Error{Fields: fields}
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
