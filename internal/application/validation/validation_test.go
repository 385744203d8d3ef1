package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

type sample struct {
	Quantity int             `json:"quantity" validate:"gt=0"`
	Type     string          `json:"type" validate:"required,oneof=entrada salida"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	DateFrom string          `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct_ValidoNoRetornaError(t *testing.T) {
	err := validation.Struct(sample{Quantity: 1, Type: "entrada", Price: decimal.NewFromInt(10), DateFrom: "2024-01-31"})
	assert.NoError(t, err)
}

func TestStruct_ReportaCamposConNombreDelContrato(t *testing.T) {
	err := validation.Struct(sample{Quantity: 0, Type: "otro", Price: decimal.NewFromInt(-1), DateFrom: "31/01/2024"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "debe ser un ErrInvalidInput")

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "gt", verr.Fields["quantity"])
	assert.Equal(t, "oneof", verr.Fields["type"])
	assert.Equal(t, "gte", verr.Fields["price"])
	assert.Equal(t, "datetime", verr.Fields["date_from"])
}

func TestField_EsErrInvalidInput(t *testing.T) {
	err := validation.Field("date_to", "gtefield")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "date_to (gtefield)")
}
