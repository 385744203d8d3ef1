package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

func dtoFilter(from, to string, productID int64) dto.MovementFilterRequest {
	return dto.MovementFilterRequest{DateFrom: from, DateTo: to, ProductID: productID}
}

func TestParseMovementFilter_DateToIncluyeElDia(t *testing.T) {
	f, err := inventory.ParseMovementFilter(dtoFilter("2024-03-01", "2024-03-01", 0))
	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.Until)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), *f.From)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local), *f.Until)
}

func TestParseMovementFilter_Invalidos(t *testing.T) {
	cases := map[string]dto.MovementFilterRequest{
		"fecha mal formada": {DateFrom: "01/03/2024"},
		"rango invertido":   {DateFrom: "2024-03-05", DateTo: "2024-03-01"},
		"tipo desconocido":  {Type: "traslado"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := inventory.ParseMovementFilter(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParseMovementFilter_Vacio(t *testing.T) {
	f, err := inventory.ParseMovementFilter(dto.MovementFilterRequest{})
	require.NoError(t, err)
	assert.Nil(t, f.From)
	assert.Nil(t, f.Until)
	assert.Empty(t, f.Type)
}
