package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStockMinimum umbral de bajo stock cuando el producto no define uno.
const DefaultStockMinimum = 1

// MaxStock valor absoluto máximo de stock y de cantidad de un movimiento (columnas INTEGER).
const MaxStock = math.MaxInt32

// Product representa un producto del inventario.
// Stock es el contador autoritativo que el libro de movimientos ajusta; Version se incrementa
// en cada mutación de la fila y permite detectar ediciones concurrentes.
type Product struct {
	ID           int64
	Code         string // código corto del negocio; no se exige unicidad
	Name         string
	Description  string
	CategoryID   *int64 // referencia débil: nil si la categoría fue eliminada
	LocationID   *int64
	CategoryName string // solo lectura (join)
	LocationName string // solo lectura (join)
	Stock        int
	StockMinimum int
	Price        decimal.Decimal
	Image        string // ruta pública de la imagen subida (/uploads/...)
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock clasifica el producto como "bajo stock" (solo visualización, no se aplica).
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.StockMinimum
}
