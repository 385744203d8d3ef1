package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,max=50"`
	Name         string          `json:"name" validate:"required,max=150"`
	Description  string          `json:"description" validate:"max=1000"`
	CategoryID   *int64          `json:"category_id" validate:"omitempty,gt=0"`
	LocationID   *int64          `json:"location_id" validate:"omitempty,gt=0"`
	Stock        int             `json:"stock" validate:"gte=0,lte=2147483647"`
	StockMinimum *int            `json:"stock_minimum" validate:"omitempty,gte=0,lte=2147483647"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Image        string          `json:"image" validate:"max=255"`
	UserID       int64           `json:"user_id,omitempty"`
}

// UpdateProductRequest reemplaza todos los campos editables, incluido el stock.
// Version es opcional: si viene y no coincide con la fila actual la edición se rechaza (409).
type UpdateProductRequest struct {
	Code         string          `json:"code" validate:"required,max=50"`
	Name         string          `json:"name" validate:"required,max=150"`
	Description  string          `json:"description" validate:"max=1000"`
	CategoryID   *int64          `json:"category_id" validate:"omitempty,gt=0"`
	LocationID   *int64          `json:"location_id" validate:"omitempty,gt=0"`
	Stock        int             `json:"stock" validate:"gte=0,lte=2147483647"`
	StockMinimum *int            `json:"stock_minimum" validate:"omitempty,gte=0,lte=2147483647"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Image        string          `json:"image" validate:"max=255"`
	Version      *int            `json:"version" validate:"omitempty,gte=1"`
	UserID       int64           `json:"user_id,omitempty"`
}

// ProductFilterRequest filtros de GET /api/products.
type ProductFilterRequest struct {
	Search     string `query:"search" json:"search" validate:"max=100"`
	CategoryID int64  `query:"category_id" json:"category_id" validate:"gte=0"`
	LocationID int64  `query:"location_id" json:"location_id" validate:"gte=0"`
	LowStock   bool   `query:"low_stock" json:"low_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	LocationID   *int64          `json:"location_id"`
	LocationName string          `json:"location_name,omitempty"`
	Stock        int             `json:"stock"`
	StockMinimum int             `json:"stock_minimum"`
	LowStock     bool            `json:"low_stock"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image,omitempty"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
