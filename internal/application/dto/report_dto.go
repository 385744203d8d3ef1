package dto

import "github.com/shopspring/decimal"

// InventorySummaryResponse tarjetas del panel de reportes.
type InventorySummaryResponse struct {
	Products       int             `json:"products"`
	TotalStock     int             `json:"total_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStock       int             `json:"low_stock"`
}

// UploadResponse ruta pública del archivo subido.
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
