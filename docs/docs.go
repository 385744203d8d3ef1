// Package docs registra en swag la especificación OpenAPI servida en /docs.
// Regenerar swagger.json con: swag init -g cmd/api/main.go --outputTypes json
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

// SwaggerInfo metadatos de la API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Inventario Movimientos API",
	Description:      "Libro de movimientos de stock, catálogo de productos y bitácora de acciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
