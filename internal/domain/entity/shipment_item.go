package entity

import "github.com/shopspring/decimal"

// ShipmentItem es una línea de un envío: referencia a un artículo del inventario
// con cantidad y precio unitario. El par (envío, artículo) es único.
type ShipmentItem struct {
	ID         string
	ShipmentID string
	ItemID     string
	Quantity   int
	UnitPrice  decimal.Decimal // 2 decimales
}
