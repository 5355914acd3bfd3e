package entity

import "time"

// InventoryItem representa un artículo del inventario de la bodega.
// Quantity solo la mutan el motor de transiciones (entregas) o una edición directa;
// nunca puede quedar negativa.
type InventoryItem struct {
	ID            string
	Name          string
	SKU           string // código único
	Description   string
	Quantity      int
	Location      string
	Category      string
	MinimumStock  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string // ID del usuario creador
	LastUpdatedBy string
}

// IsLowStock indica si el artículo está en o por debajo de su stock mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinimumStock
}
