package dto

import "time"

// CreateInventoryItemRequest entrada para crear un artículo de inventario.
type CreateInventoryItemRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	SKU          string `json:"sku" validate:"required,min=1,max=50"`
	Description  string `json:"description"`
	Quantity     int    `json:"quantity" validate:"min=0"`
	Location     string `json:"location"`
	Category     string `json:"category"`
	MinimumStock int    `json:"minimum_stock" validate:"min=0"`
}

// UpdateInventoryItemRequest entrada para actualización parcial de un artículo.
// Los campos nil no se tocan.
type UpdateInventoryItemRequest struct {
	Name         *string `json:"name"`
	SKU          *string `json:"sku"`
	Description  *string `json:"description"`
	Quantity     *int    `json:"quantity"`
	Location     *string `json:"location"`
	Category     *string `json:"category"`
	MinimumStock *int    `json:"minimum_stock"`
}

// InventoryItemResponse salida de un artículo de inventario.
type InventoryItemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Description   string    `json:"description"`
	Quantity      int       `json:"quantity"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	MinimumStock  int       `json:"minimum_stock"`
	LowStock      bool      `json:"low_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     string    `json:"created_by"`
	LastUpdatedBy string    `json:"last_updated_by"`
}

// InventoryListResponse lista de artículos.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
}

// CategoriesResponse categorías presentes en el inventario más las sugeridas.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
