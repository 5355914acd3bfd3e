package repository

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// InventoryFilter filtros para el listado de inventario.
// Search busca substring (case-insensitive) en nombre, SKU y descripción;
// Category es igualdad exacta; LowStock limita a quantity <= minimum_stock.
type InventoryFilter struct {
	Search   string
	Category string
	LowStock bool
}

// InventoryRepository define el puerto de persistencia para InventoryItem (DIP).
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	List(filter InventoryFilter) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(id string) error

	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar solo dentro de una transacción.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	// AdjustQuantity aplica quantity += delta de forma atómica. Uso exclusivo del motor de transiciones.
	AdjustQuantity(id string, delta int) error

	ListLowStock() ([]*entity.InventoryItem, error)
	Categories() ([]string, error)
}
