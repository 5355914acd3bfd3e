package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ItemMovement es una línea de un envío DELIVERED que referencia un artículo,
// con los datos del envío necesarios para reconstruir el historial de cantidades.
type ItemMovement struct {
	ShipmentID string
	Type       string
	Status     string
	Quantity   int
	CreatedAt  time.Time
}

// ValueMovement es una línea de un envío DELIVERED con su precio unitario,
// usada para la serie de valor del inventario.
type ValueMovement struct {
	ShipmentID string
	Type       string
	Quantity   int
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
}

// ReportRepository define las consultas read-only para reportes y dashboard.
// Ninguna operación muta estado; todas son paralelizables.
type ReportRepository interface {
	// CountShipmentsByType cuenta envíos creados desde since, agrupados por dirección.
	CountShipmentsByType(ctx context.Context, since time.Time) (incoming, outgoing int, err error)
	// CountShipmentsOutstanding cuenta envíos cuyo estado no es DELIVERED.
	CountShipmentsOutstanding(ctx context.Context) (int, error)
	// TopItemsByQuantity devuelve los artículos con mayor cantidad en inventario.
	TopItemsByQuantity(ctx context.Context, limit int) ([]*entity.InventoryItem, error)
	// ListItemMovements devuelve las líneas de envíos DELIVERED que referencian el artículo,
	// en orden ascendente de creación del envío.
	ListItemMovements(ctx context.Context, itemID string) ([]ItemMovement, error)
	// ListValueMovements devuelve todas las líneas de envíos DELIVERED creados desde since,
	// en orden ascendente de creación del envío.
	ListValueMovements(ctx context.Context, since time.Time) ([]ValueMovement, error)
	// TotalInventoryValue calcula Σ quantity × unit_price sobre todo el inventario,
	// usando el precio unitario más reciente conocido por artículo (0 si nunca se envió).
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	// CountInventoryItems cuenta los artículos registrados.
	CountInventoryItems(ctx context.Context) (int, error)
}
