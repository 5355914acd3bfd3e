package shipping

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de transiciones: o se mutan todas las cantidades
// y el estado del envío, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		shipRepo repository.ShipmentRepository,
	) error) error
}
