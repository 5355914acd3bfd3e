package shipping

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// TransitionUseCase aplica cambios de estado a un envío.
//
// Máquina de estados sobre Shipment.Status: PENDING es el inicial;
// DELIVERED y CANCELLED son finales y no admiten más transiciones.
// Al pasar a DELIVERED se ajusta el inventario según la dirección del envío:
// IN suma las cantidades de cada línea, OUT las resta verificando stock suficiente.
// La entrega completa corre dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE): se validan todas las líneas antes de escribir nada.
type TransitionUseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentRepository
	log          *logger.Logger
}

// NewTransitionUseCase construye el caso de uso.
func NewTransitionUseCase(txRunner TxRunner, shipmentRepo repository.ShipmentRepository, log *logger.Logger) *TransitionUseCase {
	return &TransitionUseCase{txRunner: txRunner, shipmentRepo: shipmentRepo, log: log}
}

// UpdateStatus valida y aplica la transición de estado del envío.
//
// Errores:
//   - domain.ErrNotFound           → el envío no existe
//   - domain.ErrInvalidStatus      → el estado solicitado no es uno de los cuatro conocidos
//   - domain.ErrFinalStatus        → el envío ya está en DELIVERED o CANCELLED
//   - domain.ErrInsufficientStock  → alguna línea OUT supera el stock actual (nada se muta)
func (uc *TransitionUseCase) UpdateStatus(ctx context.Context, shipmentID, newStatus, userID string) (*dto.ShipmentResponse, error) {
	if !entity.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidStatus
	}

	shipment, err := uc.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	if shipment.IsFinal() {
		return nil, domain.ErrFinalStatus
	}

	now := time.Now()
	shipment.UpdatedBy = userID
	shipment.UpdatedAt = now

	if newStatus != entity.StatusDelivered {
		// PENDING, IN_TRANSIT y CANCELLED no tocan el inventario
		shipment.Status = newStatus
		if err := uc.shipmentRepo.UpdateStatus(shipment); err != nil {
			return nil, err
		}
		return toShipmentResponse(shipment), nil
	}

	shipment.Status = entity.StatusDelivered
	shipment.ActualArrival = &now

	if err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		shipRepo repository.ShipmentRepository,
	) error {
		return uc.deliver(invRepo, shipRepo, shipment)
	}); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("shipment_id", shipment.ID).
		Str("type", shipment.Type).
		Int("lines", len(shipment.Items)).
		Msg("envío entregado, inventario ajustado")

	return toShipmentResponse(shipment), nil
}

// deliver ajusta el inventario y persiste el nuevo estado, todo dentro de la misma transacción.
// Primero bloquea y valida todas las filas; solo después escribe.
func (uc *TransitionUseCase) deliver(
	invRepo repository.InventoryRepository,
	shipRepo repository.ShipmentRepository,
	shipment *entity.Shipment,
) error {
	// Releer el envío bajo bloqueo: la lectura inicial corre fuera de la
	// transacción y una entrega concurrente pudo haberla dejado obsoleta.
	current, err := shipRepo.GetForUpdate(shipment.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if current.IsFinal() {
		return domain.ErrFinalStatus
	}

	// Bloquear en orden estable de ItemID para no provocar deadlocks entre entregas concurrentes
	lines := make([]entity.ShipmentItem, len(current.Items))
	copy(lines, current.Items)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

	for _, line := range lines {
		item, err := invRepo.GetForUpdate(line.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if shipment.Type == entity.ShipmentOutgoing && item.Quantity < line.Quantity {
			return domain.ErrInsufficientStock
		}
	}

	for _, line := range lines {
		delta := line.Quantity
		if shipment.Type == entity.ShipmentOutgoing {
			delta = -line.Quantity
		}
		if err := invRepo.AdjustQuantity(line.ItemID, delta); err != nil {
			return err
		}
	}

	return shipRepo.UpdateStatus(shipment)
}

func toShipmentResponse(s *entity.Shipment) *dto.ShipmentResponse {
	items := make([]dto.ShipmentItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.ShipmentItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.ShipmentResponse{
		ID:               s.ID,
		Type:             s.Type,
		Status:           s.Status,
		TrackingNumber:   s.TrackingNumber,
		Carrier:          s.Carrier,
		EstimatedArrival: s.EstimatedArrival,
		ActualArrival:    s.ActualArrival,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		CreatedBy:        s.CreatedBy,
		UpdatedBy:        s.UpdatedBy,
		Items:            items,
	}
}
