package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/shipping"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// maxArrivalWindow ventana máxima hacia el futuro para la llegada estimada.
const maxArrivalWindow = 365 * 24 * time.Hour

// ShipmentUseCase casos de uso CRUD para envíos y sus líneas.
// Las transiciones de estado NO pasan por aquí, sino por shipping.TransitionUseCase.
type ShipmentUseCase struct {
	repo     repository.ShipmentRepository
	invRepo  repository.InventoryRepository
	txRunner shipping.TxRunner
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(repo repository.ShipmentRepository, invRepo repository.InventoryRepository, txRunner shipping.TxRunner) *ShipmentUseCase {
	return &ShipmentUseCase{repo: repo, invRepo: invRepo, txRunner: txRunner}
}

// Create crea un envío con sus líneas dentro de una sola transacción:
// si falla la inserción de cualquier línea no queda encabezado huérfano.
// Rechaza: lista de líneas vacía, llegada estimada en el pasado o a más de un año,
// dirección o estado desconocidos, artículos inexistentes o repetidos, cantidades no positivas.
func (uc *ShipmentUseCase) Create(ctx context.Context, userID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.Type != entity.ShipmentIncoming && in.Type != entity.ShipmentOutgoing {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if in.TrackingNumber == "" || in.Carrier == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	if in.EstimatedArrival.Before(now) || in.EstimatedArrival.After(now.Add(maxArrivalWindow)) {
		return nil, domain.ErrInvalidInput
	}

	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	shipment := &entity.Shipment{
		ID:               uuid.New().String(),
		Type:             in.Type,
		Status:           status,
		TrackingNumber:   in.TrackingNumber,
		Carrier:          in.Carrier,
		EstimatedArrival: in.EstimatedArrival,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        userID,
		UpdatedBy:        userID,
	}
	for i := range items {
		items[i].ShipmentID = shipment.ID
	}
	if err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		shipRepo repository.ShipmentRepository,
	) error {
		return shipRepo.Create(shipment, items)
	}); err != nil {
		return nil, err
	}
	shipment.Items = items
	return toShipmentResponse(shipment), nil
}

// GetByID obtiene un envío con sus líneas. Devuelve ErrNotFound si no existe.
func (uc *ShipmentUseCase) GetByID(id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	return toShipmentResponse(shipment), nil
}

// List lista envíos (los más recientes primero) con filtros de dirección, estado y búsqueda.
func (uc *ShipmentUseCase) List(filter repository.ShipmentFilter) (*dto.ShipmentListResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	return toShipmentListResponse(list), nil
}

// ListRecent lista los envíos creados en los últimos 30 días.
func (uc *ShipmentUseCase) ListRecent() (*dto.ShipmentListResponse, error) {
	list, err := uc.repo.ListSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	return toShipmentListResponse(list), nil
}

// Update aplica una actualización parcial. Si in.Items no es nil, las líneas
// se reemplazan en bloque (borrar todas, insertar las nuevas), nunca se parchean.
// Encabezado y reemplazo de líneas se escriben en la misma transacción.
func (uc *ShipmentUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	shipment, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	if shipment.IsFinal() {
		return nil, domain.ErrFinalStatus
	}
	if in.Carrier != nil {
		shipment.Carrier = *in.Carrier
	}
	if in.TrackingNumber != nil {
		shipment.TrackingNumber = *in.TrackingNumber
	}
	if in.EstimatedArrival != nil {
		shipment.EstimatedArrival = *in.EstimatedArrival
	}
	shipment.UpdatedBy = userID
	shipment.UpdatedAt = time.Now()

	var items []entity.ShipmentItem
	if in.Items != nil {
		items, err = uc.buildItems(in.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].ShipmentID = shipment.ID
		}
	}

	if err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		shipRepo repository.ShipmentRepository,
	) error {
		if err := shipRepo.Update(shipment); err != nil {
			return err
		}
		if in.Items != nil {
			return shipRepo.ReplaceItems(shipment.ID, items)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if in.Items != nil {
		shipment.Items = items
	}
	return toShipmentResponse(shipment), nil
}

// Delete elimina un envío; sus líneas caen en cascada.
func (uc *ShipmentUseCase) Delete(id string) error {
	shipment, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if shipment == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// buildItems valida el conjunto de líneas y lo convierte a entidades.
// Exige al menos una línea, cantidades positivas, artículos existentes y sin repetir.
func (uc *ShipmentUseCase) buildItems(in []dto.ShipmentItemRequest) ([]entity.ShipmentItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in))
	items := make([]entity.ShipmentItem, 0, len(in))
	for _, line := range in {
		if line.ItemID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if seen[line.ItemID] {
			return nil, domain.ErrDuplicate
		}
		seen[line.ItemID] = true
		item, err := uc.invRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.ShipmentItem{
			ID:        uuid.New().String(),
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Round(2),
		})
	}
	return items, nil
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

func toShipmentListResponse(list []*entity.Shipment) *dto.ShipmentListResponse {
	shipments := make([]dto.ShipmentResponse, 0, len(list))
	for _, s := range list {
		shipments = append(shipments, *toShipmentResponse(s))
	}
	return &dto.ShipmentListResponse{Shipments: shipments}
}
