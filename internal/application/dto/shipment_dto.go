package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentItemRequest línea de un envío en creación o reemplazo.
type ShipmentItemRequest struct {
	ItemID    string          `json:"item_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateShipmentRequest entrada para crear un envío con sus líneas.
type CreateShipmentRequest struct {
	Type             string                `json:"type" validate:"required,oneof=IN OUT"`
	Status           string                `json:"status"` // opcional; por defecto PENDING
	TrackingNumber   string                `json:"tracking_number" validate:"required,max=50"`
	Carrier          string                `json:"carrier" validate:"required,max=50"`
	EstimatedArrival time.Time             `json:"estimated_arrival" validate:"required"`
	Items            []ShipmentItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateShipmentRequest entrada para actualización parcial de un envío.
// Si Items no es nil, las líneas existentes se borran y se insertan las nuevas.
type UpdateShipmentRequest struct {
	Carrier          *string               `json:"carrier"`
	TrackingNumber   *string               `json:"tracking_number"`
	EstimatedArrival *time.Time            `json:"estimated_arrival"`
	Items            []ShipmentItemRequest `json:"items"`
}

// UpdateStatusRequest entrada de POST /api/shipments/:id/update_status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ShipmentItemResponse línea de un envío en respuestas.
type ShipmentItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ShipmentResponse salida de un envío con sus líneas.
type ShipmentResponse struct {
	ID               string                 `json:"id"`
	Type             string                 `json:"type"`
	Status           string                 `json:"status"`
	TrackingNumber   string                 `json:"tracking_number"`
	Carrier          string                 `json:"carrier"`
	EstimatedArrival time.Time              `json:"estimated_arrival"`
	ActualArrival    *time.Time             `json:"actual_arrival,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	CreatedBy        string                 `json:"created_by"`
	UpdatedBy        string                 `json:"updated_by"`
	Items            []ShipmentItemResponse `json:"items"`
}

// ShipmentListResponse lista de envíos.
type ShipmentListResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
}
