package entity

import "time"

// Direcciones de un envío.
const (
	ShipmentIncoming = "IN"
	ShipmentOutgoing = "OUT"
)

// Estados de un envío. PENDING es el inicial; DELIVERED y CANCELLED son finales.
const (
	StatusPending   = "PENDING"
	StatusInTransit = "IN_TRANSIT"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

// ValidStatus verifica que s sea uno de los cuatro estados conocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Shipment representa un envío entrante o saliente de la bodega.
// ActualArrival solo se asigna al pasar a DELIVERED.
type Shipment struct {
	ID               string
	Type             string // IN | OUT
	Status           string // PENDING | IN_TRANSIT | DELIVERED | CANCELLED
	TrackingNumber   string // único
	Carrier          string
	EstimatedArrival time.Time
	ActualArrival    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatedBy        string
	UpdatedBy        string
	Items            []ShipmentItem
}

// IsFinal indica si el envío está en un estado del que no se permite salir.
func (s *Shipment) IsFinal() bool {
	return s.Status == StatusDelivered || s.Status == StatusCancelled
}
