package repository

import (
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ShipmentFilter filtros para el listado de envíos.
// Type y Status son igualdad exacta; Search busca substring en tracking number y carrier.
type ShipmentFilter struct {
	Type   string
	Status string
	Search string
}

// ShipmentRepository define el puerto de persistencia para Shipment y sus líneas.
// Los envíos siempre se leen con sus líneas; las líneas se reemplazan en bloque, nunca se parchean.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment, items []entity.ShipmentItem) error
	GetByID(id string) (*entity.Shipment, error)
	// GetForUpdate lee el envío bloqueando su fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Shipment, error)
	List(filter ShipmentFilter) ([]*entity.Shipment, error)
	ListSince(cutoff time.Time) ([]*entity.Shipment, error)
	Update(shipment *entity.Shipment) error
	// UpdateStatus persiste solo status, actual_arrival y la atribución de actualización.
	UpdateStatus(shipment *entity.Shipment) error
	// ReplaceItems borra todas las líneas del envío e inserta el nuevo conjunto.
	ReplaceItems(shipmentID string, items []entity.ShipmentItem) error
	Delete(id string) error
}
