package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryPointDTO punto de la serie de cantidades de un artículo.
// ShipmentID es "CURRENT" en el punto final, que refleja la cantidad actual.
type HistoryPointDTO struct {
	Date       time.Time `json:"date"`
	Quantity   int       `json:"quantity"`
	ShipmentID string    `json:"shipment_id"`
	Type       string    `json:"type,omitempty"`
	Status     string    `json:"status,omitempty"`
}

// ItemHistoryResponse serie de cantidades de un artículo reconstruida
// a partir de sus envíos DELIVERED.
type ItemHistoryResponse struct {
	ItemID string            `json:"item_id"`
	Points []HistoryPointDTO `json:"points"`
}

// ValuePointDTO punto de la serie de valor del inventario.
type ValuePointDTO struct {
	Date       time.Time       `json:"date"`
	Value      decimal.Decimal `json:"value"`
	ShipmentID string          `json:"shipment_id"`
}

// ValueHistoryResponse serie de valor del inventario (últimos 30 días).
type ValueHistoryResponse struct {
	Points []ValuePointDTO `json:"points"`
}

// TopItemDTO artículo del widget Top-5 del dashboard.
type TopItemDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimum_stock"`
}

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
type DashboardSummaryDTO struct {
	IncomingLast30Days   int             `json:"incoming_last_30_days"`
	OutgoingLast30Days   int             `json:"outgoing_last_30_days"`
	OutstandingShipments int             `json:"outstanding_shipments"`
	TopItems             []TopItemDTO    `json:"top_items"`
	TotalInventoryValue  decimal.Decimal `json:"total_inventory_value"`
}

// InfoResponse respuesta de GET /api/info.
type InfoResponse struct {
	Version            string            `json:"version"`
	Status             string            `json:"status"`
	Timestamp          string            `json:"timestamp"`
	AvailableEndpoints map[string]string `json:"available_endpoints"`
	SystemStats        *SystemStatsDTO   `json:"system_stats,omitempty"`
}

// SystemStatsDTO estadísticas básicas para usuarios autenticados.
type SystemStatsDTO struct {
	TotalInventoryItems  int `json:"total_inventory_items"`
	OutstandingShipments int `json:"outstanding_shipments"`
}
