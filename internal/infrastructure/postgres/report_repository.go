package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only para reportes y dashboard sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CountShipmentsByType cuenta envíos creados desde since, agrupados por dirección.
func (r *ReportRepo) CountShipmentsByType(ctx context.Context, since time.Time) (incoming, outgoing int, err error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE type = $2),
		       COUNT(*) FILTER (WHERE type = $3)
		FROM shipments WHERE created_at >= $1`
	err = r.q.QueryRow(ctx, query, since, entity.ShipmentIncoming, entity.ShipmentOutgoing).
		Scan(&incoming, &outgoing)
	if err != nil {
		return 0, 0, fmt.Errorf("count shipments by type: %w", err)
	}
	return incoming, outgoing, nil
}

// CountShipmentsOutstanding cuenta envíos cuyo estado no es DELIVERED.
func (r *ReportRepo) CountShipmentsOutstanding(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM shipments WHERE status <> $1`, entity.StatusDelivered).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count outstanding shipments: %w", err)
	}
	return n, nil
}

// TopItemsByQuantity devuelve los artículos con mayor cantidad en inventario.
func (r *ReportRepo) TopItemsByQuantity(ctx context.Context, limit int) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_items ORDER BY quantity DESC, name ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.Name, &i.SKU, &i.Description, &i.Quantity, &i.Location,
			&i.Category, &i.MinimumStock, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy, &i.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// ListItemMovements devuelve las líneas de envíos DELIVERED que referencian el artículo,
// en orden ascendente de creación del envío.
func (r *ReportRepo) ListItemMovements(ctx context.Context, itemID string) ([]repository.ItemMovement, error) {
	query := `
		SELECT s.id, s.type, s.status, si.quantity, s.created_at
		FROM shipment_items si
		JOIN shipments s ON s.id = si.shipment_id
		WHERE si.item_id = $1 AND s.status = $2
		ORDER BY s.created_at ASC, s.id`
	rows, err := r.q.Query(ctx, query, itemID, entity.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("item movements: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemMovement
	for rows.Next() {
		var m repository.ItemMovement
		if err := rows.Scan(&m.ShipmentID, &m.Type, &m.Status, &m.Quantity, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListValueMovements devuelve todas las líneas de envíos DELIVERED creados desde since,
// ordenadas por creación del envío (las líneas de un mismo envío quedan contiguas).
func (r *ReportRepo) ListValueMovements(ctx context.Context, since time.Time) ([]repository.ValueMovement, error) {
	query := `
		SELECT s.id, s.type, si.quantity, si.unit_price, s.created_at
		FROM shipment_items si
		JOIN shipments s ON s.id = si.shipment_id
		WHERE s.status = $2 AND s.created_at >= $1
		ORDER BY s.created_at ASC, s.id`
	rows, err := r.q.Query(ctx, query, since, entity.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("value movements: %w", err)
	}
	defer rows.Close()
	var list []repository.ValueMovement
	for rows.Next() {
		var m repository.ValueMovement
		if err := rows.Scan(&m.ShipmentID, &m.Type, &m.Quantity, &m.UnitPrice, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan value movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// TotalInventoryValue calcula Σ quantity × unit_price sobre todo el inventario.
// El precio unitario de cada artículo es el de su línea de envío más reciente (0 si nunca se envió).
func (r *ReportRepo) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(i.quantity * COALESCE(p.unit_price, 0)), 0)
		FROM inventory_items i
		LEFT JOIN LATERAL (
			SELECT si.unit_price
			FROM shipment_items si
			JOIN shipments s ON s.id = si.shipment_id
			WHERE si.item_id = i.id
			ORDER BY s.created_at DESC
			LIMIT 1
		) p ON true`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total inventory value: %w", err)
	}
	return total, nil
}

// CountInventoryItems cuenta los artículos registrados.
func (r *ReportRepo) CountInventoryItems(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return n, nil
}
