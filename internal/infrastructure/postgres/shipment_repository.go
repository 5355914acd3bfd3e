package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, type, status, tracking_number, carrier, estimated_arrival, actual_arrival, created_at, updated_at, created_by, updated_by`

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste el envío y sus líneas juntos.
func (r *ShipmentRepo) Create(shipment *entity.Shipment, items []entity.ShipmentItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		shipment.ID, shipment.Type, shipment.Status, shipment.TrackingNumber, shipment.Carrier,
		shipment.EstimatedArrival, shipment.ActualArrival, shipment.CreatedAt, shipment.UpdatedAt,
		shipment.CreatedBy, shipment.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return r.insertItems(ctx, items)
}

func (r *ShipmentRepo) insertItems(ctx context.Context, items []entity.ShipmentItem) error {
	for _, it := range items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO shipment_items (id, shipment_id, item_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.ShipmentID, it.ItemID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert shipment item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un envío con sus líneas.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(),
		`SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id).Scan(
		&s.ID, &s.Type, &s.Status, &s.TrackingNumber, &s.Carrier, &s.EstimatedArrival,
		&s.ActualArrival, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	if err := r.loadItems([]*entity.Shipment{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetForUpdate obtiene un envío con sus líneas bloqueando la fila de shipments.
func (r *ShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(),
		`SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id).Scan(
		&s.ID, &s.Type, &s.Status, &s.TrackingNumber, &s.Carrier, &s.EstimatedArrival,
		&s.ActualArrival, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment for update: %w", err)
	}
	if err := r.loadItems([]*entity.Shipment{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// List lista envíos (los más recientes primero) con filtros opcionales.
func (r *ShipmentRepo) List(filter repository.ShipmentFilter) ([]*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	var conds []string
	var args []any
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(tracking_number ILIKE $%d OR carrier ILIKE $%d)", n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	return r.listWithItems(query, args...)
}

// ListSince lista envíos creados desde cutoff (los más recientes primero).
func (r *ShipmentRepo) ListSince(cutoff time.Time) ([]*entity.Shipment, error) {
	return r.listWithItems(
		`SELECT `+shipmentColumns+` FROM shipments WHERE created_at >= $1 ORDER BY created_at DESC`,
		cutoff,
	)
}

func (r *ShipmentRepo) listWithItems(query string, args ...any) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.Type, &s.Status, &s.TrackingNumber, &s.Carrier,
			&s.EstimatedArrival, &s.ActualArrival, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todos los envíos dados en una sola consulta.
func (r *ShipmentRepo) loadItems(shipments []*entity.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Shipment, len(shipments))
	ids := make([]string, 0, len(shipments))
	for _, s := range shipments {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT id, shipment_id, item_id, quantity, unit_price
		 FROM shipment_items WHERE shipment_id = ANY($1) ORDER BY shipment_id, item_id`, ids)
	if err != nil {
		return fmt.Errorf("list shipment items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ShipmentItem
		if err := rows.Scan(&it.ID, &it.ShipmentID, &it.ItemID, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan shipment item: %w", err)
		}
		if s, ok := byID[it.ShipmentID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

// Update actualiza la cabecera del envío (no toca estado ni líneas).
func (r *ShipmentRepo) Update(shipment *entity.Shipment) error {
	query := `
		UPDATE shipments
		SET tracking_number = $2, carrier = $3, estimated_arrival = $4, updated_at = $5, updated_by = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.TrackingNumber, shipment.Carrier, shipment.EstimatedArrival,
		shipment.UpdatedAt, shipment.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update shipment: %w", err)
	}
	return nil
}

// UpdateStatus persiste solo estado, llegada real y atribución de actualización.
func (r *ShipmentRepo) UpdateStatus(shipment *entity.Shipment) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE shipments SET status = $2, actual_arrival = $3, updated_at = $4, updated_by = $5 WHERE id = $1`,
		shipment.ID, shipment.Status, shipment.ActualArrival, shipment.UpdatedAt, shipment.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	return nil
}

// ReplaceItems borra todas las líneas del envío e inserta el nuevo conjunto.
func (r *ShipmentRepo) ReplaceItems(shipmentID string, items []entity.ShipmentItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_items WHERE shipment_id = $1`, shipmentID); err != nil {
		return fmt.Errorf("delete shipment items: %w", err)
	}
	return r.insertItems(ctx, items)
}

// Delete elimina un envío; sus líneas caen por FK ON DELETE CASCADE.
func (r *ShipmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}
