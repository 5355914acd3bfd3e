package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, name, sku, description, quantity, location, category, minimum_stock, created_at, updated_at, created_by, last_updated_by`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Description, item.Quantity, item.Location,
		item.Category, item.MinimumStock, item.CreatedAt, item.UpdatedAt, item.CreatedBy, item.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetBySKU obtiene un artículo por SKU.
func (r *InventoryRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+inventoryColumns+` FROM inventory_items WHERE sku = $1`, sku)
}

// GetForUpdate obtiene un artículo bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido con un Querier atado a una transacción.
func (r *InventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryRepo) getOne(query string, arg any) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.Name, &i.SKU, &i.Description, &i.Quantity, &i.Location,
		&i.Category, &i.MinimumStock, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy, &i.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &i, nil
}

// List lista artículos ordenados alfabéticamente, con filtros opcionales.
func (r *InventoryRepo) List(filter repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items`
	var conds []string
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.LowStock {
		conds = append(conds, "quantity <= minimum_stock")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name ASC"
	return r.list(query, args...)
}

// ListLowStock devuelve los artículos con quantity <= minimum_stock.
func (r *InventoryRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	return r.list(`SELECT ` + inventoryColumns + ` FROM inventory_items WHERE quantity <= minimum_stock ORDER BY name ASC`)
}

func (r *InventoryRepo) list(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.Name, &i.SKU, &i.Description, &i.Quantity, &i.Location,
			&i.Category, &i.MinimumStock, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy, &i.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza un artículo existente.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, sku = $3, description = $4, quantity = $5, location = $6,
		    category = $7, minimum_stock = $8, updated_at = $9, last_updated_by = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Description, item.Quantity, item.Location,
		item.Category, item.MinimumStock, item.UpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// AdjustQuantity aplica quantity += delta de forma atómica en una sola sentencia.
func (r *InventoryRepo) AdjustQuantity(id string, delta int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust inventory quantity: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID. Las líneas de envío caen por FK ON DELETE CASCADE.
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// Categories devuelve las categorías distintas presentes en el inventario.
func (r *InventoryRepo) Categories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM inventory_items WHERE category <> '' ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
