package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Fakes en memoria compartidos por los tests del paquete.

type memInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func newMemInventoryRepo(items ...*entity.InventoryItem) *memInventoryRepo {
	m := make(map[string]*entity.InventoryItem)
	for _, it := range items {
		m[it.ID] = it
	}
	return &memInventoryRepo{items: m}
}

func (f *memInventoryRepo) Create(item *entity.InventoryItem) error {
	for _, it := range f.items {
		if it.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *memInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *memInventoryRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *memInventoryRepo) List(filter repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range f.items {
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.LowStock && !it.IsLowStock() {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(it.Name), s) &&
				!strings.Contains(strings.ToLower(it.SKU), s) &&
				!strings.Contains(strings.ToLower(it.Description), s) {
				continue
			}
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *memInventoryRepo) Update(item *entity.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *memInventoryRepo) Delete(id string) error {
	delete(f.items, id)
	return nil
}

func (f *memInventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return f.GetByID(id)
}

func (f *memInventoryRepo) AdjustQuantity(id string, delta int) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity += delta
	return nil
}

func (f *memInventoryRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	return f.List(repository.InventoryFilter{LowStock: true})
}

func (f *memInventoryRepo) Categories() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, it := range f.items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type memShipmentRepo struct {
	shipments map[string]*entity.Shipment
}

func newMemShipmentRepo(shipments ...*entity.Shipment) *memShipmentRepo {
	m := make(map[string]*entity.Shipment)
	for _, s := range shipments {
		m[s.ID] = s
	}
	return &memShipmentRepo{shipments: m}
}

func (f *memShipmentRepo) Create(shipment *entity.Shipment, items []entity.ShipmentItem) error {
	for _, s := range f.shipments {
		if s.TrackingNumber == shipment.TrackingNumber {
			return domain.ErrDuplicate
		}
	}
	shipment.Items = items
	f.shipments[shipment.ID] = shipment
	return nil
}

func (f *memShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Items = append([]entity.ShipmentItem(nil), s.Items...)
	return &cp, nil
}

func (f *memShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) {
	return f.GetByID(id)
}

func (f *memShipmentRepo) List(filter repository.ShipmentFilter) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, s := range f.shipments {
		if filter.Type != "" && s.Type != filter.Type {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *memShipmentRepo) ListSince(cutoff time.Time) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, s := range f.shipments {
		if s.CreatedAt.Before(cutoff) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *memShipmentRepo) Update(shipment *entity.Shipment) error {
	f.shipments[shipment.ID] = shipment
	return nil
}

func (f *memShipmentRepo) UpdateStatus(shipment *entity.Shipment) error {
	stored, ok := f.shipments[shipment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = shipment.Status
	stored.ActualArrival = shipment.ActualArrival
	return nil
}

func (f *memShipmentRepo) ReplaceItems(shipmentID string, items []entity.ShipmentItem) error {
	stored, ok := f.shipments[shipmentID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Items = items
	return nil
}

func (f *memShipmentRepo) Delete(id string) error {
	delete(f.shipments, id)
	return nil
}

// memTxRunner emula el commit/rollback del runner real: si fn falla, los repos
// vuelven al estado previo. txShipRepo, si no es nil, reemplaza al repo de
// envíos dentro de la transacción (útil para inyectar fallos).
type memTxRunner struct {
	invRepo    *memInventoryRepo
	shipRepo   *memShipmentRepo
	txShipRepo repository.ShipmentRepository
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.InventoryRepository, repository.ShipmentRepository) error) error {
	invSnapshot := make(map[string]*entity.InventoryItem, len(r.invRepo.items))
	for id, it := range r.invRepo.items {
		cp := *it
		invSnapshot[id] = &cp
	}
	shipSnapshot := make(map[string]*entity.Shipment, len(r.shipRepo.shipments))
	for id, s := range r.shipRepo.shipments {
		cp := *s
		cp.Items = append([]entity.ShipmentItem(nil), s.Items...)
		shipSnapshot[id] = &cp
	}

	ship := repository.ShipmentRepository(r.shipRepo)
	if r.txShipRepo != nil {
		ship = r.txShipRepo
	}
	if err := fn(r.invRepo, ship); err != nil {
		r.invRepo.items = invSnapshot
		r.shipRepo.shipments = shipSnapshot
		return err
	}
	return nil
}
