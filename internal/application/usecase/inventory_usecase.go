package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Categorías sugeridas que se unen a las presentes en el inventario.
var suggestedCategories = []string{"Electronics", "Furniture", "Office Supplies", "Kitchen", "Safety"}

// InventoryUseCase casos de uso CRUD para artículos de inventario.
// Quantity solo cambia aquí por edición directa; las entregas pasan por el motor de transiciones.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Create crea un artículo. Rechaza cantidades o stock mínimo negativos y SKU duplicado.
func (uc *InventoryUseCase) Create(userID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          in.Name,
		SKU:           in.SKU,
		Description:   in.Description,
		Quantity:      in.Quantity,
		Location:      in.Location,
		Category:      in.Category,
		MinimumStock:  in.MinimumStock,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedBy: userID,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// GetByID obtiene un artículo por ID. Devuelve ErrNotFound si no existe.
func (uc *InventoryUseCase) GetByID(id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryItemResponse(item), nil
}

// List lista artículos ordenados por nombre, con filtros de búsqueda, categoría y stock bajo.
func (uc *InventoryUseCase) List(filter repository.InventoryFilter) (*dto.InventoryListResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	return toInventoryListResponse(list), nil
}

// Update aplica una actualización parcial y estampa al último editor.
func (uc *InventoryUseCase) Update(id, userID string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		existing, _ := uc.repo.GetBySKU(*in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		item.SKU = *in.SKU
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinimumStock = *in.MinimumStock
	}
	item.LastUpdatedBy = userID
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// Delete elimina un artículo; las líneas de envío que lo referencian caen en cascada.
func (uc *InventoryUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ListLowStock devuelve los artículos con quantity <= minimum_stock.
func (uc *InventoryUseCase) ListLowStock() (*dto.InventoryListResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return toInventoryListResponse(list), nil
}

// Categories devuelve las categorías distintas del inventario unidas con las sugeridas,
// sin duplicados y en orden alfabético.
func (uc *InventoryUseCase) Categories() (*dto.CategoriesResponse, error) {
	existing, err := uc.repo.Categories()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(suggestedCategories))
	for _, c := range existing {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range suggestedCategories {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return &dto.CategoriesResponse{Categories: out}, nil
}

func toInventoryItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		SKU:           i.SKU,
		Description:   i.Description,
		Quantity:      i.Quantity,
		Location:      i.Location,
		Category:      i.Category,
		MinimumStock:  i.MinimumStock,
		LowStock:      i.IsLowStock(),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		CreatedBy:     i.CreatedBy,
		LastUpdatedBy: i.LastUpdatedBy,
	}
}

func toInventoryListResponse(list []*entity.InventoryItem) *dto.InventoryListResponse {
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInventoryItemResponse(i))
	}
	return &dto.InventoryListResponse{Items: items}
}
