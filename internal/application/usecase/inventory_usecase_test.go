package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

func inventoryItem(id, name, sku, category string, qty, minStock int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           id,
		Name:         name,
		SKU:          sku,
		Category:     category,
		Quantity:     qty,
		MinimumStock: minStock,
	}
}

func TestInventoryCreate_OK(t *testing.T) {
	repo := newMemInventoryRepo()
	uc := usecase.NewInventoryUseCase(repo)

	out, err := uc.Create("user-1", dto.CreateInventoryItemRequest{
		Name:         "Monitor 24\"",
		SKU:          "ELEC-001",
		Quantity:     10,
		MinimumStock: 3,
		Category:     "Electronics",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ELEC-001", out.SKU)
	assert.Equal(t, 10, out.Quantity)
	assert.False(t, out.LowStock)
	assert.Equal(t, "user-1", out.CreatedBy)
	assert.Equal(t, "user-1", out.LastUpdatedBy)
}

func TestInventoryCreate_Validaciones(t *testing.T) {
	uc := usecase.NewInventoryUseCase(newMemInventoryRepo())

	cases := []struct {
		name string
		in   dto.CreateInventoryItemRequest
	}{
		{"sin nombre", dto.CreateInventoryItemRequest{SKU: "X-1"}},
		{"sin SKU", dto.CreateInventoryItemRequest{Name: "Algo"}},
		{"cantidad negativa", dto.CreateInventoryItemRequest{Name: "Algo", SKU: "X-1", Quantity: -1}},
		{"stock mínimo negativo", dto.CreateInventoryItemRequest{Name: "Algo", SKU: "X-1", MinimumStock: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create("user-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestInventoryCreate_SKUDuplicado(t *testing.T) {
	repo := newMemInventoryRepo(inventoryItem("i-1", "Existente", "ELEC-001", "", 5, 1))
	uc := usecase.NewInventoryUseCase(repo)

	_, err := uc.Create("user-1", dto.CreateInventoryItemRequest{Name: "Nuevo", SKU: "ELEC-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInventoryGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewInventoryUseCase(newMemInventoryRepo())

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryUpdate_Parcial(t *testing.T) {
	repo := newMemInventoryRepo(inventoryItem("i-1", "Monitor", "ELEC-001", "Electronics", 10, 3))
	uc := usecase.NewInventoryUseCase(repo)

	newQty := 4
	out, err := uc.Update("i-1", "user-2", dto.UpdateInventoryItemRequest{Quantity: &newQty})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Quantity)
	assert.Equal(t, "Monitor", out.Name, "los campos no enviados no deben cambiar")
	assert.Equal(t, "user-2", out.LastUpdatedBy)
}

func TestInventoryUpdate_CantidadNegativa(t *testing.T) {
	repo := newMemInventoryRepo(inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3))
	uc := usecase.NewInventoryUseCase(repo)

	bad := -2
	_, err := uc.Update("i-1", "user-1", dto.UpdateInventoryItemRequest{Quantity: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryUpdate_SKUDeOtroArticulo(t *testing.T) {
	repo := newMemInventoryRepo(
		inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3),
		inventoryItem("i-2", "Teclado", "ELEC-002", "", 5, 2),
	)
	uc := usecase.NewInventoryUseCase(repo)

	taken := "ELEC-002"
	_, err := uc.Update("i-1", "user-1", dto.UpdateInventoryItemRequest{SKU: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInventoryList_FiltroLowStock(t *testing.T) {
	repo := newMemInventoryRepo(
		inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3),
		inventoryItem("i-2", "Teclado", "ELEC-002", "", 2, 5),
		inventoryItem("i-3", "Casco", "SAFE-001", "", 4, 4), // en el límite cuenta como bajo
	)
	uc := usecase.NewInventoryUseCase(repo)

	out, err := uc.List(repository.InventoryFilter{LowStock: true})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	for _, it := range out.Items {
		assert.True(t, it.LowStock)
	}
}

func TestInventoryCategories_UneExistentesYSugeridas(t *testing.T) {
	repo := newMemInventoryRepo(
		inventoryItem("i-1", "Monitor", "ELEC-001", "Electronics", 10, 3),
		inventoryItem("i-2", "Repuesto", "PART-001", "Spare Parts", 5, 1),
	)
	uc := usecase.NewInventoryUseCase(repo)

	out, err := uc.Categories()
	require.NoError(t, err)

	assert.Contains(t, out.Categories, "Spare Parts", "categoría en uso, no sugerida")
	assert.Contains(t, out.Categories, "Kitchen", "categoría sugerida, no en uso")
	// Electronics está en ambos conjuntos: debe aparecer una sola vez
	count := 0
	for _, c := range out.Categories {
		if c == "Electronics" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.IsIncreasing(t, out.Categories, "las categorías deben venir ordenadas")
}

func TestInventoryDelete_NoExiste(t *testing.T) {
	uc := usecase.NewInventoryUseCase(newMemInventoryRepo())

	err := uc.Delete("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
