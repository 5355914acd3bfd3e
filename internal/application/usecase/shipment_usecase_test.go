package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

func validCreateRequest() dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		Type:             entity.ShipmentIncoming,
		TrackingNumber:   "TRK-0001",
		Carrier:          "Servientrega",
		EstimatedArrival: time.Now().AddDate(0, 0, 7),
		Items: []dto.ShipmentItemRequest{
			{ItemID: "i-1", Quantity: 5, UnitPrice: decimal.NewFromFloat(12.345)},
		},
	}
}

func newShipmentUseCase(repo *memShipmentRepo, inv *memInventoryRepo) *usecase.ShipmentUseCase {
	return usecase.NewShipmentUseCase(repo, inv, &memTxRunner{invRepo: inv, shipRepo: repo})
}

func shipmentUseCaseWithItems() *usecase.ShipmentUseCase {
	inv := newMemInventoryRepo(
		inventoryItem("i-1", "Monitor", "ELEC-001", "Electronics", 10, 3),
		inventoryItem("i-2", "Teclado", "ELEC-002", "Electronics", 5, 2),
	)
	return newShipmentUseCase(newMemShipmentRepo(), inv)
}

func TestShipmentCreate_OK(t *testing.T) {
	uc := shipmentUseCaseWithItems()

	out, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.StatusPending, out.Status, "sin estado explícito arranca en PENDING")
	assert.Nil(t, out.ActualArrival)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "i-1", out.Items[0].ItemID)
	// El precio unitario se redondea a 2 decimales
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromFloat(12.35)),
		"unit_price debe redondearse a 2 decimales, se obtuvo %s", out.Items[0].UnitPrice)
}

func TestShipmentCreate_Validaciones(t *testing.T) {
	uc := shipmentUseCaseWithItems()

	cases := []struct {
		name    string
		mutate  func(*dto.CreateShipmentRequest)
		wantErr error
	}{
		{"dirección desconocida", func(r *dto.CreateShipmentRequest) { r.Type = "TRANSFER" }, domain.ErrInvalidInput},
		{"estado desconocido", func(r *dto.CreateShipmentRequest) { r.Status = "SHIPPED" }, domain.ErrInvalidStatus},
		{"sin tracking", func(r *dto.CreateShipmentRequest) { r.TrackingNumber = "" }, domain.ErrInvalidInput},
		{"sin carrier", func(r *dto.CreateShipmentRequest) { r.Carrier = "" }, domain.ErrInvalidInput},
		{"llegada en el pasado", func(r *dto.CreateShipmentRequest) { r.EstimatedArrival = time.Now().AddDate(0, 0, -1) }, domain.ErrInvalidInput},
		{"llegada a más de un año", func(r *dto.CreateShipmentRequest) { r.EstimatedArrival = time.Now().AddDate(1, 1, 0) }, domain.ErrInvalidInput},
		{"sin líneas", func(r *dto.CreateShipmentRequest) { r.Items = nil }, domain.ErrInvalidInput},
		{"cantidad cero", func(r *dto.CreateShipmentRequest) { r.Items[0].Quantity = 0 }, domain.ErrInvalidInput},
		{"artículo inexistente", func(r *dto.CreateShipmentRequest) { r.Items[0].ItemID = "no-existe" }, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateRequest()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), "user-1", in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestShipmentCreate_LineaRepetida(t *testing.T) {
	uc := shipmentUseCaseWithItems()

	in := validCreateRequest()
	in.Items = append(in.Items, dto.ShipmentItemRequest{ItemID: "i-1", Quantity: 2})

	_, err := uc.Create(context.Background(), "user-1", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestShipmentUpdate_ReemplazaLineas(t *testing.T) {
	inv := newMemInventoryRepo(
		inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3),
		inventoryItem("i-2", "Teclado", "ELEC-002", "", 5, 2),
	)
	repo := newMemShipmentRepo()
	uc := newShipmentUseCase(repo, inv)

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID, "user-2", dto.UpdateShipmentRequest{
		Items: []dto.ShipmentItemRequest{
			{ItemID: "i-2", Quantity: 3, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1, "las líneas se reemplazan en bloque")
	assert.Equal(t, "i-2", out.Items[0].ItemID)
	assert.Equal(t, "user-2", out.UpdatedBy)
}

func TestShipmentUpdate_SinLineas_ConservaLasExistentes(t *testing.T) {
	uc := shipmentUseCaseWithItems()

	created, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	carrier := "Coordinadora"
	out, err := uc.Update(context.Background(), created.ID, "user-1", dto.UpdateShipmentRequest{Carrier: &carrier})
	require.NoError(t, err)

	assert.Equal(t, "Coordinadora", out.Carrier)
	assert.Len(t, out.Items, 1, "Items nil no debe tocar las líneas")
}

// headerOnlyShipmentRepo escribe el encabezado y falla al insertar las líneas,
// como un INSERT de shipment_items rechazado a mitad de la transacción.
type headerOnlyShipmentRepo struct {
	*memShipmentRepo
}

func (f *headerOnlyShipmentRepo) Create(shipment *entity.Shipment, _ []entity.ShipmentItem) error {
	f.shipments[shipment.ID] = shipment
	return errors.New("insert shipment item: violación simulada")
}

// replaceFailShipmentRepo borra las líneas y falla antes de insertar las nuevas.
type replaceFailShipmentRepo struct {
	*memShipmentRepo
}

func (f *replaceFailShipmentRepo) ReplaceItems(shipmentID string, _ []entity.ShipmentItem) error {
	f.shipments[shipmentID].Items = nil
	return errors.New("insert shipment item: violación simulada")
}

func TestShipmentCreate_FalloEnLineas_NoDejaEncabezado(t *testing.T) {
	inv := newMemInventoryRepo(inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3))
	repo := newMemShipmentRepo()
	uc := usecase.NewShipmentUseCase(repo, inv, &memTxRunner{
		invRepo:    inv,
		shipRepo:   repo,
		txShipRepo: &headerOnlyShipmentRepo{repo},
	})

	_, err := uc.Create(context.Background(), "user-1", validCreateRequest())
	require.Error(t, err)

	assert.Empty(t, repo.shipments, "un fallo al insertar líneas debe revertir el encabezado")
}

func TestShipmentUpdate_FalloEnReemplazo_ConservaLineas(t *testing.T) {
	inv := newMemInventoryRepo(
		inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3),
		inventoryItem("i-2", "Teclado", "ELEC-002", "", 5, 2),
	)
	repo := newMemShipmentRepo()
	created, err := newShipmentUseCase(repo, inv).Create(context.Background(), "user-1", validCreateRequest())
	require.NoError(t, err)

	failing := usecase.NewShipmentUseCase(repo, inv, &memTxRunner{
		invRepo:    inv,
		shipRepo:   repo,
		txShipRepo: &replaceFailShipmentRepo{repo},
	})
	_, err = failing.Update(context.Background(), created.ID, "user-1", dto.UpdateShipmentRequest{
		Items: []dto.ShipmentItemRequest{
			{ItemID: "i-2", Quantity: 3, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.Error(t, err)

	stored, _ := repo.GetByID(created.ID)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1, "el reemplazo fallido debe revertirse completo")
	assert.Equal(t, "i-1", stored.Items[0].ItemID)
}

func TestShipmentUpdate_EstadoFinal_Rechazado(t *testing.T) {
	inv := newMemInventoryRepo(inventoryItem("i-1", "Monitor", "ELEC-001", "", 10, 3))
	now := time.Now()
	delivered := &entity.Shipment{
		ID:               "s-1",
		Type:             entity.ShipmentIncoming,
		Status:           entity.StatusDelivered,
		TrackingNumber:   "TRK-D",
		Carrier:          "Servientrega",
		EstimatedArrival: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	uc := newShipmentUseCase(newMemShipmentRepo(delivered), inv)

	carrier := "Otra"
	_, err := uc.Update(context.Background(), "s-1", "user-1", dto.UpdateShipmentRequest{Carrier: &carrier})
	assert.ErrorIs(t, err, domain.ErrFinalStatus)
}

func TestShipmentGetByID_NoExiste(t *testing.T) {
	uc := shipmentUseCaseWithItems()

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentListRecent_ExcluyeAntiguos(t *testing.T) {
	now := time.Now()
	oldShipment := &entity.Shipment{
		ID: "s-old", Type: entity.ShipmentIncoming, Status: entity.StatusDelivered,
		TrackingNumber: "TRK-OLD", Carrier: "X",
		EstimatedArrival: now, CreatedAt: now.AddDate(0, 0, -45), UpdatedAt: now,
	}
	recent := &entity.Shipment{
		ID: "s-new", Type: entity.ShipmentIncoming, Status: entity.StatusPending,
		TrackingNumber: "TRK-NEW", Carrier: "X",
		EstimatedArrival: now, CreatedAt: now.AddDate(0, 0, -3), UpdatedAt: now,
	}
	uc := newShipmentUseCase(newMemShipmentRepo(oldShipment, recent), newMemInventoryRepo())

	out, err := uc.ListRecent()
	require.NoError(t, err)

	require.Len(t, out.Shipments, 1)
	assert.Equal(t, "s-new", out.Shipments[0].ID)
}
