package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/shipping"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	apphttp "github.com/jhoicas/warehouse-api/internal/interfaces/http"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos para montar el handler sobre una app Fiber
// ──────────────────────────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func (f *stubInventoryRepo) Create(item *entity.InventoryItem) error { return nil }

func (f *stubInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *stubInventoryRepo) GetBySKU(string) (*entity.InventoryItem, error) { return nil, nil }
func (f *stubInventoryRepo) List(repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *stubInventoryRepo) Update(*entity.InventoryItem) error { return nil }
func (f *stubInventoryRepo) Delete(string) error { return nil }
func (f *stubInventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return f.GetByID(id)
}
func (f *stubInventoryRepo) AdjustQuantity(string, int) error { return nil }
func (f *stubInventoryRepo) ListLowStock() ([]*entity.InventoryItem, error) { return nil, nil }
func (f *stubInventoryRepo) Categories() ([]string, error) { return nil, nil }

type stubShipmentRepo struct {
	shipments map[string]*entity.Shipment
}

func (f *stubShipmentRepo) Create(shipment *entity.Shipment, items []entity.ShipmentItem) error {
	shipment.Items = items
	f.shipments[shipment.ID] = shipment
	return nil
}

func (f *stubShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *stubShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) { return f.GetByID(id) }
func (f *stubShipmentRepo) List(repository.ShipmentFilter) ([]*entity.Shipment, error) {
	return nil, nil
}
func (f *stubShipmentRepo) ListSince(time.Time) ([]*entity.Shipment, error) { return nil, nil }
func (f *stubShipmentRepo) Update(*entity.Shipment) error { return nil }
func (f *stubShipmentRepo) UpdateStatus(*entity.Shipment) error { return nil }
func (f *stubShipmentRepo) ReplaceItems(string, []entity.ShipmentItem) error { return nil }
func (f *stubShipmentRepo) Delete(string) error { return nil }

// passTxRunner ejecuta fn directamente sobre los repos dados, sin transacción.
type passTxRunner struct {
	invRepo  repository.InventoryRepository
	shipRepo repository.ShipmentRepository
}

func (r *passTxRunner) Run(_ context.Context, fn func(repository.InventoryRepository, repository.ShipmentRepository) error) error {
	return fn(r.invRepo, r.shipRepo)
}

func buildShipmentApp() *fiber.App {
	inv := &stubInventoryRepo{items: map[string]*entity.InventoryItem{
		"i-1": {ID: "i-1", Name: "Monitor", SKU: "ELEC-001", Quantity: 10, MinimumStock: 3},
	}}
	ship := &stubShipmentRepo{shipments: make(map[string]*entity.Shipment)}
	runner := &passTxRunner{invRepo: inv, shipRepo: ship}

	uc := usecase.NewShipmentUseCase(ship, inv, runner)
	transitionUC := shipping.NewTransitionUseCase(runner, ship, logger.New(logger.Config{Env: "test", Level: "error"}))
	h := apphttp.NewShipmentHandler(uc, transitionUC)

	app := fiber.New()
	app.Post("/api/shipments", h.Create)
	return app
}

func postShipment(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/shipments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestShipmentCreateHandler_EstadoDesconocido_Retorna400(t *testing.T) {
	app := buildShipmentApp()

	arrival := time.Now().AddDate(0, 0, 7).Format(time.RFC3339)
	body := `{
		"type": "IN",
		"status": "SHIPPED",
		"tracking_number": "TRK-400",
		"carrier": "Servientrega",
		"estimated_arrival": "` + arrival + `",
		"items": [{"item_id": "i-1", "quantity": 5, "unit_price": "10.50"}]
	}`
	resp := postShipment(t, app, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"un estado desconocido es un error del cliente, no del servidor")

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_STATUS")
}

func TestShipmentCreateHandler_OK_Retorna201(t *testing.T) {
	app := buildShipmentApp()

	arrival := time.Now().AddDate(0, 0, 7).Format(time.RFC3339)
	body := `{
		"type": "IN",
		"tracking_number": "TRK-201",
		"carrier": "Servientrega",
		"estimated_arrival": "` + arrival + `",
		"items": [{"item_id": "i-1", "quantity": 5, "unit_price": "10.50"}]
	}`
	resp := postShipment(t, app, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "PENDING", out["status"])
}
