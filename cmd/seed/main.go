// seed puebla la base de datos con datos de demostración: un usuario admin,
// un operador, artículos de inventario y envíos de ejemplo (algunos entregados,
// para que el dashboard y los históricos tengan datos).
//
// Uso: go run ./cmd/seed
// Requiere el esquema ya aplicado (internal/infrastructure/postgres/migrations).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)

	now := time.Now()

	// Usuarios: admin y operador de demostración
	for _, u := range []struct {
		email, password, name, role string
	}{
		{"admin@warehouse.local", "admin12345", "Administrador", entity.RoleAdmin},
		{"operador@warehouse.local", "operador12345", "Operador Demo", entity.RoleOperador},
	} {
		existing, err := userRepo.FindByEmail(u.email)
		if err != nil {
			fail("buscar usuario", err)
		}
		if existing != nil {
			fmt.Printf("usuario %s ya existe, omitido\n", u.email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			fail("hashear password", err)
		}
		err = userRepo.Create(&entity.User{
			ID:           uuid.New().String(),
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			fail("crear usuario", err)
		}
		fmt.Printf("usuario creado: %s (%s)\n", u.email, u.role)
	}

	// Artículos de inventario
	items := []*entity.InventoryItem{
		{Name: "Monitor 24\"", SKU: "ELEC-001", Description: "Monitor LED 24 pulgadas", Quantity: 42, Location: "A-01-03", Category: "Electronics", MinimumStock: 10},
		{Name: "Teclado mecánico", SKU: "ELEC-002", Description: "Teclado mecánico retroiluminado", Quantity: 8, Location: "A-01-04", Category: "Electronics", MinimumStock: 15},
		{Name: "Silla ergonómica", SKU: "FURN-001", Description: "Silla de oficina con soporte lumbar", Quantity: 25, Location: "B-02-01", Category: "Furniture", MinimumStock: 5},
		{Name: "Resma papel carta", SKU: "OFFC-001", Description: "Resma 500 hojas 75g", Quantity: 120, Location: "C-01-01", Category: "Office Supplies", MinimumStock: 40},
		{Name: "Casco de seguridad", SKU: "SAFE-001", Description: "Casco industrial certificado", Quantity: 3, Location: "D-03-02", Category: "Safety", MinimumStock: 12},
	}
	for _, it := range items {
		existing, err := inventoryRepo.GetBySKU(it.SKU)
		if err != nil {
			fail("buscar artículo", err)
		}
		if existing != nil {
			fmt.Printf("artículo %s ya existe, omitido\n", it.SKU)
			it.ID = existing.ID
			continue
		}
		it.ID = uuid.New().String()
		it.CreatedAt = now
		it.UpdatedAt = now
		if err := inventoryRepo.Create(it); err != nil {
			fail("crear artículo", err)
		}
		fmt.Printf("artículo creado: %s (%s)\n", it.Name, it.SKU)
	}

	// Envíos: dos entregados (alimentan históricos y dashboard), uno en tránsito
	// y uno pendiente. Las cantidades actuales de arriba ya reflejan las entregas.
	delivered := now.AddDate(0, 0, -10)
	shipments := []struct {
		shipment entity.Shipment
		lines    []entity.ShipmentItem
	}{
		{
			shipment: entity.Shipment{
				Type: entity.ShipmentIncoming, Status: entity.StatusDelivered,
				TrackingNumber: "TRK-IN-0001", Carrier: "Servientrega",
				EstimatedArrival: delivered, ActualArrival: &delivered,
				CreatedAt: now.AddDate(0, 0, -14), UpdatedAt: delivered,
			},
			lines: []entity.ShipmentItem{
				{Quantity: 20, UnitPrice: decimal.NewFromFloat(189.90)},
				{Quantity: 50, UnitPrice: decimal.NewFromFloat(4.50)},
			},
		},
		{
			shipment: entity.Shipment{
				Type: entity.ShipmentOutgoing, Status: entity.StatusDelivered,
				TrackingNumber: "TRK-OUT-0001", Carrier: "Coordinadora",
				EstimatedArrival: now.AddDate(0, 0, -5), ActualArrival: &delivered,
				CreatedAt: now.AddDate(0, 0, -12), UpdatedAt: delivered,
			},
			lines: []entity.ShipmentItem{
				{Quantity: 6, UnitPrice: decimal.NewFromFloat(189.90)},
			},
		},
		{
			shipment: entity.Shipment{
				Type: entity.ShipmentIncoming, Status: entity.StatusInTransit,
				TrackingNumber: "TRK-IN-0002", Carrier: "Interrapidísimo",
				EstimatedArrival: now.AddDate(0, 0, 3),
				CreatedAt:        now.AddDate(0, 0, -2), UpdatedAt: now.AddDate(0, 0, -2),
			},
			lines: []entity.ShipmentItem{
				{Quantity: 15, UnitPrice: decimal.NewFromFloat(32.00)},
			},
		},
		{
			shipment: entity.Shipment{
				Type: entity.ShipmentOutgoing, Status: entity.StatusPending,
				TrackingNumber: "TRK-OUT-0002", Carrier: "Envia",
				EstimatedArrival: now.AddDate(0, 0, 7),
				CreatedAt:        now, UpdatedAt: now,
			},
			lines: []entity.ShipmentItem{
				{Quantity: 2, UnitPrice: decimal.NewFromFloat(145.00)},
			},
		},
	}
	for i, s := range shipments {
		s.shipment.ID = uuid.New().String()
		lines := make([]entity.ShipmentItem, len(s.lines))
		for j, l := range s.lines {
			l.ID = uuid.New().String()
			l.ShipmentID = s.shipment.ID
			// Distribuir las líneas sobre los artículos sembrados
			l.ItemID = items[(i+j)%len(items)].ID
			lines[j] = l
		}
		if err := shipmentRepo.Create(&s.shipment, lines); err != nil {
			fmt.Printf("envío %s no creado (¿ya existe?): %v\n", s.shipment.TrackingNumber, err)
			continue
		}
		fmt.Printf("envío creado: %s (%s, %s)\n", s.shipment.TrackingNumber, s.shipment.Type, s.shipment.Status)
	}

	fmt.Println("seed completado")
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
