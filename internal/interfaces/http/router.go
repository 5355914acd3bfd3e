package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/reports"
	"github.com/jhoicas/warehouse-api/internal/application/shipping"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	InventoryUC     *usecase.InventoryUseCase
	ShipmentUC      *usecase.ShipmentUseCase
	TransitionUC    *shipping.TransitionUseCase
	HistoryUC       *reports.HistoryUseCase
	DashboardUC     *reports.DashboardUseCase
	ReplenishmentUC *reports.ReplenishmentUseCase
	ReportRepo      repository.ReportRepository
	JWTSecret       string
	Version         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Info (público; con token válido incluye estadísticas)
	infoHandler := NewInfoHandler(deps.Version, deps.ReportRepo)
	api.Get("/info", OptionalAuthMiddleware(deps.JWTSecret), infoHandler.Info)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuario autenticado (cualquier rol); debe registrarse antes de /users/:id
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Delete("/:id", userHandler.Delete)

	// Inventory (protegido)
	reportHandler := NewReportHandler(deps.HistoryUC, deps.DashboardUC, deps.ReplenishmentUC)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/low_stock", inventoryHandler.LowStock)
	inventory.Get("/categories", inventoryHandler.Categories)
	inventory.Get("/:id", inventoryHandler.Get)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)
	inventory.Get("/:id/history", reportHandler.ItemHistory)

	// Shipments (protegido)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, deps.TransitionUC)
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/recent", shipmentHandler.Recent)
	shipments.Get("/:id", shipmentHandler.Get)
	shipments.Put("/:id", shipmentHandler.Update)
	shipments.Delete("/:id", shipmentHandler.Delete)
	shipments.Post("/:id/update_status", shipmentHandler.UpdateStatus)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/value_history", reportHandler.ValueHistory)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/replenishment.pdf", reportHandler.ReplenishmentPDF)
}
