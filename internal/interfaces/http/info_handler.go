package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// InfoHandler expone metadatos del API. El endpoint es público; las
// estadísticas del sistema solo se incluyen con un token válido.
type InfoHandler struct {
	version    string
	reportRepo repository.ReportRepository
}

// NewInfoHandler construye el handler.
func NewInfoHandler(version string, reportRepo repository.ReportRepository) *InfoHandler {
	return &InfoHandler{version: version, reportRepo: reportRepo}
}

// Info godoc
// @Summary      Información del API
// @Description  Versión, endpoints disponibles y, para usuarios autenticados, estadísticas básicas.
// @Tags         info
// @Produce      json
// @Success      200  {object}  dto.InfoResponse
// @Router       /api/info [get]
func (h *InfoHandler) Info(c *fiber.Ctx) error {
	out := dto.InfoResponse{
		Version:   h.version,
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		AvailableEndpoints: map[string]string{
			"auth":      "/api/auth",
			"users":     "/api/users",
			"inventory": "/api/inventory",
			"shipments": "/api/shipments",
			"reports":   "/api/reports",
		},
	}
	if GetUserID(c) != "" {
		ctx := c.UserContext()
		items, err := h.reportRepo.CountInventoryItems(ctx)
		if err == nil {
			outstanding, err := h.reportRepo.CountShipmentsOutstanding(ctx)
			if err == nil {
				out.SystemStats = &dto.SystemStatsDTO{
					TotalInventoryItems:  items,
					OutstandingShipments: outstanding,
				}
			}
		}
	}
	return c.JSON(out)
}
