package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/reports"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// ReportHandler maneja históricos, dashboard y reportes PDF.
type ReportHandler struct {
	historyUC       *reports.HistoryUseCase
	dashboardUC     *reports.DashboardUseCase
	replenishmentUC *reports.ReplenishmentUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(historyUC *reports.HistoryUseCase, dashboardUC *reports.DashboardUseCase, replenishmentUC *reports.ReplenishmentUseCase) *ReportHandler {
	return &ReportHandler{
		historyUC:       historyUC,
		dashboardUC:     dashboardUC,
		replenishmentUC: replenishmentUC,
	}
}

// ItemHistory godoc
// @Summary      Histórico de cantidades de un artículo
// @Description  Reconstruye la serie a partir de los envíos DELIVERED, con un punto final "CURRENT" con la cantidad actual.
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventory/{id}/history [get]
func (h *ReportHandler) ItemHistory(c *fiber.Ctx) error {
	out, err := h.historyUC.ItemHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo calcular el histórico del artículo"})
	}
	return c.JSON(out)
}

// ValueHistory godoc
// @Summary      Histórico de valor del inventario
// @Description  Serie de valor total (cantidad × precio unitario) de los últimos 30 días, con un punto final "CURRENT".
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ValueHistoryResponse
// @Security     BearerAuth
// @Router       /api/reports/value_history [get]
func (h *ReportHandler) ValueHistory(c *fiber.Ctx) error {
	out, err := h.historyUC.ValueHistory(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo calcular el histórico de valor"})
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del dashboard
// @Description  Conteos de envíos de los últimos 30 días, envíos pendientes, top 5 de artículos y valor total del inventario.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Security     BearerAuth
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GetSummary(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo calcular el resumen del dashboard"})
	}
	return c.JSON(out)
}

// ReplenishmentPDF godoc
// @Summary      Reporte PDF de reposición
// @Description  Genera un PDF con los artículos en o bajo el stock mínimo y su cantidad sugerida de reposición.
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Security     BearerAuth
// @Router       /api/reports/replenishment.pdf [get]
func (h *ReportHandler) ReplenishmentPDF(c *fiber.Ctx) error {
	pdf, err := h.replenishmentUC.GeneratePDF(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el reporte de reposición"})
	}
	filename := fmt.Sprintf("reposicion_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
