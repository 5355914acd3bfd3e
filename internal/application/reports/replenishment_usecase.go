package reports

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ReplenishmentLine línea del reporte de reposición: un artículo en stock bajo
// con la cantidad sugerida de pedido (2 × stock mínimo − cantidad actual).
type ReplenishmentLine struct {
	SKU          string
	Name         string
	Location     string
	Quantity     int
	MinimumStock int
	SuggestedQty int
}

// ReportPDFGenerator renderiza el reporte de reposición como PDF.
// Lo implementa infrastructure/pdf.MarotoReportGenerator.
type ReportPDFGenerator interface {
	GenerateReplenishmentPDF(ctx context.Context, generatedAt time.Time, lines []ReplenishmentLine) ([]byte, error)
}

// ReplenishmentUseCase genera el reporte de reposición en PDF
// a partir de los artículos con stock bajo.
type ReplenishmentUseCase struct {
	invRepo   repository.InventoryRepository
	generator ReportPDFGenerator
}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase(invRepo repository.InventoryRepository, generator ReportPDFGenerator) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{invRepo: invRepo, generator: generator}
}

// GeneratePDF arma las líneas del reporte y delega el render al generador.
func (uc *ReplenishmentUseCase) GeneratePDF(ctx context.Context) ([]byte, error) {
	items, err := uc.invRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	lines := make([]ReplenishmentLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, ReplenishmentLine{
			SKU:          it.SKU,
			Name:         it.Name,
			Location:     it.Location,
			Quantity:     it.Quantity,
			MinimumStock: it.MinimumStock,
			SuggestedQty: suggestedQty(it),
		})
	}
	return uc.generator.GenerateReplenishmentPDF(ctx, time.Now(), lines)
}

// suggestedQty propone reponer hasta el doble del stock mínimo.
func suggestedQty(it *entity.InventoryItem) int {
	qty := it.MinimumStock*2 - it.Quantity
	if qty < 0 {
		return 0
	}
	return qty
}
