package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

const (
	dashboardTopItems = 5  // número de artículos en el widget del dashboard
	dashboardDays     = 30 // ventana de conteo de envíos
)

// DashboardUseCase genera el resumen del dashboard de la bodega.
//
// Fuente de datos: ReportRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. CountShipmentsByType(últimos 30 días) → Incoming/Outgoing
//  2. CountShipmentsOutstanding            → envíos no entregados
//  3. TopItemsByQuantity(top 5)            → TopItems
//  4. TotalInventoryValue                  → valor total actual
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	since := time.Now().AddDate(0, 0, -dashboardDays)

	type countsResult struct {
		incoming, outgoing int
		err                error
	}
	type outstandingResult struct {
		n   int
		err error
	}
	type topResult struct {
		items []*entity.InventoryItem
		err   error
	}
	type valueResult struct {
		total decimal.Decimal
		err   error
	}

	countsCh := make(chan countsResult, 1)
	outstandingCh := make(chan outstandingResult, 1)
	topCh := make(chan topResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		in, out, err := uc.reportRepo.CountShipmentsByType(ctx, since)
		countsCh <- countsResult{in, out, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountShipmentsOutstanding(ctx)
		outstandingCh <- outstandingResult{n, err}
	}()
	go func() {
		items, err := uc.reportRepo.TopItemsByQuantity(ctx, dashboardTopItems)
		topCh <- topResult{items, err}
	}()
	go func() {
		total, err := uc.reportRepo.TotalInventoryValue(ctx)
		valueCh <- valueResult{total, err}
	}()

	counts := <-countsCh
	outstanding := <-outstandingCh
	top := <-topCh
	value := <-valueCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de envíos: %w", counts.err)
	}
	if outstanding.err != nil {
		return nil, fmt.Errorf("dashboard: envíos pendientes: %w", outstanding.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top artículos: %w", top.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor del inventario: %w", value.err)
	}

	topItems := make([]dto.TopItemDTO, 0, len(top.items))
	for _, it := range top.items {
		topItems = append(topItems, dto.TopItemDTO{
			ID:           it.ID,
			Name:         it.Name,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			MinimumStock: it.MinimumStock,
		})
	}

	return &dto.DashboardSummaryDTO{
		IncomingLast30Days:   counts.incoming,
		OutgoingLast30Days:   counts.outgoing,
		OutstandingShipments: outstanding.n,
		TopItems:             topItems,
		TotalInventoryValue:  value.total.Round(2),
	}, nil
}
