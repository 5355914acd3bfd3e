// Package reports contiene los casos de uso read-only: historiales,
// dashboard y el reporte de reposición. Ninguno cachea; todo se calcula
// bajo demanda contra los repositorios.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// currentPointID identificador del punto final de las series, que refleja el estado actual.
const currentPointID = "CURRENT"

// valueHistoryDays ventana de la serie de valor del inventario.
const valueHistoryDays = 30

// HistoryUseCase reconstruye series históricas reproduciendo los envíos DELIVERED.
type HistoryUseCase struct {
	reportRepo repository.ReportRepository
	invRepo    repository.InventoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(reportRepo repository.ReportRepository, invRepo repository.InventoryRepository) *HistoryUseCase {
	return &HistoryUseCase{reportRepo: reportRepo, invRepo: invRepo}
}

// ItemHistory devuelve la serie de cantidades de un artículo: partiendo de cero,
// cada envío DELIVERED que lo referencia (en orden de creación ascendente) suma o resta
// su cantidad según la dirección, y se añade un punto final "CURRENT" con la cantidad actual.
func (uc *HistoryUseCase) ItemHistory(ctx context.Context, itemID string) (*dto.ItemHistoryResponse, error) {
	item, err := uc.invRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	movements, err := uc.reportRepo.ListItemMovements(ctx, itemID)
	if err != nil {
		return nil, err
	}

	points := make([]dto.HistoryPointDTO, 0, len(movements)+1)
	running := 0
	for _, m := range movements {
		if m.Type == entity.ShipmentIncoming {
			running += m.Quantity
		} else {
			running -= m.Quantity
		}
		points = append(points, dto.HistoryPointDTO{
			Date:       m.CreatedAt,
			Quantity:   running,
			ShipmentID: m.ShipmentID,
			Type:       m.Type,
			Status:     m.Status,
		})
	}
	points = append(points, dto.HistoryPointDTO{
		Date:       time.Now(),
		Quantity:   item.Quantity,
		ShipmentID: currentPointID,
	})

	return &dto.ItemHistoryResponse{ItemID: itemID, Points: points}, nil
}

// ValueHistory devuelve la serie de valor del inventario de los últimos 30 días:
// partiendo de cero, cada línea de envío DELIVERED aporta quantity × unit_price
// (positivo para IN, negativo para OUT) agrupado por envío, y se añade un punto
// final "CURRENT" con el valor total actual (Σ quantity × unit_price del inventario).
func (uc *HistoryUseCase) ValueHistory(ctx context.Context) (*dto.ValueHistoryResponse, error) {
	since := time.Now().AddDate(0, 0, -valueHistoryDays)
	movements, err := uc.reportRepo.ListValueMovements(ctx, since)
	if err != nil {
		return nil, err
	}
	total, err := uc.reportRepo.TotalInventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]dto.ValuePointDTO, 0, len(movements)+1)
	running := decimal.Zero
	for i, m := range movements {
		delta := decimal.NewFromInt(int64(m.Quantity)).Mul(m.UnitPrice)
		if m.Type == entity.ShipmentOutgoing {
			delta = delta.Neg()
		}
		running = running.Add(delta)

		// Las líneas vienen ordenadas por envío: un punto por envío, no por línea
		if i+1 < len(movements) && movements[i+1].ShipmentID == m.ShipmentID {
			continue
		}
		points = append(points, dto.ValuePointDTO{
			Date:       m.CreatedAt,
			Value:      running.Round(2),
			ShipmentID: m.ShipmentID,
		})
	}
	points = append(points, dto.ValuePointDTO{
		Date:       time.Now(),
		Value:      total.Round(2),
		ShipmentID: currentPointID,
	})

	return &dto.ValueHistoryResponse{Points: points}, nil
}
