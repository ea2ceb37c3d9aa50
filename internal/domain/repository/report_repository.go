package repository

import (
	"context"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

// ReportRepository histórico de reportes generados (tabla reportes).
// No es autoritativo: los reportes siempre se recalculan desde las alertas.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	List(ctx context.Context, limit, offset int) ([]*entity.Report, int, error)
}
