package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// reportData forma de datos_json. Las cantidades viajan como string para no perder precisión.
type reportData struct {
	Statistics struct {
		SavedProducts  int             `json:"productos_salvados"`
		MoneySaved     decimal.Decimal `json:"dinero_ahorrado"`
		WasteAvoidedKg decimal.Decimal `json:"kg_desperdicio_evitado"`
	} `json:"estadisticas"`
	Recommendations []reportRecommendation `json:"recomendaciones"`
}

type reportRecommendation struct {
	Type    string `json:"tipo"`
	Message string `json:"mensaje"`
	Action  string `json:"accion"`
}

// ReportRepo histórico de reportes sobre la tabla reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	var data reportData
	data.Statistics.SavedProducts = rep.Statistics.SavedProducts
	data.Statistics.MoneySaved = rep.Statistics.MoneySaved
	data.Statistics.WasteAvoidedKg = rep.Statistics.WasteAvoidedKg
	data.Recommendations = make([]reportRecommendation, 0, len(rep.Recommendations))
	for _, rec := range rep.Recommendations {
		data.Recommendations = append(data.Recommendations, reportRecommendation(rec))
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal report data: %w", err)
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO reportes (id, tipo_reporte, fecha_inicio, fecha_fin, datos_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rep.ID, rep.Type, civilDate(rep.StartDate), civilDate(rep.EndDate), raw, rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepo) List(ctx context.Context, limit, offset int) ([]*entity.Report, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM reportes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, tipo_reporte, fecha_inicio, fecha_fin, datos_json, created_at
		FROM reportes ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Report, 0)
	for rows.Next() {
		var (
			rep entity.Report
			raw []byte
		)
		if err := rows.Scan(&rep.ID, &rep.Type, &rep.StartDate, &rep.EndDate, &raw, &rep.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		var data reportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, 0, fmt.Errorf("unmarshal report data: %w", err)
		}
		rep.Statistics = entity.ReportStatistics{
			SavedProducts:  data.Statistics.SavedProducts,
			MoneySaved:     data.Statistics.MoneySaved,
			WasteAvoidedKg: data.Statistics.WasteAvoidedKg,
		}
		rep.Recommendations = make([]entity.ReportRecommendation, 0, len(data.Recommendations))
		for _, rec := range data.Recommendations {
			rep.Recommendations = append(rep.Recommendations, entity.ReportRecommendation(rec))
		}
		list = append(list, &rep)
	}
	return list, total, rows.Err()
}
