package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateReportRequest body de POST /api/reportes/generar (también query de /api/reportes/pdf).
type GenerateReportRequest struct {
	StartDate  string `json:"fecha_inicio" query:"fecha_inicio"` // YYYY-MM-DD
	EndDate    string `json:"fecha_fin" query:"fecha_fin"`       // YYYY-MM-DD, inclusivo
	ReportType string `json:"tipo_reporte" query:"tipo_reporte"` // por defecto desperdicio
}

// ReportStatisticsDTO estadísticas agregadas.
type ReportStatisticsDTO struct {
	SavedProducts  int             `json:"productos_salvados"`
	MoneySaved     decimal.Decimal `json:"dinero_ahorrado"`
	WasteAvoidedKg decimal.Decimal `json:"kg_desperdicio_evitado"`
}

// ReportRecommendationDTO recomendación del reporte.
type ReportRecommendationDTO struct {
	Type    string `json:"tipo"`
	Message string `json:"mensaje"`
	Action  string `json:"accion"`
}

// ReportDTO reporte calculado.
type ReportDTO struct {
	ID              string                    `json:"id,omitempty"`
	ReportType      string                    `json:"tipo_reporte"`
	StartDate       string                    `json:"fecha_inicio"`
	EndDate         string                    `json:"fecha_fin"`
	Statistics      ReportStatisticsDTO       `json:"estadisticas"`
	Recommendations []ReportRecommendationDTO `json:"recomendaciones"`
	CreatedAt       *time.Time                `json:"fecha_generacion,omitempty"`
}

// GenerateReportResponse respuesta de POST /api/reportes/generar.
type GenerateReportResponse struct {
	Report ReportDTO `json:"reporte"`
}

// ReportListResponse histórico paginado de reportes.
type ReportListResponse struct {
	Items []ReportDTO  `json:"items"`
	Page  PageResponse `json:"page"`
}
