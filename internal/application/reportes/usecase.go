// Package reportes calcula el reporte de desperdicio evitado a partir de las alertas resueltas.
package reportes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/report"
	"github.com/safealert/safealert-api/internal/domain/repository"
	"github.com/safealert/safealert-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// PDFGenerator puerto para la representación en PDF del reporte.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, rep *dto.ReportDTO, items []entity.ResolvedAlert) ([]byte, error)
}

// ReportUseCase genera, registra y lista reportes.
type ReportUseCase struct {
	alerts  repository.AlertRepository
	reports repository.ReportRepository // opcional: histórico
	pdf     PDFGenerator
	now     func() time.Time
	loc     *time.Location // zona de los días del reporte
	log     *logger.Logger
}

// NewReportUseCase construye el caso de uso. reports y pdf pueden ser nil.
func NewReportUseCase(
	alerts repository.AlertRepository,
	reports repository.ReportRepository,
	pdf PDFGenerator,
	log *logger.Logger,
) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		alerts:  alerts,
		reports: reports,
		pdf:     pdf,
		now:     time.Now,
		loc:     time.Local,
		log:     log.Component("reportes"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// WithLocation zona en la que se interpretan fecha_inicio y fecha_fin. Por defecto time.Local,
// la misma del reloj con que se escribe fecha_creacion.
func (uc *ReportUseCase) WithLocation(loc *time.Location) *ReportUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// period rango validado del reporte; to es exclusivo (día siguiente a fecha_fin).
type period struct {
	start, end time.Time
	from, to   time.Time
	reportType string
}

func parsePeriod(in dto.GenerateReportRequest, loc *time.Location) (period, error) {
	if in.StartDate == "" || in.EndDate == "" {
		return period{}, fmt.Errorf("%w: fechas de inicio y fin son requeridas", domain.ErrInvalidInput)
	}
	start, err := time.ParseInLocation(dateLayout, in.StartDate, loc)
	if err != nil {
		return period{}, fmt.Errorf("%w: fecha_inicio debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	end, err := time.ParseInLocation(dateLayout, in.EndDate, loc)
	if err != nil {
		return period{}, fmt.Errorf("%w: fecha_fin debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return period{}, fmt.Errorf("%w: fecha_inicio no puede ser posterior a fecha_fin", domain.ErrInvalidInput)
	}
	rt := in.ReportType
	if rt == "" {
		rt = entity.ReportTypeWaste
	}
	if rt != entity.ReportTypeWaste {
		return period{}, fmt.Errorf("%w: tipo_reporte no soportado: %s", domain.ErrInvalidInput, rt)
	}
	return period{
		start:      start,
		end:        end,
		from:       start,
		to:         end.AddDate(0, 0, 1),
		reportType: rt,
	}, nil
}

// Generate calcula el reporte para [fecha_inicio, fecha_fin] (ambos días completos)
// y lo registra en el histórico. Un fallo al registrar no falla la petición.
func (uc *ReportUseCase) Generate(ctx context.Context, in dto.GenerateReportRequest) (*dto.GenerateReportResponse, error) {
	rep, _, err := uc.compute(ctx, in)
	if err != nil {
		return nil, err
	}

	if uc.reports != nil {
		if err := uc.reports.Create(ctx, rep); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo registrar el reporte en el histórico")
		}
	}
	return &dto.GenerateReportResponse{Report: toReportDTO(rep)}, nil
}

// MonthToDate estadísticas desde el día 1 del mes hasta hoy (dashboard).
func (uc *ReportUseCase) MonthToDate(ctx context.Context) (entity.ReportStatistics, error) {
	now := uc.now().In(uc.loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	rep, _, err := uc.compute(ctx, dto.GenerateReportRequest{
		StartDate: first.Format(dateLayout),
		EndDate:   now.Format(dateLayout),
	})
	if err != nil {
		return entity.ReportStatistics{}, err
	}
	return rep.Statistics, nil
}

// PDF genera el reporte y lo renderiza. Devuelve bytes y nombre sugerido del archivo.
func (uc *ReportUseCase) PDF(ctx context.Context, in dto.GenerateReportRequest) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("reportes: generador PDF no configurado")
	}
	rep, items, err := uc.compute(ctx, in)
	if err != nil {
		return nil, "", err
	}
	d := toReportDTO(rep)
	b, err := uc.pdf.GenerateReportPDF(ctx, &d, items)
	if err != nil {
		return nil, "", fmt.Errorf("reportes: generar PDF: %w", err)
	}
	name := fmt.Sprintf("reporte_%s_%s_%s.pdf", rep.Type, d.StartDate, d.EndDate)
	return b, name, nil
}

// List histórico de reportes generados, más reciente primero.
func (uc *ReportUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ReportListResponse, error) {
	page.DefaultPage()
	if uc.reports == nil {
		return &dto.ReportListResponse{Items: []dto.ReportDTO{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
	}
	list, total, err := uc.reports.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("reportes: listar: %w", err)
	}
	items := make([]dto.ReportDTO, 0, len(list))
	for _, r := range list {
		items = append(items, toReportDTO(r))
	}
	return &dto.ReportListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *ReportUseCase) compute(ctx context.Context, in dto.GenerateReportRequest) (*entity.Report, []entity.ResolvedAlert, error) {
	p, err := parsePeriod(in, uc.loc)
	if err != nil {
		return nil, nil, err
	}
	items, err := uc.alerts.ListResolvedBetween(ctx, p.from, p.to)
	if err != nil {
		return nil, nil, fmt.Errorf("reportes: alertas resueltas: %w", err)
	}
	stats := report.Aggregate(items)
	return &entity.Report{
		ID:              uuid.New().String(),
		Type:            p.reportType,
		StartDate:       p.start,
		EndDate:         p.end,
		Statistics:      stats,
		Recommendations: report.Recommendations(stats),
		CreatedAt:       uc.now(),
	}, items, nil
}

// ToStatisticsDTO expone el mapeo para el dashboard.
func ToStatisticsDTO(s entity.ReportStatistics) dto.ReportStatisticsDTO {
	return dto.ReportStatisticsDTO{
		SavedProducts:  s.SavedProducts,
		MoneySaved:     s.MoneySaved.Round(2),
		WasteAvoidedKg: s.WasteAvoidedKg.Round(2),
	}
}

func toReportDTO(r *entity.Report) dto.ReportDTO {
	recs := make([]dto.ReportRecommendationDTO, 0, len(r.Recommendations))
	for _, rc := range r.Recommendations {
		recs = append(recs, dto.ReportRecommendationDTO{Type: rc.Type, Message: rc.Message, Action: rc.Action})
	}
	created := r.CreatedAt
	return dto.ReportDTO{
		ID:              r.ID,
		ReportType:      r.Type,
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		Statistics:      ToStatisticsDTO(r.Statistics),
		Recommendations: recs,
		CreatedAt:       &created,
	}
}
