// Package alertas genera alertas de vencimiento y gestiona su ciclo de vida.
package alertas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/priority"
	"github.com/safealert/safealert-api/internal/domain/repository"
	"github.com/safealert/safealert-api/pkg/logger"
)

const (
	// HorizonDays productos que vencen dentro de este horizonte generan alerta.
	HorizonDays = 14

	generateLockKey = "safealert:lock:generar-alertas"
	generateLockTTL = 2 * time.Minute

	defaultUser = "sistema"
)

// Deps dependencias del caso de uso. Locker, Publisher, Cache, Metrics y Now son opcionales.
type Deps struct {
	Products  repository.ProductRepository
	Alerts    repository.AlertRepository
	History   repository.AlertHistoryRepository
	TxRunner  TxRunner
	Locker    Locker
	Publisher EventPublisher
	Cache     AlertCache
	Metrics   Metrics
	Now       func() time.Time
	Logger    *logger.Logger
}

// AlertUseCase generador de alertas + listado + transiciones de estado.
type AlertUseCase struct {
	products  repository.ProductRepository
	alerts    repository.AlertRepository
	history   repository.AlertHistoryRepository
	txRunner  TxRunner
	locker    Locker
	publisher EventPublisher
	cache     AlertCache
	metrics   Metrics
	now       func() time.Time
	log       *logger.Logger
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(d Deps) *AlertUseCase {
	uc := &AlertUseCase{
		products:  d.Products,
		alerts:    d.Alerts,
		history:   d.History,
		txRunner:  d.TxRunner,
		locker:    d.Locker,
		publisher: d.Publisher,
		cache:     d.Cache,
		metrics:   d.Metrics,
		now:       d.Now,
		log:       d.Logger,
	}
	if uc.locker == nil {
		uc.locker = noopLocker{}
	}
	if uc.publisher == nil {
		uc.publisher = noopPublisher{}
	}
	if uc.cache == nil {
		uc.cache = noopCache{}
	}
	if uc.metrics == nil {
		uc.metrics = noopMetrics{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	uc.log = uc.log.Component("alertas")
	return uc
}

// Generate crea una alerta de vencimiento por cada producto que vence en [hoy, hoy+14]
// y todavía no tiene una alerta activa. Devuelve solo las alertas creadas en esta corrida.
// Un fallo al insertar una alerta se registra y no detiene el resto.
func (uc *AlertUseCase) Generate(ctx context.Context) (*dto.GenerateAlertsResponse, error) {
	unlock, ok, err := uc.locker.TryLock(ctx, generateLockKey, generateLockTTL)
	if err != nil {
		return nil, fmt.Errorf("alertas: tomar lock de generación: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("alertas: generación en curso en otra instancia: %w", domain.ErrConflict)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo liberar el lock de generación")
		}
	}()

	now := uc.now()
	today := civilDate(now)
	products, err := uc.products.ListExpiringBetween(ctx, today, today.AddDate(0, 0, HorizonDays))
	if err != nil {
		return nil, fmt.Errorf("alertas: listar productos por vencer: %w", err)
	}

	created := make([]*entity.Alert, 0)
	names := make(map[string]string, len(products))
	for _, p := range products {
		exists, err := uc.alerts.ExistsActive(ctx, p.ID, entity.AlertTypeExpiry)
		if err != nil {
			uc.log.Warn().Err(err).Str("producto_id", p.ID).Msg("no se pudo verificar alerta activa")
			continue
		}
		if exists {
			continue
		}

		days := p.DaysUntilExpiry(today)
		c := priority.Classify(days, p.StockQuantity, p.UnitPrice)
		expiry := p.ExpiryDate
		alert := &entity.Alert{
			ID:               uuid.New().String(),
			ProductID:        p.ID,
			Type:             entity.AlertTypeExpiry,
			Message:          ExpiryMessage(p.Name, days),
			PriorityLevel:    c.Level,
			CreatedAt:        now,
			ExpiryDate:       &expiry,
			Status:           entity.AlertStatusActive,
			AIClassification: c.Summary(),
		}

		inserted, err := uc.alerts.CreateIfAbsent(ctx, alert)
		if err != nil {
			uc.log.Error().Err(err).Str("producto_id", p.ID).Msg("error creando alerta")
			continue
		}
		if !inserted {
			// otra corrida la creó entre la verificación y el insert
			continue
		}
		created = append(created, alert)
		names[alert.ID] = p.Name
		uc.metrics.AlertGenerated(alert.PriorityLevel)
	}

	if len(created) > 0 {
		batch := make([]CreatedAlert, 0, len(created))
		for _, a := range created {
			batch = append(batch, CreatedAlert{Alert: a, ProductName: names[a.ID]})
		}
		if err := uc.publisher.PublishAlertsCreated(ctx, batch); err != nil {
			uc.log.Warn().Err(err).Int("eventos", len(batch)).Msg("no se pudieron publicar eventos alerta.creada")
		}

		if err := uc.cache.InvalidateActive(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de alertas activas")
		}
	}
	uc.log.Info().
		Int("productos_revisados", len(products)).
		Int("alertas_creadas", len(created)).
		Msg("generación de alertas terminada")

	resp := &dto.GenerateAlertsResponse{
		Generated: len(created),
		Alerts:    make([]dto.AlertResponse, 0, len(created)),
	}
	for _, a := range created {
		r := toAlertResponse(&entity.AlertView{Alert: *a, ProductName: names[a.ID]})
		resp.Alerts = append(resp.Alerts, r)
	}
	return resp, nil
}

// ListActive alertas activas ordenadas por prioridad descendente y fecha de creación descendente.
func (uc *AlertUseCase) ListActive(ctx context.Context) (*dto.AlertListResponse, error) {
	cached, hit, err := uc.cache.GetActive(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché de alertas no disponible")
	}
	if hit {
		return &dto.AlertListResponse{Alerts: cached}, nil
	}

	views, err := uc.alerts.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("alertas: listar activas: %w", err)
	}
	items := make([]dto.AlertResponse, 0, len(views))
	for _, v := range views {
		items = append(items, toAlertResponse(v))
	}
	if err := uc.cache.SetActive(ctx, items); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar alertas activas en caché")
	}
	return &dto.AlertListResponse{Alerts: items}, nil
}

// ListByProduct todas las alertas (cualquier estado) de un producto.
func (uc *AlertUseCase) ListByProduct(ctx context.Context, productID string) (*dto.AlertListResponse, error) {
	list, err := uc.alerts.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("alertas: listar por producto: %w", err)
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAlertResponse(&entity.AlertView{Alert: *a}))
	}
	return &dto.AlertListResponse{Alerts: items}, nil
}

// GetByID devuelve nil, nil si la alerta no existe.
func (uc *AlertUseCase) GetByID(ctx context.Context, id string) (*dto.AlertResponse, error) {
	v, err := uc.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	r := toAlertResponse(v)
	return &r, nil
}

// UpdateStatus cambia el estado de la alerta y registra el cambio en el historial,
// todo en una transacción. Cualquier error (incluida alerta inexistente) hace rollback
// y se reporta como false; el detalle solo se registra en el log.
func (uc *AlertUseCase) UpdateStatus(ctx context.Context, in dto.UpdateAlertStatusRequest) bool {
	if in.AlertID == "" || !entity.IsValidAlertStatus(in.Status) {
		return false
	}
	user := in.User
	if user == "" {
		user = defaultUser
	}

	err := uc.txRunner.RunAlertStatus(ctx, func(
		alertRepo repository.AlertRepository,
		historyRepo repository.AlertHistoryRepository,
	) error {
		prev, err := alertRepo.GetStatusForUpdate(ctx, in.AlertID)
		if err != nil {
			return err
		}
		if prev == "" {
			return domain.ErrNotFound
		}
		if err := alertRepo.SetStatus(ctx, in.AlertID, in.Status); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.AlertStatusChange{
			ID:             uuid.New().String(),
			AlertID:        in.AlertID,
			PreviousStatus: prev,
			NewStatus:      in.Status,
			Comment:        in.Comment,
			User:           user,
			ChangedAt:      uc.now(),
		})
	})
	if err != nil {
		ev := uc.log.Error()
		if errors.Is(err, domain.ErrNotFound) {
			ev = uc.log.Warn()
		}
		ev.Err(err).Str("alerta_id", in.AlertID).Str("estado", in.Status).Msg("no se pudo actualizar el estado de la alerta")
		uc.metrics.StatusChanged(in.Status, false)
		return false
	}

	uc.metrics.StatusChanged(in.Status, true)
	if err := uc.cache.InvalidateActive(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de alertas activas")
	}
	return true
}

// History cambios de estado de una alerta, del más antiguo al más reciente.
func (uc *AlertUseCase) History(ctx context.Context, alertID string) (*dto.AlertHistoryListResponse, error) {
	v, err := uc.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.history.ListByAlert(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("alertas: historial: %w", err)
	}
	items := make([]dto.AlertHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, dto.AlertHistoryResponse{
			ID:             h.ID,
			AlertID:        h.AlertID,
			PreviousStatus: h.PreviousStatus,
			NewStatus:      h.NewStatus,
			Comment:        h.Comment,
			User:           h.User,
			ChangedAt:      h.ChangedAt,
		})
	}
	return &dto.AlertHistoryListResponse{History: items}, nil
}

// ExpiryMessage mensaje legible según los días que faltan.
func ExpiryMessage(productName string, days int) string {
	switch {
	case days <= 0:
		return fmt.Sprintf("¡URGENTE! El producto '%s' ya ha vencido", productName)
	case days <= 1:
		return fmt.Sprintf("¡CRÍTICO! El producto '%s' vence mañana", productName)
	case days <= 3:
		return fmt.Sprintf("El producto '%s' vence en %d días", productName, days)
	default:
		return fmt.Sprintf("El producto '%s' vence en %d días - Monitorear", productName, days)
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toAlertResponse(v *entity.AlertView) dto.AlertResponse {
	r := dto.AlertResponse{
		ID:               v.ID,
		ProductID:        v.ProductID,
		Type:             v.Type,
		Message:          v.Message,
		PriorityLevel:    v.PriorityLevel,
		CreatedAt:        v.CreatedAt,
		Status:           v.Status,
		AIClassification: v.AIClassification,
		ProductName:      v.ProductName,
		Barcode:          v.Barcode,
		StockQuantity:    v.StockQuantity,
		UnitPrice:        v.UnitPrice,
		PriorityName:     v.PriorityName,
		ColorHex:         v.ColorHex,
	}
	if v.ExpiryDate != nil {
		s := v.ExpiryDate.Format("2006-01-02")
		r.ExpiryDate = &s
	}
	return r
}
