package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
	"github.com/safealert/safealert-api/pkg/config"
)

// testPool abre la BD de integración; sin SAFEALERT_TEST_DATABASE_URL el test se salta.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("SAFEALERT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SAFEALERT_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool))
	// dos veces: el esquema es idempotente
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func newTestProduct(t *testing.T, repo *ProductRepo, expiry time.Time, stock, price int64) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          "Prueba " + uuid.NewString()[:8],
		ExpiryDate:    expiry,
		StockQuantity: decimal.NewFromInt(stock),
		UnitPrice:     decimal.NewFromInt(price),
		Status:        entity.ProductStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), p.ID) })
	return p
}

func TestProductRepo_CRUD(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewProductRepository(pool)

	p := newTestProduct(t, repo, time.Now().AddDate(0, 0, 5), 10, 3)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Name, got.Name)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, got.CategoryID)

	require.NoError(t, repo.UpdateStock(ctx, p.ID, decimal.NewFromInt(4)))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(4)))

	list, total, err := repo.List(ctx, repository.ProductFilter{Search: p.Name, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), domain.ErrNotFound)
}

func TestProductRepo_CreateConCategoriaInexistente(t *testing.T) {
	pool := testPool(t)
	repo := NewProductRepository(pool)

	now := time.Now().UTC()
	err := repo.Create(context.Background(), &entity.Product{
		ID: uuid.NewString(), Name: "Leche", ExpiryDate: now, Status: entity.ProductStatusActive,
		CategoryID: uuid.NewString(), CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAlertRepo_CreateIfAbsent_UnaActivaPorProducto(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	products := NewProductRepository(pool)
	alerts := NewAlertRepository(pool)

	p := newTestProduct(t, products, time.Now().AddDate(0, 0, 2), 30, 5)

	newAlert := func() *entity.Alert {
		expiry := p.ExpiryDate
		return &entity.Alert{
			ID: uuid.NewString(), ProductID: p.ID, Type: entity.AlertTypeExpiry, Message: "vence pronto",
			PriorityLevel: entity.PriorityHigh, CreatedAt: time.Now().UTC(), ExpiryDate: &expiry,
			Status: entity.AlertStatusActive,
		}
	}

	first := newAlert()
	created, err := alerts.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = alerts.CreateIfAbsent(ctx, newAlert())
	require.NoError(t, err)
	assert.False(t, created)

	exists, err := alerts.ExistsActive(ctx, p.ID, entity.AlertTypeExpiry)
	require.NoError(t, err)
	assert.True(t, exists)

	view, err := alerts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, p.Name, view.ProductName)
	assert.Equal(t, "Alta", view.PriorityName)
	assert.Equal(t, "#F97316", view.ColorHex)

	// Una vez resuelta se puede crear una nueva activa.
	tx := NewTxRunner(pool)
	err = tx.RunAlertStatus(ctx, func(ar repository.AlertRepository, hr repository.AlertHistoryRepository) error {
		prev, err := ar.GetStatusForUpdate(ctx, first.ID)
		if err != nil {
			return err
		}
		if err := ar.SetStatus(ctx, first.ID, entity.AlertStatusResolved); err != nil {
			return err
		}
		return hr.Create(ctx, &entity.AlertStatusChange{
			ID: uuid.NewString(), AlertID: first.ID, PreviousStatus: prev, NewStatus: entity.AlertStatusResolved,
			User: "sistema", ChangedAt: time.Now().UTC(),
		})
	})
	require.NoError(t, err)

	history, err := NewAlertHistoryRepository(pool).ListByAlert(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.AlertStatusActive, history[0].PreviousStatus)

	created, err = alerts.CreateIfAbsent(ctx, newAlert())
	require.NoError(t, err)
	assert.True(t, created)

	resolved, err := alerts.ListResolvedBetween(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	var found bool
	for _, r := range resolved {
		if r.AlertID == first.ID {
			found = true
			assert.True(t, r.StockQuantity.Equal(decimal.NewFromInt(30)))
		}
	}
	assert.True(t, found)
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	products := NewProductRepository(pool)
	p := newTestProduct(t, products, time.Now().AddDate(0, 0, 20), 10, 1)

	err := NewTxRunner(pool).RunStockMovement(ctx, func(pr repository.ProductRepository, _ repository.StockMovementRepository) error {
		if err := pr.UpdateStock(ctx, p.ID, decimal.NewFromInt(99)); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(10)))
}
