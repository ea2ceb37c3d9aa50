package inventario_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

type fakeProducts struct {
	byID      map[string]*entity.Product
	refreshed time.Time
	counts    map[string]int
	from, to  time.Time
}

func newFakeProducts(ps ...*entity.Product) *fakeProducts {
	f := &fakeProducts{byID: map[string]*entity.Product{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	f.byID[id].StockQuantity = stock
	return nil
}

func (f *fakeProducts) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		if filter.Status == "" || p.Status == filter.Status {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProducts) ListExpiringBetween(_ context.Context, from, to time.Time) ([]*entity.Product, error) {
	f.from, f.to = from, to
	return nil, nil
}

func (f *fakeProducts) RefreshStatuses(_ context.Context, today time.Time, _ int) (map[string]int, error) {
	f.refreshed = today
	return f.counts, nil
}

func (f *fakeProducts) Count(context.Context) (int, error) { return len(f.byID), nil }

func (f *fakeProducts) CountExpiringWithin(context.Context, time.Time, int) (int, error) {
	return 0, nil
}

type fakeMovements struct {
	created []*entity.StockMovement
}

func (f *fakeMovements) Create(_ context.Context, m *entity.StockMovement) error {
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMovements) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.created {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTx restaura el stock si fn falla, como haría un Rollback.
type fakeTx struct {
	products  *fakeProducts
	movements *fakeMovements
}

func (t *fakeTx) RunStockMovement(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	snapshot := map[string]decimal.Decimal{}
	for id, p := range t.products.byID {
		snapshot[id] = p.StockQuantity
	}
	n := len(t.movements.created)
	if err := fn(t.products, t.movements); err != nil {
		for id, s := range snapshot {
			t.products.byID[id].StockQuantity = s
		}
		t.movements.created = t.movements.created[:n]
		return err
	}
	return nil
}

// fakeAlertCache guarda la lista como lo haría Redis; invalidar la borra.
type fakeAlertCache struct {
	active      []dto.AlertResponse
	stored      bool
	invalidated int
	err         error
}

func (f *fakeAlertCache) SetActive(_ context.Context, list []dto.AlertResponse) error {
	f.active, f.stored = list, true
	return nil
}

func (f *fakeAlertCache) GetActive(context.Context) ([]dto.AlertResponse, bool, error) {
	return f.active, f.stored, nil
}

func (f *fakeAlertCache) InvalidateActive(context.Context) error {
	f.invalidated++
	if f.err != nil {
		return f.err
	}
	f.active, f.stored = nil, false
	return nil
}
