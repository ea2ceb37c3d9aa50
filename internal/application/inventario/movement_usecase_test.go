package inventario_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/inventario"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
)

func newMovementUC(stock int64) (*inventario.MovementUseCase, *fakeProducts, *fakeMovements) {
	products := newFakeProducts(&entity.Product{ID: "p1", Name: "Arroz", StockQuantity: decimal.NewFromInt(stock)})
	movements := &fakeMovements{}
	uc := inventario.NewMovementUseCase(&fakeTx{products: products, movements: movements}, movements, products)
	return uc, products, movements
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	uc, products, movements := newMovementUC(10)

	resp, err := uc.Register(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(5), Reason: "compra",
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(15).Equal(resp.NewStock))
	assert.True(t, decimal.NewFromInt(15).Equal(products.byID["p1"].StockQuantity))
	require.Len(t, movements.created, 1)
	assert.Equal(t, "u1", movements.created[0].CreatedBy)
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	uc, products, _ := newMovementUC(10)

	_, err := uc.Register(context.Background(), "", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, products.byID["p1"].StockQuantity.IsZero())
}

func TestRegisterMovement_SalidaSinStockSuficiente(t *testing.T) {
	uc, products, movements := newMovementUC(3)

	_, err := uc.Register(context.Background(), "", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, decimal.NewFromInt(3).Equal(products.byID["p1"].StockQuantity))
	assert.Empty(t, movements.created)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _, _ := newMovementUC(3)

	_, err := uc.Register(context.Background(), "", dto.RegisterMovementRequest{
		ProductID: "nope", Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	uc, _, _ := newMovementUC(3)

	cases := map[string]dto.RegisterMovementRequest{
		"sin producto":   {Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(1)},
		"tipo inválido":  {ProductID: "p1", Type: "ajuste", Quantity: decimal.NewFromInt(1)},
		"cantidad cero":  {ProductID: "p1", Type: entity.MovementTypeIn},
		"cantidad menor": {ProductID: "p1", Type: entity.MovementTypeOut, Quantity: decimal.NewFromInt(-2)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), "", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestListMovements_ProductoInexistente(t *testing.T) {
	uc, _, _ := newMovementUC(3)

	_, err := uc.ListByProduct(context.Background(), "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_DevuelveRegistrados(t *testing.T) {
	uc, _, _ := newMovementUC(3)
	_, err := uc.Register(context.Background(), "", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	resp, err := uc.ListByProduct(context.Background(), "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 20, resp.Page.Limit)
}

func TestRegisterMovement_InvalidaAlertasCacheadas(t *testing.T) {
	uc, _, _ := newMovementUC(10)
	cache := &fakeAlertCache{}
	uc.WithAlertCache(cache, nil)

	_, err := uc.Register(context.Background(), "", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	_, err = uc.Register(context.Background(), "", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, cache.invalidated, "un movimiento rechazado no invalida")
}
