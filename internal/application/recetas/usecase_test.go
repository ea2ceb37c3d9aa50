package recetas_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/ports"
	"github.com/safealert/safealert-api/internal/application/recetas"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

type fakeProducts struct {
	repository.ProductRepository
	byID map[string]*entity.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.byID[id], nil
}

type fakeLLM struct {
	ingredients []dto.RecipeIngredient
	mealType    string
	servings    int
	hadDeadline bool
	err         error
}

func (f *fakeLLM) SuggestRecipe(ctx context.Context, ing []dto.RecipeIngredient, mealType string, servings int) (*dto.RecipeDTO, error) {
	_, f.hadDeadline = ctx.Deadline()
	f.ingredients, f.mealType, f.servings = ing, mealType, servings
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RecipeDTO{Name: "Arroz con leche", TimeMinutes: 30}, nil
}

func products() *fakeProducts {
	return &fakeProducts{byID: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Leche", StockQuantity: decimal.NewFromInt(3), ExpiryDate: time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)},
		"p2": {ID: "p2", Name: "Arroz", StockQuantity: decimal.NewFromInt(1), ExpiryDate: time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)},
	}}
}

func TestSuggest_ValoresPorDefecto(t *testing.T) {
	llm := &fakeLLM{}
	uc := recetas.NewRecipeUseCase(products(), llm)

	resp, err := uc.Suggest(context.Background(), dto.SuggestRecipeRequest{ProductIDs: []string{"p1", "p2"}})
	require.NoError(t, err)

	assert.Equal(t, "Arroz con leche", resp.Recipe.Name)
	assert.Equal(t, []string{"Leche", "Arroz"}, resp.Products)
	assert.Equal(t, 4, llm.servings)
	assert.Equal(t, "cualquiera", llm.mealType)
	assert.True(t, llm.hadDeadline)
	require.Len(t, llm.ingredients, 2)
	assert.Equal(t, "2026-10-21", llm.ingredients[0].ExpiryDate)
	assert.Equal(t, "3", llm.ingredients[0].StockQuantity)
}

func TestSuggest_SinProductos(t *testing.T) {
	uc := recetas.NewRecipeUseCase(products(), &fakeLLM{})

	_, err := uc.Suggest(context.Background(), dto.SuggestRecipeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggest_ProductoInexistente(t *testing.T) {
	uc := recetas.NewRecipeUseCase(products(), &fakeLLM{})

	_, err := uc.Suggest(context.Background(), dto.SuggestRecipeRequest{ProductIDs: []string{"p1", "zz"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuggest_IANoDisponible(t *testing.T) {
	uc := recetas.NewRecipeUseCase(products(), &fakeLLM{err: ports.ErrLLMUnavailable})

	_, err := uc.Suggest(context.Background(), dto.SuggestRecipeRequest{ProductIDs: []string{"p1"}})
	assert.ErrorIs(t, err, ports.ErrLLMUnavailable)
}
