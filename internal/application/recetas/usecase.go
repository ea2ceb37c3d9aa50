// Package recetas sugiere recetas con IA para aprovechar productos próximos a vencer.
package recetas

import (
	"context"
	"fmt"
	"time"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/ports"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

const (
	llmTimeout      = 20 * time.Second
	defaultServings = 4
	defaultMealType = "cualquiera"
	maxProducts     = 10
)

// RecipeUseCase orquesta la sugerencia de recetas asistida por IA.
type RecipeUseCase struct {
	products repository.ProductRepository
	llm      ports.LLMService
}

// NewRecipeUseCase construye el caso de uso inyectando el puerto LLMService.
func NewRecipeUseCase(products repository.ProductRepository, llm ports.LLMService) *RecipeUseCase {
	return &RecipeUseCase{products: products, llm: llm}
}

// Suggest valida la entrada, carga los productos y delega al LLM con un timeout de 20 s.
func (uc *RecipeUseCase) Suggest(ctx context.Context, req dto.SuggestRecipeRequest) (*dto.SuggestRecipeResponse, error) {
	if len(req.ProductIDs) == 0 {
		return nil, fmt.Errorf("%w: producto_ids es obligatorio", domain.ErrInvalidInput)
	}
	if len(req.ProductIDs) > maxProducts {
		return nil, fmt.Errorf("%w: máximo %d productos por receta", domain.ErrInvalidInput, maxProducts)
	}
	if req.Servings <= 0 {
		req.Servings = defaultServings
	}
	if req.MealType == "" {
		req.MealType = defaultMealType
	}

	ingredients := make([]dto.RecipeIngredient, 0, len(req.ProductIDs))
	names := make([]string, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		p, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		ingredients = append(ingredients, dto.RecipeIngredient{
			Name:          p.Name,
			StockQuantity: p.StockQuantity.String(),
			ExpiryDate:    p.ExpiryDate.Format("2006-01-02"),
		})
		names = append(names, p.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	recipe, err := uc.llm.SuggestRecipe(ctx, ingredients, req.MealType, req.Servings)
	if err != nil {
		return nil, fmt.Errorf("recetas: %w", err)
	}
	return &dto.SuggestRecipeResponse{Recipe: *recipe, Products: names}, nil
}
