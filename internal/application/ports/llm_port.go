package ports

import (
	"context"
	"errors"

	"github.com/safealert/safealert-api/internal/application/dto"
)

// ErrLLMUnavailable el proveedor de IA no está configurado (sin API key).
var ErrLLMUnavailable = errors.New("servicio de IA no disponible")

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// SuggestRecipe pide una receta que aproveche los ingredientes próximos a vencer.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	SuggestRecipe(
		ctx context.Context,
		ingredients []dto.RecipeIngredient,
		mealType string,
		servings int,
	) (*dto.RecipeDTO, error)
}
