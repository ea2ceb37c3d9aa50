package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/logger"
)

// RecipeService lo cumple recetas.RecipeUseCase.
type RecipeService interface {
	Suggest(ctx context.Context, req dto.SuggestRecipeRequest) (*dto.SuggestRecipeResponse, error)
}

// RecipeHandler maneja /api/recetas.
type RecipeHandler struct {
	base
	svc RecipeService
}

// NewRecipeHandler construye el handler de recetas.
func NewRecipeHandler(svc RecipeService, log *logger.Logger, dev bool) *RecipeHandler {
	return &RecipeHandler{base: newBase(log, dev), svc: svc}
}

// Suggest godoc
// @Summary      Sugerir receta con productos por vencer
// @Description  Entre 1 y 10 productos. 503 si la IA no está configurada.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestRecipeRequest  true  "producto_ids, tipo_comida, porciones"
// @Success      200   {object}  dto.SuggestRecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/recetas/sugerir [post]
func (h *RecipeHandler) Suggest(c *fiber.Ctx) error {
	var in dto.SuggestRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Suggest(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
