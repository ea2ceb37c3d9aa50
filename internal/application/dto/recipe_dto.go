package dto

// SuggestRecipeRequest body de POST /api/recetas/sugerir.
type SuggestRecipeRequest struct {
	ProductIDs []string `json:"producto_ids"`
	MealType   string   `json:"tipo_comida"` // desayuno, almuerzo, cena, cualquiera
	Servings   int      `json:"porciones"`   // por defecto 4
}

// RecipeIngredient producto disponible que se pasa al LLM.
type RecipeIngredient struct {
	Name          string
	StockQuantity string
	ExpiryDate    string // YYYY-MM-DD
}

// RecipeDTO receta sugerida por el LLM.
type RecipeDTO struct {
	Name         string   `json:"nombre"`
	Description  string   `json:"descripcion"`
	Ingredients  []string `json:"ingredientes"`
	Instructions string   `json:"instrucciones"`
	TimeMinutes  int      `json:"tiempo_minutos"`
}

// SuggestRecipeResponse respuesta con la receta y los productos usados.
type SuggestRecipeResponse struct {
	Recipe   RecipeDTO `json:"receta"`
	Products []string  `json:"productos"`
}
