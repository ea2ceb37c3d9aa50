package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Eres un chef experto en reducir el desperdicio alimentario.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "nombre": "<nombre de la receta>",
  "descripcion": "<descripción breve, máximo 200 caracteres>",
  "ingredientes": ["<ingrediente con cantidad>", "..."],
  "instrucciones": "<pasos numerados separados por salto de línea>",
  "tiempo_minutos": <número entero>
}

Reglas:
- Usa la mayoría de los productos indicados, priorizando los que vencen primero.
- La receta debe ser fácil de preparar y ajustarse al número de porciones.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAnthropicService construye el adaptador.
// ratePerMinute limita las llamadas salientes (token bucket); <= 0 usa 10.
// Si apiKey está vacío las llamadas devuelven ports.ErrLLMUnavailable.
func NewAnthropicService(apiKey, model string, ratePerMinute int) *AnthropicService {
	if ratePerMinute <= 0 {
		ratePerMinute = 10
	}
	return &AnthropicService{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicMessagesURL,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 20 s.
			Timeout: 25 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute),
	}
}

// WithBaseURL cambia el endpoint (tests con httptest).
func (s *AnthropicService) WithBaseURL(url string) *AnthropicService {
	s.baseURL = url
	return s
}

// Enabled indica si hay API key configurada.
func (s *AnthropicService) Enabled() bool { return s.apiKey != "" }

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// llmRecipePayload JSON que devuelve el modelo.
type llmRecipePayload struct {
	Name         string   `json:"nombre"`
	Description  string   `json:"descripcion"`
	Ingredients  []string `json:"ingredientes"`
	Instructions string   `json:"instrucciones"`
	TimeMinutes  int      `json:"tiempo_minutos"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque Claude lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// SuggestRecipe envía los productos próximos a vencer a Claude y devuelve la receta sugerida.
func (s *AnthropicService) SuggestRecipe(
	ctx context.Context,
	ingredients []dto.RecipeIngredient,
	mealType string,
	servings int,
) (*dto.RecipeDTO, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado: %w", ports.ErrLLMUnavailable)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("AI: límite de llamadas: %w", err)
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildRecipePrompt(ingredients, mealType, servings)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}

	rawText := anthResp.Content[0].Text
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}

	var recipe llmRecipePayload
	if err := json.Unmarshal([]byte(cleanJSON), &recipe); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de receta: %w (JSON extraído: %s)", err, cleanJSON)
	}
	if recipe.Name == "" {
		recipe.Name = "Receta generada por IA"
	}
	if recipe.TimeMinutes <= 0 {
		recipe.TimeMinutes = 30
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}

	return &dto.RecipeDTO{
		Name:         recipe.Name,
		Description:  recipe.Description,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		TimeMinutes:  recipe.TimeMinutes,
	}, nil
}

func buildRecipePrompt(ingredients []dto.RecipeIngredient, mealType string, servings int) string {
	var b strings.Builder
	b.WriteString("Tengo estos productos que están próximos a vencer:\n")
	for _, in := range ingredients {
		fmt.Fprintf(&b, "- %s (%s unidades, vence: %s)\n", in.Name, in.StockQuantity, in.ExpiryDate)
	}
	fmt.Fprintf(&b, "Tipo de comida deseada: %s\nPorciones: %d\n", mealType, servings)
	return b.String()
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
