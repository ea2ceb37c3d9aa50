package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/ports"
)

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"plano":           `{"nombre":"x"}`,
		"markdown":        "```json\n{\"nombre\":\"x\"}\n```",
		"texto alrededor": "Claro, aquí está:\n{\"nombre\":\"x\"}\n¡Buen provecho!",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, `{"nombre":"x"}`, extractJSON(in))
		})
	}
	assert.Empty(t, extractJSON("sin json"))
}

func TestSuggestRecipe_SinAPIKey(t *testing.T) {
	s := NewAnthropicService("", "modelo", 10)

	_, err := s.SuggestRecipe(context.Background(), nil, "cena", 2)
	assert.ErrorIs(t, err, ports.ErrLLMUnavailable)
	assert.False(t, s.Enabled())
}

func TestSuggestRecipe_ParseaRespuesta(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k-123", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		text := "```json\n{\"nombre\":\"Tortilla de papa\",\"descripcion\":\"rápida\",\"ingredientes\":[\"3 huevos\"],\"instrucciones\":\"1. batir\",\"tiempo_minutos\":0}\n```"
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
	defer srv.Close()

	s := NewAnthropicService("k-123", "claude-test", 10).WithBaseURL(srv.URL)
	recipe, err := s.SuggestRecipe(context.Background(), []dto.RecipeIngredient{
		{Name: "Huevos", StockQuantity: "12", ExpiryDate: "2026-10-21"},
	}, "desayuno", 2)
	require.NoError(t, err)

	assert.Equal(t, "Tortilla de papa", recipe.Name)
	assert.Equal(t, []string{"3 huevos"}, recipe.Ingredients)
	assert.Equal(t, 30, recipe.TimeMinutes) // 0 -> valor por defecto
	assert.Equal(t, "claude-test", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "Huevos (12 unidades, vence: 2026-10-21)")
	assert.Contains(t, got.Messages[0].Content, "Porciones: 2")
}

func TestSuggestRecipe_ErrorDeLaAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"despacio"}}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "m", 10).WithBaseURL(srv.URL)
	_, err := s.SuggestRecipe(context.Background(), nil, "cena", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}
