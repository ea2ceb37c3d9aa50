package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_CamposFijosEnJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Config{Env: "production", Level: "info", Service: "safealert-api", Module: "alertas"})

	l.Component("generador").Info().Int("creadas", 2).Msg("generación terminada")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "safealert-api", line["service"])
	assert.Equal(t, "alertas", line["module"])
	assert.Equal(t, "generador", line["component"])
	assert.Equal(t, float64(2), line["creadas"])
	assert.Equal(t, "generación terminada", line["message"])
}

func TestLogger_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Config{Level: "warn"})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("nada") })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verboso"))
}
