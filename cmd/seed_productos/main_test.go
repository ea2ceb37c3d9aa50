package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

var seedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestParseProducts_CalculaEstadoYDecimales(t *testing.T) {
	csv := strings.Join([]string{
		"nombre;codigo_barras;fecha_caducidad;cantidad_stock;precio_unitario;descripcion",
		"Leche entera;7701;2026-10-22;12,5;3.200,00;Caja 1L",
		"Pan tajado;7702;18/10/2026;4;5500",
		"Arroz;7703;2027-03-01;50.25;2100.5",
	}, "\n")

	products, errs := parseProducts(strings.NewReader(csv), false, seedNow)
	require.Empty(t, errs)
	require.Len(t, products, 3)

	assert.Equal(t, "Leche entera", products[0].Name)
	assert.Equal(t, "Caja 1L", products[0].Description)
	assert.Equal(t, entity.ProductStatusExpiringSoon, products[0].Status)
	assert.True(t, products[0].StockQuantity.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, products[0].UnitPrice.Equal(decimal.RequireFromString("3200")))

	assert.Equal(t, entity.ProductStatusExpired, products[1].Status)
	assert.Equal(t, entity.ProductStatusActive, products[2].Status)
	assert.True(t, products[2].StockQuantity.Equal(decimal.RequireFromString("50.25")))
	assert.NotEqual(t, products[0].ID, products[1].ID)
}

func TestParseProducts_FilasInvalidasNoDetienenLectura(t *testing.T) {
	csv := strings.Join([]string{
		";7701;2026-10-22;1;1",
		"Yogur;7704;2026-13-40;1;1",
		"Queso;7705;2026-11-01;-2;1",
		"Huevos;7706",
		"Mantequilla;7707;2026-11-15;3;8900",
	}, "\n")

	products, errs := parseProducts(strings.NewReader(csv), false, seedNow)
	require.Len(t, products, 1)
	assert.Equal(t, "Mantequilla", products[0].Name)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[1].Error(), "línea 2")
}

func TestParseProducts_Latin1(t *testing.T) {
	enc, err := charmap.ISO8859_1.NewEncoder().String("Piña;7708;2026-12-01;2;4500\n")
	require.NoError(t, err)

	products, errs := parseProducts(bytes.NewReader([]byte(enc)), true, seedNow)
	require.Empty(t, errs)
	require.Len(t, products, 1)
	assert.Equal(t, "Piña", products[0].Name)
}
