// seed_productos carga productos desde un CSV exportado del sistema de inventario del comedor.
//
// Uso: go run ./cmd/seed_productos [-latin1] [-dry-run] productos.csv
//
// Columnas (separador ';', con encabezado):
//
//	nombre;codigo_barras;fecha_caducidad;cantidad_stock;precio_unitario;descripcion
//
// fecha_caducidad acepta YYYY-MM-DD o DD/MM/YYYY. Los decimales aceptan coma o punto.
// El estado de cada producto se calcula con la fecha de hoy.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/safealert/safealert-api/internal/application/inventario"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/infrastructure/postgres"
	"github.com/safealert/safealert-api/pkg/config"
	"github.com/safealert/safealert-api/pkg/logger"
)

const minColumns = 5

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo valida, no inserta")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_productos [-latin1] [-dry-run] productos.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_productos"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	products, rowErrs := parseProducts(f, *latin1, time.Now())
	for _, e := range rowErrs {
		log.Warn().Err(e).Msg("fila descartada")
	}
	log.Info().Int("validos", len(products)).Int("descartados", len(rowErrs)).Msg("CSV leído")
	if *dryRun || len(products) == 0 {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewProductRepository(pool)
	inserted, duplicated := 0, 0
	for _, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				duplicated++
				continue
			}
			log.Error().Err(err).Str("producto", p.Name).Msg("insertar producto")
			continue
		}
		inserted++
	}
	log.Info().Int("insertados", inserted).Int("duplicados", duplicated).Msg("carga finalizada")
}

// parseProducts lee el CSV y arma los productos. Las filas inválidas se devuelven como errores
// con su número de línea y no detienen la lectura.
func parseProducts(r io.Reader, latin1 bool, now time.Time) ([]*entity.Product, []error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var (
		out  []*entity.Product
		errs []error
	)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		p, err := productFromRecord(rec, today, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		out = append(out, p)
	}
	return out, errs
}

func productFromRecord(rec []string, today, now time.Time) (*entity.Product, error) {
	if len(rec) < minColumns {
		return nil, fmt.Errorf("se esperaban al menos %d columnas, hay %d", minColumns, len(rec))
	}
	name := strings.TrimSpace(rec[0])
	if name == "" {
		return nil, fmt.Errorf("nombre vacío")
	}
	expiry, err := parseExpiry(rec[2])
	if err != nil {
		return nil, err
	}
	stock, err := parseDecimal(rec[3])
	if err != nil {
		return nil, fmt.Errorf("cantidad_stock: %w", err)
	}
	price, err := parseDecimal(rec[4])
	if err != nil {
		return nil, fmt.Errorf("precio_unitario: %w", err)
	}
	if stock.IsNegative() || price.IsNegative() {
		return nil, fmt.Errorf("cantidad y precio no pueden ser negativos")
	}
	var desc string
	if len(rec) > minColumns {
		desc = strings.TrimSpace(rec[5])
	}
	return &entity.Product{
		ID:               uuid.New().String(),
		Name:             name,
		Description:      desc,
		Barcode:          strings.TrimSpace(rec[1]),
		ExpiryDate:       expiry,
		StockQuantity:    stock,
		UnitPrice:        price,
		Status:           inventario.StatusFor(expiry, today),
		AIClassification: "Producto importado - " + now.Format("02/01/2006"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func parseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha_caducidad inválida: %q", s)
}

// parseDecimal acepta "1.234,50", "1234,5" y "1234.5".
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
