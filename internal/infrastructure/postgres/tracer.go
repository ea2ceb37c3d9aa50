package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/safealert/safealert-api/pkg/logger"
)

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// slowQueryTracer implementa pgx.QueryTracer. Solo registra consultas que superan el umbral o fallan.
type slowQueryTracer struct {
	log       *logger.Logger
	threshold time.Duration
	now       func() time.Time
}

func newSlowQueryTracer(log *logger.Logger, threshold time.Duration) *slowQueryTracer {
	return &slowQueryTracer{log: log, threshold: threshold, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows):
		t.log.Warn().Err(data.Err).Dur("duracion", elapsed).Str("sql", compactSQL(start.sql)).Msg("consulta fallida")
	case elapsed >= t.threshold:
		t.log.Warn().
			Dur("duracion", elapsed).
			Int64("filas", data.CommandTag.RowsAffected()).
			Str("sql", compactSQL(start.sql)).
			Msg("consulta lenta")
	}
}

// compactSQL colapsa espacios y recorta para que la consulta quepa en una línea de log.
func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > 240 {
		s = s[:240] + "..."
	}
	return s
}
