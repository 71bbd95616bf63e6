package readmodel

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Result is the outcome of a query that ran. An empty result is not an error.
type Result struct {
	View    View
	Columns []string
	Rows    []Row
}

func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// First returns the first row, or nil for an empty result.
func (r *Result) First() Row {
	if r.Empty() {
		return nil
	}
	return r.Rows[0]
}

type Executor struct {
	logger logger.ZapLogger
}

func NewExecutor(log logger.ZapLogger) *Executor {
	return &Executor{logger: log}
}

// Query runs def against db, which may be a *sqlx.DB or a *sqlx.Tx. Key
// problems come back as ErrInvalidKey before any SQL runs; engine failures
// come back wrapping ErrUnavailable. A cancelled or expired ctx comes back as
// its own error.
func (e *Executor) Query(ctx context.Context, db sqlx.QueryerContext, def *Definition, req Request) (*Result, error) {
	query, args, err := def.Build(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, e.failed(ctx, def, err)
	}
	defer rows.Close()

	names := def.Names()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, def.View, err)
	}
	if len(cols) != len(names) {
		return nil, fmt.Errorf("%w: %s: engine returned %d columns, view declares %d", ErrUnavailable, def.View, len(cols), len(names))
	}
	for i := range cols {
		if cols[i] != names[i] {
			return nil, fmt.Errorf("%w: %s: column %d is %q, view declares %q", ErrUnavailable, def.View, i, cols[i], names[i])
		}
	}

	res := &Result{View: def.View, Columns: names}
	for rows.Next() {
		row := make(Row, len(names))
		if err := rows.MapScan(row); err != nil {
			return nil, e.failed(ctx, def, err)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, e.failed(ctx, def, err)
	}

	e.logger.Debug("read-model query",
		zap.String("view", string(def.View)),
		zap.Int("rows", len(res.Rows)),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// failed classifies a query error. A caller that went away is not an engine
// failure, so ctx errors pass through unwrapped.
func (e *Executor) failed(ctx context.Context, def *Definition, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", def.View, ctxErr)
	}
	e.logger.Error("read-model query failed", zap.String("view", string(def.View)), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, def.View, err)
}

// MapAll maps every row of res with fn.
func MapAll[T any](res *Result, fn func(Row) (T, error)) ([]T, error) {
	if res == nil {
		return []T{}, nil
	}
	out := make([]T, 0, len(res.Rows))
	for _, row := range res.Rows {
		v, err := fn(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", res.View, err)
		}
		out = append(out, v)
	}
	return out, nil
}
