// Package readmodel holds the denormalized list and detail queries the
// stock screens read from, and maps their rows into models by column name.
package readmodel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/selection"
)

var (
	// ErrInvalidKey is a caller contract violation: a keyed view was asked for
	// without a usable key.
	ErrInvalidKey = errors.New("readmodel: invalid key")
	// ErrUnavailable means the engine could not run the statement.
	ErrUnavailable = fmt.Errorf("readmodel: query %w", apperr.ErrUnavailable)
	// ErrUnknownColumn means a mapper asked for a column its view does not project.
	ErrUnknownColumn = errors.New("readmodel: unknown column")
)

type View string

// Column is one projected expression. Name is the alias rows are read by.
type Column struct {
	Name string
	Expr string
	Args []interface{}
}

// Request targets a view. Key is opaque here and handed to the view's
// extractor; Filter is an optional extra selection ANDed in.
type Request struct {
	Key    string
	Filter selection.Clause
}

// KeyFunc turns a request key into a selection.
type KeyFunc func(key string) (selection.Clause, error)

// Definition is one read-model query.
type Definition struct {
	View    View
	Columns []Column
	From    string
	Where   selection.Clause
	Key     KeyFunc
	OrderBy string
	Limit   int
}

// Names returns the projected column names in order.
func (d *Definition) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Build renders the SQL text and bound arguments for req. Projection
// arguments come first, then selection arguments left to right.
func (d *Definition) Build(req Request) (string, []interface{}, error) {
	var keyClause selection.Clause
	if d.Key != nil {
		c, err := d.Key(req.Key)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", d.View, err)
		}
		keyClause = c
	}

	var args []interface{}
	cols := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = c.Expr + " AS " + c.Name
		args = append(args, c.Args...)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(d.From)

	where := selection.All(d.Where, keyClause, req.Filter)
	if where.Present() {
		sb.WriteString(" WHERE ")
		sb.WriteString(where.Text)
		args = append(args, where.Args...)
	}
	if d.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(d.OrderBy)
	}
	if d.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(d.Limit))
	}
	return sb.String(), args, nil
}

// idKey selects column = <numeric key>.
func idKey(column string) KeyFunc {
	return func(key string) (selection.Clause, error) {
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil || id <= 0 {
			return selection.Clause{}, fmt.Errorf("%w: %q is not an id", ErrInvalidKey, key)
		}
		return selection.New(column+" = ?", id), nil
	}
}

// naturalKey selects column = <key> for human-entered keys like SKU or code.
func naturalKey(column string) KeyFunc {
	return func(key string) (selection.Clause, error) {
		key = strings.TrimSpace(key)
		if key == "" {
			return selection.Clause{}, fmt.Errorf("%w: blank key", ErrInvalidKey)
		}
		return selection.New(column+" = ?", key), nil
	}
}

// ID formats a surrogate key as a request key.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}
