// Package selection builds parameterized WHERE fragments. Values never enter
// the SQL text; they travel in Args, in placeholder order.
package selection

import (
	"strings"
)

type Joiner string

const (
	And Joiner = "AND"
	Or  Joiner = "OR"
)

// Clause is a WHERE fragment plus its bound arguments. The zero value is the
// absent clause.
type Clause struct {
	Text string
	Args []interface{}
}

func (c Clause) Present() bool {
	return c.Text != ""
}

// New returns a clause with the given text and arguments.
func New(text string, args ...interface{}) Clause {
	return Clause{Text: text, Args: args}
}

// BuildInClause returns "column = ? OR column = ? ..." with one placeholder and
// one argument per value. It reports false when column is blank or values is empty.
func BuildInClause(column string, values []string) (Clause, bool) {
	if strings.TrimSpace(column) == "" || len(values) == 0 {
		return Clause{}, false
	}

	parts := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		parts[i] = column + " = ?"
		args[i] = v
	}
	return Clause{Text: strings.Join(parts, " OR "), Args: args}, true
}

// Combine joins two clauses. Each side is parenthesized when both are present;
// a single present side is returned unchanged.
func Combine(a, b Clause, op Joiner) Clause {
	switch {
	case a.Present() && b.Present():
		args := make([]interface{}, 0, len(a.Args)+len(b.Args))
		args = append(args, a.Args...)
		args = append(args, b.Args...)
		return Clause{
			Text: "(" + a.Text + ") " + string(op) + " (" + b.Text + ")",
			Args: args,
		}
	case a.Present():
		return a
	case b.Present():
		return b
	default:
		return Clause{}
	}
}

// All folds clauses left to right with AND.
func All(clauses ...Clause) Clause {
	var out Clause
	for _, c := range clauses {
		out = Combine(out, c, And)
	}
	return out
}
