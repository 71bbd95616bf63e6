package readmodel

import (
	"fmt"
	"strconv"
)

// Row is one result row keyed by the projected column names of its view.
type Row map[string]interface{}

// reader pulls typed values out of a row and remembers the first failure, so
// a mapper can read every column and check once.
type reader struct {
	row Row
	err error
}

func (r Row) reader() *reader {
	return &reader{row: r}
}

func (rd *reader) value(name string) (interface{}, bool) {
	if rd.err != nil {
		return nil, false
	}
	v, ok := rd.row[name]
	if !ok {
		rd.err = fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		return nil, false
	}
	return v, v != nil
}

func (rd *reader) fail(name string, v interface{}, want string) {
	rd.err = fmt.Errorf("readmodel: column %s: cannot read %T as %s", name, v, want)
}

func (rd *reader) Int64(name string) int64 {
	v, ok := rd.value(name)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case []byte:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			rd.fail(name, v, "int64")
		}
		return n
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			rd.fail(name, v, "int64")
		}
		return n
	}
	rd.fail(name, v, "int64")
	return 0
}

func (rd *reader) Int(name string) int {
	return int(rd.Int64(name))
}

func (rd *reader) Float64(name string) float64 {
	v, ok := rd.value(name)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			rd.fail(name, v, "float64")
		}
		return f
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			rd.fail(name, v, "float64")
		}
		return f
	}
	rd.fail(name, v, "float64")
	return 0
}

func (rd *reader) Bool(name string) bool {
	v, ok := rd.value(name)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case int:
		return x != 0
	}
	rd.fail(name, v, "bool")
	return false
}

// NullString returns nil for SQL NULL.
func (rd *reader) NullString(name string) *string {
	v, ok := rd.value(name)
	if !ok {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		s = fmt.Sprint(x)
	}
	return &s
}

// String returns "" for SQL NULL.
func (rd *reader) String(name string) string {
	if s := rd.NullString(name); s != nil {
		return *s
	}
	return ""
}
