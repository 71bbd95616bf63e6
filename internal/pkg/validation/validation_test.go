package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
)

type sample struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	if err := Struct(sample{Name: "x"}); err != nil {
		t.Fatalf("valid struct: %v", err)
	}
	err := Struct(sample{Price: -1})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "sample.Name=required") || !strings.Contains(err.Error(), "sample.Price=gte") {
		t.Fatalf("unexpected message %q", err)
	}
}

func TestVar(t *testing.T) {
	if err := Var("shop@example.com", "email"); err != nil {
		t.Fatal(err)
	}
	if err := Var("nope", "email"); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("got %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(650) 253-0000", "US")
	if err != nil {
		t.Fatal(err)
	}
	if got != "+16502530000" {
		t.Fatalf("got %q", got)
	}
	if _, err := NormalizePhone("12", "US"); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("got %v", err)
	}
}
