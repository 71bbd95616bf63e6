package readmodel

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
)

type patternRecorder struct {
	cache.Noop
	patterns []string
	fail     error
}

func (p *patternRecorder) DeletePattern(_ context.Context, pattern string) error {
	if p.fail != nil {
		return p.fail
	}
	p.patterns = append(p.patterns, pattern)
	return nil
}

func TestCacheKey(t *testing.T) {
	type filters struct {
		Category string   `json:"category"`
		SKUs     []string `json:"skus"`
	}

	a, err := CacheKey(ViewSalesList, filters{Category: "Drinks"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := CacheKey(ViewSalesList, filters{Category: "Drinks"})
	c, _ := CacheKey(ViewSalesList, filters{Category: "Snacks"})
	d, _ := CacheKey(ViewItemList, filters{Category: "Drinks"})

	if a != b {
		t.Errorf("same filters gave %q and %q", a, b)
	}
	if a == c || a == d {
		t.Errorf("keys collide: %q %q %q", a, c, d)
	}
	if !strings.HasPrefix(a, "readmodel:sales_list:") {
		t.Errorf("unexpected key %q", a)
	}

	if _, err := CacheKey(ViewSalesList, func() {}); err == nil {
		t.Error("expected error for unencodable filters")
	}
}

func TestInvalidate(t *testing.T) {
	rec := &patternRecorder{}
	if err := Invalidate(context.Background(), rec, ViewItemList, ViewSalesList); err != nil {
		t.Fatal(err)
	}
	want := []string{"readmodel:item_list:*", "readmodel:sales_list:*"}
	if !reflect.DeepEqual(rec.patterns, want) {
		t.Fatalf("patterns = %v, want %v", rec.patterns, want)
	}

	rec = &patternRecorder{fail: errors.New("redis down")}
	if err := Invalidate(context.Background(), rec, ViewItemList); err == nil {
		t.Fatal("expected cache error")
	}
}
