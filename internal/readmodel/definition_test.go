package readmodel

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-stock-service/internal/selection"
)

func TestBuildKeyedViewRejectsBadKeys(t *testing.T) {
	for _, key := range []string{"", "abc", "0", "-3", "1.5"} {
		if _, _, err := ItemDetail.Build(Request{Key: key}); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ItemDetail key %q: got %v, want ErrInvalidKey", key, err)
		}
	}
	for _, key := range []string{"", "   "} {
		if _, _, err := ItemBySKU.Build(Request{Key: key}); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ItemBySKU key %q: got %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestBuildItemDetail(t *testing.T) {
	sql, args, err := ItemDetail.Build(Request{Key: " 42 "})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasSuffix(sql, "WHERE item.id = ?") {
		t.Errorf("unexpected sql %q", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(42)}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildArgumentOrder(t *testing.T) {
	filter, _ := selection.BuildInClause("supplier.code", []string{"A", "B"})
	sql, args, err := SupplierList.Build(Request{Filter: filter})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []interface{}{"Phone", true, "Email", true, "A", "B"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	if strings.Count(sql, "?") != len(want) {
		t.Fatalf("%d placeholders for %d args in %q", strings.Count(sql, "?"), len(want), sql)
	}
	if !strings.Contains(sql, "WHERE supplier.code = ? OR supplier.code = ? ORDER BY") {
		t.Errorf("filter not rendered verbatim: %q", sql)
	}
}

func TestBuildSalesListWhere(t *testing.T) {
	sql, args, err := SalesList.Build(Request{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, frag := range []string{
		"(item_image.is_default IS NULL OR item_image.is_default = ?)",
		"item_supplier_inventory.supplier_id = (SELECT top_stock.supplier_id FROM item_supplier_inventory AS top_stock WHERE top_stock.item_id = item.id ORDER BY top_stock.available_quantity DESC LIMIT 1)",
		"item_supplier.supplier_id = item_supplier_inventory.supplier_id",
		"AS total_available",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("sales list sql missing %q", frag)
		}
	}
	if !reflect.DeepEqual(args, []interface{}{true}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildLimit(t *testing.T) {
	sql, _, err := ItemTopSupplier.Build(Request{Key: "1"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(sql, "ORDER BY item_supplier_inventory.available_quantity DESC LIMIT 1") {
		t.Errorf("unexpected sql %q", sql)
	}
}

func TestDefinitionsHaveUniqueColumnNames(t *testing.T) {
	for view, def := range Definitions {
		if def.View != view {
			t.Errorf("%s registered under %s", def.View, view)
		}
		seen := map[string]bool{}
		for _, name := range def.Names() {
			if seen[name] {
				t.Errorf("%s: duplicate column %s", view, name)
			}
			seen[name] = true
		}
	}
}
