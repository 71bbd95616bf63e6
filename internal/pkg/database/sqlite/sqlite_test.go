package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/schema"
	"github.com/mattn/go-sqlite3"
)

func TestDSN(t *testing.T) {
	got := DSN("stock.db", 2*time.Second)
	if !strings.HasPrefix(got, "file:stock.db?") || !strings.Contains(got, "_busy_timeout=2000") || !strings.Contains(got, "_foreign_keys=on") {
		t.Fatalf("unexpected dsn %q", got)
	}
	got = DSN("file:x?mode=memory", 0)
	if got != "file:x?mode=memory&_foreign_keys=on" {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestMigrateMatchesSchemaRegistry(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx, t.Name())
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	// Running twice must be harmless.
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	for table, want := range schema.Columns {
		var got []string
		if err := db.SelectContext(ctx, &got, `SELECT name FROM pragma_table_info(?) ORDER BY cid`, table); err != nil {
			t.Fatalf("table_info %s: %v", table, err)
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("%s columns = %v, registry says %v", table, got, want)
		}
	}
}

func TestSeedCategoriesOnce(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx, t.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	n, err := SeedCategories(ctx, db)
	if err != nil || n != len(model.PreloadCategories) {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = SeedCategories(ctx, db)
	if err != nil || n != 0 {
		t.Fatalf("second seed: n=%d err=%v", n, err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx, t.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO item_image (item_id, image_uri) VALUES (999, 'x')`)
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx, t.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `INSERT INTO category (name) VALUES ('Tea')`); err != nil {
		t.Fatal(err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO category (name) VALUES ('Tea')`)
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if IsUniqueViolation(nil) || IsForeignKeyViolation(err) {
		t.Fatal("misclassified error")
	}
}

func TestClassify(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx, t.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO no_such_table (id) VALUES (1)`)
	if got := Classify(err); !errors.Is(got, apperr.ErrUnavailable) {
		t.Errorf("engine error: %v", got)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO item (name, sku) VALUES (NULL, 'X')`)
	if got := Classify(err); !errors.Is(got, apperr.ErrInvalid) {
		t.Errorf("constraint error: %v", got)
	}
	if got := Classify(sqlite3.Error{Code: sqlite3.ErrBusy}); !errors.Is(got, apperr.ErrUnavailable) {
		t.Errorf("busy: %v", got)
	}

	kinded := fmt.Errorf("item %w", apperr.ErrNotFound)
	if got := Classify(kinded); got != kinded {
		t.Errorf("kinded error rewrapped: %v", got)
	}
	if got := Classify(context.Canceled); got != context.Canceled {
		t.Errorf("ctx error rewrapped: %v", got)
	}
	plain := errors.New("boom")
	if got := Classify(plain); got != plain {
		t.Errorf("plain error rewrapped: %v", got)
	}
	if Classify(nil) != nil {
		t.Error("nil must stay nil")
	}
}
