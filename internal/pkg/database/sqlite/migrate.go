package sqlite

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/schema"
	"github.com/jmoiron/sqlx"
)

const ddl = `
CREATE TABLE IF NOT EXISTS category (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS item (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    sku         TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    category_id INTEGER REFERENCES category (id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS item_image (
    item_id    INTEGER NOT NULL REFERENCES item (id) ON DELETE CASCADE,
    image_uri  TEXT NOT NULL,
    is_default BOOLEAN NOT NULL DEFAULT 0,
    position   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (item_id, image_uri)
);

CREATE TABLE IF NOT EXISTS item_attr (
    item_id    INTEGER NOT NULL REFERENCES item (id) ON DELETE CASCADE,
    attr_name  TEXT NOT NULL,
    attr_value TEXT NOT NULL DEFAULT '',
    position   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (item_id, attr_name)
);

CREATE TABLE IF NOT EXISTS supplier (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS contact_type (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS supplier_contact (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    supplier_id     INTEGER NOT NULL REFERENCES supplier (id) ON DELETE CASCADE,
    contact_type_id INTEGER NOT NULL REFERENCES contact_type (id),
    value           TEXT NOT NULL,
    is_default      BOOLEAN NOT NULL DEFAULT 0,
    position        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS item_supplier (
    item_id     INTEGER NOT NULL REFERENCES item (id) ON DELETE CASCADE,
    supplier_id INTEGER NOT NULL REFERENCES supplier (id) ON DELETE CASCADE,
    unit_price  REAL NOT NULL DEFAULT 0.0 CHECK (unit_price >= 0),
    PRIMARY KEY (item_id, supplier_id)
);

CREATE TABLE IF NOT EXISTS item_supplier_inventory (
    item_id            INTEGER NOT NULL REFERENCES item (id) ON DELETE CASCADE,
    supplier_id        INTEGER NOT NULL REFERENCES supplier (id) ON DELETE CASCADE,
    available_quantity INTEGER NOT NULL DEFAULT 0 CHECK (available_quantity >= 0),
    PRIMARY KEY (item_id, supplier_id)
);

CREATE INDEX IF NOT EXISTS idx_supplier_contact_supplier ON supplier_contact (supplier_id);
CREATE INDEX IF NOT EXISTS idx_item_supplier_supplier ON item_supplier (supplier_id);
CREATE INDEX IF NOT EXISTS idx_item_supplier_inventory_supplier ON item_supplier_inventory (supplier_id);
`

// Migrate creates the schema and seeds lookup rows. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	for _, name := range []string{schema.ContactTypePhone, schema.ContactTypeEmail} {
		if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO contact_type (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed contact types: %w", err)
		}
	}
	return nil
}

// SeedCategories inserts the preload category set when the table is empty.
func SeedCategories(ctx context.Context, db *sqlx.DB) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT count(*) FROM category`); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, name := range model.PreloadCategories {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO category (name) VALUES (?)`, name); err != nil {
			return 0, fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(model.PreloadCategories), nil
}
