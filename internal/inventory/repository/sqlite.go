package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"github.com/fekuna/omnipos-stock-service/internal/schema"
	"github.com/fekuna/omnipos-stock-service/internal/selection"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB   *sqlx.DB
	exec *readmodel.Executor
}

func NewSQLiteRepository(db *sqlx.DB, exec *readmodel.Executor) *SQLiteRepository {
	return &SQLiteRepository{DB: db, exec: exec}
}

// A price row and a stock row exist in pairs: writing one facet creates the
// other with a zero value when it is missing.
const (
	upsertPrice = `INSERT INTO item_supplier (item_id, supplier_id, unit_price)
		VALUES (:item_id, :supplier_id, :unit_price)
		ON CONFLICT (item_id, supplier_id) DO UPDATE SET unit_price = excluded.unit_price`
	ensureStock = `INSERT OR IGNORE INTO item_supplier_inventory (item_id, supplier_id, available_quantity)
		VALUES (?, ?, 0)`
	upsertStock = `INSERT INTO item_supplier_inventory (item_id, supplier_id, available_quantity)
		VALUES (:item_id, :supplier_id, :available_quantity)
		ON CONFLICT (item_id, supplier_id) DO UPDATE SET available_quantity = excluded.available_quantity`
	ensurePrice = `INSERT OR IGNORE INTO item_supplier (item_id, supplier_id, unit_price)
		VALUES (?, ?, 0)`
)

func (r *SQLiteRepository) UpsertPrice(ctx context.Context, info model.ProductSupplierInfo) error {
	return sqlite.Classify(r.writePair(ctx, upsertPrice, info, ensureStock, info.ItemID, info.SupplierID))
}

func (r *SQLiteRepository) UpsertQuantity(ctx context.Context, inv model.ProductSupplierInventory) error {
	return sqlite.Classify(r.writePair(ctx, upsertStock, inv, ensurePrice, inv.ItemID, inv.SupplierID))
}

func (r *SQLiteRepository) writePair(ctx context.Context, upsert string, row interface{}, ensure string, itemID, supplierID int64) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, upsert, row); err != nil {
		return classify(err, itemID, supplierID)
	}
	if _, err := tx.ExecContext(ctx, ensure, itemID, supplierID); err != nil {
		return classify(err, itemID, supplierID)
	}
	return tx.Commit()
}

func classify(err error, itemID, supplierID int64) error {
	if sqlite.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: item %d, supplier %d", inventory.ErrUnknownPair, itemID, supplierID)
	}
	return err
}

// Remove drops both the price and the stock row of the pair.
func (r *SQLiteRepository) Remove(ctx context.Context, itemID, supplierID int64) (err error) {
	defer func() { err = sqlite.Classify(err) }()
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var removed int64
	for _, table := range []string{schema.TableItemSupplier, schema.TableItemSupplierStock} {
		res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE item_id = ? AND supplier_id = ?`, itemID, supplierID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed += n
	}
	if removed == 0 {
		return fmt.Errorf("%w: item %d, supplier %d", inventory.ErrNotSupplied, itemID, supplierID)
	}
	return tx.Commit()
}

func (r *SQLiteRepository) DecrementTop(ctx context.Context, itemID int64) (_ *model.ProductSupplierInventory, err error) {
	defer func() { err = sqlite.Classify(err) }()
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := r.exec.Query(ctx, tx, readmodel.ItemTopSupplier, readmodel.Request{Key: readmodel.ID(itemID)})
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, fmt.Errorf("%w: item %d has no suppliers", inventory.ErrOutOfStock, itemID)
	}
	top, err := readmodel.MapStock(res.First())
	if err != nil {
		return nil, err
	}
	if top.AvailableQuantity <= 0 {
		return nil, fmt.Errorf("%w: item %d", inventory.ErrOutOfStock, itemID)
	}

	_, err = tx.ExecContext(ctx, `UPDATE item_supplier_inventory
		SET available_quantity = available_quantity - 1
		WHERE item_id = ? AND supplier_id = ? AND available_quantity > 0`, top.ItemID, top.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	top.AvailableQuantity--
	return &top, nil
}

func (r *SQLiteRepository) ListSales(ctx context.Context, f *dto.SalesFilters) ([]model.SalesLite, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.SalesList, readmodel.Request{Filter: salesFilter(f)})
	if err != nil {
		return nil, err
	}
	return readmodel.MapAll(res, readmodel.MapSalesLite)
}

func salesFilter(f *dto.SalesFilters) selection.Clause {
	if f == nil {
		return selection.Clause{}
	}
	var category selection.Clause
	if name := strings.TrimSpace(f.Category); name != "" {
		category = selection.New(schema.Qualify(schema.TableCategory, schema.ColCategoryName)+" = ?", name)
	}
	skus, _ := selection.BuildInClause(schema.Qualify(schema.TableItem, schema.ColItemSKU), f.SKUs)
	return selection.All(category, skus)
}
