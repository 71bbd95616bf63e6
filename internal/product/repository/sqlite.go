package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
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

const (
	insertItem = `INSERT INTO item (name, sku, description, category_id)
		VALUES (:name, :sku, :description, :category_id)`
	updateItem = `UPDATE item
		SET name = :name, sku = :sku, description = :description, category_id = :category_id
		WHERE id = :id`
	insertImages = `INSERT INTO item_image (item_id, image_uri, is_default, position)
		VALUES (:item_id, :image_uri, :is_default, :position)`
	insertAttrs = `INSERT INTO item_attr (item_id, attr_name, attr_value, position)
		VALUES (:item_id, :attr_name, :attr_value, :position)`
)

func (r *SQLiteRepository) Create(ctx context.Context, p model.Product) (_ int64, err error) {
	defer func() { err = sqlite.Classify(err) }()
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	categoryID, err := r.resolveCategory(ctx, tx, p.Category)
	if err != nil {
		return 0, err
	}

	item, _, _ := p.Records(categoryID)
	res, err := tx.NamedExecContext(ctx, insertItem, item)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", product.ErrSKUExists, p.SKU)
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	p.ID = id
	if err := r.insertChildren(ctx, tx, p, categoryID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites the item row and replaces its images and attributes.
func (r *SQLiteRepository) Update(ctx context.Context, p model.Product) (err error) {
	defer func() { err = sqlite.Classify(err) }()
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	categoryID, err := r.resolveCategory(ctx, tx, p.Category)
	if err != nil {
		return err
	}

	item, _, _ := p.Records(categoryID)
	res, err := tx.NamedExecContext(ctx, updateItem, item)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q", product.ErrSKUExists, p.SKU)
		}
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return product.ErrProductNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_image WHERE item_id = ?`, p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM item_attr WHERE item_id = ?`, p.ID); err != nil {
		return err
	}
	if err := r.insertChildren(ctx, tx, p, categoryID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) insertChildren(ctx context.Context, tx *sqlx.Tx, p model.Product, categoryID *int64) error {
	_, images, attrs := p.Records(categoryID)
	if len(images) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertImages, images); err != nil {
			return fmt.Errorf("insert images: %w", err)
		}
	}
	if len(attrs) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertAttrs, attrs); err != nil {
			return fmt.Errorf("insert attributes: %w", err)
		}
	}
	return nil
}

// resolveCategory returns the id of the named category, creating it when it
// does not exist yet. A blank name means no category.
func (r *SQLiteRepository) resolveCategory(ctx context.Context, tx *sqlx.Tx, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	res, err := r.exec.Query(ctx, tx, readmodel.CategoryByName, readmodel.Request{Key: name})
	if err != nil {
		return nil, err
	}
	if !res.Empty() {
		c, err := readmodel.MapCategory(res.First())
		if err != nil {
			return nil, err
		}
		return &c.ID, nil
	}

	ins, err := tx.ExecContext(ctx, `INSERT INTO category (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// FindByID returns nil when the product does not exist.
func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	req := readmodel.Request{Key: readmodel.ID(id)}

	detail, err := r.exec.Query(ctx, r.DB, readmodel.ItemDetail, req)
	if err != nil {
		return nil, err
	}
	if detail.Empty() {
		return nil, nil
	}
	images, err := r.exec.Query(ctx, r.DB, readmodel.ItemImages, req)
	if err != nil {
		return nil, err
	}
	attrs, err := r.exec.Query(ctx, r.DB, readmodel.ItemAttributes, req)
	if err != nil {
		return nil, err
	}

	p, err := readmodel.MapProduct(detail.First(), images.Rows, attrs.Rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) FindIDBySKU(ctx context.Context, sku string) (int64, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.ItemBySKU, readmodel.Request{Key: sku})
	if err != nil {
		return 0, err
	}
	if res.Empty() {
		return 0, nil
	}
	return readmodel.MapItemID(res.First())
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.ProductLite, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.ItemList, readmodel.Request{Filter: listFilter(f)})
	if err != nil {
		return nil, err
	}
	return readmodel.MapAll(res, readmodel.MapProductLite)
}

func listFilter(f *dto.ProductFilters) selection.Clause {
	if f == nil {
		return selection.Clause{}
	}

	var category, search selection.Clause
	if name := strings.TrimSpace(f.Category); name != "" {
		category = selection.New(schema.Qualify(schema.TableCategory, schema.ColCategoryName)+" = ?", name)
	}
	skus, _ := selection.BuildInClause(schema.Qualify(schema.TableItem, schema.ColItemSKU), f.SKUs)
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + term + "%"
		search = selection.Combine(
			selection.New(schema.Qualify(schema.TableItem, schema.ColItemName)+" LIKE ?", like),
			selection.New(schema.Qualify(schema.TableItem, schema.ColItemSKU)+" LIKE ?", like),
			selection.Or,
		)
	}
	return selection.All(category, skus, search)
}

func (r *SQLiteRepository) FindSuppliers(ctx context.Context, id int64) ([]model.ItemSupplierLite, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.ItemSuppliers, readmodel.Request{Key: readmodel.ID(id)})
	if err != nil {
		return nil, err
	}
	return readmodel.MapAll(res, readmodel.MapItemSupplier)
}

// Delete removes the item. Images, attributes, prices and stock go with it.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func() { err = sqlite.Classify(err) }()
	res, err := r.DB.ExecContext(ctx, `DELETE FROM item WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
