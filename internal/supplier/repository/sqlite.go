package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"github.com/fekuna/omnipos-stock-service/internal/supplier"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/dto"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB   *sqlx.DB
	exec *readmodel.Executor
}

func NewSQLiteRepository(db *sqlx.DB, exec *readmodel.Executor) *SQLiteRepository {
	return &SQLiteRepository{DB: db, exec: exec}
}

type supplierRecord struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Code string `db:"code"`
}

type contactRecord struct {
	SupplierID int64  `db:"supplier_id"`
	Type       string `db:"type"`
	Value      string `db:"value"`
	IsDefault  bool   `db:"is_default"`
	Position   int    `db:"position"`
}

const (
	insertSupplier = `INSERT INTO supplier (name, code) VALUES (:name, :code)`
	updateSupplier = `UPDATE supplier SET name = :name, code = :code WHERE id = :id`
	insertContact  = `INSERT INTO supplier_contact (supplier_id, contact_type_id, value, is_default, position)
		VALUES (:supplier_id, (SELECT id FROM contact_type WHERE name = :type), :value, :is_default, :position)`
)

func (r *SQLiteRepository) Create(ctx context.Context, s model.Supplier) (_ int64, err error) {
	defer func() { err = sqlite.Classify(err) }()
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, insertSupplier, supplierRecord{Name: s.Name, Code: s.Code})
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", supplier.ErrCodeExists, s.Code)
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertContacts(ctx, tx, id, s.Contacts); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites the supplier row and replaces its contacts.
func (r *SQLiteRepository) Update(ctx context.Context, s model.Supplier) (err error) {
	defer func() { err = sqlite.Classify(err) }()
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, updateSupplier, supplierRecord{ID: s.ID, Name: s.Name, Code: s.Code})
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q", supplier.ErrCodeExists, s.Code)
		}
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return supplier.ErrSupplierNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM supplier_contact WHERE supplier_id = ?`, s.ID); err != nil {
		return err
	}
	if err := insertContacts(ctx, tx, s.ID, s.Contacts); err != nil {
		return err
	}
	return tx.Commit()
}

func insertContacts(ctx context.Context, tx *sqlx.Tx, supplierID int64, contacts []model.SupplierContact) error {
	for i, c := range contacts {
		rec := contactRecord{SupplierID: supplierID, Type: c.Type, Value: c.Value, IsDefault: c.IsDefault, Position: i}
		if _, err := tx.NamedExecContext(ctx, insertContact, rec); err != nil {
			return fmt.Errorf("insert %s contact: %w", c.Type, err)
		}
	}
	return nil
}

// FindByID returns nil when the supplier does not exist.
func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*dto.SupplierDetail, error) {
	req := readmodel.Request{Key: readmodel.ID(id)}

	detail, err := r.exec.Query(ctx, r.DB, readmodel.SupplierDetail, req)
	if err != nil {
		return nil, err
	}
	if detail.Empty() {
		return nil, nil
	}
	contacts, err := r.exec.Query(ctx, r.DB, readmodel.SupplierContacts, req)
	if err != nil {
		return nil, err
	}
	items, err := r.exec.Query(ctx, r.DB, readmodel.SupplierItems, req)
	if err != nil {
		return nil, err
	}

	s, err := readmodel.MapSupplier(detail.First(), contacts.Rows, items.Rows)
	if err != nil {
		return nil, err
	}
	lite, err := readmodel.MapAll(items, readmodel.MapSupplierItem)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierDetail{Supplier: s, Items: lite}, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.SupplierLite, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.SupplierList, readmodel.Request{})
	if err != nil {
		return nil, err
	}
	return readmodel.MapAll(res, readmodel.MapSupplierLite)
}

func (r *SQLiteRepository) FindIDByCode(ctx context.Context, code string) (int64, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.SupplierByCode, readmodel.Request{Key: code})
	if err != nil {
		return 0, err
	}
	if res.Empty() {
		return 0, nil
	}
	return readmodel.MapSupplierID(res.First())
}

// Delete removes the supplier with its contacts, prices and stock.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func() { err = sqlite.Classify(err) }()
	res, err := r.DB.ExecContext(ctx, `DELETE FROM supplier WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return supplier.ErrSupplierNotFound
	}
	return nil
}
