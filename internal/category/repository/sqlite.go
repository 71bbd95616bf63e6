package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/category"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB   *sqlx.DB
	exec *readmodel.Executor
}

func NewSQLiteRepository(db *sqlx.DB, exec *readmodel.Executor) *SQLiteRepository {
	return &SQLiteRepository{DB: db, exec: exec}
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.CategoryList, readmodel.Request{})
	if err != nil {
		return nil, err
	}
	return readmodel.MapAll(res, readmodel.MapCategory)
}

// FindByName returns nil when no category has that name.
func (r *SQLiteRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	res, err := r.exec.Query(ctx, r.DB, readmodel.CategoryByName, readmodel.Request{Key: name})
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, nil
	}
	c, err := readmodel.MapCategory(res.First())
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, name string) (_ *model.Category, err error) {
	defer func() { err = sqlite.Classify(err) }()
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, `INSERT INTO category (name) VALUES (?)`, name)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", category.ErrCategoryExists, name)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Category{ID: id, Name: name}, nil
}

func (r *SQLiteRepository) Seed(ctx context.Context) (int, error) {
	return sqlite.SeedCategories(ctx, r.DB)
}
