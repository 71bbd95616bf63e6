package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"github.com/fekuna/omnipos-stock-service/internal/supplier"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/dto"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/repository"
	"github.com/jmoiron/sqlx"
)

func newTestUseCase(t *testing.T) (supplier.UseCase, *sqlx.DB, *notify.Hub) {
	t.Helper()
	db, err := sqlite.OpenMemory(context.Background(), t.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.NewNop()
	hub := notify.NewHub()
	repo := repository.NewSQLiteRepository(db, readmodel.NewExecutor(log))
	return NewSupplierUseCase(repo, cache.Noop{}, hub, time.Minute, "US", log), db, hub
}

func alphaInput() *dto.CreateSupplierInput {
	return &dto.CreateSupplierInput{
		Code: "ALPHA",
		Name: "Alpha Foods",
		Contacts: []dto.ContactInput{
			{Type: model.ContactPhone, Value: "(650) 253-0000"},
			{Type: model.ContactEmail, Value: " Sales@Alpha.test ", IsDefault: true},
			{Type: model.ContactEmail, Value: "ops@alpha.test"},
		},
	}
}

func TestCreateSupplierNormalizesContacts(t *testing.T) {
	uc, _, hub := newTestUseCase(t)
	ctx := context.Background()
	sub := hub.Subscribe(notify.Suppliers)

	s, err := uc.CreateSupplier(ctx, alphaInput())
	if err != nil {
		t.Fatal(err)
	}
	if s.DefaultContact(model.ContactPhone) != "+16502530000" {
		t.Errorf("phone = %q", s.DefaultContact(model.ContactPhone))
	}
	if s.DefaultContact(model.ContactEmail) != "sales@alpha.test" {
		t.Errorf("email = %q", s.DefaultContact(model.ContactEmail))
	}
	select {
	case <-sub.C:
	default:
		t.Fatal("expected suppliers signal")
	}

	detail, err := uc.GetSupplier(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Contacts) != 3 {
		t.Fatalf("contacts %+v", detail.Contacts)
	}
	defaults := 0
	for _, c := range detail.Contacts {
		if c.Type == model.ContactEmail && c.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("expected one default email, got %d", defaults)
	}

	list, err := uc.ListSuppliers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].DefaultPhone == nil || *list[0].DefaultPhone != "+16502530000" {
		t.Fatalf("list %+v", list)
	}
}

func TestCreateSupplierRejects(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.CreateSupplier(ctx, alphaInput()); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.CreateSupplier(ctx, alphaInput()); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate code: %v", err)
	}

	cases := map[string]*dto.CreateSupplierInput{
		"no code":      {Name: "Beta"},
		"bad phone":    {Code: "B", Name: "Beta", Contacts: []dto.ContactInput{{Type: model.ContactPhone, Value: "12"}}},
		"bad email":    {Code: "B", Name: "Beta", Contacts: []dto.ContactInput{{Type: model.ContactEmail, Value: "nope"}}},
		"unknown type": {Code: "B", Name: "Beta", Contacts: []dto.ContactInput{{Type: "Fax", Value: "1"}}},
		"two default emails": {Code: "B", Name: "Beta", Contacts: []dto.ContactInput{
			{Type: model.ContactEmail, Value: "a@beta.test", IsDefault: true},
			{Type: model.ContactEmail, Value: "b@beta.test", IsDefault: true},
		}},
	}
	for name, in := range cases {
		if _, err := uc.CreateSupplier(ctx, in); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("%s: got %v", name, err)
		}
	}
}

func TestUpdateAndDeleteSupplier(t *testing.T) {
	uc, db, _ := newTestUseCase(t)
	ctx := context.Background()

	s, err := uc.CreateSupplier(ctx, alphaInput())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO item (id, name, sku) VALUES (1, 'Cola', 'C')`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO item_supplier (item_id, supplier_id, unit_price) VALUES (1, ?, 2.5)`, s.ID); err != nil {
		t.Fatal(err)
	}

	detail, err := uc.GetSupplier(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Items) != 1 || len(detail.Prices) != 1 || detail.Prices[0].UnitPrice != 2.5 {
		t.Fatalf("items %+v prices %+v", detail.Items, detail.Prices)
	}

	in := &dto.UpdateSupplierInput{ID: s.ID, CreateSupplierInput: dto.CreateSupplierInput{Code: "ALPHA-2", Name: "Alpha"}}
	updated, err := uc.UpdateSupplier(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Code != "ALPHA-2" || len(updated.Contacts) != 0 {
		t.Fatalf("unexpected %+v", updated)
	}
	if id, err := uc.ResolveCode(ctx, "ALPHA-2"); err != nil || id != s.ID {
		t.Fatalf("ResolveCode = %d, %v", id, err)
	}

	if err := uc.DeleteSupplier(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	var prices int
	if err := db.Get(&prices, `SELECT count(*) FROM item_supplier`); err != nil || prices != 0 {
		t.Fatalf("prices left: %d, %v", prices, err)
	}
	if _, err := uc.GetSupplier(ctx, s.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("get deleted: %v", err)
	}
	if err := uc.DeleteSupplier(ctx, s.ID); !errors.Is(err, supplier.ErrSupplierNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}
