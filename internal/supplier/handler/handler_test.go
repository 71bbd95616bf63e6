package handler

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database/sqlite"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc/rpctest"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/repository"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/usecase"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestSupplierService(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.OpenMemory(ctx, t.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	log := logger.NewNop()
	repo := repository.NewSQLiteRepository(db, readmodel.NewExecutor(log))
	h := NewSupplierHandler(usecase.NewSupplierUseCase(repo, cache.Noop{}, notify.NewHub(), time.Minute, "US", log), log)
	conn := rpctest.Dial(t, func(s grpc.ServiceRegistrar) { h.Register(s) })

	created, err := rpctest.Call(ctx, conn, ServiceName, "CreateSupplier", map[string]interface{}{
		"code": "ALPHA",
		"name": "Alpha Foods",
		"contacts": []interface{}{
			map[string]interface{}{"type": "Email", "value": "sales@alpha.test"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	id := created["id"].(float64)

	list, err := rpctest.Call(ctx, conn, ServiceName, "ListSuppliers", nil)
	if err != nil {
		t.Fatal(err)
	}
	items := list["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("unexpected %v", list)
	}
	row := items[0].(map[string]interface{})
	if row["default_email"] != "sales@alpha.test" || row["default_phone"] != nil || row["item_count"] != float64(0) {
		t.Fatalf("unexpected row %v", row)
	}

	resolved, err := rpctest.Call(ctx, conn, ServiceName, "ResolveCode", map[string]interface{}{"code": "ALPHA"})
	if err != nil || resolved["id"] != id {
		t.Fatalf("ResolveCode = %v, %v", resolved, err)
	}

	_, err = rpctest.Call(ctx, conn, ServiceName, "ResolveCode", map[string]interface{}{"code": ""})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("blank code: %v", err)
	}
	_, err = rpctest.Call(ctx, conn, ServiceName, "GetSupplier", map[string]interface{}{"id": id + 1})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("missing supplier: %v", err)
	}
}
