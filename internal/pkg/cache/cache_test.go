package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	var l Locker = Noop{}
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", []int{1}, time.Minute); err != nil {
		t.Fatal(err)
	}
	var out []int
	if hit, err := c.GetJSON(ctx, "k", &out); hit || err != nil {
		t.Fatalf("noop should always miss: hit=%v err=%v", hit, err)
	}
	release, err := l.Obtain(ctx, "lock", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	release()
}

func TestRedisClient(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("set REDIS_TEST_ADDR to run redis tests")
	}
	ctx := context.Background()
	r, err := NewRedisClient(&Config{Addr: addr})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.SetJSON(ctx, "test:list:a", map[string]int{"n": 3}, time.Minute); err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if hit, err := r.GetJSON(ctx, "test:list:a", &got); !hit || err != nil || got["n"] != 3 {
		t.Fatalf("hit=%v err=%v got=%v", hit, err, got)
	}
	if err := r.DeletePattern(ctx, "test:list:*"); err != nil {
		t.Fatal(err)
	}
	if hit, _ := r.GetJSON(ctx, "test:list:a", &got); hit {
		t.Fatal("key should be gone")
	}

	release, err := r.Obtain(ctx, "test:lock", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Obtain(ctx, "test:lock", time.Second); err == nil {
		t.Fatal("second obtain should fail while held")
	}
	release()
}
