package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := Wrap(zap.New(core)).With(zap.String("component", "readmodel"))

	log.Debug("dropped")
	log.Info("query executed", zap.String("view", "sales_list"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["component"] != "readmodel" || ctx["view"] != "sales_list" {
		t.Fatalf("unexpected context %v", ctx)
	}
}

func TestNewZapLoggerBadLevelFallsBack(t *testing.T) {
	l := NewZapLogger(&ZapLoggerConfig{Level: "nope", Encoding: "json", DisableStacktrace: true})
	if l == nil {
		t.Fatal("expected logger")
	}
}
