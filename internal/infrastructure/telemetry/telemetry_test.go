package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	shutdown()
}

func TestInit_WritesSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	path := filepath.Join(t.TempDir(), "traces", "ishakiro.log")
	shutdown, err := Init(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "api GET /api/items/")
	span.End()
	shutdown()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read traces: %v", err)
	}
	if !strings.Contains(string(data), "api GET /api/items/") {
		t.Errorf("span not exported: %s", data)
	}
}
