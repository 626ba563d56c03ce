package logging_test

import (
	"context"
	"testing"
	"time"

	"scraploot/logging"
	"scraploot/logging/sinks"
)

func newRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	t.Cleanup(func() { router.Close(context.Background()) })
	return router, memory
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	router, memory := newRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "test.debug", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "test.info", Severity: logging.SeverityInfo})

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Type != "test.info" {
		t.Fatalf("expected test.info, got %s", events[0].Type)
	}
}

func TestRouterStampsTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(logging.ClockFunc(func() time.Time { return now }), logging.DefaultConfig(), []logging.NamedSink{{Name: "memory", Sink: memory}})
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{Type: "test", Severity: logging.SeverityInfo})
	events := memory.Events()
	if len(events) != 1 || !events[0].Time.Equal(now) {
		t.Fatalf("expected stamped time %v, got %v", now, events)
	}
}

func TestRouterMergesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"mod": "scraploot"}
	router, memory := newRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "test", Severity: logging.SeverityInfo})
	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Extra["mod"] != "scraploot" {
		t.Fatalf("expected configured field, got %v", events[0].Extra)
	}
}

func TestRouterDropsUntypedEvents(t *testing.T) {
	router, memory := newRouter(t, logging.DefaultConfig())
	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityError})
	if len(memory.Events()) != 0 {
		t.Fatal("untyped events must be ignored")
	}
}

func TestRouterClosedPublishesNothing(t *testing.T) {
	router, memory := newRouter(t, logging.DefaultConfig())
	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	router.Publish(context.Background(), logging.Event{Type: "test", Severity: logging.SeverityInfo})
	if len(memory.Events()) != 0 {
		t.Fatal("closed router must not forward events")
	}
}

func TestRouterStats(t *testing.T) {
	router, _ := newRouter(t, logging.DefaultConfig())
	router.Publish(context.Background(), logging.Event{Type: "a", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "b", Severity: logging.SeverityWarn})

	stats := router.Stats()
	if stats.EventsTotal != 2 {
		t.Fatalf("expected two events recorded, got %+v", stats)
	}
	if stats.ErrorsTotal != 0 {
		t.Fatalf("expected no sink errors, got %+v", stats)
	}
}

func TestWithFieldsDoesNotOverrideEventExtra(t *testing.T) {
	var captured logging.Event
	pub := logging.WithFields(logging.PublisherFunc(func(_ context.Context, e logging.Event) {
		captured = e
	}), map[string]any{"mod": "scraploot"})

	pub.Publish(context.Background(), logging.Event{
		Type:     "test",
		Severity: logging.SeverityInfo,
		Extra:    map[string]any{"mod": "other"},
	})
	if captured.Extra["mod"] != "other" {
		t.Fatalf("event extra must win over wrapper fields, got %v", captured.Extra)
	}
}
