package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"time"
)

type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans events out to its configured sinks. Unlike a long-running game
// loop there is no backlog to absorb here: the derivation pass is synchronous
// and run-to-completion, so the router writes through in the caller's
// goroutine and only guards itself against concurrent sink teardown.
type Router struct {
	mu          sync.Mutex
	sinks       []NamedSink
	clock       Clock
	fallback    *log.Logger
	closed      bool
	minSeverity Severity
	fields      map[string]any

	eventsTotal uint64
	errorsTotal uint64
}

type RouterStats struct {
	EventsTotal uint64
	ErrorsTotal uint64
}

func NewRouter(clock Clock, cfg Config, namedSinks []NamedSink) (*Router, error) {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	r := &Router{
		clock:       clock,
		fallback:    log.New(os.Stderr, "[logging] ", log.LstdFlags),
		minSeverity: cfg.MinimumSeverity,
		fields:      cfg.CloneFields(),
	}
	for _, named := range namedSinks {
		if named.Sink == nil {
			continue
		}
		r.sinks = append(r.sinks, named)
	}
	return r, nil
}

func (r *Router) Publish(ctx context.Context, event Event) {
	if event.Type == "" {
		return
	}
	if event.Severity < r.minSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if len(r.fields) > 0 {
		event = cloneEvent(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.eventsTotal++
	for _, named := range r.sinks {
		if err := named.Sink.Write(event); err != nil {
			r.errorsTotal++
			r.fallback.Printf("sink %s failed: %v", named.Name, err)
		}
	}
}

func (r *Router) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	var firstErr error
	for _, named := range r.sinks {
		if err := named.Sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) Stats() RouterStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RouterStats{
		EventsTotal: r.eventsTotal,
		ErrorsTotal: r.errorsTotal,
	}
}
