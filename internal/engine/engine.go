package engine

import (
	"sync"

	"github.com/dshills/commentator/internal/dispatcher"
	"github.com/dshills/commentator/internal/grammar"
	"github.com/dshills/commentator/internal/logging"
	"github.com/dshills/commentator/internal/planner"
)

// Host is the editing substrate the engine operates on.
type Host = dispatcher.Host

// Engine turns key events on a host document into comment edits.
type Engine struct {
	mu sync.Mutex

	host       Host
	registry   *grammar.Registry
	ownsReg    bool
	dispatcher *dispatcher.Dispatcher
	metrics    *dispatcher.Metrics
	logger     *logging.Logger
	window     int
	destroyed  bool
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithRegistry uses a shared grammar registry. The engine does not clear
// a registry it was given on Destroy.
func WithRegistry(r *grammar.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
			e.ownsReg = false
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWindow bounds how many lines above a cursor are searched for an
// open block comment.
func WithWindow(lines int) Option {
	return func(e *Engine) {
		if lines > 0 {
			e.window = lines
		}
	}
}

// WithMetrics sets the dispatch metrics collector.
func WithMetrics(m *dispatcher.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine bound to host. Without WithRegistry the engine
// owns a registry of the built-in grammars.
func New(host Host, opts ...Option) *Engine {
	e := &Engine{
		host:    host,
		logger:  logging.Nop(),
		metrics: dispatcher.NewMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = grammar.NewDefaultRegistry()
		e.ownsReg = true
	}

	dopts := []dispatcher.Option{
		dispatcher.WithLogger(e.logger.WithComponent("dispatcher")),
		dispatcher.WithMetrics(e.metrics),
	}
	if e.window > 0 {
		dopts = append(dopts, dispatcher.WithWindow(e.window))
	}
	e.dispatcher = dispatcher.New(e.registry, dopts...)
	return e
}

// OnTab handles the Tab key.
func (e *Engine) OnTab() bool {
	return e.Dispatch(planner.IntentAlign)
}

// OnEnter handles the Enter key.
func (e *Engine) OnEnter() bool {
	return e.Dispatch(planner.IntentContinue)
}

// OnInline handles the toggle-comment key.
func (e *Engine) OnInline() bool {
	return e.Dispatch(planner.IntentToggle)
}

// Dispatch runs intent over the host's cursors and reports whether the
// event was handled. A destroyed engine handles nothing.
func (e *Engine) Dispatch(intent planner.Intent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return false
	}
	return e.dispatcher.Dispatch(intent, e.host)
}

// Registry returns the grammar registry, or nil after Destroy.
func (e *Engine) Registry() *grammar.Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry
}

// Metrics returns the dispatch metrics collector.
func (e *Engine) Metrics() *dispatcher.Metrics {
	return e.metrics
}

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed
}

// Destroy releases the engine's references to the host and its grammar
// registry. An owned registry is cleared. Destroy is idempotent.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.ownsReg {
		e.registry.Clear()
	}
	e.registry = nil
	e.host = nil
	e.dispatcher = nil
	e.logger.Debug("engine destroyed")
}
