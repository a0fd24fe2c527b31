package dispatcher

import (
	"fmt"
	"time"

	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/logging"
	"github.com/dshills/commentator/internal/planner"
)

// Dispatcher coordinates planners across multiple cursors.
type Dispatcher struct {
	grammars GrammarSource
	analyzer *analyzer.Analyzer
	planners map[planner.Intent]planner.Planner
	logger   *logging.Logger
	metrics  *Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the transaction logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithWindow bounds the analyzer's look-back window.
func WithWindow(lines int) Option {
	return func(d *Dispatcher) {
		d.analyzer = analyzer.New(analyzer.WithWindow(lines))
	}
}

// WithMetrics sets the metrics collector. Pass nil to disable metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithPlanner overrides the planner bound to p.Intent().
func WithPlanner(p planner.Planner) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.planners[p.Intent()] = p
		}
	}
}

// New creates a Dispatcher resolving grammars through grammars.
func New(grammars GrammarSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		grammars: grammars,
		analyzer: analyzer.New(),
		planners: make(map[planner.Intent]planner.Planner),
		logger:   logging.Nop(),
		metrics:  NewMetrics(),
	}
	for _, intent := range planner.Intents {
		if p, ok := planner.For(intent); ok {
			d.planners[intent] = p
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Dispatch runs intent over every cursor of host and reports whether the
// event was consumed. When it returns false the host buffer and selections
// are untouched.
func (d *Dispatcher) Dispatch(intent planner.Intent, host Host) (handled bool) {
	start := time.Now()
	outcome := OutcomeAbstained
	dropped := 0

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("%v: %s: %v", ErrPanic, intent, r)
			handled = false
			outcome = OutcomePanic
		}
		if d.metrics != nil {
			d.metrics.RecordDispatch(intent, time.Since(start), outcome, dropped)
		}
	}()

	if host == nil || d.grammars == nil {
		return false
	}
	p, ok := d.planners[intent]
	if !ok {
		return false
	}
	sels := host.Selections()
	if len(sels) == 0 {
		return false
	}

	tx := NewTransaction()
	log := d.logger.WithFields(map[string]any{"tx": tx.ID, "intent": intent.String()})

	reqs, owners := d.requests(host, sels, log)
	if len(reqs) == 0 {
		log.Debug("no cursor has a known grammar")
		return false
	}

	plans := p.Plan(reqs)
	if len(plans) != len(reqs) {
		log.Warn("%v: planner returned %d plans for %d cursors", ErrMalformedPlan, len(plans), len(reqs))
		return false
	}
	for i, plan := range plans {
		if plan.Abstained() {
			log.Debug("cursor %d abstained: %s", owners[i], plan.Reason)
			continue
		}
		tx.Add(owners[i], plan)
	}
	if tx.Len() == 0 {
		return false
	}

	edits := tx.Resolve(host)
	for _, drop := range tx.Dropped() {
		log.Warn("dropped cursor %d: %v", drop.Cursor, drop.Err)
	}
	dropped = len(tx.Dropped())
	if len(edits) == 0 {
		return false
	}

	if err := host.Apply(edits); err != nil {
		outcome = OutcomeRejected
		log.Error("%v", fmt.Errorf("%w: %w", ErrBufferApply, err))
		return false
	}

	host.SetSelections(cursor.Normalize(tx.MapSelections(sels)))
	outcome = OutcomeHandled
	log.Debug("applied %d edits for %d cursors", len(edits), tx.Len()-dropped)
	return true
}

// requests analyses every cursor with a known grammar. owners maps each
// request back to its cursor index.
func (d *Dispatcher) requests(host Host, sels []cursor.Selection, log *logging.Logger) (reqs []planner.Request, owners []int) {
	for i, sel := range sels {
		pos := sel.Cursor()
		lang := host.LanguageAt(pos)
		g, err := d.grammars.Lookup(lang)
		if err != nil {
			log.Debug("cursor %d at %s: %v", i, pos, err)
			continue
		}
		reqs = append(reqs, planner.Request{
			Context:   d.analyzer.Analyze(host, pos, g),
			Selection: sel,
			Source:    host,
		})
		owners = append(owners, i)
	}
	return reqs, owners
}
