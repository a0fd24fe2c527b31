package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/commentator/internal/planner"
)

// Outcome classifies how a dispatch ended.
type Outcome uint8

const (
	// OutcomeHandled means edits were applied and the event was consumed.
	OutcomeHandled Outcome = iota
	// OutcomeAbstained means no cursor produced a usable plan.
	OutcomeAbstained
	// OutcomeRejected means the host refused the transaction.
	OutcomeRejected
	// OutcomePanic means a planner panicked and the event was not handled.
	OutcomePanic
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHandled:
		return "handled"
	case OutcomeAbstained:
		return "abstained"
	case OutcomeRejected:
		return "rejected"
	case OutcomePanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	intents map[planner.Intent]*IntentMetrics

	totalDispatches uint64
	totalHandled    uint64
	totalDropped    uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// IntentMetrics holds metrics for one intent.
type IntentMetrics struct {
	Intent        planner.Intent
	DispatchCount uint64
	HandledCount  uint64
	DroppedPlans  uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastOutcome   Outcome
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		intents: make(map[planner.Intent]*IntentMetrics),
	}
}

// RecordDispatch records one dispatch and the number of plans it dropped.
func (m *Metrics) RecordDispatch(intent planner.Intent, duration time.Duration, outcome Outcome, dropped int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	m.totalDropped += uint64(dropped)

	im := m.intents[intent]
	if im == nil {
		im = &IntentMetrics{Intent: intent}
		m.intents[intent] = im
	}
	im.DispatchCount++
	im.DroppedPlans += uint64(dropped)
	im.TotalDuration += duration
	im.LastOutcome = outcome
	im.LastDispatch = time.Now()
	if duration > im.MaxDuration {
		im.MaxDuration = duration
	}

	switch outcome {
	case OutcomeHandled:
		m.totalHandled++
		im.HandledCount++
	case OutcomePanic:
		m.totalPanics++
	}
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalHandled returns the number of dispatches that consumed the event.
func (m *Metrics) TotalHandled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalHandled
}

// TotalDropped returns the number of plans dropped as malformed or conflicting.
func (m *Metrics) TotalDropped() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDropped
}

// TotalPanics returns the number of recovered planner panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// IntentStats returns a copy of the metrics for one intent, or nil.
func (m *Metrics) IntentStats(intent planner.Intent) *IntentMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	im := m.intents[intent]
	if im == nil {
		return nil
	}
	c := *im
	return &c
}

// AllStats returns copies of all per-intent metrics, sorted by intent name.
func (m *Metrics) AllStats() []IntentMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]IntentMetrics, 0, len(m.intents))
	for _, im := range m.intents {
		out = append(out, *im)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Intent.String() < out[j].Intent.String()
	})
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.intents = make(map[planner.Intent]*IntentMetrics)
	m.totalDispatches = 0
	m.totalHandled = 0
	m.totalDropped = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
