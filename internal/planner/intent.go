package planner

import (
	"fmt"
	"strings"
)

// Intent is a key-driven editing intent.
type Intent uint8

const (
	// IntentContinue continues a comment onto a new line (Enter).
	IntentContinue Intent = iota
	// IntentAlign aligns comment text at the cursor (Tab).
	IntentAlign
	// IntentToggle toggles comment markers on lines (Inline).
	IntentToggle
)

// Intents lists every intent in table order.
var Intents = []Intent{IntentContinue, IntentAlign, IntentToggle}

// String returns the key name bound to the intent.
func (i Intent) String() string {
	switch i {
	case IntentContinue:
		return "enter"
	case IntentAlign:
		return "tab"
	case IntentToggle:
		return "inline"
	default:
		return fmt.Sprintf("intent(%d)", uint8(i))
	}
}

// ParseIntent parses a key or intent name.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enter", "continue", "newline":
		return IntentContinue, nil
	case "tab", "align":
		return IntentAlign, nil
	case "inline", "toggle", "comment":
		return IntentToggle, nil
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

// table is the static intent to planner dispatch table.
var table = [...]Planner{
	IntentContinue: Continue{},
	IntentAlign:    Align{},
	IntentToggle:   Toggle{},
}

// For returns the planner bound to intent.
func For(intent Intent) (Planner, bool) {
	if int(intent) >= len(table) {
		return nil, false
	}
	return table[intent], true
}
