package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/commentator/internal/grammar"
)

// ModuleName is the global table grammar scripts call into.
const ModuleName = "commentator"

// Version is exposed to scripts as commentator.version.
var Version = "dev"

// grammarFields maps script table keys to their kinds.
var grammarFields = map[string]lua.LValueType{
	"language":     lua.LTString,
	"line":         lua.LTString,
	"block_start":  lua.LTString,
	"block_end":    lua.LTString,
	"continuation": lua.LTString,
	"nesting":      lua.LTBool,
	"aliases":      lua.LTTable,
	"extensions":   lua.LTTable,
}

// collector accumulates grammars registered by a script.
type collector struct {
	grammars []grammar.Grammar
}

// install registers the commentator module on s.
func (c *collector) install(s *State) {
	mod := s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"grammar": c.register,
	})
	if mod != nil {
		mod.RawSetString("version", lua.LString(Version))
	}
}

// register implements commentator.grammar{...}.
func (c *collector) register(L *lua.LState) int {
	t := L.CheckTable(1)

	var unknown []string
	t.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			L.ArgError(1, fmt.Sprintf("non-string key %s", k))
			return
		}
		want, known := grammarFields[string(key)]
		if !known {
			unknown = append(unknown, string(key))
			return
		}
		// Lists may be given as a single string.
		if want == lua.LTTable && v.Type() == lua.LTString {
			return
		}
		if v.Type() != want {
			L.ArgError(1, fmt.Sprintf("field %q must be a %s, got %s", key, want, v.Type()))
		}
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		L.ArgError(1, fmt.Sprintf("unknown fields %v", unknown))
	}

	g := grammar.Grammar{
		Language:          str(t, "language"),
		LineMarker:        str(t, "line"),
		BlockStart:        str(t, "block_start"),
		BlockEnd:          str(t, "block_end"),
		BlockContinuation: str(t, "continuation"),
		AllowsNesting:     lua.LVAsBool(t.RawGetString("nesting")),
		Aliases:           list(t, "aliases"),
		Extensions:        list(t, "extensions"),
	}
	if err := g.Validate(); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}

	c.grammars = append(c.grammars, g)
	return 0
}

func str(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func list(t *lua.LTable, key string) []string {
	switch v := t.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.Len(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	}
	return nil
}

// LoadGrammars runs the script at path in a fresh sandboxed state and
// returns the grammars it registered, in registration order.
func LoadGrammars(path string, opts ...StateOption) ([]grammar.Grammar, error) {
	return load(func(s *State) error { return s.DoFile(path) }, opts)
}

// LoadGrammarsString runs a grammar script held in memory.
func LoadGrammarsString(code string, opts ...StateOption) ([]grammar.Grammar, error) {
	return load(func(s *State) error { return s.DoString(code) }, opts)
}

func load(run func(*State) error, opts []StateOption) ([]grammar.Grammar, error) {
	s := NewState(opts...)
	defer s.Close()

	var c collector
	c.install(s)
	if err := run(s); err != nil {
		return nil, err
	}
	return c.grammars, nil
}
