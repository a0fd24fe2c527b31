package grammar

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry maps language identifiers to grammars.
//
// Registration happens at configuration time. Lookups happen on every key
// event; Replace swaps the whole set in one step so a reload never exposes
// a partially populated registry.
type Registry struct {
	mu sync.RWMutex

	grammars   map[string]Grammar
	aliases    map[string]string
	extensions map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		grammars:   make(map[string]Grammar),
		aliases:    make(map[string]string),
		extensions: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry populated with Builtins.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, g := range Builtins() {
		// Built-in grammars are validated by tests.
		_ = r.Register(g)
	}
	return r
}

// Register adds or overrides the grammar for g.Language.
func (r *Registry) Register(g Grammar) error {
	if err := g.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(g.clone())
	return nil
}

// RegisterAll registers every grammar, stopping at the first invalid one.
// Grammars before the invalid one stay registered.
func (r *Registry) RegisterAll(gs []Grammar) error {
	for _, g := range gs {
		if err := r.Register(g); err != nil {
			return err
		}
	}
	return nil
}

// Replace validates gs and, if all are valid, replaces the registry
// contents with them. On error the registry is unchanged.
func (r *Registry) Replace(gs []Grammar) error {
	next := NewRegistry()
	for _, g := range gs {
		if err := g.Validate(); err != nil {
			return err
		}
		next.add(g.clone())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.grammars, r.aliases, r.extensions = next.grammars, next.aliases, next.extensions
	return nil
}

// add stores g. Callers hold the write lock.
func (r *Registry) add(g Grammar) {
	r.grammars[g.Language] = g
	delete(r.aliases, g.Language)
	for _, alias := range g.Aliases {
		if a := normalize(alias); a != "" && a != g.Language {
			r.aliases[a] = g.Language
		}
	}
	for _, ext := range g.Extensions {
		r.extensions[normalizeExt(ext)] = g.Language
	}
}

// Lookup returns the grammar registered for lang or one of its aliases.
// It fails with ErrUnknownLanguage when none is registered.
func (r *Registry) Lookup(lang string) (Grammar, error) {
	key := normalize(lang)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if g, ok := r.grammars[key]; ok {
		return g.clone(), nil
	}
	if canonical, ok := r.aliases[key]; ok {
		if g, ok := r.grammars[canonical]; ok {
			return g.clone(), nil
		}
	}
	return Grammar{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}

// Has reports whether a grammar is registered for lang.
func (r *Registry) Has(lang string) bool {
	_, err := r.Lookup(lang)
	return err == nil
}

// Languages returns the registered language identifiers, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.grammars))
	for lang := range r.grammars {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// All returns every registered grammar, sorted by language.
func (r *Registry) All() []Grammar {
	langs := r.Languages()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Grammar, 0, len(langs))
	for _, lang := range langs {
		if g, ok := r.grammars[lang]; ok {
			out = append(out, g.clone())
		}
	}
	return out
}

// Len returns the number of registered grammars.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.grammars)
}

// LanguageForPath returns the language registered for the file's extension
// or base name, or "" if none matches.
func (r *Registry) LanguageForPath(path string) string {
	base := strings.ToLower(filepath.Base(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if lang, ok := r.extensions[base]; ok {
		return lang
	}
	if ext := filepath.Ext(base); ext != "" {
		if lang, ok := r.extensions[ext]; ok {
			return lang
		}
	}
	return ""
}

// Clear removes every grammar.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grammars = make(map[string]Grammar)
	r.aliases = make(map[string]string)
	r.extensions = make(map[string]string)
}

// normalizeExt lowercases an extension or file name entry. Entries starting
// with a dot are extensions; anything else is matched against the base name.
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimSpace(ext))
}
