package buffer

import "strings"

// fenceMarkers are the Markdown code fence openers recognised when resolving
// embedded languages.
var fenceMarkers = []string{"```", "~~~"}

// Language returns the buffer's default language identifier.
func (b *Buffer) Language() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.language
}

// SetLanguage changes the buffer's default language identifier.
func (b *Buffer) SetLanguage(lang string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.language = lang
}

// SetLineLanguage overrides the language for lines in [start, end].
// An empty lang removes the override.
func (b *Buffer) SetLineLanguage(start, end int, lang string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for line := start; line <= end; line++ {
		if lang == "" {
			delete(b.overrides, line)
			continue
		}
		b.overrides[line] = lang
	}
}

// LanguageAt returns the language identifier in effect at p.
//
// Explicit line overrides win. Markdown buffers resolve fenced code blocks
// to the fence's info string; the fence lines themselves stay Markdown.
func (b *Buffer) LanguageAt(p Point) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if lang, ok := b.overrides[p.Line]; ok {
		return lang
	}
	if b.language == "markdown" && p.Line >= 0 && p.Line < len(b.lines) {
		if lang := fenceLanguage(b.lines, p.Line); lang != "" {
			return lang
		}
	}
	return b.language
}

// fenceLanguage returns the info-string language of the fenced code block
// containing line, or "" when line is outside any fence.
func fenceLanguage(lines []string, line int) string {
	var (
		open   bool
		marker string
		lang   string
	)
	for i := 0; i <= line; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !open {
			for _, m := range fenceMarkers {
				if strings.HasPrefix(trimmed, m) {
					open, marker = true, m
					lang = strings.ToLower(strings.TrimSpace(strings.TrimLeft(trimmed, m[:1])))
					if f := strings.Fields(lang); len(f) > 0 {
						lang = f[0]
					}
					break
				}
			}
			if open && i == line {
				return ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, marker) && strings.Trim(trimmed, marker[:1]) == "" {
			open = false
			if i == line {
				return ""
			}
		}
	}
	if open {
		return lang
	}
	return ""
}
