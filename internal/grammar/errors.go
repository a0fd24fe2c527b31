package grammar

import "errors"

// Errors returned by grammar operations.
var (
	// ErrUnknownLanguage indicates no grammar is registered for a language.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidGrammar indicates a grammar description is unusable.
	ErrInvalidGrammar = errors.New("invalid grammar")
)
