package insights

import "fmt"

// snippetLen caps how much of an unparseable response is kept in a ParseError.
const snippetLen = 200

// ConfigError reports a feature that cannot run because a setting is missing.
type ConfigError struct {
	Feature string
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s disabled: %s is not set", e.Feature, e.Missing)
}

// ParseError reports a provider response that could not be decoded into
// insights, even after repair.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable insights response %q: %v", e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(content string, err error) *ParseError {
	snippet := content
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}
	return &ParseError{Snippet: snippet, Err: err}
}
