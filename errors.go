package marq

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid delimiter configuration.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

var (
	// ErrNoQuery is returned when a search is dispatched with no query text.
	ErrNoQuery = errors.New("no query text to search for")

	// ErrNoEngineSelected is returned when the engine chooser is dismissed
	// without a choice, or names an engine the registry does not know.
	ErrNoEngineSelected = errors.New("no search engine selected")

	// ErrNoEntry is returned when a report listing action lands on a line
	// that carries no passage metadata, such as the header row.
	ErrNoEntry = errors.New("no passage entry on this line")
)
