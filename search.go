package marq

import (
	"fmt"
	"net/url"
	"strings"
)

// SearchEngine maps a query to a search URL. BuildURL is responsible for
// percent-encoding the query.
type SearchEngine struct {
	Name     string
	BuildURL func(query string) string
}

// EngineFromTemplate builds a SearchEngine from a URL format string with a
// single %s placeholder for the percent-encoded query.
func EngineFromTemplate(name, template string) SearchEngine {
	return SearchEngine{
		Name: name,
		BuildURL: func(query string) string {
			return fmt.Sprintf(template, url.QueryEscape(query))
		},
	}
}

// Registry is an ordered list of search engines. The order engines were
// added is the order they appear in the chooser.
type Registry struct {
	engines []SearchEngine
}

// NewRegistry creates a registry with the given engines, in order.
func NewRegistry(engines ...SearchEngine) *Registry {
	return &Registry{engines: engines}
}

// DefaultRegistry returns the built-in engine list.
func DefaultRegistry() *Registry {
	return NewRegistry(
		EngineFromTemplate("Google", "https://www.google.com/search?q=%s"),
		EngineFromTemplate("DuckDuckGo", "https://duckduckgo.com/?q=%s"),
		EngineFromTemplate("Wikipedia", "https://en.wikipedia.org/wiki/Special:Search?search=%s"),
	)
}

// Add appends an engine to the registry.
func (r *Registry) Add(engine SearchEngine) {
	r.engines = append(r.engines, engine)
}

// Names returns the engine display labels in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.engines))
	for i, e := range r.engines {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an engine by its display label.
func (r *Registry) Lookup(name string) (SearchEngine, bool) {
	for _, e := range r.engines {
		if e.Name == name {
			return e, true
		}
	}
	return SearchEngine{}, false
}

// Default returns the first engine in the registry, used by report listing
// actions that search without a chooser.
func (r *Registry) Default() (SearchEngine, bool) {
	if len(r.engines) == 0 {
		return SearchEngine{}, false
	}
	return r.engines[0], true
}

// URLOpener asks the host to open a URL in the user's browser. Opening is
// fire-and-forget; no completion signal is expected.
type URLOpener interface {
	OpenURL(url string) error
}

// URLOpenerFunc adapts a function to the URLOpener interface.
type URLOpenerFunc func(url string) error

// OpenURL implements URLOpener.
func (f URLOpenerFunc) OpenURL(url string) error { return f(url) }

// Dispatcher routes a query to a chosen search engine and asks the host to
// open the resulting URL.
type Dispatcher struct {
	registry *Registry
	opener   URLOpener
}

// NewDispatcher creates a dispatcher over the given registry and opener.
func NewDispatcher(registry *Registry, opener URLOpener) *Dispatcher {
	return &Dispatcher{registry: registry, opener: opener}
}

// Registry returns the dispatcher's engine registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Search opens the URL the named engine builds for the query. It fails
// with ErrNoQuery for an empty query and ErrNoEngineSelected when the
// engine name is empty or unknown; in both cases no URL is opened.
func (d *Dispatcher) Search(query, engineName string) error {
	if strings.TrimSpace(query) == "" {
		return ErrNoQuery
	}

	if engineName == "" {
		return ErrNoEngineSelected
	}

	engine, ok := d.registry.Lookup(engineName)
	if !ok {
		return ErrNoEngineSelected
	}

	return d.opener.OpenURL(engine.BuildURL(query))
}

// SearchDefault opens the URL the registry's first engine builds for the
// query. Used by report listing actions, which search with a fixed default
// engine instead of a chooser.
func (d *Dispatcher) SearchDefault(query string) error {
	engine, ok := d.registry.Default()
	if !ok {
		return ErrNoEngineSelected
	}
	return d.Search(query, engine.Name)
}
