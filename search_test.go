package marq_test

import (
	"errors"
	"testing"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/assert"
)

// recordingOpener collects the URLs a dispatcher asked the host to open.
type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) OpenURL(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

func TestRegistry_Order(t *testing.T) {
	registry := marq.NewRegistry(
		marq.EngineFromTemplate("Alpha", "https://alpha.test/?q=%s"),
		marq.EngineFromTemplate("Beta", "https://beta.test/?q=%s"),
	)
	registry.Add(marq.EngineFromTemplate("Gamma", "https://gamma.test/?q=%s"))

	names := registry.Names()
	assert.Equal(t, len(names), 3)
	assert.Equal(t, names[0], "Alpha")
	assert.Equal(t, names[1], "Beta")
	assert.Equal(t, names[2], "Gamma")

	first, ok := registry.Default()
	assert.True(t, ok)
	assert.Equal(t, first.Name, "Alpha")
}

func TestRegistry_Lookup(t *testing.T) {
	registry := marq.DefaultRegistry()

	engine, ok := registry.Lookup("DuckDuckGo")
	assert.True(t, ok)
	assert.Equal(t, engine.Name, "DuckDuckGo")

	_, ok = registry.Lookup("AltaVista")
	assert.False(t, ok)
}

func TestDispatcher_Search(t *testing.T) {
	opener := &recordingOpener{}
	dispatcher := marq.NewDispatcher(marq.DefaultRegistry(), opener)

	assert.Equal(t, len(dispatcher.Registry().Names()), 3)

	err := dispatcher.Search("foo bar", "Google")
	assert.Nil(t, err)
	assert.Equal(t, len(opener.urls), 1)
	assert.Equal(t, opener.urls[0], "https://www.google.com/search?q=foo+bar")
}

func TestDispatcher_Search_Encoding(t *testing.T) {
	opener := &recordingOpener{}
	dispatcher := marq.NewDispatcher(marq.DefaultRegistry(), opener)

	err := dispatcher.Search("c++ & go?", "DuckDuckGo")
	assert.Nil(t, err)
	assert.Equal(t, opener.urls[0], "https://duckduckgo.com/?q=c%2B%2B+%26+go%3F")
}

func TestDispatcher_Search_NoQuery(t *testing.T) {
	opener := &recordingOpener{}
	dispatcher := marq.NewDispatcher(marq.DefaultRegistry(), opener)

	err := dispatcher.Search("", "Google")
	assert.True(t, errors.Is(err, marq.ErrNoQuery))

	err = dispatcher.Search("   \t", "Google")
	assert.True(t, errors.Is(err, marq.ErrNoQuery))

	// Failed dispatches never open a URL.
	assert.Equal(t, len(opener.urls), 0)
}

func TestDispatcher_Search_NoEngine(t *testing.T) {
	opener := &recordingOpener{}
	dispatcher := marq.NewDispatcher(marq.DefaultRegistry(), opener)

	err := dispatcher.Search("query", "")
	assert.True(t, errors.Is(err, marq.ErrNoEngineSelected))

	err = dispatcher.Search("query", "AltaVista")
	assert.True(t, errors.Is(err, marq.ErrNoEngineSelected))

	assert.Equal(t, len(opener.urls), 0)
}

func TestDispatcher_SearchDefault(t *testing.T) {
	opener := &recordingOpener{}
	registry := marq.NewRegistry(
		marq.EngineFromTemplate("Primary", "https://primary.test/?q=%s"),
		marq.EngineFromTemplate("Secondary", "https://secondary.test/?q=%s"),
	)
	dispatcher := marq.NewDispatcher(registry, opener)

	err := dispatcher.SearchDefault("hello")
	assert.Nil(t, err)
	assert.Equal(t, opener.urls[0], "https://primary.test/?q=hello")
}

func TestDispatcher_SearchDefault_EmptyRegistry(t *testing.T) {
	opener := &recordingOpener{}
	dispatcher := marq.NewDispatcher(marq.NewRegistry(), opener)

	err := dispatcher.SearchDefault("hello")
	assert.True(t, errors.Is(err, marq.ErrNoEngineSelected))
	assert.Equal(t, len(opener.urls), 0)
}

func TestURLOpenerFunc(t *testing.T) {
	var opened string
	opener := marq.URLOpenerFunc(func(url string) error {
		opened = url
		return nil
	})

	assert.Nil(t, opener.OpenURL("https://example.test"))
	assert.Equal(t, opened, "https://example.test")
}
