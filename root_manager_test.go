package marq_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/assert"
)

func setupRootManager(t *testing.T) *marq.RootManager {
	t.Helper()

	rm, err := marq.NewRootManager(t.TempDir())
	assert.Nil(t, err)

	return rm
}

func TestRootManager_WriteAndRead(t *testing.T) {
	rm := setupRootManager(t)

	err := rm.WriteFile("test.md", []byte("testy test"), 0644)
	assert.Nil(t, err)
	assert.True(t, rm.FileExists("test.md"))

	content, err := rm.ReadFile("test.md")
	assert.Nil(t, err)
	assert.Equal(t, string(content), "testy test")

	_, err = rm.ReadFile("nonexistent.md")
	assert.NotNil(t, err)
}

func TestRootManager_WriteString(t *testing.T) {
	rm := setupRootManager(t)

	err := rm.WriteString("test.md", "testy test")
	assert.Nil(t, err)

	content, err := rm.ReadFile("test.md")
	assert.Nil(t, err)
	assert.Equal(t, string(content), "testy test")
}

func TestRootManager_EscapePrevention(t *testing.T) {
	rm := setupRootManager(t)

	// Paths that climb out of the data directory are rejected.
	_, err := rm.ReadFile("../outside.md")
	assert.NotNil(t, err)

	err = rm.WriteString("../outside.md", "nope")
	assert.NotNil(t, err)
}

func TestRootManager_Stat(t *testing.T) {
	rm := setupRootManager(t)
	assert.Nil(t, rm.WriteString("notes.md", "# Notes"))

	info, err := rm.Stat("notes.md")
	assert.Nil(t, err)
	assert.Equal(t, info.Name(), "notes.md")
	assert.True(t, info.Size() > 0)
	assert.Equal(t, info.IsDir(), false)
}

func TestRootManager_MkdirAll(t *testing.T) {
	rm := setupRootManager(t)

	err := rm.MkdirAll("a/b/c", 0755)
	assert.Nil(t, err)
	assert.True(t, rm.FileExists("a/b/c"))
}

func TestRootManager_Remove(t *testing.T) {
	rm := setupRootManager(t)
	assert.Nil(t, rm.WriteString("gone.md", "bye"))

	err := rm.Remove("gone.md")
	assert.Nil(t, err)
	assert.False(t, rm.FileExists("gone.md"))
}

func TestRootManager_CreateFileIfNotExists(t *testing.T) {
	rm := setupRootManager(t)

	err := rm.CreateFileIfNotExists("seed.md", "initial content")
	assert.Nil(t, err)

	content, err := rm.ReadFile("seed.md")
	assert.Nil(t, err)
	assert.Equal(t, string(content), "initial content")

	// A second call must not clobber existing content.
	err = rm.CreateFileIfNotExists("seed.md", "other content")
	assert.Nil(t, err)

	content, err = rm.ReadFile("seed.md")
	assert.Nil(t, err)
	assert.Equal(t, string(content), "initial content")
}

func TestRootManager_Scan(t *testing.T) {
	rm := setupRootManager(t)
	assert.Nil(t, rm.MkdirAll("docs/sub", 0755))
	assert.Nil(t, rm.WriteString("docs/keep.md", "a"))
	assert.Nil(t, rm.WriteString("docs/skip.log", "b"))
	assert.Nil(t, rm.WriteString("docs/sub/nested.md", "c"))

	results, err := rm.Scan("docs", func(path string, d fs.DirEntry) bool {
		return !d.IsDir() && strings.HasSuffix(path, ".md")
	})
	assert.Nil(t, err)
	assert.Equal(t, len(results), 2)
}

func TestRootManager_ReadDir(t *testing.T) {
	rm := setupRootManager(t)
	assert.Nil(t, rm.MkdirAll("docs", 0755))
	assert.Nil(t, rm.WriteString("docs/a.md", "a"))
	assert.Nil(t, rm.WriteString("docs/b.md", "b"))

	entries, err := rm.ReadDir("docs")
	assert.Nil(t, err)
	assert.Equal(t, len(entries), 2)
}

func TestRootManager_CreateDirectoryIfNotExists(t *testing.T) {
	rm := setupRootManager(t)

	assert.Nil(t, rm.CreateDirectoryIfNotExists("docs"))
	assert.Nil(t, rm.CreateDirectoryIfNotExists("docs"))

	// A file in the way is an error.
	assert.Nil(t, rm.WriteString("taken", "x"))
	assert.NotNil(t, rm.CreateDirectoryIfNotExists("taken"))
}

func TestRootManager_WalkDir(t *testing.T) {
	rm := setupRootManager(t)
	assert.Nil(t, rm.MkdirAll("docs", 0755))
	assert.Nil(t, rm.WriteString("docs/one.md", "1"))
	assert.Nil(t, rm.WriteString("docs/two.md", "2"))

	var seen []string
	err := rm.WalkDir("docs", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			seen = append(seen, path)
		}
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, len(seen), 2)
}
