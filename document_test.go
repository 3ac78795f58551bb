package marq_test

import (
	"strings"
	"testing"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/assert"
)

func TestDocument_ContentAndSave(t *testing.T) {
	fr, rm := setupFileRepository(t)

	doc, err := fr.GetDocument("notes")
	assert.Nil(t, err)

	content, err := doc.Content()
	assert.Nil(t, err)
	assert.True(t, strings.Contains(content, "title: Notes"))

	err = doc.Save("# Notes\n\n<<remember this>>\n")
	assert.Nil(t, err)

	// The cached content reflects the save.
	content, err = doc.Content()
	assert.Nil(t, err)
	assert.True(t, strings.Contains(content, "<<remember this>>"))

	// And so does the file on disk.
	raw, err := rm.ReadFile("notes.md")
	assert.Nil(t, err)
	assert.Equal(t, string(raw), "# Notes\n\n<<remember this>>\n")
}

func TestDocument_Delete(t *testing.T) {
	fr, rm := setupFileRepository(t)

	doc, err := fr.GetOrCreateDocument("ephemeral")
	assert.Nil(t, err)
	assert.True(t, rm.FileExists("documents/ephemeral.md"))

	assert.Nil(t, doc.Delete())
	assert.False(t, rm.FileExists("documents/ephemeral.md"))
}

func TestDocument_EncryptionRoundTrip(t *testing.T) {
	rm, err := marq.NewRootManager(t.TempDir())
	assert.Nil(t, err)

	fr := marq.NewFileRepository(rm, marq.DefaultFileConfig)
	assert.Nil(t, fr.Initialize())
	fr.ReloadCaches()

	publicKey, _, _, privatePath, err := marq.GenerateNewEncryptionPair(t.TempDir())
	assert.Nil(t, err)

	em := marq.NewEncryptionManager()
	assert.Nil(t, em.AddRecipient(publicKey))
	assert.Nil(t, em.AddIdentitiesFromFile(privatePath))
	em.Activate()
	fr.SetEncryptionManager(em)

	doc, err := fr.GetDocument("notes")
	assert.Nil(t, err)
	assert.Nil(t, doc.Save("secret <<passage>> text"))

	// On disk the file is an age ciphertext, not plaintext.
	raw, err := rm.ReadFile("notes.md")
	assert.Nil(t, err)
	assert.True(t, marq.IsAgeEncrypted(raw))
	assert.False(t, strings.Contains(string(raw), "secret"))

	// A fresh document handle decrypts transparently.
	fresh, err := fr.GetDocument("notes")
	assert.Nil(t, err)
	content, err := fresh.Content()
	assert.Nil(t, err)
	assert.Equal(t, content, "secret <<passage>> text")
}
