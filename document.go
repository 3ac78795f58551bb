package marq

import "fmt"

// Document is one text/markdown file in the data directory. Content is
// loaded lazily and cached until Save replaces it. When the repository has
// an active encryption manager, content is decrypted on load and encrypted
// on save transparently.
type Document struct {
	Info    FileInfo
	repo    *FileRepository
	content string
	loaded  bool
}

// Load reads the document from disk.
func (d *Document) Load() error {
	if d.loaded {
		return nil
	}

	raw, err := d.repo.rootManager.ReadFile(d.Info.Path)
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", d.Info.Path, err)
	}

	content := string(raw)
	if em := d.repo.encryptionManager; em != nil && IsAgeEncrypted(raw) {
		content, err = em.Decrypt(raw)
		if err != nil {
			return fmt.Errorf("failed to decrypt document %s: %w", d.Info.Path, err)
		}
	}

	d.content = content
	d.loaded = true
	return nil
}

// Content returns the content of the document.
func (d *Document) Content() (string, error) {
	if err := d.Load(); err != nil {
		return "", err
	}

	return d.content, nil
}

// Save writes the document to disk.
func (d *Document) Save(content string) error {
	data := []byte(content)
	if em := d.repo.encryptionManager; em != nil && em.IsActive() {
		encrypted, err := em.Encrypt(content)
		if err != nil {
			return fmt.Errorf("failed to encrypt document %s: %w", d.Info.Path, err)
		}
		data = encrypted
	}

	if err := d.repo.rootManager.WriteFile(d.Info.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to save document %s: %w", d.Info.Path, err)
	}

	d.content = content
	d.loaded = true
	return nil
}

// Delete deletes the document from disk.
func (d *Document) Delete() error {
	return d.repo.rootManager.Remove(d.Info.Path)
}
