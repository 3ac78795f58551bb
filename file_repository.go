package marq

import (
	"fmt"
	"io/fs"
	"log"
	"maps"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileRepository manages the core files and the documents directory of the
// data dir, caching file metadata for navigation.
type FileRepository struct {
	config            FileConfig
	rootManager       *RootManager
	encryptionManager *EncryptionManager
	cacheMux          sync.RWMutex
	lastCacheTime     time.Time
	coreCache         map[string]FileInfo
	documentCache     map[string]FileInfo
}

// FileConfig holds the configuration for core files and directories.
type FileConfig struct {
	CoreFiles          []string
	DocumentsDirectory string
}

// DefaultFileConfig provides default settings for FileRepository.
var DefaultFileConfig = FileConfig{
	CoreFiles:          []string{"notes.md"},
	DocumentsDirectory: "documents",
}

// NewFileRepository creates a new instance of FileRepository with the given
// configuration.
func NewFileRepository(rootManager *RootManager, config FileConfig) *FileRepository {
	fr := &FileRepository{
		config:        config,
		rootManager:   rootManager,
		coreCache:     make(map[string]FileInfo),
		documentCache: make(map[string]FileInfo),
	}

	fr.ReloadCoreFiles()

	return fr
}

// Config returns the current FileConfig.
func (fr *FileRepository) Config() FileConfig {
	return fr.config
}

// SetEncryptionManager sets the encryption manager used for documents at rest.
func (fr *FileRepository) SetEncryptionManager(manager *EncryptionManager) {
	fr.encryptionManager = manager
}

// Initialize sets up the core files and directories as per the
// configuration, ensuring they exist.
func (fr *FileRepository) Initialize() error {
	for _, file := range fr.config.CoreFiles {
		fileTitle := TitleCase(strings.TrimSuffix(file, ".md"))
		frontmatter := "---\n" +
			"title: " + fileTitle + "\n" +
			"description: Your " + fileTitle + " file\n" +
			"---\n\n"
		err := fr.rootManager.CreateFileIfNotExists(file, frontmatter+"Enter your "+fileTitle+" here...")
		if err != nil {
			return fmt.Errorf("error creating core file %s: %v", file, err)
		}
	}

	if fr.config.DocumentsDirectory != "" {
		err := fr.rootManager.CreateDirectoryIfNotExists(fr.config.DocumentsDirectory)
		if err != nil {
			return fmt.Errorf("error creating documents directory %s: %v", fr.config.DocumentsDirectory, err)
		}
	}

	return nil
}

// CoreFiles returns the cached list of core files.
func (fr *FileRepository) CoreFiles() map[string]FileInfo {
	fr.cacheMux.RLock()
	defer fr.cacheMux.RUnlock()
	return fr.coreCache
}

// DocumentFiles returns the cached list of files under the documents directory.
func (fr *FileRepository) DocumentFiles() map[string]FileInfo {
	fr.cacheMux.RLock()
	defer fr.cacheMux.RUnlock()
	return fr.documentCache
}

// FileInfo retrieves the FileInfo for a given file id.
func (fr *FileRepository) FileInfo(id string) (FileInfo, error) {
	fr.cacheMux.RLock()
	defer fr.cacheMux.RUnlock()

	if info, ok := fr.coreCache[id]; ok {
		return info, nil
	}
	if info, ok := fr.documentCache[id]; ok {
		return info, nil
	}

	return FileInfo{}, fmt.Errorf("file not found: %s", id)
}

// FileIDExists checks whether a file with the given id is known.
func (fr *FileRepository) FileIDExists(id string) bool {
	_, err := fr.FileInfo(id)
	return err == nil
}

// ReloadCaches reloads all file caches.
func (fr *FileRepository) ReloadCaches() {
	fr.ReloadCoreFiles()
	fr.ReloadDocuments()
}

// ReloadCoreFiles reloads the core file cache from the configuration.
func (fr *FileRepository) ReloadCoreFiles() {
	cache := make(map[string]FileInfo, len(fr.config.CoreFiles))
	for _, file := range fr.config.CoreFiles {
		id := strings.TrimSuffix(file, ".md")
		title := TitleCase(id)
		cache[id] = FileInfo{
			ID:        id,
			Path:      file,
			Title:     title,
			TitleBase: title,
		}
	}

	fr.cacheMux.Lock()
	fr.coreCache = cache
	fr.cacheMux.Unlock()
}

// ReloadDocuments rescans the documents directory into the cache.
func (fr *FileRepository) ReloadDocuments() {
	documents := fr.scanDocuments()

	fr.cacheMux.Lock()
	fr.documentCache = documents
	fr.lastCacheTime = time.Now()
	fr.cacheMux.Unlock()
}

// ReloadDocumentsIfStale rescans the documents directory when the cache is
// older than maxAge.
func (fr *FileRepository) ReloadDocumentsIfStale(maxAge time.Duration) {
	fr.cacheMux.RLock()
	stale := time.Since(fr.lastCacheTime) > maxAge
	fr.cacheMux.RUnlock()

	if stale {
		fr.ReloadDocuments()
	}
}

// DocumentsTree returns the documents directory as a tree for navigation.
func (fr *FileRepository) DocumentsTree() *DirectoryNode {
	root := &DirectoryNode{
		Name:        fr.config.DocumentsDirectory,
		Directories: make(map[string]*DirectoryNode),
	}

	for _, file := range fr.sortedDocuments() {
		if file.DirectoryPath == "" {
			root.Files = append(root.Files, file)
			continue
		}

		node := root
		for _, part := range strings.Split(file.DirectoryPath, "/") {
			child, ok := node.Directories[part]
			if !ok {
				child = &DirectoryNode{
					Name:        part,
					Directories: make(map[string]*DirectoryNode),
				}
				node.Directories[part] = child
			}
			node = child
		}
		node.Files = append(node.Files, file)
	}

	return root
}

// GetDocument returns the document with the given id.
func (fr *FileRepository) GetDocument(id string) (*Document, error) {
	info, err := fr.FileInfo(id)
	if err != nil {
		return nil, err
	}

	return &Document{Info: info, repo: fr}, nil
}

// GetOrCreateDocument returns the document with the given id, creating an
// empty file under the documents directory when the id is unknown.
func (fr *FileRepository) GetOrCreateDocument(id string) (*Document, error) {
	if doc, err := fr.GetDocument(id); err == nil {
		return doc, nil
	}

	path := filepath.Join(fr.config.DocumentsDirectory, fr.normalizeFileName(id))
	if dir := filepath.Dir(path); dir != "." {
		if err := fr.rootManager.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", id, err)
		}
	}

	if err := fr.rootManager.CreateFileIfNotExists(path, ""); err != nil {
		return nil, fmt.Errorf("failed to create document %s: %w", id, err)
	}

	fr.ReloadDocuments()
	info := fr.fileInfoFromPath(path)
	return &Document{Info: info, repo: fr}, nil
}

// scanDocuments walks the documents directory and builds the cache map.
func (fr *FileRepository) scanDocuments() map[string]FileInfo {
	cache := make(map[string]FileInfo)

	if fr.config.DocumentsDirectory == "" {
		return cache
	}

	results, err := fr.rootManager.Scan(fr.config.DocumentsDirectory, func(path string, d fs.DirEntry) bool {
		if d.IsDir() {
			return false
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		return ext == ".md" || ext == ".txt"
	})
	if err != nil {
		log.Printf("error scanning documents directory: %v", err)
		return cache
	}

	for _, result := range results {
		info := fr.fileInfoFromPath(result.Path)
		cache[info.ID] = info
	}

	return cache
}

// fileInfoFromPath builds a FileInfo for a path under the data directory.
func (fr *FileRepository) fileInfoFromPath(path string) FileInfo {
	id := fr.CreateID(path)
	relPath := strings.TrimPrefix(path, fr.config.DocumentsDirectory+"/")
	title, titleBase := fr.DisplayName(relPath)

	dirPath := ""
	if dir := filepath.Dir(relPath); dir != "." {
		dirPath = dir
	}

	return FileInfo{
		ID:            id,
		Path:          path,
		Title:         title,
		TitleBase:     titleBase,
		DirectoryPath: dirPath,
		IsDocument:    strings.HasPrefix(path, fr.config.DocumentsDirectory+"/"),
	}
}

// CreateID derives the canonical file id from a path: the extension is
// dropped and the documents/ prefix is kept so ids stay unique.
func (fr *FileRepository) CreateID(path string) string {
	id := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.ToLower(id)
}

// DisplayName returns the display title (with directory) and base title for
// a path relative to the documents directory.
func (fr *FileRepository) DisplayName(relPath string) (string, string) {
	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	titleBase := TitleCase(base)

	dir := filepath.Dir(relPath)
	if dir == "." {
		return titleBase, titleBase
	}

	return TitleCase(strings.ReplaceAll(dir, "/", " / ")) + " / " + titleBase, titleBase
}

// normalizeFileName turns an id into a safe markdown filename.
func (fr *FileRepository) normalizeFileName(id string) string {
	name := strings.ToLower(strings.TrimSpace(id))
	name = strings.TrimPrefix(name, fr.config.DocumentsDirectory+"/")
	name = strings.ReplaceAll(name, " ", "-")
	if filepath.Ext(name) == "" {
		name += ".md"
	}
	return name
}

// sortedDocuments returns the cached document files sorted by path.
func (fr *FileRepository) sortedDocuments() []FileInfo {
	documents := fr.DocumentFiles()

	files := make([]FileInfo, 0, len(documents))
	for info := range maps.Values(documents) {
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files
}
