package marq

import "strings"

// DirectoryNode represents a node in the documents directory tree.
type DirectoryNode struct {
	Name        string
	Files       []FileInfo
	Directories map[string]*DirectoryNode
}

// IsEmpty returns true if the directory node has no files or subdirectories.
func (dn *DirectoryNode) IsEmpty() bool {
	return len(dn.Files) == 0 && len(dn.Directories) == 0
}

// FindFile searches the tree for a file by ID.
func (dn *DirectoryNode) FindFile(id string) FileInfo {
	for i := range dn.Files {
		if dn.Files[i].ID == id {
			return dn.Files[i]
		}
	}

	for _, child := range dn.Directories {
		if file := child.FindFile(id); file.ID != "" {
			return file
		}
	}

	return FileInfo{}
}

// FindDirectory walks the tree to the node at the given slash-separated
// path, or nil if any segment is missing.
func (dn *DirectoryNode) FindDirectory(path string) *DirectoryNode {
	if path == "" {
		return dn
	}

	parts := strings.Split(path, "/")
	node := dn
	for _, part := range parts {
		child, ok := node.Directories[part]
		if !ok {
			return nil
		}
		node = child
	}

	return node
}
