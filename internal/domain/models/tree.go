package models

// NodeKind classifies a directory entry.
type NodeKind string

const (
	NodeFile   NodeKind = "file"
	NodeFolder NodeKind = "folder"
)

// TreeNode is one entry in a single directory listing. Path is always
// relative to the configured root and forward-slash joined regardless of the
// host separator.
//
// Children is a pointer so the JSON key is present iff the node is a folder:
// folders carry an empty placeholder (populated one level per request, never
// eagerly recursed), files omit the key entirely.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Kind     NodeKind    `json:"type"`
	Children *[]TreeNode `json:"children,omitempty"`
}
