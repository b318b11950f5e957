package library

import "time"

// DocumentType discriminates the document tree union
type DocumentType string

const (
	DocumentFolder DocumentType = "folder"
	DocumentFile   DocumentType = "file"
	DocumentURL    DocumentType = "url"
)

// DocumentItem is a node of the document tree.
// File bytes live in the asset store under the file id; Base64Content is
// only populated inside export payloads.
type DocumentItem struct {
	Type      DocumentType    `json:"type"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Children  []*DocumentItem `json:"children,omitempty"`

	MimeType      string `json:"mimeType,omitempty"`
	Size          int64  `json:"size,omitempty"`
	Base64Content string `json:"base64Content,omitempty"`

	URL string `json:"url,omitempty"`
}

// Clone deep-copies the document subtree
func (d *DocumentItem) Clone() *DocumentItem {
	if d == nil {
		return nil
	}
	c := *d
	if d.Children != nil {
		c.Children = CloneDocuments(d.Children)
	}
	return &c
}

// CloneDocuments deep-copies a list of document items
func CloneDocuments(items []*DocumentItem) []*DocumentItem {
	if items == nil {
		return nil
	}
	out := make([]*DocumentItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
