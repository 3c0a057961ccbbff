package models

import "time"

// ProjectNote is an operational note on a project. Notes are append-only and
// kept newest first.
type ProjectNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectDocument is a file or link stored directly on a project.
type ProjectDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// Project document markers. A link document carries both.
const (
	DocumentTypeFile = "file"
	DocumentTypeLink = "link"
	MimeTypeURIList  = "text/uri-list"
)

// IsLink reports whether the document points to an external page rather than
// a viewable blob.
func (d ProjectDocument) IsLink() bool {
	return d.Type == DocumentTypeLink && d.MimeType == MimeTypeURIList
}

// Attachment is a file attached to a transaction (receipt, invoice scan).
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}
