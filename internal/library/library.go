package library

import "context"

// TextExtractor yields the raw extracted text for a document key. Extraction
// may be slow and is treated as a single suspend point; a document with no
// extractable text returns ok=false rather than an error.
type TextExtractor interface {
	GetRawText(ctx context.Context, key string) (text string, ok bool, err error)
}

// DocumentLister enumerates the document keys an extractor can serve.
type DocumentLister interface {
	ListDocuments(ctx context.Context) ([]DocumentInfo, error)
}

// DocumentInfo describes one extractable document.
type DocumentInfo struct {
	Key   string `json:"key"`
	Title string `json:"title,omitempty"`
	Path  string `json:"path,omitempty"`
	Pages int    `json:"pages,omitempty"`
	Size  int64  `json:"size,omitempty"`
}

// Record is the authoritative bibliographic record for a document, resolved
// from the host library rather than parsed from text.
type Record struct {
	Title       string   `json:"title,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Year        string   `json:"year,omitempty"`
	DOI         string   `json:"doi,omitempty"`
	URL         string   `json:"url,omitempty"`
	Publication string   `json:"publication,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// RecordResolver looks up the authoritative record for a document key.
type RecordResolver interface {
	ResolveRecord(ctx context.Context, key string) (record Record, ok bool, err error)
}

// SemanticHit is one scored passage returned by a semantic search backend.
type SemanticHit struct {
	ItemKey string  `json:"item_key,omitempty"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
	Page    int     `json:"page,omitempty"`
}

// SemanticSearch is the optional embedding-backed retrieval collaborator.
// Every method may fail or the whole backend may be unavailable; callers must
// treat both as equivalent to "no semantic results", never as fatal.
type SemanticSearch interface {
	IsAvailable() bool
	IsIndexed(key string) bool
	IndexDocument(ctx context.Context, key, text string) error
	Search(ctx context.Context, query, key string, topK int) ([]SemanticHit, error)
	SearchAcross(ctx context.Context, query string, keys []string, topK int) ([]SemanticHit, error)
}

// Note is a stored annotation attached to a document.
type Note struct {
	ID      string `json:"id"`
	ItemKey string `json:"item_key"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteStore persists notes and tags for documents. Only reachable through the
// write-capable tools, which are gated by configuration.
type NoteStore interface {
	CreateNote(ctx context.Context, itemKey, title, content string) (Note, error)
	AddTags(ctx context.Context, itemKeys []string, tags []string) (int, error)
}
