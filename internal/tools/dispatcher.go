package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/papermind/mcp-paper-tools/internal/library"
	"github.com/papermind/mcp-paper-tools/internal/paper"
)

// Deps wires the dispatcher to its collaborators. Extractor is required;
// everything else is optional and its absence disables the matching tools or
// degrades them (semantic search falls back to keyword scoring).
type Deps struct {
	Extractor library.TextExtractor
	Lister    library.DocumentLister
	Resolver  library.RecordResolver
	Semantic  library.SemanticSearch
	Notes     library.NoteStore

	// WriteEnabled is read both when the catalog is built and again at
	// dispatch time, so a flipped flag takes effect immediately.
	WriteEnabled func() bool

	CacheTTL      time.Duration
	CacheCapacity int
	Parser        *paper.Parser
}

// Dispatcher owns the tool catalog, the structure cache and the current
// document selection. It is the sole mutator of both; parsed structures are
// shared read-only once cached.
type Dispatcher struct {
	deps   Deps
	parser *paper.Parser
	cache  *StructureCache

	mu         sync.Mutex
	currentKey string
	selection  []string
}

// NewDispatcher creates a dispatcher from its dependencies.
func NewDispatcher(deps Deps) (*Dispatcher, error) {
	if deps.Extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	parser := deps.Parser
	if parser == nil {
		parser = paper.NewParser()
	}
	if deps.WriteEnabled == nil {
		deps.WriteEnabled = func() bool { return false }
	}

	return &Dispatcher{
		deps:   deps,
		parser: parser,
		cache:  NewStructureCache(deps.CacheTTL, deps.CacheCapacity),
	}, nil
}

// Cache exposes the structure cache, mainly for lifecycle management and
// tests with a controlled clock.
func (d *Dispatcher) Cache() *StructureCache {
	return d.cache
}

// SetCurrentDocument sets the single-document context used when a tool call
// carries no itemKey. An empty key clears the context.
func (d *Dispatcher) SetCurrentDocument(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.currentKey = key
}

// CurrentDocument returns the single-document context key, if any.
func (d *Dispatcher) CurrentDocument() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentKey
}

// SetSelection replaces the multi-document selection.
func (d *Dispatcher) SetSelection(keys []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = append([]string(nil), keys...)
}

// Selection returns a copy of the multi-document selection.
func (d *Dispatcher) Selection() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.selection...)
}

// InvalidateDocument drops one document's cached structure, forcing a
// re-parse on next use.
func (d *Dispatcher) InvalidateDocument(key string) {
	d.cache.Invalidate(key)
}

// Close clears the cache. Called on module teardown.
func (d *Dispatcher) Close() {
	d.cache.Clear()
}

// Catalog builds the current tool catalog. It is rebuilt on every call
// because its contents depend on mutable dispatcher state.
func (d *Dispatcher) Catalog() []ToolDefinition {
	d.mu.Lock()
	state := CatalogState{
		HasCurrentDocument: d.currentKey != "",
		WriteEnabled:       d.deps.WriteEnabled(),
		SelectionCount:     len(d.selection),
	}
	d.mu.Unlock()
	return BuildCatalog(state)
}

// Dispatch routes one tool call through resolve, validate, target resolution
// and handler invocation. Failures of any kind are returned as descriptive
// strings beginning with "Error:" so the calling agent can react in natural
// language; no error crosses this boundary as a Go error.
func (d *Dispatcher) Dispatch(ctx context.Context, call ToolCall) string {
	parsed, err := parseArgs(call)
	if err != nil {
		return "Error: " + err.Error()
	}

	switch args := parsed.(type) {
	case ListDocumentsArgs:
		return d.listDocuments(ctx)

	case GetPaperMetadataArgs:
		return d.paperMetadata(ctx, args)

	case GetSectionArgs:
		structure, errMsg := d.resolveStructure(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		return getSection(structure, args)

	case GetPagesArgs:
		structure, errMsg := d.resolveStructure(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		return getPages(structure, args)

	case SearchArgs:
		key, structure, errMsg := d.resolveStructureKey(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		return searchDocument(ctx, d.deps.Semantic, key, structure, args)

	case SearchWithRegexArgs:
		structure, errMsg := d.resolveStructure(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		return regexSearch(structure, args)

	case GetOutlineArgs:
		structure, errMsg := d.resolveStructure(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		if call.Name == ToolListSections {
			return listSections(structure)
		}
		return getOutline(structure)

	case GetFullTextArgs:
		structure, errMsg := d.resolveStructure(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		return getFullText(structure, args)

	case GetPageCountArgs:
		structure, errMsg := d.resolveStructure(ctx, args.ItemKey)
		if errMsg != "" {
			return errMsg
		}
		return getPageCount(structure)

	case ComparePapersArgs:
		return d.comparePapers(ctx, args)

	case SearchAcrossArgs:
		return d.searchAcross(ctx, args)

	case CreateNoteArgs:
		return d.createNote(ctx, args)

	case AddTagsArgs:
		return d.addTags(ctx, args)
	}

	return fmt.Sprintf("Error: unknown tool %q", call.Name)
}

// resolveTargetKey applies the target-document resolution order: an explicit
// itemKey wins, then the current single-document context.
func (d *Dispatcher) resolveTargetKey(explicit string) (string, bool) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentKey, d.currentKey != ""
}

// resolveStructure resolves a target document and ensures its parsed
// structure, returning a user-facing error message on failure. The two
// failure modes carry distinct messages.
func (d *Dispatcher) resolveStructure(ctx context.Context, explicitKey string) (*paper.Structure, string) {
	_, structure, errMsg := d.resolveStructureKey(ctx, explicitKey)
	return structure, errMsg
}

func (d *Dispatcher) resolveStructureKey(ctx context.Context, explicitKey string) (string, *paper.Structure, string) {
	key, ok := d.resolveTargetKey(explicitKey)
	if !ok {
		return "", nil, "Error: no document specified and no current document is set. " +
			"Pass itemKey or open a document first."
	}

	structure, err := d.ensureStructure(ctx, key)
	if err != nil {
		return key, nil, fmt.Sprintf("Error: document %q could not be read: %v", key, err)
	}
	return key, structure, ""
}

// ensureStructure returns the cached structure for key, extracting and
// parsing on a miss. Population failures are reported once per call and not
// retried within it.
func (d *Dispatcher) ensureStructure(ctx context.Context, key string) (*paper.Structure, error) {
	return d.cache.GetOrLoad(ctx, key, func(ctx context.Context) (*paper.Structure, error) {
		text, ok, err := d.deps.Extractor.GetRawText(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("text extraction failed: %w", err)
		}
		if !ok || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("document not found or has no extractable text")
		}
		return d.parser.ParseStructure(text), nil
	})
}

// listDocuments enumerates the extractable documents in the library.
func (d *Dispatcher) listDocuments(ctx context.Context) string {
	if d.deps.Lister == nil {
		return "Error: no document listing backend is attached."
	}

	docs, err := d.deps.Lister.ListDocuments(ctx)
	if err != nil {
		return fmt.Sprintf("Error: failed to list documents: %v", err)
	}
	if len(docs) == 0 {
		return "The library contains no extractable documents."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d document(s):\n", len(docs)))
	for i, doc := range docs {
		b.WriteString(fmt.Sprintf("%d. %s (key: %s", i+1, doc.Title, doc.Key))
		if doc.Pages > 0 {
			b.WriteString(fmt.Sprintf(", %d pages", doc.Pages))
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// paperMetadata prefers the authoritative record resolver and falls back to
// the metadata parsed out of the document text.
func (d *Dispatcher) paperMetadata(ctx context.Context, args GetPaperMetadataArgs) string {
	key, ok := d.resolveTargetKey(args.ItemKey)
	if !ok {
		return "Error: no document specified and no current document is set. " +
			"Pass itemKey or open a document first."
	}

	if d.deps.Resolver != nil {
		if record, found, err := d.deps.Resolver.ResolveRecord(ctx, key); err == nil && found {
			return formatRecord(key, record)
		}
	}

	structure, err := d.ensureStructure(ctx, key)
	if err != nil {
		return fmt.Sprintf("Error: document %q could not be read: %v", key, err)
	}
	return formatParsedMetadata(key, structure.Metadata)
}

func formatRecord(key string, record library.Record) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Metadata for %s:\n", key))
	writeField(&b, "Title", record.Title)
	writeField(&b, "Authors", strings.Join(record.Authors, ", "))
	writeField(&b, "Year", record.Year)
	writeField(&b, "Publication", record.Publication)
	writeField(&b, "DOI", record.DOI)
	writeField(&b, "URL", record.URL)
	writeField(&b, "Tags", strings.Join(record.Tags, ", "))
	writeField(&b, "Abstract", record.Abstract)
	return strings.TrimRight(b.String(), "\n")
}

func formatParsedMetadata(key string, meta paper.Metadata) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Metadata for %s (parsed from text, best effort):\n", key))
	writeField(&b, "Title", meta.Title)
	writeField(&b, "Authors", strings.Join(meta.Authors, ", "))
	writeField(&b, "Year", meta.Year)
	writeField(&b, "DOI", meta.DOI)
	writeField(&b, "Keywords", strings.Join(meta.Keywords, ", "))
	writeField(&b, "Abstract", meta.Abstract)
	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, name, value string) {
	if value != "" {
		b.WriteString(fmt.Sprintf("%s: %s\n", name, value))
	}
}

// createNote handles the write-gated note creation tool.
func (d *Dispatcher) createNote(ctx context.Context, args CreateNoteArgs) string {
	if !d.deps.WriteEnabled() {
		return "Error: write tools are disabled by configuration."
	}
	if d.deps.Notes == nil {
		return "Error: no note storage backend is attached."
	}

	key, ok := d.resolveTargetKey(args.ItemKey)
	if !ok {
		return "Error: no document specified and no current document is set. " +
			"Pass itemKey or open a document first."
	}

	note, err := d.deps.Notes.CreateNote(ctx, key, args.Title, args.Content)
	if err != nil {
		return fmt.Sprintf("Error: failed to create note: %v", err)
	}
	return fmt.Sprintf("Created note %s on %s.", note.ID, key)
}

// addTags handles the write-gated batch tag tool.
func (d *Dispatcher) addTags(ctx context.Context, args AddTagsArgs) string {
	if !d.deps.WriteEnabled() {
		return "Error: write tools are disabled by configuration."
	}
	if d.deps.Notes == nil {
		return "Error: no note storage backend is attached."
	}

	updated, err := d.deps.Notes.AddTags(ctx, args.ItemKeys, args.Tags)
	if err != nil {
		return fmt.Sprintf("Error: failed to add tags: %v", err)
	}
	return fmt.Sprintf("Added tags to %d of %d item(s).", updated, len(args.ItemKeys))
}
