package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DirectoryLibrary serves documents from a directory on disk. A document key
// is the file name without extension; PDF text is extracted with
// ledongthuc/pdf after a relaxed pdfcpu validation pass, and plain .txt files
// are served as-is (useful for pre-extracted text).
type DirectoryLibrary struct {
	dir         string
	maxFileSize int64
	conf        *model.Configuration
}

// NewDirectoryLibrary creates a library rooted at dir.
func NewDirectoryLibrary(dir string, maxFileSize int64) (*DirectoryLibrary, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library directory: %w", err)
	}
	if info, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("cannot access library directory %s: %w", abs, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("library path %s is not a directory", abs)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &DirectoryLibrary{
		dir:         abs,
		maxFileSize: maxFileSize,
		conf:        conf,
	}, nil
}

// GetRawText extracts the text of the document named by key. A key that
// resolves to no file, or to a PDF with no extractable text, returns ok=false.
func (l *DirectoryLibrary) GetRawText(ctx context.Context, key string) (string, bool, error) {
	path, err := l.resolveKey(key)
	if err != nil {
		return "", false, nil
	}

	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("failed to read %s: %w", path, err)
		}
		text := string(data)
		return text, strings.TrimSpace(text) != "", nil
	case ".pdf":
		return l.extractPDFText(path)
	default:
		return "", false, nil
	}
}

// extractPDFText validates the PDF and extracts per-page text, joining pages
// with form feeds so downstream page segmentation sees real boundaries.
func (l *DirectoryLibrary) extractPDFText(path string) (string, bool, error) {
	if err := api.ValidateFile(path, l.conf); err != nil {
		return "", false, fmt.Errorf("pdf validation failed for %s: %w", path, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	full := strings.Join(pages, "\f")
	return full, strings.TrimSpace(strings.ReplaceAll(full, "\f", "")) != "", nil
}

// ListDocuments enumerates the extractable documents under the library root.
func (l *DirectoryLibrary) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	var docs []DocumentInfo

	err := filepath.WalkDir(l.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // continue past unreadable entries
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != l.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !l.isSupportedFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if l.maxFileSize > 0 && info.Size() > l.maxFileSize {
			return nil
		}

		docs = append(docs, DocumentInfo{
			Key:   keyForFile(d.Name()),
			Title: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Path:  path,
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking library directory: %w", err)
	}

	return docs, nil
}

// ResolveRecord reports no record. A directory library has no authoritative
// bibliographic database, so callers fall back to metadata parsed from the
// document text.
func (l *DirectoryLibrary) ResolveRecord(ctx context.Context, key string) (Record, bool, error) {
	return Record{}, false, nil
}

// resolveKey maps a document key back to a file under the library root. Files
// over the size limit are invisible here, matching ListDocuments.
func (l *DirectoryLibrary) resolveKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return "", fmt.Errorf("invalid document key %q", key)
	}

	for _, ext := range []string{".pdf", ".txt", ".md"} {
		candidate := filepath.Join(l.dir, key+ext)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if l.maxFileSize > 0 && info.Size() > l.maxFileSize {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("document %q not found", key)
}

func (l *DirectoryLibrary) isSupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt", ".md":
		return true
	}
	return false
}

func keyForFile(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
