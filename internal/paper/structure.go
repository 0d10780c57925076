package paper

import "strings"

// Metadata holds the best-effort bibliographic fields extracted from the
// document text. Every field is optional.
type Metadata struct {
	Title    string   `json:"title,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Year     string   `json:"year,omitempty"`
	DOI      string   `json:"doi,omitempty"`
}

// Section is one contiguous slice of the document under a detected heading.
type Section struct {
	Name           string `json:"name"`            // raw heading text as it appeared
	NormalizedName string `json:"normalized_name"` // canonical tag, e.g. "methodology"
	Content        string `json:"content"`
	StartIndex     int    `json:"start_index"` // character offset into FullText
	EndIndex       int    `json:"end_index"`
}

// PageInfo is one page of the segmented document. Pages are contiguous,
// ordered and cover the full text exactly once.
type PageInfo struct {
	PageNumber int    `json:"page_number"` // 1-based
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	Content    string `json:"content"`
}

// Structure is the parsed representation of one document. It is created once
// by the parser and treated as immutable afterwards; re-parsing replaces the
// whole value.
type Structure struct {
	Metadata  Metadata   `json:"metadata"`
	Sections  []Section  `json:"sections"`
	FullText  string     `json:"full_text"`
	Pages     []PageInfo `json:"pages"`
	PageCount int        `json:"page_count"`
}

// Section returns the section matching the given name after alias resolution,
// or nil if no such section was detected.
func (s *Structure) Section(name string) *Section {
	tag := CanonicalSectionName(name)
	for i := range s.Sections {
		if s.Sections[i].NormalizedName == tag {
			return &s.Sections[i]
		}
	}
	return nil
}

// SectionNames returns the normalized names of all detected sections in
// document order.
func (s *Structure) SectionNames() []string {
	names := make([]string, 0, len(s.Sections))
	for _, sec := range s.Sections {
		names = append(names, sec.NormalizedName)
	}
	return names
}

// HasDetectedSections reports whether real headings were found, as opposed to
// the synthetic full_text fallback section.
func (s *Structure) HasDetectedSections() bool {
	return len(s.Sections) > 0 && !(len(s.Sections) == 1 && s.Sections[0].NormalizedName == SectionFullText)
}

// PageForOffset returns the 1-based page number containing the given character
// offset, or 0 if the offset is out of range.
func (s *Structure) PageForOffset(offset int) int {
	for _, page := range s.Pages {
		if offset >= page.StartIndex && offset < page.EndIndex {
			return page.PageNumber
		}
	}
	if len(s.Pages) > 0 && offset >= s.Pages[len(s.Pages)-1].EndIndex {
		return s.Pages[len(s.Pages)-1].PageNumber
	}
	return 0
}

// ParserConfig configures structure parsing behavior.
type ParserConfig struct {
	MinHeadingLength int // minimum trimmed length for a heading candidate
	MaxHeadingLength int // maximum trimmed length for a heading candidate
	PageCharBudget   int // characters per estimated page when no form feeds exist
	PageSnapWindow   int // search distance for a paragraph break around a page cut
}

// DefaultParserConfig returns the default parsing configuration.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		MinHeadingLength: 3,
		MaxHeadingLength: 100,
		PageCharBudget:   3000,
		PageSnapWindow:   200,
	}
}

// Parser segments raw extracted text into metadata, sections and pages.
type Parser struct {
	config ParserConfig
	rules  []HeadingRule
}

// NewParser creates a parser with the default configuration and rule table.
func NewParser() *Parser {
	return NewParserWithConfig(DefaultParserConfig())
}

// NewParserWithConfig creates a parser with a custom configuration.
func NewParserWithConfig(config ParserConfig) *Parser {
	if config.PageCharBudget <= 0 {
		config.PageCharBudget = DefaultParserConfig().PageCharBudget
	}
	return &Parser{
		config: config,
		rules:  defaultHeadingRules(),
	}
}

// ParseStructure segments rawText into a complete document structure. It never
// fails: a document without recognizable headings yields a single synthetic
// full_text section, and every metadata field is optional.
func (p *Parser) ParseStructure(rawText string) *Structure {
	pages := p.ParsePages(rawText)
	return &Structure{
		Metadata:  p.ExtractMetadata(rawText),
		Sections:  p.parseSections(rawText),
		FullText:  rawText,
		Pages:     pages,
		PageCount: len(pages),
	}
}

// parseSections scans the text line by line, opening a new section whenever a
// candidate line matches a heading rule.
func (p *Parser) parseSections(rawText string) []Section {
	lines := strings.Split(rawText, "\n")

	var sections []Section
	var current *Section
	offset := 0

	for _, line := range lines {
		lineStart := offset
		offset += len(line) + 1 // account for the split newline

		if rule := p.matchHeading(line); rule != nil {
			if current != nil {
				current.EndIndex = lineStart
				current.Content = strings.TrimSpace(current.Content)
				sections = append(sections, *current)
			}
			current = &Section{
				Name:           strings.TrimSpace(line),
				NormalizedName: rule.Tag,
				StartIndex:     lineStart,
			}
			continue
		}

		if current != nil {
			current.Content += line + "\n"
		}
	}

	if current != nil {
		current.EndIndex = len(rawText)
		current.Content = strings.TrimSpace(current.Content)
		sections = append(sections, *current)
	}

	// Guarantee callers never see an empty section list.
	if len(sections) == 0 {
		sections = append(sections, Section{
			Name:           SectionFullText,
			NormalizedName: SectionFullText,
			Content:        strings.TrimSpace(rawText),
			StartIndex:     0,
			EndIndex:       len(rawText),
		})
	}

	return sections
}

// matchHeading tests a line against the ordered rule table. Only lines whose
// trimmed length falls within the configured bounds are candidates.
func (p *Parser) matchHeading(line string) *HeadingRule {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < p.config.MinHeadingLength || len(trimmed) > p.config.MaxHeadingLength {
		return nil
	}

	for i := range p.rules {
		if p.rules[i].Pattern.MatchString(trimmed) {
			return &p.rules[i]
		}
	}
	return nil
}

// normalizeSectionKey lowercases and collapses a section name for alias lookup.
func normalizeSectionKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", " ")
	return strings.Join(strings.Fields(key), " ")
}

func underscored(key string) string {
	return strings.ReplaceAll(key, " ", "_")
}
