package tools

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/papermind/mcp-paper-tools/internal/library"
	"github.com/papermind/mcp-paper-tools/internal/paper"
)

const (
	defaultSearchResults = 5
	defaultRegexResults  = 10
	defaultContextLines  = 2
	minParagraphLength   = 50
	snippetLimit         = 500
	exactPhraseBonus     = 3
)

type scoredPassage struct {
	text  string
	score float64
	page  int
}

// searchDocument runs the two-tier search strategy: semantic retrieval when
// the collaborator is available, keyword paragraph scoring otherwise. Any
// semantic failure or empty result degrades to the keyword tier.
func searchDocument(ctx context.Context, sem library.SemanticSearch, key string,
	structure *paper.Structure, args SearchArgs,
) string {
	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}

	passages, semantic := semanticPassages(ctx, sem, key, structure, args.Query, maxResults)
	if !semantic {
		passages = keywordPassages(structure, args.Query, maxResults)
	}

	if len(passages) == 0 {
		return fmt.Sprintf("No passages matching %q were found.", args.Query)
	}

	method := "keyword"
	if semantic {
		method = "semantic"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d passage(s) for %q (%s search):\n", len(passages), args.Query, method))
	for i, p := range passages {
		b.WriteString(fmt.Sprintf("\n%d. (score %.2f", i+1, p.score))
		if p.page > 0 {
			b.WriteString(fmt.Sprintf(", page %d", p.page))
		}
		b.WriteString(")\n")
		b.WriteString(truncateSnippet(p.text))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// semanticPassages attempts the semantic collaborator, indexing the document
// lazily on first use. The second return value reports whether semantic
// results should be used; false means fall back to keyword scoring.
func semanticPassages(ctx context.Context, sem library.SemanticSearch, key string,
	structure *paper.Structure, query string, maxResults int,
) ([]scoredPassage, bool) {
	if sem == nil || !sem.IsAvailable() || key == "" {
		return nil, false
	}

	if !sem.IsIndexed(key) {
		if err := sem.IndexDocument(ctx, key, structure.FullText); err != nil {
			return nil, false
		}
	}

	hits, err := sem.Search(ctx, query, key, maxResults)
	if err != nil || len(hits) == 0 {
		return nil, false
	}

	passages := make([]scoredPassage, 0, len(hits))
	for _, hit := range hits {
		passages = append(passages, scoredPassage{text: hit.Text, score: hit.Score, page: hit.Page})
	}
	return passages, true
}

// keywordPassages scores blank-line-delimited paragraphs: one point per query
// word present plus a bonus when the exact phrase appears.
func keywordPassages(structure *paper.Structure, query string, maxResults int) []scoredPassage {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryWords := strings.Fields(queryLower)
	if len(queryWords) == 0 {
		return nil
	}

	var passages []scoredPassage
	offset := 0
	for _, para := range strings.Split(structure.FullText, "\n\n") {
		paraStart := offset
		offset += len(para) + 2

		trimmed := strings.TrimSpace(para)
		if len(trimmed) < minParagraphLength {
			continue
		}

		paraLower := strings.ToLower(trimmed)
		score := 0
		for _, word := range queryWords {
			if strings.Contains(paraLower, word) {
				score++
			}
		}
		if strings.Contains(paraLower, queryLower) {
			score += exactPhraseBonus
		}
		if score == 0 {
			continue
		}

		passages = append(passages, scoredPassage{
			text:  trimmed,
			score: float64(score),
			page:  structure.PageForOffset(paraStart),
		})
	}

	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].score > passages[j].score
	})
	if len(passages) > maxResults {
		passages = passages[:maxResults]
	}
	return passages
}

// regexSearch scans lines for a literal or regular-expression pattern and
// reports each match with surrounding context and its page number.
func regexSearch(structure *paper.Structure, args SearchWithRegexArgs) string {
	pattern := args.Pattern
	if !args.UseRegex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if !args.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Sprintf("Error: invalid pattern %q: %v", args.Pattern, err)
	}

	contextLines := defaultContextLines
	if args.ContextLines != nil && *args.ContextLines >= 0 {
		contextLines = *args.ContextLines
	}
	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = defaultRegexResults
	}

	lines := strings.Split(structure.FullText, "\n")
	lineStarts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		lineStarts[i] = offset
		offset += len(line) + 1
	}

	var b strings.Builder
	matches := 0
	for i, line := range lines {
		if !re.MatchString(line) {
			continue
		}
		matches++

		page := structure.PageForOffset(lineStarts[i])
		b.WriteString(fmt.Sprintf("\nMatch %d (line %d, page %d):\n", matches, i+1, page))

		lo := i - contextLines
		if lo < 0 {
			lo = 0
		}
		hi := i + contextLines
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		for j := lo; j <= hi; j++ {
			marker := "   "
			if j == i {
				marker = ">>>"
			}
			b.WriteString(fmt.Sprintf("%s %4d | %s\n", marker, j+1, lines[j]))
		}

		if matches >= maxResults {
			break
		}
	}

	if matches == 0 {
		return fmt.Sprintf("No lines matching %q were found.", args.Pattern)
	}

	header := fmt.Sprintf("Found %d match(es) for %q:", matches, args.Pattern)
	return header + strings.TrimRight(b.String(), "\n")
}

func truncateSnippet(text string) string {
	if len(text) <= snippetLimit {
		return text
	}
	return text[:snippetLimit] + "..."
}
