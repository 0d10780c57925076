package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/papermind/mcp-paper-tools/internal/paper"
)

const compareSectionLimit = 2000

// comparePapers fans one aspect out across several papers and merges the
// matching sections into a single report. At least two resolvable papers are
// required; an unresolvable key is reported inline rather than failing the
// whole comparison.
func (d *Dispatcher) comparePapers(ctx context.Context, args ComparePapersArgs) string {
	tags := paper.SectionTagsForAspect(args.Aspect)
	if len(tags) == 0 {
		return fmt.Sprintf("Error: unknown aspect %q (use methodology, results, conclusions or all)", args.Aspect)
	}
	if explicit := strings.TrimSpace(args.Section); explicit != "" {
		tags = appendUniqueTag(tags, paper.CanonicalSectionName(explicit))
	}

	type resolved struct {
		key       string
		structure *paper.Structure
	}
	var papers []resolved
	var failures []string
	for _, key := range args.ItemKeys {
		structure, err := d.ensureStructure(ctx, key)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s (%v)", key, err))
			continue
		}
		papers = append(papers, resolved{key: key, structure: structure})
	}

	if len(papers) < 2 {
		return fmt.Sprintf("Error: comparison needs at least two readable papers, got %d. Unreadable: %s",
			len(papers), strings.Join(failures, "; "))
	}

	aspect := args.Aspect
	if aspect == "" {
		aspect = "all"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Comparison of %q across %d papers:\n", aspect, len(papers)))
	for _, p := range papers {
		b.WriteString(fmt.Sprintf("\n=== Paper [%s]", p.key))
		if title := p.structure.Metadata.Title; title != "" {
			b.WriteString(": " + title)
		}
		b.WriteString(" ===\n")
		b.WriteString(compareSections(p.structure, tags))
	}
	if len(failures) > 0 {
		b.WriteString("\nSkipped unreadable papers: " + strings.Join(failures, "; "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// compareSections emits every section of structure whose canonical tag is in
// tags, falling back to the abstract when nothing matches.
func compareSections(structure *paper.Structure, tags []string) string {
	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[tag] = true
	}

	var b strings.Builder
	found := false
	for _, section := range structure.Sections {
		if !wanted[section.NormalizedName] {
			continue
		}
		found = true
		b.WriteString(fmt.Sprintf("[%s]\n%s\n", section.NormalizedName, capContent(section.Content, compareSectionLimit)))
	}
	if found {
		return b.String()
	}

	if abstract := structure.Metadata.Abstract; abstract != "" {
		return fmt.Sprintf("[abstract fallback]\n%s\n", capContent(abstract, compareSectionLimit))
	}
	return "No matching sections were detected in this paper.\n"
}

// searchAcross runs one query against several papers. Semantic search is
// attempted for the whole set; if the backend is unavailable or fails to
// produce a hit for any paper, every paper uniformly falls back to keyword
// scoring so the report's quality is consistent.
func (d *Dispatcher) searchAcross(ctx context.Context, args SearchAcrossArgs) string {
	keys := args.ItemKeys
	if len(keys) == 0 {
		keys = d.Selection()
	}
	if len(keys) == 0 {
		if key, ok := d.resolveTargetKey(""); ok {
			keys = []string{key}
		}
	}
	if len(keys) == 0 {
		return "Error: no papers to search. Pass itemKeys or select documents first."
	}

	maxPerPaper := args.MaxResultsPerPaper
	if maxPerPaper <= 0 {
		maxPerPaper = 3
	}

	structures := make(map[string]*paper.Structure, len(keys))
	var resolvedKeys []string
	var failures []string
	for _, key := range keys {
		structure, err := d.ensureStructure(ctx, key)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s (%v)", key, err))
			continue
		}
		structures[key] = structure
		resolvedKeys = append(resolvedKeys, key)
	}
	if len(resolvedKeys) == 0 {
		return "Error: none of the requested papers could be read: " + strings.Join(failures, "; ")
	}

	perPaper, semantic := d.semanticAcross(ctx, args.Query, resolvedKeys, structures, maxPerPaper)
	if !semantic {
		perPaper = make(map[string][]scoredPassage, len(resolvedKeys))
		for _, key := range resolvedKeys {
			perPaper[key] = keywordPassages(structures[key], args.Query, maxPerPaper)
		}
	}

	method := "keyword"
	if semantic {
		method = "semantic"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Search for %q across %d paper(s) (%s search):\n", args.Query, len(resolvedKeys), method))
	for _, key := range resolvedKeys {
		b.WriteString(fmt.Sprintf("\n=== Paper [%s]", key))
		if title := structures[key].Metadata.Title; title != "" {
			b.WriteString(": " + title)
		}
		b.WriteString(" ===\n")

		passages := perPaper[key]
		if len(passages) == 0 {
			b.WriteString("No matching passages.\n")
			continue
		}
		for i, p := range passages {
			b.WriteString(fmt.Sprintf("%d. (score %.2f", i+1, p.score))
			if p.page > 0 {
				b.WriteString(fmt.Sprintf(", page %d", p.page))
			}
			b.WriteString(") " + truncateSnippet(p.text) + "\n")
		}
	}
	if len(failures) > 0 {
		b.WriteString("\nSkipped unreadable papers: " + strings.Join(failures, "; "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// semanticAcross attempts the collaborator's cross-document search, lazily
// indexing each paper. Returning false means the keyword fallback applies to
// every paper; the strategy is never mixed per paper.
func (d *Dispatcher) semanticAcross(ctx context.Context, query string, keys []string,
	structures map[string]*paper.Structure, maxPerPaper int,
) (map[string][]scoredPassage, bool) {
	sem := d.deps.Semantic
	if sem == nil || !sem.IsAvailable() {
		return nil, false
	}

	for _, key := range keys {
		if !sem.IsIndexed(key) {
			if err := sem.IndexDocument(ctx, key, structures[key].FullText); err != nil {
				return nil, false
			}
		}
	}

	hits, err := sem.SearchAcross(ctx, query, keys, maxPerPaper*len(keys))
	if err != nil || len(hits) == 0 {
		return nil, false
	}

	perPaper := make(map[string][]scoredPassage, len(keys))
	for _, hit := range hits {
		if len(perPaper[hit.ItemKey]) >= maxPerPaper {
			continue
		}
		perPaper[hit.ItemKey] = append(perPaper[hit.ItemKey], scoredPassage{
			text:  hit.Text,
			score: hit.Score,
			page:  hit.Page,
		})
	}

	// A backend that answered for only some papers would make the report
	// quality uneven; treat that as a miss and fall back everywhere.
	for _, key := range keys {
		if len(perPaper[key]) == 0 {
			return nil, false
		}
	}
	return perPaper, true
}

func capContent(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	return content[:limit] + fmt.Sprintf("... [truncated, total length %d]", len(content))
}

func appendUniqueTag(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return tags
		}
	}
	return append(tags, tag)
}
