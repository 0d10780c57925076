package paper

import "regexp"

// HeadingRule describes one recognizable section heading. Rules are evaluated
// in slice order against each candidate line; the first match wins, so more
// specific patterns must come before more general ones.
type HeadingRule struct {
	Tag     string         // canonical section tag, e.g. "methodology"
	Pattern *regexp.Regexp // matched against the trimmed candidate line
}

// numberedPrefix matches an optional numeric or ordinal heading prefix such as
// "3.", "IV.", "2.1" before the heading text.
const numberedPrefix = `^(?:(?:\d+|[ivxIVX]+)[\.\)]?\s*)*`

func headingPattern(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + numberedPrefix + body + `\s*:?\s*$`)
}

// defaultHeadingRules returns the ordered rule table for academic section
// headings. Order encodes priority.
func defaultHeadingRules() []HeadingRule {
	return []HeadingRule{
		{Tag: SectionAbstract, Pattern: headingPattern(`abstract`)},
		{Tag: SectionIntroduction, Pattern: headingPattern(`(?:introduction|background)`)},
		{Tag: SectionRelatedWork, Pattern: headingPattern(`(?:related\s+works?|literature\s+review)`)},
		{Tag: SectionMethodology, Pattern: headingPattern(`(?:methodology|methods?|approach|materials\s+and\s+methods)`)},
		{Tag: SectionExperiments, Pattern: headingPattern(`(?:experiments?|experimental\s+setup|evaluation|implementation)`)},
		{Tag: SectionResults, Pattern: headingPattern(`(?:results?|findings)`)},
		{Tag: SectionDiscussion, Pattern: headingPattern(`(?:discussion|analysis)`)},
		{Tag: SectionConclusion, Pattern: headingPattern(`(?:conclusions?(?:\s+and\s+future\s+work)?|summary|future\s+work)`)},
		{Tag: SectionReferences, Pattern: headingPattern(`(?:references|bibliography)`)},
		{Tag: SectionAppendix, Pattern: headingPattern(`(?:appendix(?:\s+[a-z])?|supplementary(?:\s+material)?)`)},
	}
}

// Canonical section tags produced by the heading rules.
const (
	SectionAbstract     = "abstract"
	SectionIntroduction = "introduction"
	SectionRelatedWork  = "related_work"
	SectionMethodology  = "methodology"
	SectionExperiments  = "experiments"
	SectionResults      = "results"
	SectionDiscussion   = "discussion"
	SectionConclusion   = "conclusion"
	SectionReferences   = "references"
	SectionAppendix     = "appendix"

	// SectionFullText is the synthetic tag used when no headings are detected.
	SectionFullText = "full_text"
)

// sectionAliases maps common alternative names to canonical tags so tools can
// resolve requests like "methods" or "intro".
var sectionAliases = map[string]string{
	"methods":           SectionMethodology,
	"method":            SectionMethodology,
	"approach":          SectionMethodology,
	"intro":             SectionIntroduction,
	"background":        SectionIntroduction,
	"related works":     SectionRelatedWork,
	"literature review": SectionRelatedWork,
	"evaluation":        SectionExperiments,
	"experiment":        SectionExperiments,
	"findings":          SectionResults,
	"analysis":          SectionDiscussion,
	"conclusions":       SectionConclusion,
	"summary":           SectionConclusion,
	"future work":       SectionConclusion,
	"bibliography":      SectionReferences,
	"supplementary":     SectionAppendix,
}

// CanonicalSectionName resolves a requested section name to its canonical tag.
// Unknown names are returned normalized (lowercased, underscores for spaces)
// so lookups still have a chance to hit a literal heading.
func CanonicalSectionName(name string) string {
	normalized := normalizeSectionKey(name)
	if tag, ok := sectionAliases[normalized]; ok {
		return tag
	}
	return underscored(normalized)
}

// aspectGroups maps a comparison aspect to the canonical tags it covers.
var aspectGroups = map[string][]string{
	"methodology": {SectionMethodology},
	"results":     {SectionResults, SectionExperiments},
	"conclusions": {SectionConclusion, SectionDiscussion},
}

// SectionTagsForAspect returns the canonical tags a comparison aspect selects.
// The aspect "all" unions every group.
func SectionTagsForAspect(aspect string) []string {
	if aspect == "all" || aspect == "" {
		seen := make(map[string]bool)
		var tags []string
		for _, group := range []string{"methodology", "results", "conclusions"} {
			for _, tag := range aspectGroups[group] {
				if !seen[tag] {
					seen[tag] = true
					tags = append(tags, tag)
				}
			}
		}
		return tags
	}
	return aspectGroups[aspect]
}
