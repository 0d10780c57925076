package paper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePaper = `Deep Learning for Automated Code Review
Jane Smith, Robert Chen

Abstract
We present a novel approach to automated code review using transformer
models trained on large corpora of review comments.

Keywords: code review, deep learning, transformers

1. Introduction
Code review is a cornerstone of modern software engineering practice.
Manual review does not scale with repository growth.

2. Related Work
Prior systems relied on static analysis rules.

3. Methodology
We fine-tune a pretrained encoder on labeled review pairs.
The training corpus contains 1.2M examples.

4. Results
Our model achieves 87.3 F1 on the held-out set.

5. Conclusion
Learned review models complement static analyzers.

References
[1] Smith et al. 2021. DOI: 10.1145/3377811.3380424
`

func TestParseStructureSections(t *testing.T) {
	parser := NewParser()
	structure := parser.ParseStructure(samplePaper)

	require.NotEmpty(t, structure.Sections)
	assert.True(t, structure.HasDetectedSections())

	names := structure.SectionNames()
	assert.Equal(t, []string{
		SectionAbstract,
		SectionIntroduction,
		SectionRelatedWork,
		SectionMethodology,
		SectionResults,
		SectionConclusion,
		SectionReferences,
	}, names)

	intro := structure.Section("introduction")
	require.NotNil(t, intro)
	assert.Contains(t, intro.Content, "cornerstone of modern software engineering")
	assert.Equal(t, "1. Introduction", intro.Name)
}

func TestParseStructureSectionSpansAreOrdered(t *testing.T) {
	parser := NewParser()
	structure := parser.ParseStructure(samplePaper)

	prevEnd := 0
	for _, sec := range structure.Sections {
		assert.GreaterOrEqual(t, sec.StartIndex, prevEnd, "section %q overlaps previous", sec.NormalizedName)
		assert.Greater(t, sec.EndIndex, sec.StartIndex, "section %q has empty span", sec.NormalizedName)
		prevEnd = sec.EndIndex
	}
	assert.Equal(t, len(samplePaper), structure.Sections[len(structure.Sections)-1].EndIndex)
}

func TestParseStructureFallbackSection(t *testing.T) {
	parser := NewParser()
	structure := parser.ParseStructure("just a plain note with no headings at all")

	require.Len(t, structure.Sections, 1)
	assert.Equal(t, SectionFullText, structure.Sections[0].NormalizedName)
	assert.False(t, structure.HasDetectedSections())
	assert.Equal(t, 0, structure.Sections[0].StartIndex)
	assert.Equal(t, len("just a plain note with no headings at all"), structure.Sections[0].EndIndex)
}

func TestMatchHeadingCandidates(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		line    string
		wantTag string
	}{
		{"Abstract", SectionAbstract},
		{"ABSTRACT", SectionAbstract},
		{"3. Methodology", SectionMethodology},
		{"3.1 Methods:", SectionMethodology},
		{"IV. Experiments", SectionExperiments},
		{"Related Work", SectionRelatedWork},
		{"Literature Review", SectionRelatedWork},
		{"Conclusion and Future Work", SectionConclusion},
		{"ab", ""},                     // below minimum candidate length
		{strings.Repeat("x", 101), ""}, // above maximum candidate length
		{"The results were surprising", ""},
		{"References", SectionReferences},
		{"Appendix A", SectionAppendix},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rule := parser.matchHeading(tt.line)
			if tt.wantTag == "" {
				assert.Nil(t, rule)
			} else {
				require.NotNil(t, rule)
				assert.Equal(t, tt.wantTag, rule.Tag)
			}
		})
	}
}

func TestCanonicalSectionName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"methods", SectionMethodology},
		{"Methods", SectionMethodology},
		{"intro", SectionIntroduction},
		{"conclusions", SectionConclusion},
		{"bibliography", SectionReferences},
		{"methodology", "methodology"},
		{"threat model", "threat_model"}, // unknown names pass through normalized
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalSectionName(tt.in), "input %q", tt.in)
	}
}

func TestSectionTagsForAspect(t *testing.T) {
	assert.Equal(t, []string{SectionMethodology}, SectionTagsForAspect("methodology"))
	assert.Equal(t, []string{SectionResults, SectionExperiments}, SectionTagsForAspect("results"))
	assert.Equal(t, []string{SectionConclusion, SectionDiscussion}, SectionTagsForAspect("conclusions"))

	all := SectionTagsForAspect("all")
	assert.ElementsMatch(t, []string{
		SectionMethodology, SectionResults, SectionExperiments, SectionConclusion, SectionDiscussion,
	}, all)
}

func TestPageForOffset(t *testing.T) {
	parser := NewParser()
	text := "page one text\fpage two text\fpage three"
	structure := parser.ParseStructure(text)

	require.Equal(t, 3, structure.PageCount)
	assert.Equal(t, 1, structure.PageForOffset(0))
	assert.Equal(t, 2, structure.PageForOffset(strings.Index(text, "two")))
	assert.Equal(t, 3, structure.PageForOffset(len(text)-1))
}
