package tools

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/papermind/mcp-paper-tools/internal/paper"
)

func TestGetSectionResolvesAliases(t *testing.T) {
	structure := paper.NewParser().ParseStructure(testPaperA)

	for _, alias := range []string{"methodology", "methods", "METHOD", "approach"} {
		result := getSection(structure, GetSectionArgs{Section: alias})
		assert.Contains(t, result, "diffusion convolution", "alias %q", alias)
		assert.Contains(t, result, "(methodology)")
	}
}

func TestGetSectionMissingListsAvailable(t *testing.T) {
	structure := paper.NewParser().ParseStructure(testPaperA)

	result := getSection(structure, GetSectionArgs{Section: "appendix"})
	assert.Contains(t, result, `Section "appendix" not found`)
	assert.Contains(t, result, "methodology")
	assert.Contains(t, result, "conclusion")
}

func TestGetSectionWithoutStructure(t *testing.T) {
	structure := paper.NewParser().ParseStructure(
		"just a flat note with no recognizable headings anywhere in it\n" +
			"and a second line to make it non-trivial\n")

	result := getSection(structure, GetSectionArgs{Section: "methodology"})
	assert.Contains(t, result, "No section structure was detected")
	assert.Contains(t, result, ToolGetPages)
}

func TestGetSectionTruncatesLongContent(t *testing.T) {
	body := strings.Repeat("Detail sentence about the training procedure. ", 300)
	text := "A Long Paper Title For Truncation Tests\n\nAbstract\nShort abstract.\n\n1. Methodology\n" + body
	structure := paper.NewParser().ParseStructure(text)

	section := structure.Section("methodology")
	if assert.NotNil(t, section) {
		assert.Greater(t, len(section.Content), sectionContentLimit)
	}

	result := getSection(structure, GetSectionArgs{Section: "methodology"})
	assert.Contains(t, result, fmt.Sprintf("[truncated, total length %d]", len(section.Content)))
	assert.Less(t, len(result), len(section.Content), "truncated output must be shorter than the raw section")
}

func TestGetOutline(t *testing.T) {
	structure := paper.NewParser().ParseStructure(testPaperA)

	result := getOutline(structure)
	assert.Contains(t, result, "Document outline (")
	assert.Contains(t, result, "[methodology]")
	assert.Contains(t, result, "[conclusion]")
	assert.Contains(t, result, "~page")
	assert.NotContains(t, result, "full_text", "the synthetic fallback never appears in outlines")
}

func TestListSections(t *testing.T) {
	structure := paper.NewParser().ParseStructure(testPaperA)

	result := listSections(structure)
	assert.True(t, strings.HasPrefix(result, "Sections: "))
	assert.Contains(t, result, "abstract")
	assert.Contains(t, result, "results")
}
