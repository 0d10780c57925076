package paper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagesFormFeeds(t *testing.T) {
	parser := NewParser()
	text := "first page\fsecond page\fthird page"

	pages := parser.ParsePages(text)
	require.Len(t, pages, 3)

	assert.Equal(t, "first page", pages[0].Content)
	assert.Equal(t, "second page", pages[1].Content)
	assert.Equal(t, "third page", pages[2].Content)

	for i, page := range pages {
		assert.Equal(t, i+1, page.PageNumber)
	}
}

func TestParsePagesCoverInputExactly(t *testing.T) {
	parser := NewParser()

	inputs := []string{
		"",
		"short",
		"a\fb\fc",
		strings.Repeat("word ", 2000),                             // forces estimation
		strings.Repeat("paragraph one\n\nparagraph two\n\n", 300), // estimation with snap points
	}

	for _, text := range inputs {
		pages := parser.ParsePages(text)
		require.NotEmpty(t, pages)

		// Pages are contiguous and reconstruct the input.
		var rebuilt strings.Builder
		prevEnd := 0
		for i, page := range pages {
			assert.Equal(t, i+1, page.PageNumber)
			assert.Equal(t, prevEnd, page.StartIndex)
			assert.GreaterOrEqual(t, page.EndIndex, page.StartIndex)
			rebuilt.WriteString(text[page.StartIndex:page.EndIndex])
			prevEnd = page.EndIndex
		}
		assert.Equal(t, len(text), prevEnd)
		assert.Equal(t, text, rebuilt.String())
	}
}

func TestParsePagesEstimationSnapsToParagraphBreaks(t *testing.T) {
	cfg := DefaultParserConfig()
	cfg.PageCharBudget = 100
	cfg.PageSnapWindow = 30
	parser := NewParserWithConfig(cfg)

	// Paragraph breaks every ~90 characters, so each cut has a break in range.
	para := strings.Repeat("x", 88)
	text := para + "\n\n" + para + "\n\n" + para + "\n\n" + para

	pages := parser.ParsePages(text)
	require.Greater(t, len(pages), 1)

	// Every internal boundary should land right after a blank line.
	for _, page := range pages[:len(pages)-1] {
		assert.True(t, strings.HasSuffix(text[:page.EndIndex], "\n\n"),
			"page %d ends at %d, not at a paragraph break", page.PageNumber, page.EndIndex)
	}
}

func TestParsePagesEmptyInput(t *testing.T) {
	parser := NewParser()
	pages := parser.ParsePages("")

	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, "", pages[0].Content)
}
