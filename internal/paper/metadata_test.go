package paper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadataFromSamplePaper(t *testing.T) {
	parser := NewParser()
	meta := parser.ExtractMetadata(samplePaper)

	assert.Equal(t, "Deep Learning for Automated Code Review", meta.Title)
	assert.Equal(t, []string{"Jane Smith", "Robert Chen"}, meta.Authors)
	assert.Contains(t, meta.Abstract, "automated code review")
	assert.Equal(t, []string{"code review", "deep learning", "transformers"}, meta.Keywords)
	assert.Equal(t, "2021", meta.Year)
	assert.Equal(t, "10.1145/3377811.3380424", meta.DOI)
}

func TestExtractMetadataAbsentFields(t *testing.T) {
	parser := NewParser()
	meta := parser.ExtractMetadata("x\nsome text without any recognizable front matter")

	assert.Empty(t, meta.Title) // first non-empty line too short
	assert.Empty(t, meta.Authors)
	assert.Empty(t, meta.Abstract)
	assert.Empty(t, meta.Keywords)
	assert.Empty(t, meta.Year)
	assert.Empty(t, meta.DOI)
}

func TestExtractMetadataTitleLengthBounds(t *testing.T) {
	parser := NewParser()

	tooLong := strings.Repeat("t", 200)
	meta := parser.ExtractMetadata(tooLong + "\nbody")
	assert.Empty(t, meta.Title)

	ok := "A Reasonable Paper Title"
	meta = parser.ExtractMetadata(ok + "\nbody")
	assert.Equal(t, ok, meta.Title)
}

func TestExtractMetadataAbstractCapped(t *testing.T) {
	parser := NewParser()
	text := "Some Long Enough Title\n\nAbstract\n" + strings.Repeat("a", 3000) + "\n\nIntroduction\nbody"

	meta := parser.ExtractMetadata(text)
	require.NotEmpty(t, meta.Abstract)
	assert.LessOrEqual(t, len(meta.Abstract), maxAbstractLength)
}

func TestExtractMetadataKeywordTokenFilter(t *testing.T) {
	parser := NewParser()
	long := strings.Repeat("k", 60)
	text := "Some Long Enough Title\n\nKeywords: graphs; " + long + "; ,  ranking\nbody"

	meta := parser.ExtractMetadata(text)
	assert.Equal(t, []string{"graphs", "ranking"}, meta.Keywords)
}
