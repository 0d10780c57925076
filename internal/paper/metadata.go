package paper

import (
	"regexp"
	"strings"
)

const maxAbstractLength = 2000

var (
	abstractPattern = regexp.MustCompile(`(?is)abstract\s*:?\s*\n?(.*?)(?:\n\s*(?:1\.?\s+)?(?:introduction|keywords|background)\b|\z)`)
	keywordsPattern = regexp.MustCompile(`(?im)^\s*(?:key\s?words|index\s+terms)\s*[:\-—]\s*(.+)$`)
	doiPattern      = regexp.MustCompile(`\b(10\.\d{4,9}/[-._;()/:A-Za-z0-9]+)`)
	yearPattern     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	authorLine      = regexp.MustCompile(`^[A-Z][a-zA-Z.\-]+(?:\s+[A-Z][a-zA-Z.\-]+)+(?:\s*,\s*[A-Z][a-zA-Z.\-]+(?:\s+[A-Z][a-zA-Z.\-]+)+)*$`)
)

// ExtractMetadata derives bibliographic fields from the document text using
// best-effort heuristics. A pattern that does not appear simply yields an
// absent field, never an error.
func (p *Parser) ExtractMetadata(rawText string) Metadata {
	meta := Metadata{}

	lines := strings.Split(rawText, "\n")
	titleIdx := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 10 && len(trimmed) < 200 {
			meta.Title = trimmed
			titleIdx = i
		}
		break
	}

	// Authors: the next few non-empty lines after the title that look like a
	// comma-separated list of capitalized names.
	if titleIdx >= 0 {
		for i := titleIdx + 1; i < len(lines) && i <= titleIdx+4; i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" {
				continue
			}
			if authorLine.MatchString(trimmed) && len(trimmed) < 200 {
				for _, name := range strings.Split(trimmed, ",") {
					if name = strings.TrimSpace(name); name != "" {
						meta.Authors = append(meta.Authors, name)
					}
				}
			}
			break
		}
	}

	if m := abstractPattern.FindStringSubmatch(rawText); len(m) > 1 {
		abstract := strings.TrimSpace(m[1])
		if len(abstract) > maxAbstractLength {
			abstract = abstract[:maxAbstractLength]
		}
		if abstract != "" {
			meta.Abstract = abstract
		}
	}

	if m := keywordsPattern.FindStringSubmatch(rawText); len(m) > 1 {
		for _, token := range regexp.MustCompile(`[,;]`).Split(m[1], -1) {
			token = strings.TrimSpace(token)
			if len(token) > 0 && len(token) < 50 {
				meta.Keywords = append(meta.Keywords, token)
			}
		}
	}

	if m := doiPattern.FindStringSubmatch(rawText); len(m) > 1 {
		meta.DOI = strings.TrimRight(m[1], ".,;")
	}

	if m := yearPattern.FindStringSubmatch(rawText); len(m) > 1 {
		meta.Year = m[1]
	}

	return meta
}
