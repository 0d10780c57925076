package paper

import "strings"

// ParsePages segments rawText into pages. Explicit form-feed characters are
// preferred as boundaries; without them, pages are estimated by a fixed
// character budget, snapping each cut to the nearest paragraph break so a
// sentence is not split mid-word. The returned pages always cover the input
// exactly once.
func (p *Parser) ParsePages(rawText string) []PageInfo {
	if rawText == "" {
		return []PageInfo{{PageNumber: 1, StartIndex: 0, EndIndex: 0, Content: ""}}
	}

	if strings.Contains(rawText, "\f") {
		return p.parseFormFeedPages(rawText)
	}
	return p.parseEstimatedPages(rawText)
}

func (p *Parser) parseFormFeedPages(rawText string) []PageInfo {
	var pages []PageInfo
	start := 0
	pageNum := 1

	for start <= len(rawText) {
		rel := strings.IndexByte(rawText[start:], '\f')
		var end int
		if rel < 0 {
			end = len(rawText)
		} else {
			end = start + rel + 1 // form feed belongs to the page it closes
		}

		pages = append(pages, PageInfo{
			PageNumber: pageNum,
			StartIndex: start,
			EndIndex:   end,
			Content:    strings.TrimSpace(strings.Trim(rawText[start:end], "\f")),
		})
		pageNum++

		if rel < 0 {
			break
		}
		start = end
	}

	return pages
}

func (p *Parser) parseEstimatedPages(rawText string) []PageInfo {
	budget := p.config.PageCharBudget
	total := len(rawText)
	pageCount := (total + budget - 1) / budget

	var pages []PageInfo
	start := 0
	for i := 0; i < pageCount; i++ {
		end := start + budget
		if i == pageCount-1 || end >= total {
			end = total
		} else {
			end = p.snapToParagraphBreak(rawText, end)
		}

		pages = append(pages, PageInfo{
			PageNumber: i + 1,
			StartIndex: start,
			EndIndex:   end,
			Content:    strings.TrimSpace(rawText[start:end]),
		})
		start = end
		if start >= total {
			break
		}
	}

	return pages
}

// snapToParagraphBreak finds the paragraph break nearest to cut within the
// configured window and returns the offset just past it. Without a nearby
// break the raw cut stands.
func (p *Parser) snapToParagraphBreak(text string, cut int) int {
	window := p.config.PageSnapWindow
	lo := cut - window
	if lo < 0 {
		lo = 0
	}
	hi := cut + window
	if hi > len(text) {
		hi = len(text)
	}

	best := -1
	bestDist := window + 1
	for i := lo; i+1 < hi; i++ {
		if text[i] == '\n' && text[i+1] == '\n' {
			dist := i - cut
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				bestDist = dist
				best = i + 2
			}
		}
	}

	if best > 0 && best < len(text) {
		return best
	}
	return cut
}
