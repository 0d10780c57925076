package tools

import (
	"fmt"
	"strings"

	"github.com/papermind/mcp-paper-tools/internal/paper"
)

const pagesCharBudget = 15000

// getPages resolves a page-range expression and concatenates the selected
// page contents under a cumulative character budget. When the budget runs out
// mid-page that page is truncated to fit and the remaining pages are dropped.
func getPages(structure *paper.Structure, args GetPagesArgs) string {
	pageNumbers := paper.ParsePageRange(args.Pages, structure.PageCount)
	if len(pageNumbers) == 0 {
		return fmt.Sprintf("Error: no valid pages in range %q (document has %d pages)",
			args.Pages, structure.PageCount)
	}

	var b strings.Builder
	used := 0
	for i, num := range pageNumbers {
		page := structure.Pages[num-1]
		header := fmt.Sprintf("--- Page %d ---\n", num)

		remaining := pagesCharBudget - used - len(header)
		if remaining <= 0 {
			b.WriteString(fmt.Sprintf("\n[truncated: %d of %d requested pages shown, budget reached]",
				i, len(pageNumbers)))
			break
		}

		content := page.Content
		truncated := false
		if len(content) > remaining {
			content = content[:remaining]
			truncated = true
		}

		b.WriteString(header)
		b.WriteString(content)
		b.WriteString("\n\n")
		used += len(header) + len(content)

		if truncated {
			b.WriteString(fmt.Sprintf("[truncated: page %d cut to fit the %d character budget, "+
				"%d of %d requested pages shown]", num, pagesCharBudget, i+1, len(pageNumbers)))
			break
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// getFullText returns the whole document. It refuses without an explicit
// confirmation because this is the most token-expensive tool available.
func getFullText(structure *paper.Structure, args GetFullTextArgs) string {
	if !args.Confirm {
		return fmt.Sprintf("Error: %s returns the entire document (%d characters). "+
			"Call it again with confirm=true if you really need all of it; "+
			"%s or %s are usually cheaper.",
			ToolGetFullText, len(structure.FullText), ToolGetSection, ToolSearch)
	}

	banner := fmt.Sprintf("[full text: %d characters, roughly %d tokens]\n\n",
		len(structure.FullText), estimateTokens(structure.FullText))
	return banner + structure.FullText
}

// getPageCount reports basic size statistics for the document.
func getPageCount(structure *paper.Structure) string {
	words := len(strings.Fields(structure.FullText))
	return fmt.Sprintf("Pages: %d\nCharacters: %d\nEstimated words: %d",
		structure.PageCount, len(structure.FullText), words)
}

// estimateTokens approximates the LLM token count of a text. Four characters
// per token is the usual rule of thumb for English prose.
func estimateTokens(text string) int {
	return len(text) / 4
}
