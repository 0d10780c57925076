package tools

import (
	"fmt"
	"strings"

	"github.com/papermind/mcp-paper-tools/internal/paper"
)

const sectionContentLimit = 8000

// getSection returns the content of one section after alias resolution. A
// missing section yields the list of available sections instead of an error,
// so the agent can retry with a name that exists.
func getSection(structure *paper.Structure, args GetSectionArgs) string {
	section := structure.Section(args.Section)
	if section == nil {
		if !structure.HasDetectedSections() {
			return fmt.Sprintf("No section structure was detected in this document. "+
				"Use %s to read it by pages instead.", ToolGetPages)
		}
		return fmt.Sprintf("Section %q not found. Available sections: %s",
			args.Section, strings.Join(structure.SectionNames(), ", "))
	}

	content := section.Content
	if len(content) > sectionContentLimit {
		content = content[:sectionContentLimit] +
			fmt.Sprintf("\n\n[truncated, total length %d]", len(section.Content))
	}

	return fmt.Sprintf("Section: %s (%s)\n\n%s", section.Name, section.NormalizedName, content)
}

// getOutline enumerates the detected sections with their estimated page and
// size. The synthetic full_text fallback is not an outline.
func getOutline(structure *paper.Structure) string {
	if !structure.HasDetectedSections() {
		return "No section structure was detected in this document."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Document outline (%d sections, %d pages):\n", len(structure.Sections), structure.PageCount))
	for i, section := range structure.Sections {
		page := structure.PageForOffset(section.StartIndex)
		b.WriteString(fmt.Sprintf("%d. %s [%s] (~page %d, %d chars)\n",
			i+1, section.Name, section.NormalizedName, page, len(section.Content)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// listSections reports just the section names.
func listSections(structure *paper.Structure) string {
	if !structure.HasDetectedSections() {
		return "No section structure was detected in this document."
	}
	return "Sections: " + strings.Join(structure.SectionNames(), ", ")
}
