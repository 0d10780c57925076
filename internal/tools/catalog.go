package tools

// ParamSpec describes one tool parameter.
type ParamSpec struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

// ToolDefinition is one entry in the tool catalog.
type ToolDefinition struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ParamSpec `json:"parameters"`
	Required    []string             `json:"required,omitempty"`
}

// CatalogState captures the conditional inputs that shape the catalog. The
// catalog is rebuilt from this state on every listing call rather than cached,
// because its contents change as documents are opened and selected.
type CatalogState struct {
	HasCurrentDocument bool
	WriteEnabled       bool
	SelectionCount     int
}

// BuildCatalog returns the tool catalog for the given state. Library-level
// tools are always present; document-content tools require a current document;
// write tools require the write flag; comparison tools require a multi-paper
// selection.
func BuildCatalog(state CatalogState) []ToolDefinition {
	itemKeyParam := ParamSpec{
		Type:        "string",
		Description: "Document key to target; defaults to the current document",
	}

	catalog := []ToolDefinition{
		{
			Name:        ToolListDocuments,
			Description: "List the documents available in the library with their keys",
			Parameters:  map[string]ParamSpec{},
		},
		{
			Name:        ToolGetPaperMetadata,
			Description: "Get bibliographic metadata (title, authors, year, DOI) for a paper",
			Parameters: map[string]ParamSpec{
				"itemKey": itemKeyParam,
			},
		},
	}

	if state.HasCurrentDocument {
		catalog = append(catalog,
			ToolDefinition{
				Name:        ToolGetSection,
				Description: "Read one section of the paper by name (e.g. methodology, results)",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
					"section": {Type: "string", Description: "Section name or alias, e.g. 'methods'"},
				},
				Required: []string{"section"},
			},
			ToolDefinition{
				Name:        ToolGetPages,
				Description: "Read specific pages by range expression, e.g. '1-3,7'",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
					"pages":   {Type: "string", Description: "Comma-separated pages and ranges"},
				},
				Required: []string{"pages"},
			},
			ToolDefinition{
				Name:        ToolSearch,
				Description: "Search the paper for relevant passages (semantic when available, keyword otherwise)",
				Parameters: map[string]ParamSpec{
					"itemKey":    itemKeyParam,
					"query":      {Type: "string", Description: "What to look for"},
					"maxResults": {Type: "number", Description: "Maximum passages to return (default 5)"},
				},
				Required: []string{"query"},
			},
			ToolDefinition{
				Name:        ToolSearchWithRegex,
				Description: "Search lines of the paper with a literal string or regular expression",
				Parameters: map[string]ParamSpec{
					"itemKey":       itemKeyParam,
					"pattern":       {Type: "string", Description: "Pattern to match"},
					"useRegex":      {Type: "boolean", Description: "Treat pattern as a regular expression"},
					"caseSensitive": {Type: "boolean", Description: "Match case exactly"},
					"contextLines":  {Type: "number", Description: "Lines of context around each match (default 2, 0 for match lines only)"},
					"maxResults":    {Type: "number", Description: "Maximum matches to return (default 10)"},
				},
				Required: []string{"pattern"},
			},
			ToolDefinition{
				Name:        ToolGetOutline,
				Description: "Show the paper's section outline with estimated pages and lengths",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
				},
			},
			ToolDefinition{
				Name:        ToolListSections,
				Description: "List the detected section names of the paper",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
				},
			},
			ToolDefinition{
				Name:        ToolGetFullText,
				Description: "Return the paper's entire text; expensive, requires confirm=true",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
					"confirm": {Type: "boolean", Description: "Must be true to acknowledge the size of the result"},
				},
			},
			ToolDefinition{
				Name:        ToolGetPageCount,
				Description: "Report page, character and word counts for the paper",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
				},
			},
		)
	}

	if state.SelectionCount > 1 {
		catalog = append(catalog,
			ToolDefinition{
				Name:        ToolComparePapers,
				Description: "Compare an aspect (methodology, results, conclusions) across selected papers",
				Parameters: map[string]ParamSpec{
					"itemKeys": {Type: "array", Description: "Keys of the papers to compare (at least two)"},
					"aspect": {
						Type:        "string",
						Description: "Which aspect to compare",
						Enum:        []string{"methodology", "results", "conclusions", "all"},
					},
					"section": {Type: "string", Description: "Additional explicit section to include"},
				},
				Required: []string{"itemKeys"},
			},
			ToolDefinition{
				Name:        ToolSearchAcross,
				Description: "Search for a query across several papers and group results by paper",
				Parameters: map[string]ParamSpec{
					"query":              {Type: "string", Description: "What to look for"},
					"itemKeys":           {Type: "array", Description: "Keys to search; defaults to the current selection"},
					"maxResultsPerPaper": {Type: "number", Description: "Maximum passages per paper (default 3)"},
				},
				Required: []string{"query"},
			},
		)
	}

	if state.WriteEnabled {
		catalog = append(catalog,
			ToolDefinition{
				Name:        ToolCreateNote,
				Description: "Create a note attached to a paper",
				Parameters: map[string]ParamSpec{
					"itemKey": itemKeyParam,
					"title":   {Type: "string", Description: "Note title"},
					"content": {Type: "string", Description: "Note body"},
				},
				Required: []string{"content"},
			},
			ToolDefinition{
				Name:        ToolAddTags,
				Description: "Add tags to one or more papers",
				Parameters: map[string]ParamSpec{
					"itemKeys": {Type: "array", Description: "Keys of the papers to tag"},
					"tags":     {Type: "array", Description: "Tags to add"},
				},
				Required: []string{"itemKeys", "tags"},
			},
		)
	}

	return catalog
}
