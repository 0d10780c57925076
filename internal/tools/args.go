package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tool names exposed in the catalog.
const (
	ToolListDocuments    = "list_documents"
	ToolGetPaperMetadata = "get_paper_metadata"
	ToolGetSection       = "get_section"
	ToolGetPages         = "get_pages"
	ToolSearch           = "search"
	ToolSearchWithRegex  = "search_with_regex"
	ToolGetOutline       = "get_outline"
	ToolListSections     = "list_sections"
	ToolGetFullText      = "get_full_text"
	ToolGetPageCount     = "get_page_count"
	ToolComparePapers    = "compare_papers"
	ToolSearchAcross     = "search_across_papers"
	ToolCreateNote       = "create_note"
	ToolAddTags          = "add_tags"
)

// ToolCall is the wire shape consumed from the agent: an opaque serialized
// argument payload targeting one named tool.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Typed argument payloads, one per tool. Each is decoded from the call's JSON
// arguments in a single validation step; ItemKey is optional everywhere it
// appears because the dispatcher falls back to the current document.

type ListDocumentsArgs struct{}

type GetPaperMetadataArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
}

type GetSectionArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
	Section string `json:"section"`
}

type GetPagesArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
	Pages   string `json:"pages"`
}

type SearchArgs struct {
	ItemKey    string `json:"itemKey,omitempty"`
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type SearchWithRegexArgs struct {
	ItemKey       string `json:"itemKey,omitempty"`
	Pattern       string `json:"pattern"`
	UseRegex      bool   `json:"useRegex,omitempty"`
	CaseSensitive bool   `json:"caseSensitive,omitempty"`
	// ContextLines is a pointer so an explicit zero is distinguishable from
	// an omitted field, which gets the default.
	ContextLines *int `json:"contextLines,omitempty"`
	MaxResults   int  `json:"maxResults,omitempty"`
}

type GetOutlineArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
}

type GetFullTextArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
	Confirm bool   `json:"confirm,omitempty"`
}

type GetPageCountArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
}

type ComparePapersArgs struct {
	ItemKeys []string `json:"itemKeys"`
	Aspect   string   `json:"aspect,omitempty"`
	Section  string   `json:"section,omitempty"`
}

type SearchAcrossArgs struct {
	Query              string   `json:"query"`
	ItemKeys           []string `json:"itemKeys,omitempty"`
	MaxResultsPerPaper int      `json:"maxResultsPerPaper,omitempty"`
}

type CreateNoteArgs struct {
	ItemKey string `json:"itemKey,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AddTagsArgs struct {
	ItemKeys []string `json:"itemKeys"`
	Tags     []string `json:"tags"`
}

// decodeArgs unmarshals a tool call's argument payload into dst. An empty
// payload is treated as an empty object so tools without required parameters
// can be called with no arguments.
func decodeArgs(call ToolCall, dst interface{}) error {
	payload := strings.TrimSpace(call.Arguments)
	if payload == "" {
		payload = "{}"
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return fmt.Errorf("malformed arguments for %s: %w", call.Name, err)
	}
	return nil
}

// requireField returns a uniform missing-parameter error.
func requireField(tool, field string) error {
	return fmt.Errorf("%s requires the %q parameter", tool, field)
}

// parseArgs decodes and validates the argument payload for the named tool,
// returning the typed argument value.
func parseArgs(call ToolCall) (interface{}, error) {
	switch call.Name {
	case ToolListDocuments:
		args := ListDocumentsArgs{}
		return args, decodeArgs(call, &args)

	case ToolGetPaperMetadata:
		args := GetPaperMetadataArgs{}
		return args, decodeArgs(call, &args)

	case ToolGetSection:
		args := GetSectionArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if strings.TrimSpace(args.Section) == "" {
			return nil, requireField(call.Name, "section")
		}
		return args, nil

	case ToolGetPages:
		args := GetPagesArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if strings.TrimSpace(args.Pages) == "" {
			return nil, requireField(call.Name, "pages")
		}
		return args, nil

	case ToolSearch:
		args := SearchArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if strings.TrimSpace(args.Query) == "" {
			return nil, requireField(call.Name, "query")
		}
		return args, nil

	case ToolSearchWithRegex:
		args := SearchWithRegexArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if args.Pattern == "" {
			return nil, requireField(call.Name, "pattern")
		}
		return args, nil

	case ToolGetOutline, ToolListSections:
		args := GetOutlineArgs{}
		return args, decodeArgs(call, &args)

	case ToolGetFullText:
		args := GetFullTextArgs{}
		return args, decodeArgs(call, &args)

	case ToolGetPageCount:
		args := GetPageCountArgs{}
		return args, decodeArgs(call, &args)

	case ToolComparePapers:
		args := ComparePapersArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if len(args.ItemKeys) < 2 {
			return nil, fmt.Errorf("%s requires at least two itemKeys", call.Name)
		}
		return args, nil

	case ToolSearchAcross:
		args := SearchAcrossArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if strings.TrimSpace(args.Query) == "" {
			return nil, requireField(call.Name, "query")
		}
		return args, nil

	case ToolCreateNote:
		args := CreateNoteArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if strings.TrimSpace(args.Content) == "" {
			return nil, requireField(call.Name, "content")
		}
		return args, nil

	case ToolAddTags:
		args := AddTagsArgs{}
		if err := decodeArgs(call, &args); err != nil {
			return nil, err
		}
		if len(args.ItemKeys) == 0 {
			return nil, requireField(call.Name, "itemKeys")
		}
		if len(args.Tags) == 0 {
			return nil, requireField(call.Name, "tags")
		}
		return args, nil
	}

	return nil, fmt.Errorf("unknown tool %q", call.Name)
}
