package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Library Tools
	ListDocumentsDescription = `List all readable documents in the paper library with their keys.

**When to use:** Starting a session, or whenever you need to know which papers are available before reading or searching them.

**Why it's useful:** Every other tool addresses papers by key; this is how you discover the keys.

**Examples:**
• Session startup: "List the library to see which papers I can work with"
• Key lookup: "Find the key for the transformer survey before opening it"

**Common workflows:**
1. Orientation: List documents → Pick a paper → Read its outline
2. Batch work: List documents → Select several keys → Compare or search across them

**Best practices:** Run once at the start of a session; keys are stable, so there is no need to re-list unless the library changes.`

	GetPaperMetadataDescription = `Get bibliographic metadata (title, authors, year, DOI, abstract) for a paper.

**When to use:** Need citation details, want to confirm you have the right paper, or need the abstract without reading the body.

**Why it's useful:** Answers "what is this paper" cheaply. Uses the library's authoritative record when one exists and falls back to metadata parsed from the text.

**Examples:**
• Citation building: "Get metadata for keyA to cite it properly"
• Sanity check: "Confirm keyB is the 2021 fuzzing paper before comparing it"

**Best practices:** Prefer this over get_full_text when you only need the abstract; metadata parsed from text is best effort, so treat missing fields as unknown rather than absent.`

	GetSectionDescription = `Read one section of a paper by name, with common aliases resolved.

**When to use:** You know which part of the paper you need: the methodology, the results, the conclusion.

**Why it's useful:** Returns just the relevant section instead of the whole document, keeping responses small. Accepts aliases like "methods", "intro" or "evaluation".

**Examples:**
• Method review: "Get the methodology section of keyA"
• Quick summary: "Read the conclusion of keyB"

**Common workflows:**
1. Targeted reading: get_outline → pick a section → get_section
2. Synthesis: get_section from several papers → compare approaches

**Best practices:** If the section is not found the response lists what is available; very long sections are truncated, so follow up with get_pages for the remainder.`

	GetPagesDescription = `Read specific pages of a paper using a range expression like "1-3,7".

**When to use:** You know where the content lives by page, or the paper has no detectable section structure.

**Why it's useful:** Page-level access works on every document, structured or not, and keeps the response bounded.

**Examples:**
• Reviewer comments: "Read pages 4-6 where the experiments start"
• Unstructured notes: "Read page 1 of the scanned report"

**Best practices:** Invalid page numbers are skipped rather than failing the call; page boundaries are estimated when the source has no real page markers, so expect approximate cuts.`

	SearchDescription = `Search one paper for passages relevant to a query.

**When to use:** Looking for where a paper discusses a topic without knowing the section or page.

**Why it's useful:** Uses semantic retrieval when an embedding backend is attached and transparently falls back to keyword paragraph scoring, so it always returns something useful.

**Examples:**
• Topic lookup: "Where does keyA discuss ablation studies?"
• Claim verification: "Find the passage about the 12% improvement"

**Common workflows:**
1. Exploration: search → read surrounding section with get_section
2. Evidence gathering: search for a claim → quote the returned snippet

**Best practices:** Phrase queries as content words rather than questions; the response labels whether semantic or keyword search produced it.`

	SearchWithRegexDescription = `Search a paper's lines with a literal string or regular expression, with context.

**When to use:** Hunting exact tokens: symbol names, dataset identifiers, numeric values, citations like "[42]".

**Why it's useful:** Exact matching with surrounding context lines, something relevance-ranked search cannot give you. Patterns are literal by default; set useRegex for full syntax.

**Examples:**
• Number chase: "Find every line containing '0.91' in keyA"
• Citation trace: "Grep for 'Devlin et al' with 3 context lines"

**Best practices:** Leave useRegex off unless you need it, so dots and brackets match literally; matches are capped, so tighten the pattern if you hit the cap.`

	GetOutlineDescription = `Show a paper's section outline with estimated page locations and section sizes.

**When to use:** First contact with a paper, or deciding which section to read next.

**Why it's useful:** A one-screen map of the document: what sections exist, roughly where they start, and how long they are.

**Examples:**
• Orientation: "Outline keyA before deciding what to read"
• Cost planning: "Check how long the related work section is first"

**Best practices:** Run before get_section on unfamiliar papers; papers without detectable headings report that instead, which tells you to use get_pages.`

	ListSectionsDescription = `List just the detected section names of a paper.

**When to use:** Need valid section names for get_section without the full outline detail.

**Why it's useful:** The cheapest way to learn what get_section will accept.

**Best practices:** Prefer get_outline when you also want page locations and sizes.`

	GetFullTextDescription = `Return a paper's entire text in one response. Expensive; requires confirm=true.

**When to use:** Genuinely need the whole document at once: full-document summarization, export, or a paper too disorganized for section access.

**Why it's useful:** Complete fidelity in one call, prefixed with a size banner so you know the token cost you just paid.

**Examples:**
• Whole-paper summary: "Get the full text of keyA, confirmed, to summarize it end to end"

**Best practices:** Use get_section or search first; this tool refuses without confirm=true precisely because it is almost never the cheapest option.`

	GetPageCountDescription = `Report page, character and word counts for a paper.

**When to use:** Estimating reading cost, choosing between full text and sectioned access, or validating that extraction worked.

**Why it's useful:** Cheap size reconnaissance before committing to expensive reads.

**Best practices:** A very low character count on a PDF usually means the document is scanned images with no text layer.`

	ComparePapersDescription = `Compare one aspect (methodology, results, conclusions, or all) across several papers side by side.

**When to use:** Synthesizing across papers: how do their methods differ, whose results are stronger, what do they each conclude.

**Why it's useful:** Pulls the matching sections from every paper into one grouped report, with an abstract fallback for papers where the aspect was not detected.

**Examples:**
• Method survey: "Compare methodology across keyA, keyB and keyC"
• Findings table: "Compare results of the three fuzzing papers"

**Common workflows:**
1. Literature review: select papers → compare each aspect → synthesize
2. Baseline check: compare results → identify the strongest numbers → verify with get_section

**Best practices:** Unreadable keys are reported inline rather than failing the comparison; section content is capped per paper, so drill into get_section for full detail.`

	SearchAcrossPapersDescription = `Search a query across several papers and group the results by paper.

**When to use:** Finding which papers in a selection discuss a topic, and where.

**Why it's useful:** One call instead of N, with results grouped under each paper so coverage gaps are visible: a paper with no matches still gets its own block saying so.

**Examples:**
• Coverage scan: "Which of these five papers mention data augmentation?"
• Cross-reference: "Find how each selected paper defines robustness"

**Best practices:** Defaults to the current selection when itemKeys is omitted; all papers are searched with the same tier (semantic or keyword) so scores stay comparable.`

	CreateNoteDescription = `Create a note attached to a paper in the library. Requires write access.

**When to use:** Persisting analysis, summaries or reading observations back into the library.

**Why it's useful:** Findings survive the session instead of living only in the conversation.

**Examples:**
• Reading log: "Note on keyA: the ablation in section 5 contradicts the abstract's claim"

**Best practices:** Only available when the server runs with writes enabled; keep one topic per note so later retrieval stays useful.`

	AddTagsDescription = `Add organizational tags to one or more papers. Requires write access.

**When to use:** Organizing the library: marking papers as read, grouping by topic, flagging for follow-up.

**Why it's useful:** Batch tagging across many papers in one call, with duplicate tags ignored.

**Examples:**
• Triage: "Tag keyA and keyB with 'to-read' and 'fuzzing'"

**Best practices:** Only available when the server runs with writes enabled; reuse existing tag spellings to avoid fragmenting the taxonomy.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"list_documents":       ListDocumentsDescription,
	"get_paper_metadata":   GetPaperMetadataDescription,
	"get_section":          GetSectionDescription,
	"get_pages":            GetPagesDescription,
	"search":               SearchDescription,
	"search_with_regex":    SearchWithRegexDescription,
	"get_outline":          GetOutlineDescription,
	"list_sections":        ListSectionsDescription,
	"get_full_text":        GetFullTextDescription,
	"get_page_count":       GetPageCountDescription,
	"compare_papers":       ComparePapersDescription,
	"search_across_papers": SearchAcrossPapersDescription,
	"create_note":          CreateNoteDescription,
	"add_tags":             AddTagsDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
