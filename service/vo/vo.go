package vo

type Markdown string

type ContentSummary struct {
	Title       string   `json:"title"`       // Page title
	Description string   `json:"description"` // 2-3 sentence abstract
	Keywords    []string `json:"keywords"`    // Keywords
}

type DocumentSummary struct {
	URL            string   `json:"url"` // Unique identifier (URL hash or custom ID)
	ID             string   `json:"id,omitempty"`
	MimeType       MimeType `json:"mimeType,omitempty"`
	ContentSummary `json:"contentSummary"`
}

type MimeType string

// Article is one marker-delimited block of the source document: the joined
// narrative prose and the transition phrases listed after it.
type Article struct {
	Narrative   string   `json:"narrative"`
	Transitions []string `json:"transitions"`
}

// Example is one training triple. ParagraphA and ParagraphB are the trimmed
// halves of an article narrative around the first occurrence of Transition.
type Example struct {
	ParagraphA string `json:"paragraph_a"`
	Transition string `json:"transition"`
	ParagraphB string `json:"paragraph_b"`
}

// ExtractionResult is the full output of the aggregation pass over one document.
type ExtractionResult struct {
	Examples             []Example      `json:"examples"`
	TransitionCounts     map[string]int `json:"transitionCounts"`               // total occurrences per transition
	UniqueTransitions    []string       `json:"uniqueTransitions"`              // sorted, deduplicated
	DuplicateTransitions map[string]int `json:"duplicateTransitions,omitempty"` // occurrences > 1
	OverflowTransitions  map[string]int `json:"overflowTransitions,omitempty"`  // occurrences > 3, more than the cap keeps
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TrainingRecord is the chat-style fine-tuning row derived from one Example.
type TrainingRecord struct {
	Messages []Message `json:"messages"`
}

type Document struct {
	DocumentSummary DocumentSummary
	Markdown        Markdown `json:"markdown,omitempty"` // Full content in markdown

	Breadcrump []DocumentSummary `json:"breadcrump,omitempty"`

	Paragraphs []string          `json:"paragraphs,omitempty"` // The trimmed paragraph sequence fed to extraction
	Articles   []Article         `json:"articles,omitempty"`
	Result     *ExtractionResult `json:"result,omitempty"`
	Records    []TrainingRecord  `json:"records,omitempty"`
}
