package models

import "slices"

type DocumentKind string

const (
	KindResume      DocumentKind = "resume"
	KindCoverLetter DocumentKind = "cover_letter"
)

// Template is the enumerated resume layout choice.
type Template string

const (
	TemplateMinimalistClean        Template = "minimalist-clean"
	TemplateStructuredProfessional Template = "structured-professional"
	TemplateChronological          Template = "chronological"
)

var Templates = []Template{
	TemplateMinimalistClean,
	TemplateStructuredProfessional,
	TemplateChronological,
}

func (t Template) Valid() bool {
	return slices.Contains(Templates, t)
}

func (t Template) Label() string {
	switch t {
	case TemplateMinimalistClean:
		return "Minimalist Clean (ATS Friendly)"
	case TemplateStructuredProfessional:
		return "Structured Professional (Project Focused)"
	case TemplateChronological:
		return "Chronological (Experience Focused)"
	default:
		return string(t)
	}
}

type BlockKind string

const (
	BlockHeading1  BlockKind = "heading1"
	BlockHeading2  BlockKind = "heading2"
	BlockHeading3  BlockKind = "heading3"
	BlockBullet    BlockKind = "bullet"
	BlockParagraph BlockKind = "paragraph"
)

type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

type Block struct {
	Kind  BlockKind `json:"kind"`
	Spans []Span    `json:"spans"`
}

func (b Block) PlainText() string {
	var out string
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}

// Document is generated content ready for export. It is rebuilt from scratch
// on every regeneration.
type Document struct {
	Kind     DocumentKind `json:"kind"`
	Template Template     `json:"template,omitempty"`
	Title    string       `json:"title"`
	Filename string       `json:"filename"`
	Markdown string       `json:"markdown"`
	Blocks   []Block      `json:"blocks"`
}
