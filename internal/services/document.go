package services

// DocumentDefinition is a declarative, renderer-agnostic description of the
// order summary document. The frontend feeds it to a pdfmake-compatible
// renderer to produce the binary PDF; this side never renders.
type DocumentDefinition struct {
	PageSize    string               `json:"pageSize"`
	PageMargins []int                `json:"pageMargins"`
	Header      TextBlock            `json:"header"`
	Footer      TextBlock            `json:"footer"`
	Content     []any                `json:"content"`
	Styles      map[string]TextStyle `json:"styles"`
}

// TextBlock is a text node. Text is either a plain string or a []Span for
// mixed formatting.
type TextBlock struct {
	Text      any    `json:"text"`
	FontSize  int    `json:"fontSize,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italics   bool   `json:"italics,omitempty"`
	Color     string `json:"color,omitempty"`
	Alignment string `json:"alignment,omitempty"`
	Margin    []int  `json:"margin,omitempty"`
}

// Span is one formatted run inside a TextBlock.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// TableBlock is a table node with an optional layout name.
type TableBlock struct {
	Table  Table  `json:"table"`
	Layout string `json:"layout,omitempty"`
	Margin []int  `json:"margin,omitempty"`
}

// Table holds the column widths and cell rows of a TableBlock. Cells are
// either plain strings or TableCell values.
type Table struct {
	HeaderRows int      `json:"headerRows"`
	Widths     []string `json:"widths"`
	Body       [][]any  `json:"body"`
}

// TableCell is a styled table cell.
type TableCell struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// TextStyle is a named style referenced by cells and blocks.
type TextStyle struct {
	Bold      bool   `json:"bold,omitempty"`
	FontSize  int    `json:"fontSize,omitempty"`
	Color     string `json:"color,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}
