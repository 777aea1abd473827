package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/seoprobe/core/report"
)

// MarkdownRenderer writes each section as a level-two heading with bullets.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the report as Markdown.
func (r *MarkdownRenderer) Render(rep *report.Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# SEO Report: %s\n", rep.URL)
	for _, sec := range rep.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", sec.Name)
		writeMarkdownValue(&b, sec.Value, 0)
	}
	return []byte(b.String()), nil
}

// writeMarkdownValue writes v as bullets at the given nesting depth.
// Scalars at depth zero are written as a paragraph.
func writeMarkdownValue(b *strings.Builder, v report.Value, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v.Kind() {
	case report.KindMapping:
		for _, e := range v.Entries() {
			switch e.Value.Kind() {
			case report.KindList, report.KindMapping:
				fmt.Fprintf(b, "%s- **%s:**\n", indent, e.Key)
				writeMarkdownValue(b, e.Value, depth+1)
			default:
				fmt.Fprintf(b, "%s- **%s:** %s\n", indent, e.Key, e.Value.String())
			}
		}
	case report.KindList:
		for _, item := range v.List() {
			fmt.Fprintf(b, "%s- %s\n", indent, item)
		}
	default:
		if depth == 0 {
			fmt.Fprintf(b, "%s\n", v.String())
			return
		}
		fmt.Fprintf(b, "%s- %s\n", indent, v.String())
	}
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContentType returns the MIME type for Markdown output.
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}
