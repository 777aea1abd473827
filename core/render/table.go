package render

import (
	"strings"

	"github.com/gaurav-prasanna/seoprobe/core/report"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxCellWidth wraps long values such as robots.txt bodies.
const maxCellWidth = 100

// TableRenderer renders the report as terminal tables, one per section.
type TableRenderer struct{}

// NewTableRenderer creates a TableRenderer.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

// Render returns the tables separated by blank lines.
func (r *TableRenderer) Render(rep *report.Report) ([]byte, error) {
	var b strings.Builder
	for i, sec := range rep.Sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(sectionTable(sec).Render())
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// Extension returns the file extension for table output.
func (r *TableRenderer) Extension() string {
	return ".txt"
}

// ContentType returns the MIME type for table output.
func (r *TableRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// sectionTable builds a rounded table titled with the section name.
// Mappings become key/value rows, lists one row per item.
func sectionTable(sec report.Section) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(sec.Name)
	t.Style().Title.Format = text.FormatUpper

	// The last column is widened so the title never wraps mid-word.
	titleWidth := text.RuneWidthWithoutEscSequences(sec.Name)

	switch sec.Value.Kind() {
	case report.KindMapping:
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMin: titleWidth, WidthMax: maxCellWidth},
		})
		for _, e := range sec.Value.Entries() {
			t.AppendRow(table.Row{e.Key, cellText(e.Value)})
		}
	case report.KindList:
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, WidthMin: titleWidth, WidthMax: maxCellWidth},
		})
		for _, item := range sec.Value.List() {
			t.AppendRow(table.Row{item})
		}
	default:
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, WidthMin: titleWidth, WidthMax: maxCellWidth},
		})
		t.AppendRow(table.Row{sec.Value.String()})
	}
	return t
}

// cellText renders a nested value as multi-line cell content.
func cellText(v report.Value) string {
	switch v.Kind() {
	case report.KindList:
		return strings.Join(v.List(), "\n")
	case report.KindMapping:
		entries := v.Entries()
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = e.Key + ": " + cellText(e.Value)
		}
		return strings.Join(lines, "\n")
	default:
		return v.String()
	}
}
