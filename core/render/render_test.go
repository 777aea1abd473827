package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/seoprobe/core"
	"github.com/gaurav-prasanna/seoprobe/core/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ core.Renderer = (*PDFRenderer)(nil)
	_ core.Renderer = (*JSONRenderer)(nil)
	_ core.Renderer = (*MarkdownRenderer)(nil)
	_ core.Renderer = (*TableRenderer)(nil)
)

func sampleReport() *report.Report {
	rep := report.New("https://example.com")
	rep.Add(report.SectionMeta, report.Mapping(
		report.E("Title", report.Text("Example")),
		report.E("Meta Description", report.Text("N/A")),
	))
	rep.Add(report.SectionHeadings, report.Mapping(
		report.E("H1", report.List([]string{"Welcome", "About"})),
		report.E("H2", report.List(nil)),
	))
	rep.Add(report.SectionSchema, report.Text("Not Found"))
	rep.Add(report.SectionPageSpeed, report.Mapping(
		report.E("Desktop", report.Mapping(
			report.E("Performance", report.Number(91)),
			report.E("SEO", report.Number(50)),
		)),
		report.E("Mobile", report.Text("Error: PageSpeed API request timed out")),
	))
	rep.Add(report.SectionTechnologies, report.List([]string{"Nginx", "WordPress"}))
	return rep
}

func bodyTexts(lines []pdfLine) []string {
	var out []string
	for _, ln := range lines {
		switch ln.Kind {
		case lineHeading:
			out = append(out, "# "+ln.Text)
		case lineBody:
			out = append(out, ln.Text)
		case lineBreak:
			out = append(out, "")
		}
	}
	return out
}

func TestLayout_SectionOrderAndIndentation(t *testing.T) {
	got := bodyTexts(layout(sampleReport()))

	assert.Equal(t, []string{
		"# Meta Information",
		"Title: Example",
		"Meta Description: N/A",
		"",
		"# Headings",
		"H1:",
		"  - Welcome",
		"  - About",
		"H2:",
		"",
		"# Schema Markup",
		"Not Found",
		"",
		"# PageSpeed Insights",
		"Desktop:",
		"  - Performance: 91",
		"  - SEO: 50",
		"Mobile: Error: PageSpeed API request timed out",
		"",
		"# Detected Technologies",
		"- Nginx",
		"- WordPress",
		"",
	}, got)
}

func TestPDFRenderer_Render(t *testing.T) {
	r := NewPDFRenderer()
	data, err := r.Render(sampleReport())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, ".pdf", r.Extension())
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestPDFRenderer_NonLatinText(t *testing.T) {
	rep := report.New("https://example.com")
	rep.Add(report.SectionMeta, report.Mapping(
		report.E("Title", report.Text("Café – Ünïcode “quotes”")),
	))

	data, err := NewPDFRenderer().Render(rep)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestJSONRenderer_KeepsOrder(t *testing.T) {
	data, err := NewJSONRenderer().Render(sampleReport())
	require.NoError(t, err)
	require.True(t, json.Valid(data))

	s := string(data)
	order := []string{`"Meta Information"`, `"Headings"`, `"Schema Markup"`, `"PageSpeed Insights"`, `"Detected Technologies"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, key)
		last = idx
	}
	assert.Less(t, strings.Index(s, `"Performance"`), strings.Index(s, `"SEO"`))
}

func TestJSONRenderer_Deterministic(t *testing.T) {
	a, err := NewJSONRenderer().Render(sampleReport())
	require.NoError(t, err)
	b, err := NewJSONRenderer().Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarkdownRenderer_Render(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(sampleReport())
	require.NoError(t, err)

	md := string(data)
	assert.True(t, strings.HasPrefix(md, "# SEO Report: https://example.com\n"))
	assert.Contains(t, md, "## Meta Information\n\n- **Title:** Example\n")
	assert.Contains(t, md, "- **H1:**\n  - Welcome\n  - About\n")
	assert.Contains(t, md, "## Schema Markup\n\nNot Found\n")
	assert.Contains(t, md, "- **Desktop:**\n  - **Performance:** 91\n")
	assert.Contains(t, md, "## Detected Technologies\n\n- Nginx\n- WordPress\n")
}

func TestTableRenderer_Render(t *testing.T) {
	data, err := NewTableRenderer().Render(sampleReport())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "META INFORMATION")
	assert.Contains(t, out, "DETECTED TECHNOLOGIES")
	assert.Contains(t, out, "Welcome")
	assert.Contains(t, out, "Performance: 91")
	assert.Less(t, strings.Index(out, "META INFORMATION"), strings.Index(out, "HEADINGS"))
}

func TestTableRenderer_TitleWiderThanBody(t *testing.T) {
	rep := report.New("https://example.com")
	rep.Add(report.SectionSchema, report.Text("N/A"))
	rep.Add(report.SectionTechnologies, report.List([]string{"PHP"}))
	rep.Add(report.SectionPageSpeed, report.Mapping(
		report.E("A", report.Number(1)),
	))

	data, err := NewTableRenderer().Render(rep)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "SCHEMA MARKUP")
	assert.Contains(t, out, "DETECTED TECHNOLOGIES")
	assert.Contains(t, out, "PAGESPEED INSIGHTS")
}
