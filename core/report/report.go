package report

// Section names, in the order the pipeline appends them.
const (
	SectionMeta         = "Meta Information"
	SectionHeadings     = "Headings"
	SectionImages       = "Images"
	SectionLinks        = "Links"
	SectionKeywords     = "Top Keywords"
	SectionSchema       = "Schema Markup"
	SectionRobots       = "robots.txt"
	SectionSitemap      = "sitemap.xml"
	SectionSiteFiles    = "robots.txt / sitemap.xml"
	SectionPageSpeed    = "PageSpeed Insights"
	SectionTechnologies = "Detected Technologies"
)

// Section is one named block of the report.
type Section struct {
	Name  string
	Value Value
}

// Report is an ordered list of sections for a single analyzed URL.
// It is built once per run and not mutated after the run finishes.
type Report struct {
	URL      string
	Sections []Section
}

// New creates an empty report for url.
func New(url string) *Report {
	return &Report{URL: url}
}

// Add appends a section. A repeated name replaces the earlier value in place
// so section order stays stable.
func (r *Report) Add(name string, v Value) {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			r.Sections[i].Value = v
			return
		}
	}
	r.Sections = append(r.Sections, Section{Name: name, Value: v})
}

// Get returns the section value by name.
func (r *Report) Get(name string) (Value, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Value, true
		}
	}
	return Value{}, false
}

// Names lists section names in order.
func (r *Report) Names() []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return names
}

// MarshalJSON encodes the report as a JSON object keyed by section name,
// in section order.
func (r *Report) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(r.Sections), func(i int) (string, Value) {
		return r.Sections[i].Name, r.Sections[i].Value
	})
}
