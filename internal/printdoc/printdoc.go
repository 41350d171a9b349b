package printdoc

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/render"
)

// PageHeightPx is the printable height of one A4 page at 96dpi after margins.
// Content taller than this is scaled down to fit a single page.
const PageHeightPx = 1050

type Section string

const (
	SectionProblems  Section = "problems"
	SectionSolutions Section = "solutions"
	SectionGuide     Section = "guide"
)

var sectionOrder = []Section{SectionProblems, SectionSolutions, SectionGuide}

var sectionLabels = map[Section]string{
	SectionProblems:  "問題",
	SectionSolutions: "解答・解説",
	SectionGuide:     "指導のポイント",
}

// ParseSections parses a comma separated selection such as "problems,solutions".
// An empty selection means problems only; "all" selects every section.
func ParseSections(s string) ([]Section, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []Section{SectionProblems}, nil
	}
	if s == "all" {
		return append([]Section(nil), sectionOrder...), nil
	}

	selected := map[Section]bool{}
	for _, part := range strings.Split(s, ",") {
		name := Section(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if _, ok := sectionLabels[name]; !ok {
			return nil, fmt.Errorf("unknown section %q (valid: problems, solutions, guide, all)", name)
		}
		selected[name] = true
	}

	var out []Section
	for _, name := range sectionOrder {
		if selected[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return []Section{SectionProblems}, nil
	}
	return out, nil
}

// Options controls the header and content of a print document
type Options struct {
	Title          string
	StudentName    string
	InstructorName string
	Date           string
	Sections       []Section
	AutoPrint      bool
}

type page struct {
	Label string
	Body  template.HTML
}

type document struct {
	Title          string
	StudentName    string
	InstructorName string
	Date           string
	Pages          []page
	PageHeight     int
	AutoPrint      bool
}

// Build assembles a standalone HTML print document for the selected sections.
// Each section is rendered with the minimal print renderer onto its own page.
func Build(s models.Sections, opts Options) (string, error) {
	selected := opts.Sections
	if len(selected) == 0 {
		selected = []Section{SectionProblems}
	}

	title := opts.Title
	if title == "" {
		title = "類題プリント"
	}

	doc := document{
		Title:          title,
		StudentName:    opts.StudentName,
		InstructorName: opts.InstructorName,
		Date:           opts.Date,
		PageHeight:     PageHeightPx,
		AutoPrint:      opts.AutoPrint,
	}

	for _, name := range selected {
		var body string
		switch name {
		case SectionProblems:
			body = s.Problems
			if s.Preamble != "" {
				body = s.Preamble + "\n\n" + body
			}
		case SectionSolutions:
			body = s.Solutions
		case SectionGuide:
			body = s.Guide
		default:
			return "", fmt.Errorf("unknown section %q", name)
		}
		doc.Pages = append(doc.Pages, page{
			Label: sectionLabels[name],
			// Minimal escapes its input before substituting tags
			Body: template.HTML(render.Minimal(body)),
		})
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render print document: %w", err)
	}
	return buf.String(), nil
}
