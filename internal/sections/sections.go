package sections

import (
	"regexp"
	"strings"

	"github.com/worksheet-lab/ruiji/internal/models"
)

// Markers lists the accepted heading texts for each section.
// A level-2 heading opens a section when its text starts with one of the markers.
type Markers struct {
	Problems  []string
	Solutions []string
	Guide     []string
}

// DefaultMarkers match the headings requested by the generation prompt
var DefaultMarkers = Markers{
	Problems:  []string{"問題"},
	Solutions: []string{"解答・解説", "解答", "解説"},
	Guide:     []string{"指導のポイント", "指導者向けメモ", "指導者向け", "講師用ガイド", "講師用"},
}

var (
	headingRe = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]+(.*?)[ \t#]*$`)
	ruleRe    = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	fenceRe   = regexp.MustCompile("^[ \t]*(```|~~~)")
)

// Split extracts the problem, solution and guide sections using DefaultMarkers
func Split(text string) models.Sections {
	return DefaultMarkers.Split(text)
}

// Split extracts the three sections of text. A section whose heading is
// absent is returned as the empty string. The parse never fails.
func (m Markers) Split(text string) models.Sections {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out models.Sections
	problem := section(lines, m.Problems)
	out.Preamble, out.Problems = splitPreamble(problem)
	out.Solutions = section(lines, m.Solutions)
	out.Guide = section(lines, m.Guide)
	return out
}

// section returns the trimmed body under the first level-2 heading matching
// one of markers, ending at the next level-1/2 heading, a horizontal rule, or
// end of text.
func section(lines []string, markers []string) string {
	start := -1
	inFence := false
	for i, line := range lines {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		level, title := heading(line)
		if level == 2 && matches(title, markers) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	inFence = false
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if fenceRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if ruleRe.MatchString(line) {
			end = i
			break
		}
		if level, _ := heading(line); level == 1 || level == 2 {
			end = i
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// splitPreamble separates any lead-in text from the first level-3 problem heading
func splitPreamble(body string) (string, string) {
	if body == "" {
		return "", ""
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if level, _ := heading(line); level == 3 {
			if i == 0 {
				return "", body
			}
			return strings.TrimSpace(strings.Join(lines[:i], "\n")), strings.TrimSpace(strings.Join(lines[i:], "\n"))
		}
	}
	return "", body
}

func heading(line string) (int, string) {
	match := headingRe.FindStringSubmatch(line)
	if match == nil {
		return 0, ""
	}
	return len(match[1]), match[2]
}

func matches(title string, markers []string) bool {
	title = strings.TrimLeft(title, "0123456789０１２３４５６７８９.．、)）【[「*_ \t")
	for _, marker := range markers {
		if strings.HasPrefix(title, marker) {
			return true
		}
	}
	return false
}
