package render

import (
	"regexp"
	"strings"
)

var (
	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	h3Re       = regexp.MustCompile(`(?m)^###[ \t]+(.+?)[ \t]*$`)
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*([^*\s](?:[^*\n]*?[^*\s])?)\*`)
	blankRunRe = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)
)

// Minimal converts the small markdown subset used on printed worksheets:
// level-3 headings, bold, italic and line breaks. Substitutions run in a
// fixed order and anything else is left as escaped text.
func Minimal(md string) string {
	s := strings.ReplaceAll(md, "\r\n", "\n")
	s = htmlEscaper.Replace(s)

	s = h3Re.ReplaceAllString(s, "<h3>$1</h3>")
	s = strings.ReplaceAll(s, "</h3>\n", "</h3>")

	// TeX spans keep their asterisks
	s, spans := protectMath(s)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = restoreMath(s, spans, func(span string) string { return span })

	s = blankRunRe.ReplaceAllString(s, "<br><br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}
