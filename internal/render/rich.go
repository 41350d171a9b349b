package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const mathPlaceholder = "RUIJIMATH%dEND"

var (
	// Inline $...$ needs non-space just inside both delimiters, so prices
	// like "$5 and $10" stay text.
	mathRe        = regexp.MustCompile(`(?s)\$\$.+?\$\$|\\\[.+?\\\]|\\\(.+?\\\)|\$[^\s$](?:[^$\n]*?[^\s$])?\$`)
	placeholderRe = regexp.MustCompile(`RUIJIMATH(\d+)END`)

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
)

// Rich renders full GitHub-flavored markdown for on-screen display.
// TeX spans are kept out of the markdown parser and emitted verbatim so
// KaTeX can typeset them in the browser.
func Rich(md string) (string, error) {
	protected, spans := protectMath(md)

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(protected), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	out := restoreMath(buf.String(), spans, htmlEscaper.Replace)
	return strings.TrimSpace(out), nil
}

// protectMath swaps TeX spans for numbered placeholders
func protectMath(s string) (string, []string) {
	var spans []string
	protected := mathRe.ReplaceAllStringFunc(s, func(span string) string {
		spans = append(spans, span)
		return fmt.Sprintf(mathPlaceholder, len(spans)-1)
	})
	return protected, spans
}

func restoreMath(s string, spans []string, escape func(string) string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(token string) string {
		idx, err := strconv.Atoi(placeholderRe.FindStringSubmatch(token)[1])
		if err != nil || idx >= len(spans) {
			return token
		}
		return escape(spans[idx])
	})
}
