package render

import (
	"strings"
	"testing"
)

func TestMinimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text only gets line breaks",
			input:    "これは問題です。\n\n次の行\nさらに",
			expected: "これは問題です。<br><br>次の行<br>さらに",
		},
		{
			name:     "plain text without newlines is unchanged",
			input:    "What is 2+2?",
			expected: "What is 2+2?",
		},
		{
			name:     "several blank lines collapse to one paragraph break",
			input:    "a\n\n\n\nb",
			expected: "a<br><br>b",
		},
		{
			name:     "level-3 heading",
			input:    "### 問題1\n本文",
			expected: "<h3>問題1</h3>本文",
		},
		{
			name:     "bold and italic",
			input:    "**太字** と *斜体*",
			expected: "<strong>太字</strong> と <em>斜体</em>",
		},
		{
			name:     "html is escaped",
			input:    "a < b & c > d",
			expected: "a &lt; b &amp; c &gt; d",
		},
		{
			name:     "other heading levels are left alone",
			input:    "## 問題",
			expected: "## 問題",
		},
		{
			name:     "asterisks inside math are not emphasis",
			input:    "$2 * 3 * 4$ を計算せよ",
			expected: "$2 * 3 * 4$ を計算せよ",
		},
		{
			name:     "spaced asterisks are not emphasis",
			input:    "2 * 3 * 4",
			expected: "2 * 3 * 4",
		},
		{
			name:     "bold next to math",
			input:    "**注意** $a*b$",
			expected: "<strong>注意</strong> $a*b$",
		},
		{
			name:     "crlf input",
			input:    "x\r\n\r\ny",
			expected: "x<br><br>y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Minimal(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRich(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "inline math survives emphasis markers",
			input:    "**重要** $x_1 * y_2 = z_1$",
			contains: []string{"<strong>重要</strong>", "$x_1 * y_2 = z_1$"},
		},
		{
			name:     "display math is escaped but kept",
			input:    "$$\na < b\n$$",
			contains: []string{"$$\na &lt; b\n$$"},
		},
		{
			name:     "bracket delimiters",
			input:    `\(\frac{1}{2}\) と \[x^2\]`,
			contains: []string{`\(\frac{1}{2}\)`, `\[x^2\]`},
		},
		{
			name:     "dollar amounts are not math",
			input:    "It costs $5 and **bold** $10 total",
			contains: []string{"$5 and <strong>bold</strong> $10 total"},
		},
		{
			name:     "single character inline math",
			input:    "$x$ と *y*",
			contains: []string{"$x$", "<em>y</em>"},
		},
		{
			name:     "tables render",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:        "raw html is not passed through",
			input:       "<script>alert(1)</script>",
			notContains: []string{"<script>"},
		},
		{
			name:     "headings",
			input:    "### 問題1\n本文",
			contains: []string{"<h3>問題1</h3>", "<p>本文</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Rich(tt.input)
			if err != nil {
				t.Fatalf("Rich() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, result)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(result, unwanted) {
					t.Errorf("Expected output not to contain %q, got:\n%s", unwanted, result)
				}
			}
		})
	}
}
