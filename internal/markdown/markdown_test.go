package markdown

import (
	"strings"
	"testing"
)

// TestToHTML verifies basic Markdown constructs convert and that raw HTML
// from post authors is escaped rather than passed through.
func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains string
	}{
		{
			name:     "paragraph",
			source:   "plain text",
			contains: "<p>plain text</p>",
		},
		{
			name:     "emphasis",
			source:   "some *emphasized* text",
			contains: "<em>emphasized</em>",
		},
		{
			name:     "heading",
			source:   "# Title",
			contains: "<h1",
		},
		{
			name:     "gfm strikethrough",
			source:   "~~gone~~",
			contains: "<del>gone</del>",
		},
		{
			name:     "gfm autolink",
			source:   "see https://example.com for details",
			contains: `<a href="https://example.com"`,
		},
		{
			name:     "fenced code block is highlighted",
			source:   "```go\nfunc main() {}\n```",
			contains: "<pre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q) error: %v", tt.source, err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, tt.contains)
			}
		})
	}
}

// TestToHTMLEscapesRawHTML verifies script tags in user content never
// reach the page unescaped.
func TestToHTMLEscapesRawHTML(t *testing.T) {
	got, err := ToHTML(`<script>alert("xss")</script>`)
	if err != nil {
		t.Fatalf("ToHTML error: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw script tag passed through: %q", got)
	}
}
