package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/localize/pkg/sanitizer"
)

func TestContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "keeps formatting",
			input:    `<h1>Bienvenue</h1><p>Hello <strong>world</strong> <em>!</em></p>`,
			contains: []string{"<h1>Bienvenue</h1>", "<strong>world</strong>", "<em>!</em>"},
		},
		{
			name:     "strips scripts",
			input:    `<p>Hi</p><script>alert('xss')</script>`,
			contains: []string{"<p>Hi</p>"},
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "strips event handlers",
			input:    `<p onclick="alert(1)">x</p>`,
			contains: []string{"<p>x</p>"},
			excludes: []string{"onclick"},
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert(1)">click</a>`,
			excludes: []string{"javascript:"},
		},
		{
			name:     "adds nofollow to links",
			input:    `<a href="https://example.com">site</a>`,
			contains: []string{`href="https://example.com"`, "nofollow", "noopener", `target="_blank"`},
		},
		{
			name:     "keeps language attributes",
			input:    `<p lang="fr" dir="ltr">Bonjour</p>`,
			contains: []string{`lang="fr"`, `dir="ltr"`},
		},
		{
			name:     "keeps tables and lists",
			input:    `<table><tr><td>1</td></tr></table><ul><li>a</li></ul>`,
			contains: []string{"<td>1</td>", "<li>a</li>"},
		},
		{
			name:     "strips style attributes",
			input:    `<p style="color:red">x</p>`,
			excludes: []string{"style"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizer.Content(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: `<b>États-Unis</b>`, expected: "États-Unis"},
		{input: `France<script>alert(1)</script>`, expected: "France"},
		{input: "plain", expected: "plain"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Text(tt.input))
		})
	}
}

func TestCustom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<b>x</b>", sanitizer.Custom("<b>x</b>", nil))

	p := bluemonday.NewPolicy()
	p.AllowElements("b")
	assert.Equal(t, "<b>x</b>y", sanitizer.Custom("<b>x</b><i>y</i>", p))
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Trinidad & Tobago", sanitizer.StripTags("<i>Trinidad &amp; Tobago</i>"))
	assert.Equal(t, "Bosnia & Herzegovina", sanitizer.StripTags("Bosnia & Herzegovina"))
	assert.Equal(t, "Côte d'Ivoire", sanitizer.StripTags(`Côte d'Ivoire<img src=x onerror="alert(1)">`))
}
