package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Rendered views: user-generated-content rules plus language markup,
		// since localized pages may embed fragments in another language.
		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.AllowAttrs("lang", "dir").Globally()
		contentPolicy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		contentPolicy.RequireNoFollowOnLinks(true)
		contentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// Content sanitizes rendered view HTML. Formatting, headings, lists, tables,
// links and images with safe URLs are kept; scripts, styles, event handlers
// and javascript: URLs are removed.
func Content(html string) string {
	initPolicies()
	return contentPolicy.Sanitize(html)
}

// Text strips all markup and returns plain text.
// Use it for values that end up in headers or attributes, e.g. display names.
func Text(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// StripTags removes all markup and decodes entities, returning text that
// is safe only once the caller escapes it again (html/template, JSON).
func StripTags(s string) string {
	return html.UnescapeString(Text(s))
}

// Custom applies policy, returning s unchanged when policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
