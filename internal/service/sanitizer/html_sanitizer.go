package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"

	"instruks/internal/domain/services"
)

// HTMLSanitizer strips HTML down to the rich-text subset instruks content
// is allowed to carry. Everything the renderer understands survives;
// scripts, event handlers and unknown styles do not.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// New creates a sanitizer with the instruks content whitelist:
// tags p,b,i,u,strong,em,ul,ol,li,br,h1,h2,h3,blockquote,code,pre,a,span;
// href on anchors (http/https only) and a restricted style subset on spans.
func New() services.Sanitizer {
	policy := bluemonday.NewPolicy()

	policy.AllowElements(
		"p", "b", "i", "u", "strong", "em", "ul", "ol", "li", "br",
		"h1", "h2", "h3", "blockquote", "code", "pre", "a", "span",
	)

	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("http", "https")
	policy.RequireParseableURLs(true)

	// The renderer's inline walker only reads these four properties.
	policy.AllowAttrs("style").OnElements("span")
	policy.AllowStyles("text-decoration", "font-weight", "font-style", "color").OnElements("span")

	return &HTMLSanitizer{policy: policy}
}

// Sanitize removes disallowed tags, attributes and CSS properties.
func (s *HTMLSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
