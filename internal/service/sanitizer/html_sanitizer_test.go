package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "allowed formatting survives",
			input:    "<p>Hello <b>World</b></p>",
			expected: "<p>Hello <b>World</b></p>",
		},
		{
			name:     "headings and lists survive",
			input:    "<h1>T</h1><ul><li>a</li></ul><ol><li>b</li></ol>",
			expected: "<h1>T</h1><ul><li>a</li></ul><ol><li>b</li></ol>",
		},
		{
			name:     "script tag is removed entirely",
			input:    "<p>hi</p><script>alert('x')</script>",
			expected: "<p>hi</p>",
		},
		{
			name:     "event handlers are stripped",
			input:    `<p onclick="steal()">hi</p>`,
			expected: "<p>hi</p>",
		},
		{
			name:     "unknown tag is unwrapped keeping text",
			input:    "<div>keep me</div>",
			expected: "keep me",
		},
		{
			name:     "img is dropped",
			input:    `<p>a<img src="x.png">b</p>`,
			expected: "<p>ab</p>",
		},
		{
			name:     "https link keeps href",
			input:    `<a href="https://example.com">link</a>`,
			expected: `<a href="https://example.com">link</a>`,
		},
		{
			name:     "style on non-span is stripped",
			input:    `<p style="color: red">text</p>`,
			expected: "<p>text</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitize_JavascriptSchemeStripped(t *testing.T) {
	s := New()

	got := s.Sanitize(`<a href="javascript:alert(1)">click</a>`)
	if strings.Contains(got, "javascript") {
		t.Errorf("javascript URL survived: %q", got)
	}
	if !strings.Contains(got, "click") {
		t.Errorf("link text was lost: %q", got)
	}
}

func TestSanitize_AllowedSpanStyleSurvives(t *testing.T) {
	s := New()

	got := s.Sanitize(`<span style="color: red">alert</span>`)
	if !strings.Contains(got, "color") || !strings.Contains(got, "red") {
		t.Errorf("allowed style was stripped: %q", got)
	}
}

func TestSanitize_ForeignStyleProperties(t *testing.T) {
	s := New()

	got := s.Sanitize(`<span style="position: fixed; color: blue; font-size: 80px">x</span>`)
	if strings.Contains(got, "position") || strings.Contains(got, "font-size") {
		t.Errorf("foreign properties survived: %q", got)
	}
	if !strings.Contains(got, "color: blue") {
		t.Errorf("allowed property was stripped: %q", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := New()

	input := `<h2>Title</h2><p>Body <span style="font-weight: bold">strong</span></p>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("sanitize is not idempotent: %q vs %q", once, twice)
	}
}
