package render

import "testing"

func TestComposeCSS(t *testing.T) {
	tests := []struct {
		name     string
		base     TextStyle
		attr     string
		expected TextStyle
	}{
		{
			name:     "underline decoration",
			attr:     "text-decoration: underline",
			expected: TextStyle{Underline: true},
		},
		{
			name:     "line-through decoration",
			attr:     "text-decoration: line-through",
			expected: TextStyle{Strike: true},
		},
		{
			name:     "combined decoration",
			attr:     "text-decoration: underline line-through",
			expected: TextStyle{Underline: true, Strike: true},
		},
		{
			name:     "font-weight bold",
			attr:     "font-weight: bold",
			expected: TextStyle{Bold: true},
		},
		{
			name:     "font-weight 700",
			attr:     "font-weight: 700",
			expected: TextStyle{Bold: true},
		},
		{
			name:     "font-weight 400 is not bold",
			attr:     "font-weight: 400",
			expected: TextStyle{},
		},
		{
			name:     "font-style italic",
			attr:     "font-style: italic",
			expected: TextStyle{Italic: true},
		},
		{
			name:     "color red",
			attr:     "color: red",
			expected: TextStyle{Color: ColorRed},
		},
		{
			name:     "color matches by substring",
			attr:     "color: darkgreen",
			expected: TextStyle{Color: ColorGreen},
		},
		{
			name:     "hex color is ignored",
			attr:     "color: #ff0000",
			expected: TextStyle{},
		},
		{
			name:     "unknown property is ignored",
			attr:     "font-size: 40px; color: blue",
			expected: TextStyle{Color: ColorBlue},
		},
		{
			name:     "multiple declarations compose",
			attr:     "font-weight: bold; font-style: italic; color: red",
			expected: TextStyle{Bold: true, Italic: true, Color: ColorRed},
		},
		{
			name:     "base style is kept",
			base:     TextStyle{Bold: true},
			attr:     "color: blue",
			expected: TextStyle{Bold: true, Color: ColorBlue},
		},
		{
			name:     "garbage attr leaves base untouched",
			base:     TextStyle{Italic: true},
			attr:     ";;;:::",
			expected: TextStyle{Italic: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeCSS(tt.base, tt.attr)
			if got != tt.expected {
				t.Errorf("composeCSS(%+v, %q) = %+v, expected %+v", tt.base, tt.attr, got, tt.expected)
			}
		})
	}
}

func TestTextStyle_CompositionReturnsCopies(t *testing.T) {
	base := TextStyle{}
	bold := base.withBold()

	if base.Bold {
		t.Errorf("withBold mutated the receiver")
	}
	if !bold.Bold {
		t.Errorf("withBold did not set Bold on the copy")
	}

	link := base.linkStyle()
	if !link.Underline || link.Color != ColorBlue {
		t.Errorf("linkStyle = %+v, expected underline+blue", link)
	}
	if base.Underline || base.Color != ColorDefault {
		t.Errorf("linkStyle mutated the receiver")
	}
}
