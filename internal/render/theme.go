package render

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed theme/*.yaml
var themeFiles embed.FS

// BlockTheme holds the metrics for one block kind.
type BlockTheme struct {
	Size        float64 `yaml:"size"`
	Bold        bool    `yaml:"bold"`
	Italic      bool    `yaml:"italic"`
	PadBottom   float64 `yaml:"pad_bottom"`
	Indent      float64 `yaml:"indent"`
	BorderWidth float64 `yaml:"border_width"`
}

// Theme describes the page geometry and per-tag typography of the PDF
// layout. Loaded once from an embedded YAML file.
type Theme struct {
	Page struct {
		Size       string  `yaml:"size"`
		Margin     float64 `yaml:"margin"`
		FontFamily string  `yaml:"font_family"`
		BodySize   float64 `yaml:"body_size"`
		LineHeight float64 `yaml:"line_height"`
	} `yaml:"page"`

	Header struct {
		TitleSize float64 `yaml:"title_size"`
		MetaSize  float64 `yaml:"meta_size"`
		LogoWidth float64 `yaml:"logo_width"`
		PadBottom float64 `yaml:"pad_bottom"`
	} `yaml:"header"`

	Footer struct {
		Size float64 `yaml:"size"`
	} `yaml:"footer"`

	Blocks map[string]BlockTheme `yaml:"blocks"`

	SpacerHeight float64 `yaml:"spacer_height"`
}

// themeKeys maps block kinds onto their YAML section.
var themeKeys = map[BlockKind]string{
	BlockText:      "text",
	BlockParagraph: "paragraph",
	BlockHeading1:  "h1",
	BlockHeading2:  "h2",
	BlockHeading3:  "h3",
	BlockQuote:     "blockquote",
	BlockList:      "list",
}

// LoadTheme reads a named theme from the embedded files.
func LoadTheme(name string) (*Theme, error) {
	data, err := themeFiles.ReadFile(fmt.Sprintf("theme/%s.yaml", name))
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", name, err)
	}

	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("unmarshal theme %s: %w", name, err)
	}

	for kind, key := range themeKeys {
		if _, ok := theme.Blocks[key]; !ok {
			return nil, fmt.Errorf("theme %s: missing block section %q for kind %d", name, key, kind)
		}
	}

	return &theme, nil
}

// DefaultTheme loads the built-in theme.
func DefaultTheme() (*Theme, error) {
	return LoadTheme("default")
}

// blockTheme resolves the metrics for a block kind. Kinds without a
// section fall back to body text metrics.
func (t *Theme) blockTheme(kind BlockKind) BlockTheme {
	if key, ok := themeKeys[kind]; ok {
		if bt, ok := t.Blocks[key]; ok {
			return bt
		}
	}
	return BlockTheme{Size: t.Page.BodySize}
}
