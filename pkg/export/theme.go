package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style is a set of Graphviz attribute overrides.
type Style map[string]string

// Theme styles the rendered graph. Themes are loaded from YAML files so
// users can restyle output without touching code.
type Theme struct {
	// Name identifies the theme.
	Name string `yaml:"name"`
	// Graph overrides graph-level attributes.
	Graph Style `yaml:"graph"`
	// Node overrides the default node attributes.
	Node Style `yaml:"node"`
	// Edge overrides the default edge attributes.
	Edge Style `yaml:"edge"`
	// Types styles nodes by their declared vertex type.
	Types map[string]Style `yaml:"types"`
	// Locked styles nodes whose name marks them as locked.
	Locked Style `yaml:"locked"`
	// Recovery styles recovery-labelled edges.
	Recovery Style `yaml:"recovery"`
}

// DefaultTheme returns the styling applied when no theme file is given:
// locked vertices are hatched and recovery edges are dashed, matching the
// conventions of the text format.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",
		Locked: Style{
			"style":     "diagonals",
			"fontcolor": "gray25",
		},
		Recovery: Style{
			"style": "dashed",
		},
	}
}

// LoadTheme decodes a theme from YAML.
func LoadTheme(data []byte) (*Theme, error) {
	theme := &Theme{}
	if err := yaml.Unmarshal(data, theme); err != nil {
		return nil, fmt.Errorf("decoding theme: %w", err)
	}
	if theme.Name == "" {
		return nil, fmt.Errorf("theme has no name")
	}
	return theme, nil
}

// LoadThemeFile reads and decodes a theme from a YAML file.
func LoadThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme %s: %w", path, err)
	}
	return LoadTheme(data)
}

// styleFor merges the theme styles that apply to a node, later sources
// overriding earlier ones: type style first, then the locked style.
func (t *Theme) styleFor(node Node) Style {
	merged := Style{}
	if typeStyle, ok := t.Types[node.Type]; ok {
		for k, v := range typeStyle {
			merged[k] = v
		}
	}
	if node.Locked {
		for k, v := range t.Locked {
			merged[k] = v
		}
	}
	return merged
}
