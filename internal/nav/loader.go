package nav

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultMenu []byte

// itemSchema is the YAML shape of one entry. A missing type means link.
type itemSchema struct {
	Type  string `yaml:"type,omitempty"`
	Label string `yaml:"label,omitempty"`
	Href  string `yaml:"href,omitempty"`
	Icon  string `yaml:"icon,omitempty"`
}

// Default returns the menu compiled into the binary.
func Default() Menu {
	m, err := Parse(defaultMenu)
	if err != nil {
		panic(fmt.Sprintf("embedded navigation menu is invalid: %v", err))
	}
	return m
}

// Load reads a menu from path, or returns the embedded default when path is
// empty. The result is validated.
func Load(path string) (Menu, error) {
	if path == "" {
		return Parse(defaultMenu)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read navigation file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML menu.
func Parse(data []byte) (Menu, error) {
	var raw []itemSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse navigation yaml: %w", err)
	}

	menu := make(Menu, 0, len(raw))
	for _, entry := range raw {
		kind := Kind(entry.Type)
		if kind == "" {
			kind = KindLink
		}
		menu = append(menu, Item{
			Kind:  kind,
			Label: entry.Label,
			Href:  entry.Href,
			Icon:  entry.Icon,
		})
	}

	if err := menu.Validate(); err != nil {
		return nil, err
	}
	return menu, nil
}
