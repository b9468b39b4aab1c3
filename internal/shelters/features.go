package shelters

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed features.yaml
var defaultFeatures []byte

// Catalogue maps feature codes to their descriptions.
type Catalogue map[FeatureCode]string

type catalogueFile struct {
	Features map[int]string `yaml:"features"`
}

// DefaultCatalogue returns the built-in feature descriptions.
func DefaultCatalogue() Catalogue {
	cat, err := parseCatalogue(defaultFeatures)
	if err != nil {
		panic(fmt.Sprintf("embedded features.yaml: %v", err))
	}
	return cat
}

// LoadCatalogue returns the built-in catalogue with entries from the YAML
// file at path layered on top. An empty path yields the defaults.
func LoadCatalogue(path string) (Catalogue, error) {
	cat := DefaultCatalogue()
	if path == "" {
		return cat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feature catalogue: %w", err)
	}
	override, err := parseCatalogue(data)
	if err != nil {
		return nil, fmt.Errorf("parse feature catalogue %s: %w", path, err)
	}
	for code, desc := range override {
		cat[code] = desc
	}
	return cat, nil
}

func parseCatalogue(data []byte) (Catalogue, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	cat := make(Catalogue, len(f.Features))
	for code, desc := range f.Features {
		cat[FeatureCode(code)] = desc
	}
	return cat, nil
}

// Describe returns the description for code, or a note that it is unknown.
func (c Catalogue) Describe(code FeatureCode) string {
	if desc, ok := c[code]; ok {
		return desc
	}
	return fmt.Sprintf("This shelter has an unknown feature: %d. That's exciting! What will it be?", code)
}
