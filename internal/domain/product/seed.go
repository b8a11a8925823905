package product

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Products []Product `yaml:"products"`
}

// Seed returns the demo catalog shipped with the storefront.
func Seed() ([]Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return f.Products, nil
}
