package payment

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrCountryNotFound = errors.New("country not supported")

//go:embed countries.yaml
var countriesYAML []byte

// Country is a market where Mobile-Money checkout is offered.
type Country struct {
	Code      string   `json:"code" yaml:"code"`
	Name      string   `json:"name" yaml:"name"`
	Flag      string   `json:"flag" yaml:"flag"`
	Prefix    string   `json:"prefix" yaml:"prefix"`
	Operators []string `json:"operators" yaml:"operators"`
}

var (
	countriesOnce sync.Once
	countries     []Country
	countriesErr  error
)

// Countries returns the supported countries in display order.
func Countries() ([]Country, error) {
	countriesOnce.Do(func() {
		var f struct {
			Countries []Country `yaml:"countries"`
		}
		if err := yaml.Unmarshal(countriesYAML, &f); err != nil {
			countriesErr = fmt.Errorf("failed to parse country table: %w", err)
			return
		}
		countries = f.Countries
	})
	if countriesErr != nil {
		return nil, countriesErr
	}
	out := make([]Country, len(countries))
	for i, c := range countries {
		c.Operators = append([]string(nil), c.Operators...)
		out[i] = c
	}
	return out, nil
}

// FindCountry looks a country up by its ISO code.
func FindCountry(code string) (Country, error) {
	all, err := Countries()
	if err != nil {
		return Country{}, err
	}
	for _, c := range all {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("%w: %s", ErrCountryNotFound, code)
}
