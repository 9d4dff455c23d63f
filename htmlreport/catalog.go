/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package htmlreport

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultLocale is used when a page does not name one.
const DefaultLocale = "en"

// Catalog holds the localized strings of one report language.
type Catalog struct {
	Title          string            `yaml:"title"`
	Generated      string            `yaml:"generated"`
	Configuration  string            `yaml:"configuration"`
	Description    string            `yaml:"description"`
	ProblemType    string            `yaml:"problem_type"`
	Axes           string            `yaml:"axes"`
	Experiments    string            `yaml:"experiments"`
	Notes          string            `yaml:"notes"`
	Visualizations string            `yaml:"visualizations"`
	NoCharts       string            `yaml:"no_charts"`
	Results        string            `yaml:"results"`
	Warnings       string            `yaml:"warnings"`
	Summary        string            `yaml:"summary"`
	Averages       string            `yaml:"averages"`
	Ranking        string            `yaml:"ranking"`
	Block          string            `yaml:"block"`
	Metric         string            `yaml:"metric"`
	Mean           string            `yaml:"mean"`
	Min            string            `yaml:"min"`
	Max            string            `yaml:"max"`
	Count          string            `yaml:"count"`
	Rank           string            `yaml:"rank"`
	Point          string            `yaml:"point"`
	Value          string            `yaml:"value"`
	Footer         string            `yaml:"footer"`
	ProblemTypes   map[string]string `yaml:"problem_types"`
}

// LoadCatalog returns the catalog for locale.
func LoadCatalog(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	data, err := locales.ReadFile(path.Join("locales", locale+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q (available: %s)", locale, strings.Join(Locales(), ", "))
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &c, nil
}

// Locales lists the embedded locales.
func Locales() []string {
	entries, _ := fs.ReadDir(locales, "locales")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}
