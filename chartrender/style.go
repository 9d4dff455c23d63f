/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package chartrender

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style is the visual configuration of rendered charts. It is passed by value
// and never mutated by the renderer.
type Style struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TitleFontSize  float64 `yaml:"title_font_size"`
	AxisFontSize   float64 `yaml:"axis_font_size"`
	StrokeWidth    float64 `yaml:"stroke_width"`
	DotWidth       float64 `yaml:"dot_width"`
	TreatmentColor string  `yaml:"treatment_color"`
	BaselineColor  string  `yaml:"baseline_color"`
	// BaselineDash is the dash pattern of baseline reference lines.
	BaselineDash []float64 `yaml:"baseline_dash"`
}

// DefaultStyle returns the style used when no configuration overrides it.
func DefaultStyle() Style {
	return Style{
		Width:          800,
		Height:         450,
		TitleFontSize:  14,
		AxisFontSize:   10,
		StrokeWidth:    3,
		DotWidth:       4,
		TreatmentColor: "#4ECDC4",
		BaselineColor:  "#2ECC71",
		BaselineDash:   []float64{6, 4},
	}
}

// Validate checks that the style can be rendered.
func (s Style) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", s.Width, s.Height)
	}
	for _, c := range []string{s.TreatmentColor, s.BaselineColor} {
		if !isHexColor(c) {
			return fmt.Errorf("color %q is not a #RRGGBB hex value", c)
		}
	}
	return nil
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
