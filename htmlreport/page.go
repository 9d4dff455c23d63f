/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package htmlreport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"chainguard.dev/robustreport/chartrender"
	"chainguard.dev/robustreport/metrictable"
	"chainguard.dev/robustreport/results"
	"chainguard.dev/robustreport/summary"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*
var templates embed.FS

var reportTemplate = template.Must(template.New("report.html.tmpl").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templates, "templates/report.html.tmpl"))

// Description keys rendered outside the description tree.
const (
	notesKey       = "notes"
	problemTypeKey = "problem_type"
)

// Page is everything needed to render one report.
type Page struct {
	Locale      string
	Generated   time.Time
	Description *results.Node
	// ProblemTypes overrides the catalog's problem-type labels.
	ProblemTypes map[string]string
	Blocks       []Block
	// Averages are the cross-block bar charts shown before the block charts.
	Averages []chartrender.Image
	Summary  *summary.Summary
}

// Block is one experiment block with its rendered artifacts.
type Block struct {
	Title             string
	VariableParamName string
	Table             *metrictable.Table
	Images            []chartrender.Image
	Warnings          []string
}

type view struct {
	T           *Catalog
	Lang        string
	CSS         template.CSS
	Generated   string
	ProblemType string
	Description []*results.Node
	Notes       template.HTML
	Blocks      []blockView
	Averages    []chartrender.Image
	Summary     *summary.Summary
}

type blockView struct {
	Block
	Columns []columnView
}

type columnView struct {
	Name  string
	Class string
}

// Generate renders page as a standalone HTML document.
func Generate(w io.Writer, page *Page) error {
	cat, err := LoadCatalog(page.Locale)
	if err != nil {
		return err
	}
	css, err := templates.ReadFile("templates/style.css")
	if err != nil {
		return err
	}

	v := view{
		T:         cat,
		Lang:      page.Locale,
		CSS:       template.CSS(css),
		Generated: page.Generated.Format("2006-01-02 15:04:05"),
		Averages:  page.Averages,
		Summary:   page.Summary,
	}
	if v.Lang == "" {
		v.Lang = DefaultLocale
	}

	if d := page.Description; d != nil {
		for _, c := range d.Children {
			switch {
			case c.Key == notesKey && c.IsLeaf():
				v.Notes = renderNotes(c.Leaf.String())
			case c.Key == problemTypeKey && c.IsLeaf():
				v.ProblemType = problemLabel(c.Leaf.String(), page.ProblemTypes, cat.ProblemTypes)
			default:
				v.Description = append(v.Description, c)
			}
		}
	}

	for _, b := range page.Blocks {
		bv := blockView{Block: b}
		if b.Table != nil {
			for i, name := range b.Table.Columns {
				bv.Columns = append(bv.Columns, columnView{Name: name, Class: columnClass(b.Table.Kinds, i)})
			}
		}
		v.Blocks = append(v.Blocks, bv)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, v); err != nil {
		return fmt.Errorf("executing report template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func problemLabel(key string, overrides, defaults map[string]string) string {
	if l, ok := overrides[key]; ok {
		return l
	}
	if l, ok := defaults[key]; ok {
		return l
	}
	return key
}

// renderNotes converts markdown to HTML, dropping any raw HTML in the source.
func renderNotes(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(md), p, r)) //nolint:gosec // raw HTML is skipped by the renderer
}

func columnClass(kinds []metrictable.ColumnKind, i int) string {
	if i >= len(kinds) {
		return ""
	}
	switch kinds[i] {
	case metrictable.ColumnAxis:
		return "axis"
	case metrictable.ColumnSystem:
		return "system"
	case metrictable.ColumnBaseline:
		return "baseline"
	default:
		return "user"
	}
}
