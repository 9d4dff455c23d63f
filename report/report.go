/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chainguard.dev/robustreport/chartrender"
	"chainguard.dev/robustreport/config"
	"chainguard.dev/robustreport/htmlreport"
	"chainguard.dev/robustreport/metrictable"
	"chainguard.dev/robustreport/naming"
	"chainguard.dev/robustreport/plotdata"
	"chainguard.dev/robustreport/publish"
	"chainguard.dev/robustreport/results"
	"chainguard.dev/robustreport/runmetrics"
	"chainguard.dev/robustreport/summary"
	"chainguard.dev/robustreport/textreport"
	"chainguard.dev/robustreport/workbook"
	"github.com/chainguard-dev/clog"
)

// Output file names inside the output directory.
const (
	HTMLFile     = "index.html"
	MarkdownFile = "report.md"
	WorkbookFile = "results.xlsx"
)

// Options configures one run. A zero Convention or Style falls back to the
// defaults; start from DefaultOptions for every other field.
type Options struct {
	Input         string
	OutputDir     string
	Locale        string
	Convention    naming.Convention
	AxisPrecision int
	Tolerance     float64
	Style         chartrender.Style
	ProblemTypes  map[string]string

	XLSX        bool
	MetricsFile string
	PublishURL  string
	// Uploader is used for PublishURL; a Cloud Storage client is created when nil.
	Uploader publish.Uploader
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions(input, outputDir string) Options {
	return Options{
		Input:         input,
		OutputDir:     outputDir,
		Locale:        htmlreport.DefaultLocale,
		Convention:    naming.Default(),
		AxisPrecision: metrictable.DefaultAxisPrecision,
		Tolerance:     plotdata.DefaultTolerance,
		Style:         chartrender.DefaultStyle(),
	}
}

// OptionsFromConfig maps a resolved configuration onto run options.
func OptionsFromConfig(cfg *config.Config, input string) Options {
	return Options{
		Input:         input,
		OutputDir:     cfg.Output,
		Locale:        cfg.Locale,
		Convention:    cfg.Convention,
		AxisPrecision: cfg.AxisPrecision,
		Tolerance:     cfg.Tolerance,
		Style:         cfg.Style,
		ProblemTypes:  cfg.ProblemTypes,
		XLSX:          cfg.XLSX,
		MetricsFile:   cfg.MetricsFile,
		PublishURL:    cfg.PublishURL,
	}
}

// Result lists what a run produced. Paths are absolute or relative to the
// working directory, as OutputDir was given.
type Result struct {
	HTML      string
	Markdown  string
	Workbook  string
	Images    []chartrender.Image
	Averages  []chartrender.Image
	Warnings  []*plotdata.InconsistentBaselineWarning
	Published []string
}

// Generator runs the report pipeline.
type Generator struct {
	metrics *runmetrics.Recorder
	now     func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRecorder records run metrics on r.
func WithRecorder(r *runmetrics.Recorder) GeneratorOption {
	return func(g *Generator) {
		g.metrics = r
	}
}

// NewGenerator creates a generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.metrics == nil {
		g.metrics = runmetrics.New()
	}
	return g
}

// Run loads the input and writes every report artifact into OutputDir.
// Input errors are returned before the output directory is touched.
func (g *Generator) Run(ctx context.Context, opts Options) (*Result, error) {
	log := clog.FromContext(ctx)
	if len(opts.Convention.SystemSuffixes) == 0 && len(opts.Convention.BaselinePrefixes) == 0 {
		opts.Convention = naming.Default()
	}
	if opts.Style.Width == 0 && opts.Style.Height == 0 {
		opts.Style = chartrender.DefaultStyle()
	}

	rs, err := results.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	if _, err := htmlreport.LoadCatalog(opts.Locale); err != nil {
		return nil, err
	}
	renderer, err := chartrender.NewRenderer(opts.Style)
	if err != nil {
		return nil, err
	}
	if opts.PublishURL != "" {
		if _, _, err := publish.ParseURL(opts.PublishURL); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	res := &Result{}
	tables := make([]*metrictable.Table, 0, len(rs.Experiments))
	blocks := make([]htmlreport.Block, 0, len(rs.Experiments))
	named := make([]workbook.NamedTable, 0, len(rs.Experiments))

	for i, block := range rs.Experiments {
		title := block.Title()
		table := metrictable.BuildMetricTable(block,
			metrictable.WithConvention(opts.Convention),
			metrictable.WithAxisPrecision(opts.AxisPrecision))
		plots := plotdata.DerivePlots(block,
			plotdata.WithConvention(opts.Convention),
			plotdata.WithTolerance(opts.Tolerance))

		var warnings []string
		for _, w := range plots.Warnings {
			clog.WarnContextf(ctx, "%v", w)
			g.metrics.BaselineWarning(title)
			warnings = append(warnings, w.Error())
		}
		res.Warnings = append(res.Warnings, plots.Warnings...)

		images, err := renderer.RenderAll(ctx, opts.OutputDir, fmt.Sprintf("block%02d", i+1), plots.Charts)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", title, err)
		}
		g.metrics.ChartsRendered(title, len(images))
		g.metrics.BlockProcessed(title)
		res.Images = append(res.Images, images...)

		tables = append(tables, table)
		named = append(named, workbook.NamedTable{Name: title, Table: table})
		blocks = append(blocks, htmlreport.Block{
			Title:             title,
			VariableParamName: block.VariableParamName,
			Table:             table,
			Images:            images,
			Warnings:          warnings,
		})
		log.Debugf("Block %q: %d rows, %d charts", title, len(table.Rows), len(images))
	}

	sum := summary.Summarize(rs, opts.Convention)
	if res.Averages, err = renderer.RenderAverages(ctx, opts.OutputDir, sum); err != nil {
		return nil, err
	}

	res.HTML = filepath.Join(opts.OutputDir, HTMLFile)
	if err := writeHTML(res.HTML, &htmlreport.Page{
		Locale:       opts.Locale,
		Generated:    g.now(),
		Description:  rs.Description,
		ProblemTypes: opts.ProblemTypes,
		Blocks:       blocks,
		Averages:     res.Averages,
		Summary:      sum,
	}); err != nil {
		return nil, err
	}

	res.Markdown = filepath.Join(opts.OutputDir, MarkdownFile)
	if err := os.WriteFile(res.Markdown, []byte(textreport.Markdown(rs, tables, sum)), 0o644); err != nil {
		return nil, fmt.Errorf("writing markdown report: %w", err)
	}

	if opts.XLSX {
		res.Workbook = filepath.Join(opts.OutputDir, WorkbookFile)
		if err := workbook.Write(res.Workbook, named); err != nil {
			return nil, err
		}
	}

	g.metrics.ObserveRender(time.Since(start))
	if opts.MetricsFile != "" {
		if err := g.metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return nil, fmt.Errorf("writing metrics: %w", err)
		}
	}

	if opts.PublishURL != "" {
		up := opts.Uploader
		if up == nil {
			gcs, err := publish.NewGCS(ctx)
			if err != nil {
				return nil, err
			}
			defer gcs.Close()
			up = gcs
		}
		res.Published, err = publish.Directory(ctx, up, opts.OutputDir, opts.PublishURL)
		if err != nil {
			return nil, err
		}
	}

	log.Infof("Wrote report for %d blocks to %s (%d charts, %d warnings)",
		len(rs.Experiments), opts.OutputDir, len(res.Images), len(res.Warnings))
	return res, nil
}

func writeHTML(path string, page *htmlreport.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating HTML report: %w", err)
	}
	if err := htmlreport.Generate(f, page); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
