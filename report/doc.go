/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package report turns an evaluation results file into a report directory.

# Pipeline

Generator.Run loads the results document and processes each experiment block in
document order:

  - metrictable.BuildMetricTable lays the block out as a table
  - plotdata.DerivePlots derives one chart specification per metric
  - chartrender draws every chart as block<NN>_<metric>.png

Inconsistent baselines are logged as warnings and listed in the report next to
the block they belong to; they never fail the run.

The output directory then receives:

	index.html    the standalone HTML report
	report.md     the same tables in markdown
	results.xlsx  one sheet per block, when Options.XLSX is set

Run metrics are written in the node exporter textfile format when
Options.MetricsFile is set, and the whole directory is uploaded to Cloud Storage
when Options.PublishURL names a gs:// location.

# Usage

	opts := report.DefaultOptions("results.json", "out")
	opts.Locale = "ru"

	res, err := report.NewGenerator().Run(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Println(res.HTML)
*/
package report
