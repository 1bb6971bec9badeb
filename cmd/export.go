// =============================================================================
// Weighing Report - Export Command
// =============================================================================
//
// COMMAND USAGE:
//   laporan export [flags]
//
// FLAGS:
//   --format  : xlsx, pdf or all (default all)
//   --search  : product name contains (case-insensitive)
//   --from    : first day, YYYY-MM-DD
//   --to      : last day, YYYY-MM-DD
//   --sort    : waktu-asc, waktu-desc, nama-asc, nama-desc
//   --file    : read records from a local .json/.csv file
//
// PIPELINE:
//   1. Load records (file or upstream)
//   2. Filter, sort and total them
//   3. Render every requested format concurrently
//   4. Save the documents into export.output_dir
//
// An empty selection exports nothing and exits 0.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/weighing-report/internal/exporter"
)

var (
	exportFilters filterFlags
	exportFormat  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered report as XLSX and/or PDF",
	Long: `The export command loads the weighing transactions, applies the search,
date range and sort, and writes the whole filtered set to
Laporan_Penimbangan.xlsx and/or Laporan_Penimbangan.pdf in the output
directory. Files are replaced atomically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "all", "Export format: xlsx, pdf or all")
}

func runExport(cmd *cobra.Command) error {
	formats, err := exporter.ParseFormats(exportFormat)
	if err != nil {
		return err
	}

	svc, err := newService(exportFilters.file)
	if err != nil {
		return err
	}
	req, err := exportFilters.request(svc.Options().Formatter)
	if err != nil {
		return err
	}

	summary, err := svc.Run(cmd.Context(), req, formats, exporter.FixedNames)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), summary.String())
	return nil
}
