// =============================================================================
// Weighing Report - Show Command
// =============================================================================
//
// COMMAND USAGE:
//   laporan show [--page n] [--size n] [filter flags]
//
// Prints one page of the filtered report, the range line and the totals of
// the whole filtered set, followed by the page buttons:
//
//   Halaman: [1] 2 3 ... 8
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/weighing-report/internal/export"
	"github.com/ginjaninja78/weighing-report/internal/report"
)

var (
	showFilters filterFlags
	showPage    int
	showSize    int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one page of the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showFilters.register(showCmd)
	showCmd.Flags().IntVar(&showPage, "page", 1, "Page to show (clamped to the last page)")
	showCmd.Flags().IntVar(&showSize, "size", 0, "Rows per page: 10, 25, 50, 75 or 100 (default report.page_size)")
}

func runShow(cmd *cobra.Command) error {
	svc, err := newService(showFilters.file)
	if err != nil {
		return err
	}
	f := svc.Options().Formatter
	req, err := showFilters.request(f)
	if err != nil {
		return err
	}

	v, err := svc.View(cmd.Context(), req)
	if err != nil {
		return err
	}

	size := showSize
	if size == 0 {
		size = cfg.Report.PageSize
	}
	if err := v.SetPageSize(size); err != nil {
		return err
	}
	v.SetPage(showPage)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, export.Table(v.Visible(), v.Meta(), v.Totals(), f))
	fmt.Fprintf(out, "Halaman: %s\n", pageLine(v.Buttons()))
	return nil
}

// pageLine renders buttons as "[1] 2 3 ... 8".
func pageLine(buttons []report.PageButton) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		switch {
		case b.Gap:
			parts[i] = "..."
		case b.Current:
			parts[i] = fmt.Sprintf("[%d]", b.Page)
		default:
			parts[i] = fmt.Sprint(b.Page)
		}
	}
	return strings.Join(parts, " ")
}
