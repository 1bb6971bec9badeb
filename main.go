// =============================================================================
// Weighing Report - Main Entry Point
// =============================================================================
//
// USAGE:
//   laporan show      - Print one page of the filtered report
//   laporan export    - Export the filtered report to XLSX / PDF
//   laporan serve     - Serve the report over HTTP (and run the daily export)
//   laporan token     - Manage the upstream session token
//   laporan version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/            : CLI command definitions (Cobra)
//   - internal/       : report pipeline, rendering, sources, service layers
//   - pkg/            : logger and file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/weighing-report/cmd"
)

func main() {
	cmd.Execute()
}
