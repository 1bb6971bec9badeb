package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

// numericColumns are right-aligned in the terminal table.
var numericColumns = map[int]bool{0: true, 2: true, 3: true, 4: true}

// Table renders one page window for a terminal, followed by the range line
// and the totals of the whole filtered set.
func Table(visible []types.Record, meta types.PageMeta, totals types.AggregateTotals, f *format.Formatter) string {
	if f == nil {
		f = format.Default()
	}

	rows := make([][]string, len(visible))
	for i, r := range visible {
		rows[i] = []string{
			fmt.Sprint(meta.DisplayStart + i),
			r.ProductName,
			f.Weight(r.Weight),
			f.Currency(r.UnitPrice),
			f.Currency(r.TotalValue),
			f.Timestamp(r.Timestamp),
		}
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(TableColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true).Align(lipgloss.Center)
			}
			if numericColumns[col] {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Menampilkan %d–%d dari %d data\n", meta.DisplayStart, meta.DisplayEnd, meta.Total)
	fmt.Fprintf(&b, "Total Berat: %s\n", f.WeightKg(totals.TotalWeight))
	fmt.Fprintf(&b, "Total Harga: %s\n", f.Currency(totals.TotalValue))
	return b.String()
}
