package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/danpilch/ifstat/pkg/stats"
)

// ListInterfaces writes the number of interfaces followed by one name per line.
func ListInterfaces(w io.Writer, snap *stats.Snapshot) error {
	if _, err := fmt.Fprintf(w, "%d interfaces:\n", snap.Len()); err != nil {
		return err
	}
	for _, name := range snap.Names() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// ListInterfacesTable writes a table of interfaces with their cumulative
// counters. details holds an optional description per interface.
func ListInterfacesTable(w io.Writer, snap *stats.Snapshot, details map[string]string) error {
	renderer := lipgloss.NewRenderer(w)
	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	rows := make([][]string, 0, snap.Len())
	for _, name := range snap.Names() {
		c, _ := snap.Get(name)
		rows = append(rows, []string{
			name,
			details[name],
			humanize.IBytes(c.RxBytes),
			humanize.IBytes(c.TxBytes),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Headers("INTERFACE", "DETAILS", "RX TOTAL", "TX TOTAL").
		Rows(rows...)

	_, err := fmt.Fprintf(w, "%d interfaces:\n%s\n", snap.Len(), t.Render())
	return err
}
