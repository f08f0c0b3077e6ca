// Package output renders interface throughput as fixed-width text.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/ifstat/pkg/stats"
)

const (
	// headerWidth is the width of the centred interface name over one column pair.
	headerWidth = 18
	// valueWidth is the width of one "in" or "out" value.
	valueWidth = 8
	// columnSeparator separates values and interfaces.
	columnSeparator = "  "
)

// Formatter writes header blocks and data rows to a writer.
type Formatter struct {
	writer      io.Writer
	hideZero    bool
	styled      bool
	headerStyle lipgloss.Style
}

// NewFormatter creates a new formatter. With hideZero set, interfaces whose
// counters are both zero are left out of headers and rows.
func NewFormatter(writer io.Writer, hideZero bool) *Formatter {
	renderer := lipgloss.NewRenderer(writer)
	return &Formatter{
		writer:      writer,
		hideZero:    hideZero,
		headerStyle: renderer.NewStyle().Bold(true),
	}
}

// SetStyled enables bold header lines. Only meant for terminals.
func (f *Formatter) SetStyled(styled bool) {
	f.styled = styled
}

// visible returns the interfaces to display against the reference snapshot.
func (f *Formatter) visible(selection []string, ref *stats.Snapshot) []string {
	if !f.hideZero {
		return selection
	}
	out := make([]string, 0, len(selection))
	for _, name := range selection {
		if c, ok := ref.Get(name); ok && !c.IsZero() {
			out = append(out, name)
		}
	}
	return out
}

// RenderHeaders writes the two header lines for the selection. Nothing is
// written when no interface is visible.
func (f *Formatter) RenderHeaders(selection []string, snap *stats.Snapshot) error {
	ifaces := f.visible(selection, snap)
	if len(ifaces) == 0 {
		return nil
	}

	names := make([]string, len(ifaces))
	units := make([]string, len(ifaces))
	for i, iface := range ifaces {
		names[i] = center(ShortenName(iface), headerWidth)
		units[i] = fmt.Sprintf("%*s%s%*s", valueWidth, "KB/s in", columnSeparator, valueWidth, "KB/s out")
	}

	if err := f.writeLine(f.header(strings.Join(names, columnSeparator))); err != nil {
		return err
	}
	return f.writeLine(f.header(strings.Join(units, columnSeparator)))
}

// RenderRow writes one line of rates between prev and cur. Interfaces missing
// from either snapshot are skipped.
func (f *Formatter) RenderRow(prev, cur *stats.Snapshot, selection []string) error {
	ifaces := f.visible(selection, cur)

	cols := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		r, ok := stats.ComputeRate(prev, cur, iface)
		if !ok {
			continue
		}
		cols = append(cols, fmt.Sprintf("%*.2f%s%*.2f", valueWidth, r.InKBps, columnSeparator, valueWidth, r.OutKBps))
	}

	return f.writeLine(strings.Join(cols, columnSeparator))
}

func (f *Formatter) header(line string) string {
	if !f.styled {
		return line
	}
	return f.headerStyle.Render(line)
}

func (f *Formatter) writeLine(line string) error {
	_, err := io.WriteString(f.writer, line+"\n")
	return err
}

// center pads s to width, putting the odd space on the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
