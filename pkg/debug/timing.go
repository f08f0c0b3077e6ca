// Package debug provides instrumentation and profiling tools for ifstat.
package debug

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/danpilch/ifstat/pkg/sources"
	"github.com/danpilch/ifstat/pkg/stats"
)

// SourceTiming summarises the durations of a source's Snapshot calls.
type SourceTiming struct {
	Name     string
	Samples  int
	Failures int
	Min      time.Duration
	Max      time.Duration
	Total    time.Duration
}

// Average returns the mean duration, or 0 without samples.
func (t SourceTiming) Average() time.Duration {
	if t.Samples == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Samples)
}

// TimedSource wraps a sources.Source to record read durations.
type TimedSource struct {
	inner  sources.Source
	logger *logrus.Logger
	timing SourceTiming
	now    func() time.Time
}

// NewTimedSource wraps a source with timing instrumentation. Each read is
// logged at debug level.
func NewTimedSource(s sources.Source, logger *logrus.Logger) *TimedSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &TimedSource{
		inner:  s,
		logger: logger,
		timing: SourceTiming{Name: s.Name()},
		now:    time.Now,
	}
}

// Name returns the wrapped source's name.
func (t *TimedSource) Name() string {
	return t.inner.Name()
}

// Snapshot reads from the wrapped source and records the duration.
func (t *TimedSource) Snapshot() (*stats.Snapshot, error) {
	start := t.now()
	snap, err := t.inner.Snapshot()
	d := t.now().Sub(start)

	t.record(d, err)
	t.logger.WithFields(logrus.Fields{
		"source":     t.inner.Name(),
		"duration":   d,
		"interfaces": snap.Len(),
	}).Debug("Read interface counters")

	return snap, err
}

func (t *TimedSource) record(d time.Duration, err error) {
	if err != nil {
		t.timing.Failures++
	}
	if t.timing.Samples == 0 || d < t.timing.Min {
		t.timing.Min = d
	}
	if d > t.timing.Max {
		t.timing.Max = d
	}
	t.timing.Samples++
	t.timing.Total += d
}

// Timing returns the recorded timing summary.
func (t *TimedSource) Timing() SourceTiming {
	return t.timing
}

// TimingReport prints a styled timing summary for the timed sources.
func TimingReport(w io.Writer, timings []SourceTiming) {
	renderer := lipgloss.NewRenderer(w)
	title := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	header := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	dim := renderer.NewStyle().Foreground(lipgloss.Color("240"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("Counter Source Timing Report"))
	fmt.Fprintln(w, dim.Render(strings.Repeat("═", 60)))
	fmt.Fprintf(w, "  %s %s %s %s %s\n",
		header.Render("SOURCE    "),
		header.Render("READS"),
		header.Render("MIN       "),
		header.Render("AVG       "),
		header.Render("MAX       "))
	fmt.Fprintln(w, "  "+dim.Render(strings.Repeat("─", 60)))

	for _, t := range timings {
		fmt.Fprintf(w, "  %-12s %-7d %-12v %-12v %v\n",
			t.Name, t.Samples, t.Min, t.Average(), t.Max)
		if t.Failures > 0 {
			fmt.Fprintf(w, "  %s\n", dim.Render(fmt.Sprintf("%d failed reads", t.Failures)))
		}
	}
}
