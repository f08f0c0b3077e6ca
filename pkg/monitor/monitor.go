package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/ifstat/pkg/output"
	"github.com/danpilch/ifstat/pkg/sources"
)

// Sleeper suspends the loop for d. It returns an error when ctx ends first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Monitor samples a counter source periodically and prints throughput rows.
type Monitor struct {
	source    sources.Source
	config    Config
	formatter *output.Formatter
	logger    *logrus.Logger
	sleep     Sleeper
}

// New creates a monitor writing rows to w. The config must already be valid.
func New(source sources.Source, config Config, w io.Writer, logger *logrus.Logger) *Monitor {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	if config.HeaderRepeat < 1 {
		config.HeaderRepeat = DefaultHeaderRepeat
	}
	return &Monitor{
		source:    source,
		config:    config,
		formatter: output.NewFormatter(w, config.HideZero),
		logger:    logger,
		sleep:     sleepContext,
	}
}

// SetSleeper replaces the function used to wait between samples.
func (m *Monitor) SetSleeper(s Sleeper) {
	m.sleep = s
}

// Formatter returns the formatter used for output.
func (m *Monitor) Formatter() *output.Formatter {
	return m.formatter
}

// Run takes the initial sample, prints the headers, and then prints one row
// per tick until Count ticks have run or ctx is cancelled. A failed initial
// sample is returned as an error; failed ticks are logged and skipped, keeping
// the previous sample for the next row.
func (m *Monitor) Run(ctx context.Context) error {
	log := m.logger.WithField("source", m.source.Name())

	prev, err := m.source.Snapshot()
	if err != nil {
		return fmt.Errorf("reading network statistics: %w", err)
	}

	selection := ResolveSelection(prev, m.config.Selection)
	log.WithField("interfaces", selection).Debug("Resolved interface selection")

	if err := m.formatter.RenderHeaders(selection, prev); err != nil {
		return err
	}

	if m.sleep(ctx, m.config.firstDelay()) != nil {
		return nil
	}

	rows := 0
	for tick := 1; m.config.Count == 0 || tick <= m.config.Count; tick++ {
		if tick > 1 && m.sleep(ctx, m.config.Delay) != nil {
			return nil
		}

		cur, err := m.source.Snapshot()
		if err != nil {
			log.WithFields(logrus.Fields{
				"tick":  tick,
				"error": err,
			}).Warn("Error reading network statistics")
			continue
		}

		if rows >= m.config.HeaderRepeat {
			if err := m.formatter.RenderHeaders(selection, cur); err != nil {
				return err
			}
			rows = 0
		}

		if err := m.formatter.RenderRow(prev, cur, selection); err != nil {
			return err
		}
		prev = cur
		rows++
	}

	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
