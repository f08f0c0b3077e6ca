// Package monitor drives the periodic sampling of interface counters.
package monitor

import (
	"errors"
	"fmt"
	"time"
)

// DefaultHeaderRepeat is the number of rows printed between header blocks.
const DefaultHeaderRepeat = 20

// SelectionFlags controls which interfaces are monitored.
type SelectionFlags struct {
	// Interfaces is a comma separated list of interface names. Empty means unset.
	Interfaces string
	// All monitors every interface found.
	All bool
	// Loopback monitors loopback interfaces as well.
	Loopback bool
}

// Config configures a monitoring run.
type Config struct {
	// Delay is the interval between samples.
	Delay time.Duration
	// FirstDelay is the interval before the first sample. Nil means Delay.
	FirstDelay *time.Duration
	// Count is the number of samples to take. Zero means unlimited.
	Count int
	// HeaderRepeat is the number of rows between header blocks.
	HeaderRepeat int
	// HideZero hides interfaces whose counters are both zero.
	HideZero bool
	// Selection chooses the monitored interfaces.
	Selection SelectionFlags
}

// DefaultConfig returns the default configuration: one second, unlimited.
func DefaultConfig() Config {
	return Config{
		Delay:        time.Second,
		HeaderRepeat: DefaultHeaderRepeat,
	}
}

// Validate checks the configuration before any sampling happens.
func (c Config) Validate() error {
	var errs []error
	if c.Delay <= 0 {
		errs = append(errs, fmt.Errorf("delay must be greater than 0, got %v", c.Delay))
	}
	if c.FirstDelay != nil && *c.FirstDelay < 0 {
		errs = append(errs, fmt.Errorf("first measurement delay must be greater than or equal to 0, got %v", *c.FirstDelay))
	}
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count must be greater than 0, got %d", c.Count))
	}
	if c.HeaderRepeat < 1 {
		errs = append(errs, fmt.Errorf("header repeat must be at least 1, got %d", c.HeaderRepeat))
	}
	return errors.Join(errs...)
}

// firstDelay returns the delay before the first sample.
func (c Config) firstDelay() time.Duration {
	if c.FirstDelay != nil {
		return *c.FirstDelay
	}
	return c.Delay
}
