package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/danpilch/ifstat/pkg/config"
	"github.com/danpilch/ifstat/pkg/sources"
	"github.com/danpilch/ifstat/pkg/stats"
	"github.com/danpilch/ifstat/pkg/version"
)

// fakeCounters returns growing counters for lo and eth0.
type fakeCounters struct {
	calls int
}

func (f *fakeCounters) snapshot() (*stats.Snapshot, error) {
	f.calls++
	n := uint64(f.calls) * 1024
	s := stats.NewSnapshot()
	s.Set("lo", stats.Counters{RxBytes: n, TxBytes: n})
	s.Set("eth0", stats.Counters{RxBytes: 2 * n, TxBytes: n})
	return s, nil
}

func runCommand(t *testing.T, args ...string) (string, string, *fakeCounters, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	counters := &fakeCounters{}

	a := newApp(version.New("ifstat", "0.1.0", "", ""), &stdout, &stderr)
	a.registry = func(sources.Options) *sources.Registry {
		r := sources.NewRegistry()
		r.Register(sources.Func{SourceName: "fake", Fn: counters.snapshot})
		return r
	}
	a.details = func() map[string]string { return map[string]string{} }
	a.sleeper = func(ctx context.Context, d time.Duration) error { return ctx.Err() }

	cmd := a.command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), counters, err
}

func TestVersionFlag(t *testing.T) {
	out, _, counters, err := runCommand(t, "-V")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !regexp.MustCompile(`^ifstat \d+\.\d+\.\d+\n$`).MatchString(out) {
		t.Fatalf("version output = %q", out)
	}
	if counters.calls != 0 {
		t.Fatalf("version should not sample counters")
	}
}

func TestInvalidArgumentsFailBeforeSampling(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"zero delay", []string{"0"}, "must be greater than 0"},
		{"bad delay", []string{"soon"}, "is not a valid number"},
		{"zero count", []string{"1", "0"}, "must be greater than 0"},
		{"negative first measurement", []string{"--first-measurement", "-1"}, "greater than or equal to 0"},
		{"too many args", []string{"1", "2", "3"}, "at most 2"},
		{"zero header repeat", []string{"--header-repeat", "0", "1", "1"}, "header repeat"},
		{"unknown source", []string{"--source", "bogus", "1", "1"}, "unknown counter source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, counters, err := runCommand(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %q", err, tt.wantErr)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Fatalf("expected error on stderr, got %q", stderr)
			}
			if counters.calls != 0 {
				t.Fatalf("counters sampled %d times before failing", counters.calls)
			}
		})
	}
}

func TestBuildConfigFromFlags(t *testing.T) {
	a := newApp(version.Info{Name: "ifstat", Version: "0.1.0"}, &bytes.Buffer{}, &bytes.Buffer{})
	cmd := a.command()
	if err := cmd.ParseFlags([]string{"-i", "eth0,lo", "-a", "-l", "-z", "--first-measurement", "3"}); err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}

	interfaces, _ := cmd.Flags().GetString("interfaces")
	all, _ := cmd.Flags().GetBool("all")
	loopback, _ := cmd.Flags().GetBool("loopback")
	hideZero, _ := cmd.Flags().GetBool("hide-zero-counters")
	first, _ := cmd.Flags().GetString("first-measurement")
	opts := &options{
		interfaces:       interfaces,
		all:              all,
		loopback:         loopback,
		hideZero:         hideZero,
		firstMeasurement: first,
		headerRepeat:     20,
	}

	cfg, err := buildConfig(opts, &config.File{}, []string{"2", "5"})
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.Selection.Interfaces != "eth0,lo" || !cfg.Selection.All || !cfg.Selection.Loopback || !cfg.HideZero {
		t.Fatalf("unexpected selection: %+v", cfg)
	}
	if cfg.Delay != 2*time.Second || cfg.Count != 5 {
		t.Fatalf("delay/count = %v/%d", cfg.Delay, cfg.Count)
	}
	if cfg.FirstDelay == nil || *cfg.FirstDelay != 3*time.Second {
		t.Fatalf("first delay = %v", cfg.FirstDelay)
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(&options{headerRepeat: 20}, &config.File{}, nil)
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.Delay != time.Second || cfg.Count != 0 || cfg.FirstDelay != nil {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestListInterfaces(t *testing.T) {
	out, _, _, err := runCommand(t, "--list-interfaces")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "2 interfaces:\nlo\neth0\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestListInterfacesWithCounters(t *testing.T) {
	out, _, _, err := runCommand(t, "--list-interfaces", "--counters")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, want := range []string{"2 interfaces:", "INTERFACE", "eth0", "2.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSamplesCount(t *testing.T) {
	out, _, counters, err := runCommand(t, "1", "3")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := "       eth0       \n" +
		" KB/s in  KB/s out\n" +
		"    2.00      1.00\n" +
		"    2.00      1.00\n" +
		"    2.00      1.00\n"
	if out != want {
		t.Fatalf("output =\n%q\nwant\n%q", out, want)
	}
	if counters.calls != 4 {
		t.Fatalf("counters sampled %d times, want 4", counters.calls)
	}
}

func TestRunWithExplicitInterfaces(t *testing.T) {
	out, _, _, err := runCommand(t, "-i", "lo, eth0", "1", "1")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	if strings.Index(lines[0], "lo") > strings.Index(lines[0], "eth0") {
		t.Fatalf("interfaces out of order: %q", lines[0])
	}
	if got := strings.Fields(lines[2]); len(got) != 4 || got[0] != "1.00" || got[2] != "2.00" {
		t.Fatalf("row = %q", lines[2])
	}
}

func TestConfigFileDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ifstat.yaml")
	data := "interfaces: lo\ncount: 2\nlog_level: error\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, counters, err := runCommand(t, "--config", path)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Contains(out, "eth0") || counters.calls != 3 {
		t.Fatalf("config file not applied: calls=%d\n%s", counters.calls, out)
	}

	out, _, counters, err = runCommand(t, "--config", path, "-i", "eth0", "1", "1")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "eth0") || counters.calls != 2 {
		t.Fatalf("flags did not override config: calls=%d\n%s", counters.calls, out)
	}
}

func TestDebugTimingReport(t *testing.T) {
	_, stderr, _, err := runCommand(t, "--debug-timing", "1", "1")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stderr, "Counter Source Timing Report") || !strings.Contains(stderr, "fake") {
		t.Fatalf("timing report missing:\n%s", stderr)
	}
}
