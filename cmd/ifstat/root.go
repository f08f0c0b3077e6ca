package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/ifstat/pkg/config"
	"github.com/danpilch/ifstat/pkg/debug"
	"github.com/danpilch/ifstat/pkg/monitor"
	"github.com/danpilch/ifstat/pkg/output"
	"github.com/danpilch/ifstat/pkg/sources"
	"github.com/danpilch/ifstat/pkg/version"
)

// app holds the collaborators of the root command.
type app struct {
	info     version.Info
	stdout   io.Writer
	stderr   io.Writer
	registry func(sources.Options) *sources.Registry
	details  func() map[string]string
	sleeper  monitor.Sleeper
}

func newApp(info version.Info, stdout, stderr io.Writer) *app {
	return &app{
		info:     info,
		stdout:   stdout,
		stderr:   stderr,
		registry: sources.NewPlatformRegistry,
		details:  sources.InterfaceDetails,
	}
}

// options holds the parsed command-line flags.
type options struct {
	interfaces       string
	all              bool
	loopback         bool
	hideZero         bool
	listInterfaces   bool
	counters         bool
	firstMeasurement string
	headerRepeat     int
	source           string
	procRoot         string
	configPath       string
	logLevel         string
	debugTiming      bool
	pprofAddr        string
}

func (a *app) command() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ifstat [flags] [DELAY [COUNT]]",
		Short: "Report network interface throughput",
		Long: "ifstat samples the received and transmitted byte counters of network\n" +
			"interfaces every DELAY seconds (default 1) and prints KB/s per interface.\n" +
			"It stops after COUNT samples, or runs until interrupted.\n\n" + a.info.Long(),
		Version:      a.info.Version,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, opts, args)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.interfaces, "interfaces", "i", "", `Interfaces to monitor, separated by commas (e.g., "eth0,lo")`)
	flags.BoolVarP(&opts.all, "all", "a", false, "Monitor all interfaces for which statistics are available")
	flags.BoolVarP(&opts.loopback, "loopback", "l", false, "Monitor loopback interfaces as well (currently the same set as -a)")
	flags.BoolVarP(&opts.hideZero, "hide-zero-counters", "z", false, "Hide interfaces whose counters are both zero")
	flags.BoolVar(&opts.listInterfaces, "list-interfaces", false, "List all available network interfaces and exit")
	flags.BoolVar(&opts.counters, "counters", false, "With --list-interfaces, show a table with cumulative counters")
	flags.StringVar(&opts.firstMeasurement, "first-measurement", "", "Delay before the first measurement in seconds (>= 0, default DELAY)")
	flags.IntVar(&opts.headerRepeat, "header-repeat", monitor.DefaultHeaderRepeat, "Rows printed between header blocks")
	flags.StringVar(&opts.source, "source", "", "Counter source to read from (default: first available for the platform)")
	flags.StringVar(&opts.procRoot, "proc-root", sources.DefaultProcRoot, "procfs mount point used by the Linux sources")
	flags.StringVar(&opts.configPath, "config", "", "YAML file with default settings")
	flags.StringVar(&opts.logLevel, "log-level", "warning", "Diagnostic log level (debug, info, warning, error)")
	flags.BoolVar(&opts.debugTiming, "debug-timing", false, "Print a counter source timing report on exit")
	flags.StringVar(&opts.pprofAddr, "pprof", "", "Serve pprof on this address while running")
	flags.BoolP("version", "V", false, "Print version information and exit")
	flags.SortFlags = false

	return cmd
}

// run validates the configuration and then lists interfaces or runs the monitor.
func (a *app) run(cmd *cobra.Command, opts *options, args []string) error {
	file := &config.File{}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		file = loaded
	}
	applyConfigFile(cmd, opts, file)

	cfg, err := buildConfig(opts, file, args)
	if err != nil {
		return err
	}

	logger, err := newLogger(a.stderr, opts.logLevel)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"version": a.info.Version,
		"commit":  a.info.CommitString(),
		"target":  a.info.Target,
	}).Debug("Starting ifstat")

	registry := a.registry(sources.Options{ProcRoot: opts.procRoot})
	src, err := registry.Lookup(opts.source)
	if err != nil {
		return err
	}
	timed := debug.NewTimedSource(src, logger)
	if opts.debugTiming {
		defer func() {
			debug.TimingReport(a.stderr, []debug.SourceTiming{timed.Timing()})
		}()
	}

	if opts.pprofAddr != "" {
		stop, err := debug.StartPprofServer(opts.pprofAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	if opts.listInterfaces {
		return a.list(timed, opts.counters)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := monitor.New(timed, cfg, a.stdout, logger)
	m.Formatter().SetStyled(isTerminal(a.stdout))
	if a.sleeper != nil {
		m.SetSleeper(a.sleeper)
	}
	return m.Run(ctx)
}

func (a *app) list(src sources.Source, counters bool) error {
	snap, err := src.Snapshot()
	if err != nil {
		return fmt.Errorf("listing network interfaces: %w", err)
	}
	if counters {
		return output.ListInterfacesTable(a.stdout, snap, a.details())
	}
	return output.ListInterfaces(a.stdout, snap)
}

// applyConfigFile copies config file values into flags the user did not set.
func applyConfigFile(cmd *cobra.Command, opts *options, file *config.File) {
	flags := cmd.Flags()
	if file.Interfaces != "" && !flags.Changed("interfaces") {
		opts.interfaces = file.Interfaces
	}
	if file.All != nil && !flags.Changed("all") {
		opts.all = *file.All
	}
	if file.Loopback != nil && !flags.Changed("loopback") {
		opts.loopback = *file.Loopback
	}
	if file.HideZero != nil && !flags.Changed("hide-zero-counters") {
		opts.hideZero = *file.HideZero
	}
	if file.FirstMeasurement != nil && !flags.Changed("first-measurement") {
		opts.firstMeasurement = fmt.Sprint(*file.FirstMeasurement)
	}
	if file.HeaderRepeat != nil && !flags.Changed("header-repeat") {
		opts.headerRepeat = *file.HeaderRepeat
	}
	if file.Source != "" && !flags.Changed("source") {
		opts.source = file.Source
	}
	if file.ProcRoot != "" && !flags.Changed("proc-root") {
		opts.procRoot = file.ProcRoot
	}
	if file.LogLevel != "" && !flags.Changed("log-level") {
		opts.logLevel = file.LogLevel
	}
}

// buildConfig turns flags, config file values and positional arguments into
// a validated monitor configuration. Positional arguments win over the file.
func buildConfig(opts *options, file *config.File, args []string) (monitor.Config, error) {
	cfg := monitor.DefaultConfig()
	cfg.HideZero = opts.hideZero
	cfg.HeaderRepeat = opts.headerRepeat
	cfg.Selection = monitor.SelectionFlags{
		Interfaces: opts.interfaces,
		All:        opts.all,
		Loopback:   opts.loopback,
	}

	delay := ""
	if file.Delay != nil {
		delay = fmt.Sprint(*file.Delay)
	}
	if len(args) > 0 {
		delay = args[0]
	}
	if delay != "" {
		d, err := ParsePositiveSeconds(delay)
		if err != nil {
			return cfg, fmt.Errorf("invalid delay: %w", err)
		}
		cfg.Delay = d
	}

	count := ""
	if file.Count != nil {
		count = fmt.Sprint(*file.Count)
	}
	if len(args) > 1 {
		count = args[1]
	}
	if count != "" {
		n, err := ParsePositiveCount(count)
		if err != nil {
			return cfg, fmt.Errorf("invalid count: %w", err)
		}
		cfg.Count = n
	}

	if opts.firstMeasurement != "" {
		d, err := ParseNonNegativeSeconds(opts.firstMeasurement)
		if err != nil {
			return cfg, fmt.Errorf("invalid first measurement delay: %w", err)
		}
		cfg.FirstDelay = &d
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger creates the diagnostic logger writing to w.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !isTerminal(w),
		FullTimestamp:    true,
	})
	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
