// Package sources provides the platform counter sources that produce interface snapshots.
package sources

import (
	"errors"
	"fmt"

	"github.com/danpilch/ifstat/pkg/stats"
)

// ErrInvalidData is wrapped by every error caused by malformed counter data.
var ErrInvalidData = errors.New("invalid counter data")

// DefaultProcRoot is the procfs mount point read by the Linux sources.
const DefaultProcRoot = "/proc"

// Source is the interface that all counter sources must implement.
type Source interface {
	// Name returns the name used to select the source (e.g., "netdev", "netlink").
	Name() string

	// Snapshot reads the current byte counters of every interface.
	// A call either returns a complete snapshot or an error.
	Snapshot() (*stats.Snapshot, error)
}

// Options configures the sources registered for the current platform.
type Options struct {
	// ProcRoot is the procfs mount point used by the Linux sources.
	ProcRoot string
}

// Registry holds all registered sources.
type Registry struct {
	sources     []Source
	defaultName string
}

// NewRegistry creates a new, empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make([]Source, 0),
	}
}

// NewPlatformRegistry creates a registry holding the sources available on
// the build target. The first registered source is the default.
func NewPlatformRegistry(opts Options) *Registry {
	if opts.ProcRoot == "" {
		opts.ProcRoot = DefaultProcRoot
	}
	r := NewRegistry()
	registerPlatform(r, opts)
	return r
}

// Register adds a source to the registry.
func (r *Registry) Register(s Source) {
	if len(r.sources) == 0 {
		r.defaultName = s.Name()
	}
	r.sources = append(r.sources, s)
}

// Sources returns all registered sources.
func (r *Registry) Sources() []Source {
	return r.sources
}

// Names returns the names of all registered sources.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	return names
}

// DefaultName returns the name of the default source, or "" when empty.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// GetByName returns a source by name, or nil if not found.
func (r *Registry) GetByName(name string) Source {
	for _, s := range r.sources {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Lookup returns the named source, or the default one when name is empty.
func (r *Registry) Lookup(name string) (Source, error) {
	if name == "" {
		name = r.defaultName
	}
	if s := r.GetByName(name); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("unknown counter source %q (available: %v)", name, r.Names())
}

// Func adapts a plain function into a Source.
type Func struct {
	SourceName string
	Fn         func() (*stats.Snapshot, error)
}

// Name returns the source name.
func (f Func) Name() string {
	return f.SourceName
}

// Snapshot calls the wrapped function.
func (f Func) Snapshot() (*stats.Snapshot, error) {
	return f.Fn()
}
