//go:build linux

package sources

import (
	"fmt"
	"net"
	"path/filepath"

	"github.com/prometheus/procfs"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/danpilch/ifstat/pkg/stats"
)

func registerPlatform(r *Registry, opts Options) {
	r.Register(NewNetDevSource(opts.ProcRoot))
	r.Register(NewProcfsSource(opts.ProcRoot))
	r.Register(NewNetlinkSource())
	r.Register(NewPsutilSource())
}

// NewNetDevSource creates a source reading <procRoot>/net/dev. The mount is
// checked on every read so a missing procfs reports a clear error.
func NewNetDevSource(procRoot string) Source {
	return &checkedNetDevSource{
		root:  procRoot,
		inner: newNetDevFileSource(filepath.Join(procRoot, "net", "dev")),
	}
}

type checkedNetDevSource struct {
	root  string
	inner *NetDevSource
}

func (s *checkedNetDevSource) Name() string {
	return s.inner.Name()
}

func (s *checkedNetDevSource) Snapshot() (*stats.Snapshot, error) {
	if err := checkProcMount(s.root); err != nil {
		return nil, err
	}
	return s.inner.Snapshot()
}

// checkProcMount verifies that root is a procfs mount.
func checkProcMount(root string) error {
	var st unix.Statfs_t
	if err := unix.Statfs(root, &st); err != nil {
		return fmt.Errorf("cannot stat %s: %w", root, err)
	}
	if uint64(st.Type) != unix.PROC_SUPER_MAGIC {
		return fmt.Errorf("%s is not a procfs mount (type 0x%x)", root, st.Type)
	}
	return nil
}

// ProcfsSource reads interface counters through prometheus/procfs.
type ProcfsSource struct {
	root string
}

// NewProcfsSource creates a procfs backed source.
func NewProcfsSource(procRoot string) *ProcfsSource {
	return &ProcfsSource{root: procRoot}
}

// Name returns the source name.
func (s *ProcfsSource) Name() string {
	return "procfs"
}

// Snapshot reads net/dev via procfs. procfs returns a map, so interfaces are
// ordered by kernel index.
func (s *ProcfsSource) Snapshot() (*stats.Snapshot, error) {
	fs, err := procfs.NewFS(s.root)
	if err != nil {
		return nil, err
	}
	dev, err := fs.NetDev()
	if err != nil {
		return nil, fmt.Errorf("procfs net/dev: %w", err)
	}

	names := make([]string, 0, len(dev))
	for name := range dev {
		names = append(names, name)
	}

	snap := stats.NewSnapshot()
	for _, name := range orderByIndex(names, net.Interfaces) {
		line := dev[name]
		snap.Set(name, stats.Counters{RxBytes: line.RxBytes, TxBytes: line.TxBytes})
	}
	return snap, nil
}

// NetlinkSource reads interface counters over rtnetlink.
type NetlinkSource struct{}

// NewNetlinkSource creates a netlink backed source.
func NewNetlinkSource() *NetlinkSource {
	return &NetlinkSource{}
}

// Name returns the source name.
func (s *NetlinkSource) Name() string {
	return "netlink"
}

// Snapshot lists links in index order. Links without statistics are skipped.
func (s *NetlinkSource) Snapshot() (*stats.Snapshot, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("netlink link list: %w", err)
	}

	snap := stats.NewSnapshot()
	for _, l := range links {
		attrs := l.Attrs()
		if attrs == nil || attrs.Statistics == nil {
			continue
		}
		snap.Set(attrs.Name, stats.Counters{
			RxBytes: attrs.Statistics.RxBytes,
			TxBytes: attrs.Statistics.TxBytes,
		})
	}
	return snap, nil
}
