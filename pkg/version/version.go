// Package version describes the build of the ifstat binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Info holds build metadata. It is built once at startup and passed to the
// command constructor.
type Info struct {
	Name      string
	Version   string
	Commit    string
	Dirty     bool
	BuildTime string
	GoVersion string
	Target    string
}

// New creates build info from values injected at link time. Missing commit
// details are filled from the embedded VCS build settings when present.
func New(name, version, commit, buildTime string) Info {
	info := Info{
		Name:      name,
		Version:   strings.TrimPrefix(version, "v"),
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
		Target:    runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyBuildSettings(bi.Settings)
	}
	return info
}

func (i *Info) applyBuildSettings(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.modified":
			i.Dirty = s.Value == "true"
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		}
	}
}

// Short returns "<name> <version>".
func (i Info) Short() string {
	return fmt.Sprintf("%s %s", i.Name, i.Version)
}

// CommitString returns the commit with a -dirty suffix, or "non-git build".
func (i Info) CommitString() string {
	if i.Commit == "" {
		return "non-git build"
	}
	if i.Dirty {
		return i.Commit + "-dirty"
	}
	return i.Commit
}

// Long returns a multi-line description of the build.
func (i Info) Long() string {
	buildTime := i.BuildTime
	if buildTime == "" {
		buildTime = "unknown"
	}
	return fmt.Sprintf("A tool to report network interface statistics.\n\n"+
		"Commit: %s\n"+
		"Build Timestamp: %s\n"+
		"Go Version: %s\n"+
		"Compilation Target: %s",
		i.CommitString(), buildTime, i.GoVersion, i.Target)
}
