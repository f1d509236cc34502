// Package version reports how the tokenlint binary was built.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X bennypowers.dev/tokenlint/internal/version.Version=v0.1.0"
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
	Dirty     = ""
)

// Info is the resolved build description
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get resolves build information, preferring ldflags values and falling
// back to the module and VCS data the Go toolchain embeds.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		Dirty:     Dirty == "true" || Dirty == "dirty",
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			if Dirty == "" {
				info.Dirty = s.Value == "true"
			}
		}
	}
	return info
}

// ShortCommit is the first seven characters of the commit
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

func (i Info) String() string {
	s := i.Version
	if c := i.ShortCommit(); c != "" {
		s = fmt.Sprintf("%s (commit %s", s, c)
		if i.Dirty {
			s += ", dirty"
		}
		s += ")"
	}
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}
