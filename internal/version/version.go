// Package version reports which build of fxpreview is running. Release
// builds set the variables below with -ldflags "-X"; anything left empty
// is taken from the module and VCS data the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	version string
	commit  string
	date    string
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Go       string `json:"go"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
}

// Get collects the build description.
func Get() Info {
	info := Info{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}

	if info.Version == "" {
		info.Version = "dev"
	}

	if len(info.Commit) > 12 {
		info.Commit = info.Commit[:12]
	}

	return info
}

func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// Short is the name and version, as used in log banners.
func (i Info) Short() string {
	return "fxpreview " + i.Version
}

// String is the one-line form printed by the version command.
func (i Info) String() string {
	var b strings.Builder

	b.WriteString(i.Short())

	if i.Commit != "" {
		b.WriteString(" " + i.Commit)
		if i.Modified {
			b.WriteString("+dirty")
		}
	}

	if i.Date != "" {
		b.WriteString(" " + i.Date)
	}

	fmt.Fprintf(&b, " %s %s/%s", i.Go, i.OS, i.Arch)

	return b.String()
}
