package main

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X main.version=..." by release builds.
var version = "dev"

var readBuildInfo = debug.ReadBuildInfo

type buildVersion struct {
	Version  string
	Revision string
	Modified bool
}

func (b buildVersion) String() string {
	if b.Revision == "" {
		return b.Version
	}
	rev := b.Revision
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if b.Modified {
		rev += "-dirty"
	}
	return fmt.Sprintf("%s (%s)", b.Version, rev)
}

func currentBuild() buildVersion {
	b := buildVersion{Version: "dev"}
	info, ok := readBuildInfo()
	if ok && info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				b.Revision = s.Value
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		b.Version = v
		return b
	}
	if ok && info != nil {
		if mv := strings.TrimSpace(info.Main.Version); mv != "" && mv != "(devel)" {
			b.Version = mv
		}
	}
	return b
}

func runVersionCommand(w io.Writer) error {
	_, err := fmt.Fprintf(w, "forge %s\n", currentBuild())
	return err
}
