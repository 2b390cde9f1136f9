// Package version carries build metadata injected via ldflags:
//
//	go build -ldflags "-X funcfold/internal/version.version=v1.2.3 -X funcfold/internal/version.commit=abc123"
package version

import (
	"fmt"
	"io"
)

const (
	ApplicationName = "funcfold"

	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

var (
	version   string
	commit    string
	buildTime string
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func Get() Info {
	return Info{
		Version:   orDefault(version, DefaultVersion),
		Commit:    orDefault(commit, DefaultCommit),
		BuildTime: orDefault(buildTime, DefaultBuildTime),
	}
}

// String returns just the version number.
func String() string { return Get().Version }

func (i Info) IsDevelopment() bool { return i.Version == DefaultVersion }

func (i Info) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, i.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\nVersion: %s\nCommit: %s\nBuilt: %s\n",
		ApplicationName, i.Version, i.Commit, i.BuildTime)
	return err
}

// SetBuildVars overrides the ldflags values; tests only.
func SetBuildVars(ver, com, bt string) {
	version, commit, buildTime = ver, com, bt
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
