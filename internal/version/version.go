// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// New returns Info with "dev"/"unknown" in place of values the build did
// not inject.
func New(version, commit, buildTime string) Info {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if buildTime == "" {
		buildTime = "unknown"
	}
	return Info{Version: version, GitCommit: commit, BuildTime: buildTime}
}

// String formats the info for the -version flag.
func (i Info) String() string {
	return fmt.Sprintf("blog %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
