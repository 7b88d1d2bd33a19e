// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of veridact binaries.
package version

import "runtime/debug"

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/veridact/veridact/lib/version.Version=...".
var Version = "dev"

// Info returns the version string, including the VCS revision when
// the binary was built from a module with embedded build info.
func Info() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
			return Version + " (" + setting.Value[:12] + ")"
		}
	}
	return Version
}
