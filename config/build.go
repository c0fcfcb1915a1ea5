// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of i18ntidy.
const BuildVersion string = "v0.4.0"

const shortRevisionLength = 8

// buildInfo is the VCS state the binary was built from.
type buildInfo struct {
	GoVersion   string
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision returns "<date>-<short revision>[+dirty]", or "unknown".
func (b buildInfo) Revision() string {
	if b.VcsRevision == "" {
		return "unknown"
	}

	rev := b.VcsRevision
	if len(rev) > shortRevisionLength {
		rev = rev[:shortRevisionLength]
	}

	s := strings.Split(b.VcsTime, "T")[0] + "-" + rev
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

func readBuildInfo() buildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return buildInfo{}
	}

	b := buildInfo{GoVersion: info.GoVersion}

	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			b.VcsRevision = kv.Value
		case "vcs.time":
			b.VcsTime = kv.Value
		case "vcs.modified":
			b.VcsModified = kv.Value == "true"
		}
	}

	return b
}
