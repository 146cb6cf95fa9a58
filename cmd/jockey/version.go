// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"runtime/debug"
	"strings"
)

// buildVersion is set with -ldflags "-X main.buildVersion=v1.2.3".
var buildVersion string

var readBuildInfo = debug.ReadBuildInfo

// Version reports the jockey version. In order of preference: the
// -ldflags version, the module version of a `go install`ed binary, the
// short VCS revision with a +dirty suffix for modified trees, then "dev".
func Version() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	bi, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	return buildInfoVersion(bi)
}

func buildInfoVersion(bi *debug.BuildInfo) string {
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var rev string
	var modified bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if rev == "" {
		return "dev"
	}
	rev = rev[:min(len(rev), 12)]
	if modified {
		rev += "+dirty"
	}
	return rev
}
