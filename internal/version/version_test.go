// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestNew_Defaults(t *testing.T) {
	info := New("", "", "")
	if info.Version != "dev" || info.GitCommit != "unknown" || info.BuildTime != "unknown" {
		t.Errorf("New() = %+v", info)
	}
}

func TestInfo_String(t *testing.T) {
	info := New("v1.2.0", "abc1234", "2026-01-30T12:00:00Z")
	want := "blog v1.2.0 (commit: abc1234, built: 2026-01-30T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
