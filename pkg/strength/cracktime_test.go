// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"testing"
)

func TestCrackTime(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		password string
		entropy  int
		want     float64
	}{
		{"", 50, 0},
		{"x", 0, 5e-7},
		{"x", 20, 0.524288},
		{"x", 30, 536.870912},
		{"x", 1024, MaxCrackTime},
		{"x", 5000, MaxCrackTime},
	}

	for _, tc := range cases {
		got := CrackTime(tc.password, tc.entropy, cfg)
		if math.Abs(got-tc.want) > tc.want*1e-12 {
			t.Errorf("CrackTime(%q, %d): %g, want: %g", tc.password, tc.entropy, got, tc.want)
		}
	}
}

func TestCrackTime_Monotonic(t *testing.T) {
	cfg := DefaultConfig()
	last := 0.0
	for entropy := 0; entropy <= 1100; entropy++ {
		got := CrackTime("x", entropy, cfg)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("CrackTime(%d): %g, should be finite", entropy, got)
		}
		if got < last {
			t.Fatalf("CrackTime(%d): %g, lower than CrackTime(%d) = %g", entropy, got, entropy-1, last)
		}
		last = got
	}
}

func TestCrackTime_AttackerSpeed(t *testing.T) {
	slow := DefaultConfig().WithAttacker(OfflineSlow)
	fast := DefaultConfig().WithAttacker(OfflineGPU)

	if CrackTime("x", 60, slow) <= CrackTime("x", 60, fast) {
		t.Errorf("a slower attacker should take longer")
	}

	broken := DefaultConfig()
	broken.GuessesPerSecond = 0
	if got, want := CrackTime("x", 40, broken), CrackTime("x", 40, DefaultConfig()); got != want {
		t.Errorf("CrackTime with no attacker speed: %g, want: %g", got, want)
	}
}

func TestFormatCrackTime(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{math.NaN(), "Unknown"},
		{-5, "Instantly"},
		{0, "Instantly"},
		{0.5, "Instantly"},
		{1, "1 second"},
		{45, "45 seconds"},
		{60, "1 minute"},
		{90, "2 minutes"},
		{536.870912, "9 minutes"},
		{3600, "1 hour"},
		{7200, "2 hours"},
		{86400, "1 day"},
		{137438.953472, "2 days"},
		{30 * 86400, "1 month"},
		{31536000, "1 year"},
		{3153600000, "1 century"},
		{6.3e9, "2 centuries"},
		{1e21, "Centuries (effectively uncrackable)"},
		{MaxCrackTime, "Centuries (effectively uncrackable)"},
		{math.Inf(1), "Centuries (effectively uncrackable)"},
	}

	for _, tc := range cases {
		if got := FormatCrackTime(tc.seconds); got != tc.want {
			t.Errorf("FormatCrackTime(%g): %q, want: %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatCrackTime_Uncrackable(t *testing.T) {
	seconds := CrackTime("x", 1024, DefaultConfig())
	if got := FormatCrackTime(seconds); got != "Centuries (effectively uncrackable)" {
		t.Errorf("FormatCrackTime(CrackTime(1024)): %q", got)
	}
}
