// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"testing"
)

func TestProfile(t *testing.T) {
	cases := []struct {
		password string
		want     CharacterClasses
	}{
		{"", CharacterClasses{}},
		{"abc", CharacterClasses{Lower: true}},
		{"ABC", CharacterClasses{Upper: true}},
		{"123", CharacterClasses{Digit: true}},
		{"a b", CharacterClasses{Lower: true, Symbol: true}},
		{"a!", CharacterClasses{Lower: true, Symbol: true, ExtendedSymbol: true}},
		{"é", CharacterClasses{Symbol: true, ExtendedSymbol: true, NonASCII: true}},
		{"Sh0rt!", CharacterClasses{Lower: true, Upper: true, Digit: true, Symbol: true, ExtendedSymbol: true}},
	}

	for _, tc := range cases {
		if got := Profile(tc.password); got != tc.want {
			t.Errorf("Profile(%q): %+v, want: %+v", tc.password, got, tc.want)
		}
	}
}

func TestPoolSize(t *testing.T) {
	pools := DefaultConfig().Pools
	cases := []struct {
		password string
		want     int
	}{
		{"", 26},
		{"abc", 26},
		{"aB", 52},
		{"aB1", 62},
		{"aB1!", 95},
		{"pässwörd", 159},
	}

	for _, tc := range cases {
		if got := Profile(tc.password).PoolSize(pools); got != tc.want {
			t.Errorf("PoolSize(%q): %d, want: %d", tc.password, got, tc.want)
		}
	}
}

func TestRepeatPenalty(t *testing.T) {
	cases := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"aa", 0},
		{"aaa", 1},
		{"aaaa", 2},
		{"aaaaaaaa", 4},
		{"aaabbb", 2},
		{"aaaXaaa", 2},
		{"\n\n\n", 0},
	}

	for _, tc := range cases {
		if got := RepeatPenalty(tc.password, 0.5); got != tc.want {
			t.Errorf("RepeatPenalty(%q): %d, want: %d", tc.password, got, tc.want)
		}
	}
}

func TestSequencePenalty(t *testing.T) {
	cases := []struct {
		password string
		weight   float64
		want     int
	}{
		// A three character match is worth floor(0.9) = 0 at the stock weight.
		{"abcdef", 0.3, 0},
		{"abcdef", 1, 6},
		{"ABCxyz", 1, 6},
		{"123456789", 1, 9},
		{"qwerty", 1, 6},
		// abc and def from the alphabet, fgh from the keyboard row.
		{"abcdefgh", 1, 9},
		{"abab", 1, 0},
		{"", 1, 0},
	}

	for _, tc := range cases {
		if got := SequencePenalty(tc.password, tc.weight); got != tc.want {
			t.Errorf("SequencePenalty(%q, %v): %d, want: %d", tc.password, tc.weight, got, tc.want)
		}
	}
}

func TestEntropy(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"a", 5},
		{"aaa", 9},
		{"aaaaaaaa", 19},
		{"abcdefgh", 38},
		{"password", 38},
		{"Sh0rt!", 39},
		{"CorrectHorseBattery9!", 138},
	}

	for _, tc := range cases {
		if got := Entropy(tc.password, Profile(tc.password), cfg); got != tc.want {
			t.Errorf("Entropy(%q): %d, want: %d", tc.password, got, tc.want)
		}
	}
}

func TestEntropy_EffectiveLengthFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepeatWeight = 1
	cfg.SequenceWeight = 1

	// Both passes would take the length below zero.
	for _, password := range []string{"aaa", "abc", "abcdefgh"} {
		if got := Entropy(password, Profile(password), cfg); got != 5 {
			t.Errorf("Entropy(%q): %d, want: %d", password, got, 5)
		}
	}
}

func TestEntropy_RepeatsLowerEntropy(t *testing.T) {
	cfg := DefaultConfig()
	repeated := "aaaaaaaaaaaa"
	distinct := "aqzmxnwbecrv"

	low := Entropy(repeated, Profile(repeated), cfg)
	high := Entropy(distinct, Profile(distinct), cfg)
	if low >= high {
		t.Errorf("Entropy(%q) = %d should be lower than Entropy(%q) = %d", repeated, low, distinct, high)
	}
}

func TestEntropy_NeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	for _, password := range []string{"", " ", "\x00", "🙂🙂🙂", "aaaaaaaaaaaaaaaaaaaa", "zxcvbnm,./"} {
		if got := Entropy(password, Profile(password), cfg); got < 0 {
			t.Errorf("Entropy(%q): %d, should not be negative", password, got)
		}
	}
}
