// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"unicode"
)

// Sequence families. Each triad is matched case-insensitively, except the
// digits which have no case.
var (
	alphabeticTriads = triads("abcdefghijklmnopqrstuvwxyz")
	numericTriads    = triads("0123456789")
	keyboardTriads   = setOf(
		"qwe", "wer", "ert", "rty", "tyu", "yui", "uio", "iop",
		"asd", "sdf", "dfg", "fgh", "ghj", "hjk", "jkl",
		"zxc", "xcv", "cvb", "vbn", "bnm",
	)
	sequenceFamilies = []map[string]struct{}{alphabeticTriads, numericTriads, keyboardTriads}
)

// Entropy estimates the bit strength of the password as log2(pool) times
// the effective length. This is a heuristic, not Shannon entropy.
func Entropy(password string, classes CharacterClasses, cfg Config) int {
	if password == "" {
		return 0
	}

	pool := classes.PoolSize(cfg.Pools)

	effective := length(password)
	effective -= RepeatPenalty(password, cfg.RepeatWeight)
	effective -= SequencePenalty(password, cfg.SequenceWeight)
	if effective < 1 {
		effective = 1
	}

	return int(math.Round(math.Log2(float64(pool)) * float64(effective)))
}

// RepeatPenalty subtracts floor(run*weight) for every maximal run of three or
// more identical characters. Line terminators never form a run.
func RepeatPenalty(password string, weight float64) int {
	penalty := 0
	for _, run := range repeatedRuns(password) {
		penalty += int(math.Floor(float64(run) * weight))
	}
	return penalty
}

// SequencePenalty scans the password once per sequence family, subtracting
// floor(match*weight) for each non-overlapping match. A stretch that belongs
// to several families is penalised once per family.
func SequencePenalty(password string, weight float64) int {
	folded := foldASCII(password)

	penalty := 0
	for _, family := range sequenceFamilies {
		for _, match := range scanFamily(folded, family) {
			penalty += int(math.Floor(float64(match) * weight))
		}
	}
	return penalty
}

// repeatedRuns returns the lengths of every run of 3+ identical characters.
func repeatedRuns(password string) []int {
	var runs []int
	var prev rune
	count := 0

	flush := func() {
		if count >= 3 {
			runs = append(runs, count)
		}
	}

	for _, r := range password {
		if count > 0 && r == prev && !isLineTerminator(r) {
			count++
			continue
		}
		flush()
		prev, count = r, 1
	}
	flush()

	return runs
}

func scanFamily(folded []rune, family map[string]struct{}) []int {
	var matches []int
	for i := 0; i+3 <= len(folded); {
		if _, ok := family[string(folded[i:i+3])]; ok {
			matches = append(matches, 3)
			i += 3
			continue
		}
		i++
	}
	return matches
}

// foldASCII lowercases ASCII letters only, leaving every other character as is.
func foldASCII(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if isUpper(r) {
			r = unicode.ToLower(r)
		}
		out = append(out, r)
	}
	return out
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func triads(alphabet string) map[string]struct{} {
	set := make(map[string]struct{}, len(alphabet))
	for i := 0; i+3 <= len(alphabet); i++ {
		set[alphabet[i:i+3]] = struct{}{}
	}
	return set
}

func setOf(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
