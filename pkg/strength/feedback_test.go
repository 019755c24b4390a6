// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRequirements(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		password string
		want     map[RequirementName]bool
	}{
		{"", map[RequirementName]bool{RequireLength: false, RequireUppercase: false, RequireLowercase: false, RequireNumbers: false, RequireSymbols: false}},
		{"Sh0rt!", map[RequirementName]bool{RequireLength: false, RequireUppercase: true, RequireLowercase: true, RequireNumbers: true, RequireSymbols: true}},
		{"CorrectHorseBattery9!", map[RequirementName]bool{RequireLength: true, RequireUppercase: true, RequireLowercase: true, RequireNumbers: true, RequireSymbols: true}},
		{"alllowercaseletters", map[RequirementName]bool{RequireLength: true, RequireUppercase: false, RequireLowercase: true, RequireNumbers: false, RequireSymbols: false}},
	}

	for _, tc := range cases {
		reqs := CheckRequirements(tc.password, cfg)
		assert.Len(t, reqs, len(RequirementNames))
		for name, want := range tc.want {
			assert.Equal(t, want, reqs.Met(name), "%q requirement %s", tc.password, name)
		}
	}

	assert.True(t, CheckRequirements("CorrectHorseBattery9!", cfg).All())
	assert.False(t, CheckRequirements("Sh0rt!", cfg).All())
}

func TestCheckRequirements_MinLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinLength = 6

	reqs := CheckRequirements("Sh0rt!", cfg)
	assert.True(t, reqs.Met(RequireLength))
	assert.Equal(t, "At least 6 characters", reqs[RequireLength].Text)
}

func TestFeedback_Empty(t *testing.T) {
	cfg := DefaultConfig()
	reqs := CheckRequirements("CorrectHorseBattery9!", cfg)
	for _, score := range []int{-1, 0, 4, 9} {
		assert.Equal(t, EmptyFeedback, Feedback("", score, 200, reqs, cfg))
	}
	assert.Equal(t, EmptyFeedback, Feedback("", 0, 0, nil, cfg))
}

func TestFeedback(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		password string
		score    int
		want     string
	}{
		{
			"CorrectHorseBattery9!", 4,
			"Excellent! This password provides very strong protection.",
		},
		{
			"password", 0,
			"This password is extremely vulnerable. It would be cracked almost instantly. " +
				"Recommendations: Use at least 12 characters, Add uppercase letters, Include numbers, " +
				"Add special characters (e.g., !@#$%), Make your password longer, Add non-alphabetic characters.",
		},
		{
			"123456", 0,
			"This password is extremely vulnerable. It would be cracked almost instantly. " +
				"Recommendations: Use at least 12 characters, Mix uppercase and lowercase letters, " +
				"Add special characters (e.g., !@#$%), Make your password longer, Use more than just numbers, " +
				`Avoid sequential characters (e.g., "abc", "123").`,
		},
		{
			"QWERTYUIOPAS", 1,
			"This password is too weak for important accounts. It needs significant improvement. " +
				"Recommendations: Add lowercase letters, Include numbers, Add special characters (e.g., !@#$%), " +
				`Add non-alphabetic characters, Avoid keyboard patterns (e.g., "qwerty").`,
		},
		{
			"Zzzz#horse#battery9", 3,
			"This is a strong password that provides good protection for most purposes. " +
				`Recommendations: Avoid repeating characters (e.g., "aaa").`,
		},
		{
			"Moderate#Pass1", 2,
			"This password provides moderate protection but could be stronger.",
		},
		{
			"Moderate#Pass1", 7,
			"Password strength could not be determined.",
		},
	}

	for _, tc := range cases {
		got := Feedback(tc.password, tc.score, 0, CheckRequirements(tc.password, cfg), cfg)
		assert.Equal(t, tc.want, got, "Feedback(%q, %d)", tc.password, tc.score)
	}
}

func TestFeedback_NoDuplicates(t *testing.T) {
	cfg := DefaultConfig()
	for _, password := range []string{"a", "aaa", "abc", "123", "321321", "qwertyqwerty", "zxcvbnnnn", "AAAA", "!!!!"} {
		for score := 0; score <= 4; score++ {
			feedback := Feedback(password, score, 0, CheckRequirements(password, cfg), cfg)
			_, recs, found := strings.Cut(feedback, "Recommendations: ")
			if !found {
				continue
			}

			seen := map[string]bool{}
			for _, rec := range strings.Split(strings.TrimSuffix(recs, "."), ", ") {
				assert.False(t, seen[rec], "%q repeats %q", password, rec)
				seen[rec] = true
			}
		}
	}
}

func TestRecommendations_Dedup(t *testing.T) {
	var recs recommendations
	recs.add("Include numbers")
	recs.add("Add uppercase letters")
	recs.add("Include numbers")

	assert.Equal(t, []string{"Include numbers", "Add uppercase letters"}, recs.items)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "line onetwo", PlainText("line one\ntwo"))
	assert.Equal(t, "<b>bold</b>", PlainText("<b>bold</b>\x00"))
}
