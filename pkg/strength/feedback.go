// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"strings"
	"unicode"
)

// EmptyFeedback is the prompt returned for an empty password.
const EmptyFeedback = "Enter a password to see analysis and recommendations."

// DegradedNote is appended to the feedback when the coarse scorer was not available.
const DegradedNote = "Note: basic password analysis in use, the strength score is less accurate."

var (
	keyboardPrefixes   = []string{"qwerty", "asdfgh", "zxcvbn"}
	sequentialPrefixes = []string{"abc", "123", "321"}
)

// Feedback builds the verdict for a score followed by the recommendations
// that apply to the password. The result is plain text.
func Feedback(password string, score, entropy int, reqs Requirements, cfg Config) string {
	if password == "" {
		return EmptyFeedback
	}

	var b strings.Builder
	b.WriteString(verdict(score))

	recs := recommend(password, score, reqs, cfg)
	if len(recs) > 0 {
		b.WriteString(" Recommendations: ")
		b.WriteString(strings.Join(recs, ", "))
		b.WriteString(".")
	}

	return PlainText(b.String())
}

func verdict(score int) string {
	switch score {
	case 0:
		return "This password is extremely vulnerable. It would be cracked almost instantly."
	case 1:
		return "This password is too weak for important accounts. It needs significant improvement."
	case 2:
		return "This password provides moderate protection but could be stronger."
	case 3:
		return "This is a strong password that provides good protection for most purposes."
	case 4:
		return "Excellent! This password provides very strong protection."
	default:
		return "Password strength could not be determined."
	}
}

// recommendations keeps insertion order and drops repeated advice.
type recommendations struct {
	items []string
	seen  map[string]struct{}
}

func (r *recommendations) add(text string) {
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, ok := r.seen[text]; ok {
		return
	}
	r.seen[text] = struct{}{}
	r.items = append(r.items, text)
}

// recommend runs every check in its fixed order.
func recommend(password string, score int, reqs Requirements, cfg Config) []string {
	var recs recommendations

	if !reqs.Met(RequireLength) {
		recs.add(fmt.Sprintf("Use at least %d characters", cfg.minLength()))
	}

	upper, lower := reqs.Met(RequireUppercase), reqs.Met(RequireLowercase)
	switch {
	case !upper && !lower:
		recs.add("Mix uppercase and lowercase letters")
	case !upper:
		recs.add("Add uppercase letters")
	case !lower:
		recs.add("Add lowercase letters")
	}

	if !reqs.Met(RequireNumbers) {
		recs.add("Include numbers")
	}
	if !reqs.Met(RequireSymbols) {
		recs.add("Add special characters (e.g., !@#$%)")
	}

	if length(password) < cfg.ShortLength && score < 3 {
		recs.add("Make your password longer")
	}
	if all(password, isAlpha) {
		recs.add("Add non-alphabetic characters")
	}
	if all(password, isDigit) {
		recs.add("Use more than just numbers")
	}
	if len(repeatedRuns(password)) > 0 {
		recs.add(`Avoid repeating characters (e.g., "aaa")`)
	}

	folded := string(foldASCII(password))
	if hasAnyPrefix(folded, keyboardPrefixes) {
		recs.add(`Avoid keyboard patterns (e.g., "qwerty")`)
	}
	if hasAnyPrefix(folded, sequentialPrefixes) {
		recs.add(`Avoid sequential characters (e.g., "abc", "123")`)
	}

	return recs.items
}

// PlainText strips control and other non printable characters so the text
// can be shown literally.
func PlainText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)
}

func all(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
