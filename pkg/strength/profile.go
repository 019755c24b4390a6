// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"unicode"
	"unicode/utf8"
)

// CharacterClasses records which symbol classes a password draws from.
type CharacterClasses struct {
	Lower          bool `json:"lower"`
	Upper          bool `json:"upper"`
	Digit          bool `json:"digit"`
	Symbol         bool `json:"symbol"`
	ExtendedSymbol bool `json:"extendedSymbol"`
	NonASCII       bool `json:"nonAscii"`
}

// Profile inspects every character of the password once.
func Profile(password string) CharacterClasses {
	var c CharacterClasses
	for _, r := range password {
		switch {
		case isLower(r):
			c.Lower = true
		case isUpper(r):
			c.Upper = true
		case isDigit(r):
			c.Digit = true
		default:
			c.Symbol = true
			if !unicode.IsSpace(r) {
				c.ExtendedSymbol = true
			}
		}

		if r >= utf8.RuneSelf {
			c.NonASCII = true
		}
	}

	return c
}

// PoolSize sums the pool of every present class. It is never zero: a
// profile without any class falls back to the lowercase pool.
func (c CharacterClasses) PoolSize(p PoolSizes) int {
	pool := 0
	if c.Lower {
		pool += p.Lower
	}
	if c.Upper {
		pool += p.Upper
	}
	if c.Digit {
		pool += p.Digit
	}
	if c.Symbol {
		pool += p.Symbol
	}
	if c.NonASCII {
		pool += p.NonASCII
	}

	if pool <= 0 {
		pool = 26
	}
	return pool
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool { return isLower(r) || isUpper(r) }

func length(password string) int {
	return utf8.RuneCountInString(password)
}
