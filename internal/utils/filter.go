package utils

import "strings"

// IsValidInput checks if a description should be handed to the enumerator.
// Returns false for empty strings, non-ASCII text, and text without a single letter.
func IsValidInput(s string) bool {
	if len(strings.TrimSpace(s)) == 0 {
		return false
	}
	if !IsASCII(s) {
		return false
	}
	return CountLetters(s) > 0
}

// CountLetters counts ASCII letters in s.
func CountLetters(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if IsLetter(s[i]) {
			n++
		}
	}
	return n
}

// CountAnchors counts uppercase letters, i.e. letters every match has to use.
func CountAnchors(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if IsUpper(s[i]) {
			n++
		}
	}
	return n
}

// NormalizeWord lowercases a word and reports whether it consists of a..z only.
// Words that fail are dropped by the dictionary loader when normalization is on.
func NormalizeWord(w string) (string, bool) {
	if w == "" {
		return "", false
	}
	buf := []byte(w)
	for i, c := range buf {
		c = ToLower(c)
		if !IsLower(c) {
			return "", false
		}
		buf[i] = c
	}
	return string(buf), true
}
