package services

import (
	"regexp"
	"strings"
)

// nonWord matches every character that is neither a word character nor
// whitespace. Punctuation is replaced with spaces before splitting, so
// accented letters outside \w act as token boundaries as well.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Tokenize normalizes text into a deduplicated token list: lowercase,
// punctuation stripped, split on whitespace runs, tokens of length <= 1
// dropped. The result preserves first-seen order but callers must not rely
// on it; semantically it is a set.
func Tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	seen := make(map[string]struct{})
	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 1 {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	return tokens
}

// TokenSet returns the tokens of text as a set.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// Similarity computes normalized Levenshtein similarity between two
// strings: (maxLen - editDistance) / maxLen. Two empty strings are
// identical (1.0). The result is symmetric and lies in [0, 1].
func Similarity(a, b string) float64 {
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}

	if len(longer) == 0 {
		return 1.0
	}

	dist := levenshtein(longer, shorter)
	return float64(len(longer)-dist) / float64(len(longer))
}

// levenshtein computes the edit distance between two strings using the
// full dynamic-programming matrix.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1], min(curr[j-1], prev[j])) + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
