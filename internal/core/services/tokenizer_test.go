package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndSplits(t *testing.T) {
	tokens := Tokenize("Najdi Firmu Alza")

	assert.Equal(t, []string{"najdi", "firmu", "alza"}, tokens)
}

func TestTokenize_StripsPunctuation(t *testing.T) {
	tokens := Tokenize("Kolik firem je v systému?")

	assert.Contains(t, tokens, "kolik")
	assert.Contains(t, tokens, "firem")
	assert.NotContains(t, tokens, "systému?")
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tokens := Tokenize("a je v IT")

	assert.NotContains(t, tokens, "a")
	assert.NotContains(t, tokens, "v")
	assert.Contains(t, tokens, "je")
	assert.Contains(t, tokens, "it")
}

func TestTokenize_Deduplicates(t *testing.T) {
	tokens := Tokenize("alza alza ALZA")

	assert.Equal(t, []string{"alza"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  ?!  "))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("firma Alza firma")

	assert.Len(t, set, 2)
	assert.Contains(t, set, "firma")
	assert.Contains(t, set, "alza")
}

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("alza", "alza"))
}

func TestSimilarity_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarity_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("alza", ""))
}

func TestSimilarity_KittenSitting(t *testing.T) {
	// Edit distance 3 over max length 7.
	assert.InDelta(t, 4.0/7.0, Similarity("kitten", "sitting"), 1e-9)
}

func TestSimilarity_Symmetric(t *testing.T) {
	assert.Equal(t, Similarity("microsoft", "microsft"), Similarity("microsft", "microsoft"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"alza", "alzza", 1},
		{"firma", "forma", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}
