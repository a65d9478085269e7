package compressor

import (
	"regexp"
	"strings"
)

// Token is a span of text produced by splitting a string into word and
// non-word runs. Tokens keep their positional order; pipeline stages filter
// tokens but never reorder them.
type Token struct {
	Text   string
	IsWord bool
}

// tokenPattern matches contractions first so "don't" stays a single word
// token, then plain words, then single punctuation marks, then whitespace
// runs.
var tokenPattern = regexp.MustCompile(`\w+'\w+|\w+|[^\w\s]|\s+`)

// wordPattern extracts lowercase word forms for scoring.
var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Tokenize splits text into word and non-word runs, preserving structure.
func Tokenize(text string) []Token {
	matches := tokenPattern.FindAllString(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{Text: m, IsWord: isWordRun(m)})
	}
	return tokens
}

// Words returns the lowercase word forms of text in order of appearance.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func isWordRun(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
