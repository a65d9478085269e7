package compressor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFillerRules_StripPreamble(t *testing.T) {
	rules := NewFillerRules(FillerConfig{}, zap.NewNop())

	tests := []struct {
		in   string
		want string
	}{
		{"Could you explain recursion", "explain recursion"},
		{"could you: explain recursion", "explain recursion"},
		{"Please, summarize this", "summarize this"},
		{"Kindly list the steps", "list the steps"},
		{"Explain recursion", "Explain recursion"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.Strip(tt.in), "input %q", tt.in)
	}
}

func TestFillerRules_RemovesPatternsThenWords(t *testing.T) {
	rules := NewFillerRules(FillerConfig{
		Patterns: []string{`\bi was wondering if\b`},
		Words:    []string{"basically", "actually"},
	}, zap.NewNop())

	got := rules.Strip("I was wondering if you basically could actually describe the API")
	assert.Equal(t, "you could describe the API", got)
}

func TestFillerRules_CaseInsensitive(t *testing.T) {
	rules := NewFillerRules(FillerConfig{Words: []string{"basically"}}, zap.NewNop())

	got := rules.Strip("Explain BASICALLY everything")
	assert.Equal(t, "Explain everything", got)
}

func TestFillerRules_InvalidPatternSkipped(t *testing.T) {
	rules := NewFillerRules(FillerConfig{
		Patterns:   []string{`[unclosed`, `\bfiller\b`},
		Aggressive: []string{`(bad`, `\bgood\b`},
	}, zap.NewNop())

	// The invalid pattern is dropped; the valid one still applies.
	assert.Equal(t, "Keep text", rules.Strip("Keep filler text"))
	assert.Len(t, rules.AggressivePatterns(), 1)
}

func TestFillerRules_CleansSpacingAndQuotes(t *testing.T) {
	rules := NewFillerRules(FillerConfig{Words: []string{"um"}}, zap.NewNop())

	got := rules.Strip(`"Explain um the design ."`)
	assert.Equal(t, "Explain the design.", got)
}

func TestFillerRules_EmptyInputUnchanged(t *testing.T) {
	rules := NewFillerRules(FillerConfig{Words: []string{"x"}}, zap.NewNop())
	assert.Equal(t, "", rules.Strip(""))
}
