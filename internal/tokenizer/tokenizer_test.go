package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOrSkip skips when no encoding can load, e.g. offline with no cached
// BPE files.
func newOrSkip(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New()
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	require.NotNil(t, tok)
	return tok
}

func TestCount(t *testing.T) {
	tok := newOrSkip(t)

	assert.Equal(t, 0, tok.Count(""))
	assert.Greater(t, tok.Count("hello world"), 0)

	short := tok.Count("Explain tides.")
	long := tok.Count("Explain tides, their causes, and their effect on coastal navigation.")
	assert.Greater(t, long, short)
}

func TestCount_Deterministic(t *testing.T) {
	tok := newOrSkip(t)

	text := "Could you please explain how climate change affects coral reefs?"
	assert.Equal(t, tok.Count(text), tok.Count(text))
}
