package compressor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubEncoder returns canned vectors keyed by input text; unknown texts get
// the unit vector so cosine similarity stays well defined.
type stubEncoder struct {
	ready bool
	vecs  map[string][]float32
	err   error
}

func (s *stubEncoder) Ready() bool { return s.ready }

func (s *stubEncoder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vecs[t]; ok {
			out[i] = v
		} else {
			out[i] = []float32{1, 0, 0}
		}
	}
	return out, nil
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"terminal punctuation", "One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"collapses whitespace between sentences", "First.   Second.", []string{"First.", "Second."}},
		{"no punctuation falls back to lines", "line one\nline two", []string{"line one", "line two"}},
		{"single sentence", "Only one here", []string{"Only one here"}},
		{"blank lines dropped", "alpha\n\nbeta\n", []string{"alpha", "beta"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestSelector_EncoderUnavailablePassesThrough(t *testing.T) {
	s := NewSelector(&stubEncoder{ready: false}, zap.NewNop())

	text := "First point. Second point. Third point."
	assert.Equal(t, text, s.Select(context.Background(), text, 1))
}

func TestSelector_EmbedFailurePassesThrough(t *testing.T) {
	s := NewSelector(&stubEncoder{ready: true, err: errors.New("model gone")}, zap.NewNop())

	text := "First point. Second point."
	assert.Equal(t, text, s.Select(context.Background(), text, 1))
}

func TestSelector_SingleSentenceShortCircuit(t *testing.T) {
	// No embedding call is needed for one sentence, even without terminal
	// punctuation.
	s := NewSelector(&stubEncoder{ready: true, err: errors.New("must not be called")}, zap.NewNop())

	assert.Equal(t, "Describe the moon", s.Select(context.Background(), "Describe the moon", 2))
}

func TestSelector_KeepsDocumentOrder(t *testing.T) {
	text := "Alpha first. Beta second. Gamma third."
	enc := &stubEncoder{
		ready: true,
		vecs: map[string][]float32{
			// Gamma ranks highest, Alpha second, Beta last.
			"Alpha first.": {0.9, 0.1, 0},
			"Beta second.": {0, 1, 0},
			"Gamma third.": {1, 0, 0},
			text:           {1, 0, 0},
		},
	}
	s := NewSelector(enc, zap.NewNop())

	got := s.Select(context.Background(), text, 2)
	// Selection is by rank, output order is document order.
	assert.Equal(t, "Alpha first. Gamma third.", got)
}

func TestSelector_TopOneKeepsBestSentence(t *testing.T) {
	text := "Filler intro. Core request here."
	enc := &stubEncoder{
		ready: true,
		vecs: map[string][]float32{
			"Filler intro.":      {0, 1, 0},
			"Core request here.": {1, 0, 0},
			text:                 {1, 0, 0},
		},
	}
	s := NewSelector(enc, zap.NewNop())

	assert.Equal(t, "Core request here.", s.Select(context.Background(), text, 1))
}

func TestSelector_MaxSentencesClamped(t *testing.T) {
	text := "One thing. Another thing."
	s := NewSelector(&stubEncoder{ready: true}, zap.NewNop())

	// Asking for more sentences than exist returns everything, in order.
	assert.Equal(t, text, s.Select(context.Background(), text, 10))
}
