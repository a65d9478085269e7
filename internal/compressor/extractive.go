package compressor

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/capo/internal/embeddings"
)

// Encoder is the subset of the embedding service the extractive stage and
// the validator need. Implementations report readiness instead of failing:
// an unavailable encoder makes callers degrade, never abort.
type Encoder interface {
	// Ready reports whether the underlying model loaded. The first call may
	// trigger lazy initialization.
	Ready() bool
	// Embed returns one vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SplitSentences splits text on whitespace that follows sentence-ending
// punctuation. When the text carries no terminal punctuation it falls back
// to splitting on line breaks.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var parts []string
	var cur strings.Builder
	prev := rune(0)
	for _, r := range text {
		if isSpaceRune(r) && cur.Len() > 0 && isTerminal(prev) {
			parts = append(parts, cur.String())
			cur.Reset()
			prev = r
			continue
		}
		if isSpaceRune(r) && cur.Len() == 0 {
			prev = r
			continue
		}
		cur.WriteRune(r)
		prev = r
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}

	if len(parts) == 1 {
		parts = strings.Split(text, "\n")
	}

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// Selector keeps the sentences most similar to the whole document.
type Selector struct {
	enc Encoder
	log *zap.Logger
}

// NewSelector creates an extractive selector backed by enc.
func NewSelector(enc Encoder, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{enc: enc, log: log}
}

// Select embeds each sentence and the full text, ranks sentences by cosine
// similarity to the document, keeps the top maxSentences, and joins them
// back in original document order. When the encoder is unavailable or any
// embedding call fails, the input is returned unchanged.
func (s *Selector) Select(ctx context.Context, text string, maxSentences int) string {
	if text == "" {
		return text
	}
	if s.enc == nil || !s.enc.Ready() {
		s.log.Debug("encoder unavailable, skipping extractive selection")
		return text
	}

	sentences := SplitSentences(text)
	switch len(sentences) {
	case 0:
		return text
	case 1:
		return sentences[0]
	}

	vecs, err := s.enc.Embed(ctx, append(append([]string{}, sentences...), text))
	if err != nil || len(vecs) != len(sentences)+1 {
		s.log.Warn("sentence embedding failed, skipping extractive selection",
			zap.Error(err))
		return text
	}
	docVec := vecs[len(vecs)-1]

	order := make([]int, len(sentences))
	sims := make([]float64, len(sentences))
	for i := range sentences {
		order[i] = i
		sims[i] = embeddings.CosineSimilarity(vecs[i], docVec)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sims[order[i]] > sims[order[j]]
	})

	if maxSentences < 1 {
		maxSentences = 1
	}
	if maxSentences > len(order) {
		maxSentences = len(order)
	}
	selected := append([]int{}, order[:maxSentences]...)
	// Rank decides membership only; output keeps document order.
	sort.Ints(selected)

	picked := make([]string, 0, len(selected))
	for _, i := range selected {
		picked = append(picked, sentences[i])
	}
	return strings.Join(picked, " ")
}
