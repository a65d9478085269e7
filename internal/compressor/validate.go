package compressor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/capo/internal/embeddings"
)

// DefaultMinSimilarity is the similarity threshold below which a compression
// is flagged as a quality failure.
const DefaultMinSimilarity = 0.75

// Validator scores semantic similarity between the original and compressed
// text. Measurement is best-effort: when the encoder is unavailable the
// compression is treated as valid rather than blocking the run.
type Validator struct {
	enc           Encoder
	minSimilarity float64
	log           *zap.Logger
}

// NewValidator creates a validator. A minSimilarity of zero means the 0.75
// default.
func NewValidator(enc Encoder, minSimilarity float64, log *zap.Logger) *Validator {
	if minSimilarity == 0 {
		minSimilarity = DefaultMinSimilarity
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{enc: enc, minSimilarity: minSimilarity, log: log}
}

// Similarity returns the semantic similarity of two texts in [0,1].
// Identical texts under trim+lowercase comparison score 1.0 without an
// encoder call; encoder failures also score 1.0 so a degraded encoder never
// fails the pipeline.
func (v *Validator) Similarity(ctx context.Context, a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return 1.0
	}
	if v.enc == nil || !v.enc.Ready() {
		return 1.0
	}

	vecs, err := v.enc.Embed(ctx, []string{a, b})
	if err != nil || len(vecs) != 2 {
		v.log.Warn("similarity embedding failed, assuming valid", zap.Error(err))
		return 1.0
	}
	return embeddings.CosineSimilarity(vecs[0], vecs[1])
}

// Validate reports whether compressed preserves the meaning of original,
// along with the similarity score.
func (v *Validator) Validate(ctx context.Context, original, compressed string) (bool, float64) {
	similarity := v.Similarity(ctx, original, compressed)
	return similarity >= v.minSimilarity, similarity
}
