package compressor

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyPrompt is returned when the pipeline receives no usable text.
var ErrEmptyPrompt = errors.New("compressor: empty prompt")

// TokenCounter counts LLM tokens for a string. The CLI plugs in a tiktoken
// implementation; tests use cheaper counters.
type TokenCounter interface {
	Count(text string) int
}

// trailingClause strips a trailing subordinate clause introduced by a
// connector, the generic last-resort trim when no configured aggressive
// pattern helps.
var trailingClause = regexp.MustCompile(`(?is)[,;:\-]\s*(and|for|that|which|please|include)\b.*$`)

// sentenceBudgetTokens is the original-prompt token count at which the
// extractive stage keeps two sentences instead of one.
const sentenceBudgetTokens = 60

// Options configures a Pipeline run.
type Options struct {
	// TargetReduction is passed to the smart reducer; zero means default.
	TargetReduction float64
	// MinSimilarity is the validator threshold; zero means default.
	MinSimilarity float64
	// SmartReduction toggles the word-pruning stage between rule-based
	// cleaning and extractive selection.
	SmartReduction bool
}

// Result is the pipeline deliverable: the text at each stage, the token
// accounting, and the quality verdict.
type Result struct {
	Original   string
	Cleaned    string
	Reduced    string
	Compressed string

	OriginalTokens   int
	CleanedTokens    int
	ReducedTokens    int
	CompressedTokens int
	TokensSaved      int

	Similarity float64
	Valid      bool

	Elapsed time.Duration
}

// CompressionRatio returns the fractional token reduction, clamped at 0
// when compression failed to shrink the text.
func (r *Result) CompressionRatio() float64 {
	if r.OriginalTokens == 0 {
		return 0
	}
	ratio := 1 - float64(r.CompressedTokens)/float64(r.OriginalTokens)
	if ratio < 0 {
		return 0
	}
	return ratio
}

// Pipeline runs the full compression sequence over a prompt: filler
// stripping, normalization, smart reduction, extractive selection, the
// aggressive fallback, and semantic validation. Every stage is a pure
// function of its input plus configuration; the only shared state is the
// lazily initialized encoder handle.
type Pipeline struct {
	fillers   *FillerRules
	selector  *Selector
	validator *Validator
	counter   TokenCounter
	opts      Options
	log       *zap.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(fillers *FillerRules, enc Encoder, counter TokenCounter, opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		fillers:   fillers,
		selector:  NewSelector(enc, log),
		validator: NewValidator(enc, opts.MinSimilarity, log),
		counter:   counter,
		opts:      opts,
		log:       log,
	}
}

// Run compresses prompt and returns the full result. The input is never
// mutated; each stage produces a new string.
func (p *Pipeline) Run(ctx context.Context, prompt string) (*Result, error) {
	start := time.Now()

	original := strings.TrimSpace(prompt)
	if original == "" {
		return nil, ErrEmptyPrompt
	}
	originalTokens := p.counter.Count(original)

	cleaned := Normalize(p.fillers.Strip(original))
	cleanedTokens := p.counter.Count(cleaned)

	reduced := cleaned
	if p.opts.SmartReduction {
		reduced = Reduce(cleaned, ReduceOptions{
			TargetReduction:           p.opts.TargetReduction,
			PreserveQuestionStructure: true,
		})
	}
	reducedTokens := p.counter.Count(reduced)

	maxSentences := 1
	if originalTokens >= sentenceBudgetTokens {
		maxSentences = 2
	}
	compressed := Normalize(p.selector.Select(ctx, reduced, maxSentences))
	compressedTokens := p.counter.Count(compressed)

	// Fallback fires only when the pipeline stalled: the extractive stage
	// did not get below the rule-based token count.
	if compressedTokens >= cleanedTokens {
		compressed, compressedTokens = p.aggressiveTrim(cleaned, compressed, compressedTokens)
	}

	valid, similarity := p.validator.Validate(ctx, original, compressed)

	tokensSaved := originalTokens - compressedTokens
	if tokensSaved < 0 {
		tokensSaved = 0
	}

	return &Result{
		Original:         original,
		Cleaned:          cleaned,
		Reduced:          reduced,
		Compressed:       compressed,
		OriginalTokens:   originalTokens,
		CleanedTokens:    cleanedTokens,
		ReducedTokens:    reducedTokens,
		CompressedTokens: compressedTokens,
		TokensSaved:      tokensSaved,
		Similarity:       similarity,
		Valid:            valid,
		Elapsed:          time.Since(start),
	}, nil
}

// aggressiveTrim tries each configured aggressive pattern against the
// cleaned text in order and accepts the first candidate that strictly
// lowers the token count. When none helps it falls back to a single generic
// trailing-clause strip. One shot per pattern, no retries.
func (p *Pipeline) aggressiveTrim(cleaned, compressed string, compressedTokens int) (string, int) {
	for _, re := range p.fillers.AggressivePatterns() {
		candidate := Normalize(re.ReplaceAllString(cleaned, ""))
		if n := p.counter.Count(candidate); n < compressedTokens {
			p.log.Debug("aggressive pattern accepted",
				zap.String("pattern", re.String()),
				zap.Int("tokens", n))
			return candidate, n
		}
	}

	candidate := Normalize(trailingClause.ReplaceAllString(cleaned, ""))
	if n := p.counter.Count(candidate); n < compressedTokens {
		return candidate, n
	}
	return compressed, compressedTokens
}
