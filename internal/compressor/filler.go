package compressor

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FillerConfig is the filler rule document: ordered regex patterns, ordered
// literal filler words, and optional aggressive fallback patterns. Loaded
// once per run and read-only afterwards.
type FillerConfig struct {
	Patterns   []string `koanf:"patterns"`
	Words      []string `koanf:"words"`
	Aggressive []string `koanf:"aggressive"`
}

// politePreamble strips a leading politeness/request phrase, optionally
// followed by a colon or comma.
var politePreamble = regexp.MustCompile(`(?i)^(can you|could you|would you|please|kindly)[:,\s]*`)

var collapseSpace = regexp.MustCompile(`\s+`)

// FillerRules is the compiled, ordered rule set built from a FillerConfig.
// An invalid pattern is logged and skipped; it never aborts the run.
type FillerRules struct {
	rules      []*regexp.Regexp
	aggressive []*regexp.Regexp
	log        *zap.Logger
}

// NewFillerRules compiles the configured patterns, then the literal words,
// in collection order. All matching is case-insensitive.
func NewFillerRules(cfg FillerConfig, log *zap.Logger) *FillerRules {
	if log == nil {
		log = zap.NewNop()
	}
	f := &FillerRules{log: log}

	for _, pat := range cfg.Patterns {
		re, err := regexp.Compile(`(?i)` + pat)
		if err != nil {
			log.Warn("skipping invalid filler pattern",
				zap.String("pattern", pat), zap.Error(err))
			continue
		}
		f.rules = append(f.rules, re)
	}
	for _, word := range cfg.Words {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			log.Warn("skipping invalid filler word",
				zap.String("word", word), zap.Error(err))
			continue
		}
		f.rules = append(f.rules, re)
	}
	for _, pat := range cfg.Aggressive {
		re, err := regexp.Compile(`(?i)` + pat)
		if err != nil {
			log.Warn("skipping invalid aggressive pattern",
				zap.String("pattern", pat), zap.Error(err))
			continue
		}
		f.aggressive = append(f.aggressive, re)
	}
	return f
}

// Strip removes the politeness preamble and every occurrence of every
// configured rule from text, then cleans up the spacing left behind.
// Empty input is returned unchanged.
func (f *FillerRules) Strip(text string) string {
	if text == "" {
		return text
	}

	s := strings.TrimSpace(text)
	s = politePreamble.ReplaceAllString(s, "")

	for _, re := range f.rules {
		s = re.ReplaceAllString(s, "")
	}

	s = collapseSpace.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	return strings.Trim(s, " \n\t\r\"")
}

// AggressivePatterns returns the compiled aggressive fallback patterns in
// configuration order.
func (f *FillerRules) AggressivePatterns() []*regexp.Regexp {
	return f.aggressive
}
