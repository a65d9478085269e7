package compressor

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalization rules kept as data so each pattern can be validated
// independently of the code that applies it.
var (
	spaceBeforePunct  = regexp.MustCompile(`\s+([.,!?:;])`)
	repeatedTerminal  = regexp.MustCompile(`[.!?]{2,}`)
	leadingNonWord    = regexp.MustCompile(`^[^\w]+`)
	missingSpaceAfter = regexp.MustCompile(`([.,!?:;])([^\s.,!?:;])`)

	// Leading auxiliary phrases stripped in order. The politeness preamble
	// has already been handled by the filler remover; these catch the
	// indirect phrasings that survive it.
	leadingAuxiliaries = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^you could `),
		regexp.MustCompile(`(?i)^you would `),
		regexp.MustCompile(`(?i)^you can `),
		regexp.MustCompile(`(?i)^you should `),
		regexp.MustCompile(`(?i)^i need to `),
		regexp.MustCompile(`(?i)^i want to `),
	}
)

// Normalize tidies the shape of text between pipeline stages: collapses
// repeated terminal punctuation, fixes spacing around punctuation, strips
// leading non-word characters and auxiliary phrases, and capitalizes the
// first letter.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x). The
// leading strips run to a fixpoint so one call always reaches a stable form.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.TrimSpace(s)

	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = repeatedTerminal.ReplaceAllStringFunc(s, func(m string) string {
		return m[:1]
	})

	// Stripping an auxiliary phrase can expose leading punctuation and vice
	// versa, so iterate until neither rule fires.
	for {
		prev := s
		s = leadingNonWord.ReplaceAllString(s, "")
		for _, re := range leadingAuxiliaries {
			s = re.ReplaceAllString(s, "")
		}
		if s == prev {
			break
		}
	}

	s = missingSpaceAfter.ReplaceAllString(s, "$1 $2")

	s = capitalizeFirst(s)
	return strings.TrimSpace(s)
}

func capitalizeFirst(s string) string {
	r := []rune(s)
	if len(r) > 0 && unicode.IsLower(r[0]) {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}
