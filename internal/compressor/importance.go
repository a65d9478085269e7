package compressor

import (
	"regexp"
	"strings"
	"unicode"
)

// Word classes used by the scorer and the hard-preserve predicate. These are
// fixed linguistic sets, not configuration.
var (
	// removableWords can usually be dropped without losing core meaning:
	// articles, weak modifiers, list prepositions, impersonal pronouns, and
	// politeness markers.
	removableWords = newSet(
		"a", "an", "the",
		"very", "quite", "rather", "somewhat", "fairly",
		"on", "in", "at", "of",
		"it", "this", "that",
		"please", "kindly",
	)

	// imperativeVerbs open a directive prompt; a leading one carries the
	// whole instruction.
	imperativeVerbs = newSet(
		"explain", "summarize", "outline", "list", "compare", "draft",
		"provide", "classify", "rewrite", "convert", "design", "suggest",
		"analyze", "describe", "identify", "give", "produce",
	)

	// structureWords introduce output-shaping instructions.
	structureWords = newSet("cover", "include", "output", "format")

	questionWords = newSet(
		"what", "how", "why", "when", "where", "who", "which", "whose",
	)

	negationWords = newSet(
		"not", "no", "never", "none", "neither", "nobody", "nothing",
	)

	// technicalSuffixes signal domain nouns worth keeping.
	technicalSuffixes = []string{
		"tion", "ment", "ness", "ity", "ance", "ence", "ization",
	}
)

var (
	capitalizedWord = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*\b`)
	pureDigits      = regexp.MustCompile(`^\d+$`)
	digitsLetters   = regexp.MustCompile(`^\d+[a-z]+$`)
)

// WordImportance maps a lowercase word form to a keep-score in [0,1].
// Higher means keep. Built per input text and discarded after reduction.
type WordImportance map[string]float64

// Score returns the importance of word, defaulting to 0.5 for words the
// scorer never saw.
func (w WordImportance) Score(word string) float64 {
	if s, ok := w[strings.ToLower(word)]; ok {
		return s
	}
	return 0.5
}

// ScoreWords computes a keep-score for every unique word in text.
//
// Every word starts at a 0.7 baseline. The removable set forces 0.2; all
// later boosts raise the score via max so a stronger signal always wins:
// leading imperative verb 1.0, structural keywords 0.95, capitalized in the
// original text >= 0.9, numeric tokens 0.95, technical suffixes >= 0.85, the
// first six words >= 0.85 and repeated words >= 0.9 (neither applied to
// removable words).
func ScoreWords(text string) WordImportance {
	words := Words(text)
	scores := make(WordImportance, len(words))

	for _, w := range words {
		scores[w] = 0.7
	}
	for w := range removableWords {
		if _, ok := scores[w]; ok {
			scores[w] = 0.2
		}
	}

	if len(words) > 0 && imperativeVerbs[words[0]] {
		scores.boost(words[0], 1.0)
	}
	for w := range structureWords {
		if _, ok := scores[w]; ok {
			scores.boost(w, 0.95)
		}
	}
	for _, m := range capitalizedWord.FindAllString(text, -1) {
		w := strings.ToLower(m)
		if _, ok := scores[w]; ok {
			scores.boost(w, 0.9)
		}
	}
	for _, w := range words {
		if pureDigits.MatchString(w) || digitsLetters.MatchString(w) {
			scores.boost(w, 0.95)
		}
	}
	for _, w := range words {
		for _, suf := range technicalSuffixes {
			if strings.HasSuffix(w, suf) {
				scores.boost(w, 0.85)
				break
			}
		}
	}
	for i, w := range words {
		if i >= 6 {
			break
		}
		if !removableWords[w] {
			scores.boost(w, 0.85)
		}
	}

	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	for w, n := range freq {
		if n >= 2 && !removableWords[w] {
			scores.boost(w, 0.9)
		}
	}

	return scores
}

func (w WordImportance) boost(word string, score float64) {
	if score > w[word] {
		w[word] = score
	}
}

// WordPosition describes where a word sits within the text, for the
// hard-preserve predicate.
type WordPosition int

const (
	PositionFirst WordPosition = iota
	PositionMiddle
	PositionLast
)

// HardPreserve reports whether word must survive reduction regardless of its
// importance score: question words, negations, pure numbers, capitalized
// mid-sentence terms, acronyms, tokens carrying path/identifier characters,
// structural keywords, and a leading imperative verb.
func HardPreserve(word string, pos WordPosition) bool {
	if word == "" {
		return false
	}
	lower := strings.ToLower(word)

	if questionWords[lower] {
		return true
	}
	if pos == PositionFirst && imperativeVerbs[lower] {
		return true
	}
	if structureWords[lower] {
		return true
	}
	if negationWords[lower] || strings.HasSuffix(lower, "n't") {
		return true
	}
	if pureDigits.MatchString(word) {
		return true
	}
	if pos == PositionMiddle && startsUpper(word) {
		return true
	}
	if len(word) >= 2 && isAllUpper(word) {
		return true
	}
	return strings.ContainsAny(word, "_-@./")
}

func newSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

// isAllUpper reports whether word contains at least one letter and every
// letter is uppercase (acronym shape, digits and apostrophes allowed).
func isAllUpper(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
