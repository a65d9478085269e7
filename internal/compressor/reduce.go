package compressor

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// ReduceOptions controls the smart reduction stage.
type ReduceOptions struct {
	// TargetReduction is the fraction of words to remove when the adaptive
	// word-count rules do not apply. Zero means the 0.20 default.
	TargetReduction float64

	// PreserveQuestionStructure keeps the final word of a question so the
	// interrogative shape survives reduction.
	PreserveQuestionStructure bool
}

// DefaultTargetReduction is the removal fraction for mid-length prompts.
const DefaultTargetReduction = 0.20

var (
	separators = map[string]bool{":": true, ",": true, ";": true}

	duplicatePunct = regexp.MustCompile(`([.,!?;:])\s*([.,!?;:])`)

	// orphanLeading matches a short run of words stranded in front of a
	// recognized main-content opener after reduction.
	orphanLeading = regexp.MustCompile(`^(?:\w+'?\w*\s+){1,6}(One|The|That|Different|Sources|I)`)

	questionPrefixes = []string{
		"what", "how", "why", "when", "where", "who", "which",
	}
)

// Reduce removes the lowest-importance words from text up to an adaptive
// target fraction, preserving hard-kept words, token order, and separator
// punctuation. Input that is empty or all whitespace is returned unchanged.
func Reduce(text string, opts ReduceOptions) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	target := opts.TargetReduction
	if target == 0 {
		target = DefaultTargetReduction
	}
	switch wordCount := len(strings.Fields(text)); {
	case wordCount > 150:
		target = 0.18
	case wordCount > 80:
		target = 0.20
	case wordCount < 30:
		target = 0.15
	}

	scores := ScoreWords(text)
	tokens := Tokenize(text)

	type wordToken struct {
		index int
		text  string
	}
	var wordTokens []wordToken
	for i, tok := range tokens {
		if tok.IsWord {
			wordTokens = append(wordTokens, wordToken{index: i, text: tok.Text})
		}
	}
	if len(wordTokens) == 0 {
		return text
	}

	targetRemove := int(math.Ceil(float64(len(wordTokens)) * target))

	keep := make(map[int]bool)
	lastWordIndex := wordTokens[len(wordTokens)-1].index
	question := isQuestion(text)

	// Rank only the words that are not hard-preserved.
	type candidate struct {
		index int
		score float64
	}
	var candidates []candidate
	for _, wt := range wordTokens {
		pos := tokenPosition(wt.index, len(tokens))
		if HardPreserve(wt.text, pos) {
			keep[wt.index] = true
			continue
		}
		if question && opts.PreserveQuestionStructure && wt.index == lastWordIndex {
			keep[wt.index] = true
			continue
		}
		candidates = append(candidates, candidate{
			index: wt.index,
			score: scores.Score(wt.text),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	remove := make(map[int]bool)
	for i := 0; i < len(candidates) && i < targetRemove; i++ {
		if !keep[candidates[i].index] {
			remove[candidates[i].index] = true
		}
	}

	// Rebuild: kept words in original order; punctuation survives except
	// that a separator collapses when it would follow another separator or
	// open the text.
	var kept []string
	for i, tok := range tokens {
		if tok.IsWord {
			if !remove[i] {
				kept = append(kept, tok.Text)
			}
			continue
		}
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		if separators[tok.Text] {
			if len(kept) == 0 || separators[kept[len(kept)-1]] {
				continue
			}
		}
		kept = append(kept, tok.Text)
	}

	result := strings.Join(kept, " ")
	result = collapseSpace.ReplaceAllString(result, " ")
	result = spaceBeforePunct.ReplaceAllString(result, "$1")
	for {
		next := duplicatePunct.ReplaceAllString(result, "$1")
		if next == result {
			break
		}
		result = next
	}
	result = missingSpaceAfter.ReplaceAllString(result, "$1 $2")
	result = stripOrphanedLead(result)
	result = capitalizeFirst(result)
	return strings.TrimSpace(result)
}

// stripOrphanedLead removes a short run of leftover words in front of a
// main-content opener, unless doing so would drop a hard-preserved word.
func stripOrphanedLead(s string) string {
	loc := orphanLeading.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	openerStart := loc[2]
	for i, w := range strings.Fields(s[:openerStart]) {
		pos := PositionMiddle
		if i == 0 {
			pos = PositionFirst
		}
		if HardPreserve(w, pos) {
			return s
		}
	}
	return s[openerStart:]
}

// isQuestion reports whether text ends with a question mark or opens with a
// question word.
func isQuestion(text string) bool {
	if strings.HasSuffix(strings.TrimSpace(text), "?") {
		return true
	}
	lower := strings.ToLower(text)
	for _, q := range questionPrefixes {
		if strings.HasPrefix(lower, q) {
			return true
		}
	}
	return false
}

// tokenPosition classifies a token index into the leading 10%, trailing 10%,
// or middle of the token stream.
func tokenPosition(index, total int) WordPosition {
	switch {
	case float64(index) < float64(total)*0.1:
		return PositionFirst
	case float64(index) > float64(total)*0.9:
		return PositionLast
	default:
		return PositionMiddle
	}
}
