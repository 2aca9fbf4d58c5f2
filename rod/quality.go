package rod

import (
	"strings"

	"github.com/schemamark/schemamark"
)

// Quality score weights. Each signal is independently bounded so the total
// cannot exceed 1.0 before the boilerplate penalty.
const (
	lengthWeight    = 0.3
	diversityWeight = 0.3
	structureWeight = 0.1 // per structural signal, max 0.4
	lengthTarget    = 2000
	maxPenalty      = 0.5
)

// boilerplateKeywords flag cookie/consent/privacy boilerplate in a text
// sample. A sample dominated by these is likely a banner-obscured capture.
var boilerplateKeywords = []string{
	"cookie", "cookies", "consent", "gdpr",
	"privacy policy", "accept all", "we use cookies",
}

// Score rates an extracted text sample in [0, 1] for use as a tie-breaker
// across multiple capture attempts. It rewards length, lexical diversity,
// and structural richness of the live DOM, and penalizes consent-banner
// boilerplate. The score is not persisted and is never user-visible.
func Score(content string, stats schemamark.PageStats) float64 {
	words := strings.Fields(content)
	totalWords := len(words)

	score := 0.0

	// Length: full credit at lengthTarget characters.
	lengthRatio := float64(len(content)) / lengthTarget
	if lengthRatio > 1 {
		lengthRatio = 1
	}
	score += lengthRatio * lengthWeight

	// Lexical diversity: unique / total words.
	if totalWords > 0 {
		unique := make(map[string]struct{}, totalWords)
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		diversity := float64(len(unique)) / float64(totalWords)
		if diversity > 1 {
			diversity = 1
		}
		score += diversity * diversityWeight
	}

	// Structural richness of the rendered DOM.
	if stats.Headings > 0 {
		score += structureWeight
	}
	if stats.Paragraphs > 2 {
		score += structureWeight
	}
	if stats.Images > 0 {
		score += structureWeight
	}
	if stats.Links > 2 {
		score += structureWeight
	}

	// Boilerplate penalty: keyword density scaled x10, capped.
	if totalWords > 0 {
		lower := strings.ToLower(content)
		occurrences := 0
		for _, kw := range boilerplateKeywords {
			occurrences += strings.Count(lower, kw)
		}
		penalty := float64(occurrences) / float64(totalWords) * 10
		if penalty > maxPenalty {
			penalty = maxPenalty
		}
		score -= penalty
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
