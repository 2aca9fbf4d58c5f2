package jsonld

import (
	"math"

	"github.com/schemamark/schemamark"
)

// Score weights for the overall 0-100 composite.
const (
	weightRequired    = 0.35
	weightRecommended = 0.25
	weightAdvanced    = 0.25
	weightContent     = 0.15
)

// recommendedProperties is the fixed checklist behind the recommended
// sub-score.
var recommendedProperties = []string{
	"description", "url", "image", "author", "publisher",
	"datePublished", "dateModified",
}

// advancedProperties is the fixed checklist behind the advanced sub-score.
// It still lists speakable even though the sanitizer strips it; scoring
// runs after sanitization, so in practice the attainable maximum is 11/12.
var advancedProperties = []string{
	"keywords", "about", "mentions", "sameAs", "speakable", "inLanguage",
	"articleSection", "wordCount", "isPartOf", "mainEntityOfPage",
	"aggregateRating", "review",
}

// CalculateScore computes the weighted quality score for a schema set.
//
// Only the first schema in the list is scored; multi-schema pages are not
// yet holistically scored. An empty list scores zero.
func CalculateScore(schemas []schemamark.JSONLD) schemamark.QualityScore {
	if len(schemas) == 0 {
		return schemamark.QualityScore{}
	}
	schema := schemas[0]

	breakdown := schemamark.ScoreBreakdown{
		RequiredProperties:    requiredScore(schema),
		RecommendedProperties: checklistScore(schema, recommendedProperties),
		AdvancedAEOFeatures:   checklistScore(schema, advancedProperties),
		ContentQuality:        contentQualityScore(schema),
	}

	overall := math.Round(
		weightRequired*float64(breakdown.RequiredProperties) +
			weightRecommended*float64(breakdown.RecommendedProperties) +
			weightAdvanced*float64(breakdown.AdvancedAEOFeatures) +
			weightContent*float64(breakdown.ContentQuality))

	return schemamark.QualityScore{
		OverallScore: int(overall),
		Breakdown:    breakdown,
	}
}

// requiredScore awards presence of @context, @type, and name-or-headline.
// The name/headline criterion is a single OR, not weighted per property.
func requiredScore(schema schemamark.JSONLD) int {
	score := 0
	if present(schema, "@context") {
		score += 33
	}
	if present(schema, "@type") {
		score += 33
	}
	if present(schema, "name") || present(schema, "headline") {
		score += 34
	}
	return score
}

// checklistScore returns round(100 * present / len(list)).
func checklistScore(schema schemamark.JSONLD, list []string) int {
	count := 0
	for _, prop := range list {
		if present(schema, prop) {
			count++
		}
	}
	return int(math.Round(100 * float64(count) / float64(len(list))))
}

// contentQualityScore awards additive points for content fidelity signals,
// capped at 100.
func contentQualityScore(schema schemamark.JSONLD) int {
	score := 0

	if desc, ok := schema["description"].(string); ok && desc != "" {
		if n := len(desc); n >= 50 && n <= 160 {
			score += 20
		} else {
			score += 10
		}
	}

	if author, ok := asObject(schema["author"]); ok {
		score += 15
		if present(schemamark.JSONLD(author), "sameAs") {
			score += 10
		}
	}

	if publisher, ok := asObject(schema["publisher"]); ok {
		score += 15
		if present(schemamark.JSONLD(publisher), "logo") {
			score += 10
		}
	}

	if present(schema, "image") {
		score += 10
		switch schema["image"].(type) {
		case map[string]any, schemamark.JSONLD, []any:
			score += 10
		}
	}

	switch kw := schema["keywords"].(type) {
	case []any:
		if len(kw) > 0 {
			score += 10
		}
	case string:
		if kw != "" {
			score += 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// present reports whether a property exists with a non-empty value.
func present(schema schemamark.JSONLD, key string) bool {
	v, ok := schema[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	if arr, ok := v.([]any); ok {
		return len(arr) > 0
	}
	return true
}
