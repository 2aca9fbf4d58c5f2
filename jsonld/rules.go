// Package jsonld implements mechanical processing of Schema.org JSON-LD
// object graphs: type-aware property sanitization, structural validation,
// quality scoring, and HTML embed rendering.
package jsonld

// articleLikeTypes are the schema types on which articleSection and
// articleBody are valid properties.
var articleLikeTypes = map[string]bool{
	"Article":            true,
	"BlogPosting":        true,
	"NewsArticle":        true,
	"ScholarlyArticle":   true,
	"TechArticle":        true,
	"SocialMediaPosting": true,
	"Report":             true,
}

// creativeWorkTypes are the schema types on which wordCount is valid: the
// article-like set plus a few broader creative works.
var creativeWorkTypes = map[string]bool{
	"Article":            true,
	"BlogPosting":        true,
	"NewsArticle":        true,
	"ScholarlyArticle":   true,
	"TechArticle":        true,
	"SocialMediaPosting": true,
	"Report":             true,
	"CreativeWork":       true,
	"Book":               true,
	"Review":             true,
}

// IsPropertyValidForType reports whether a property is permitted on a
// schema of the given type. It exposes the same rule table the sanitizer
// enforces, for use by validators that must not mutate.
func IsPropertyValidForType(property, schemaType string) bool {
	switch property {
	case "speakable":
		// CSS-selector-based speakable specs are too failure-prone
		// against live markup to be worth retaining on any type.
		return false
	case "articleSection", "articleBody":
		return articleLikeTypes[schemaType]
	case "wordCount":
		return creativeWorkTypes[schemaType]
	default:
		return true
	}
}
