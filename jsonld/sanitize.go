package jsonld

import (
	"fmt"
	"sort"

	"github.com/schemamark/schemamark"
)

// Sanitize walks a generated JSON-LD object graph and strips properties
// that are invalid for each object's declared @type. The schema is mutated
// in place; every removal is reported with a fully-addressable path.
//
// Sanitize is deterministic and idempotent: a second pass over its output
// removes nothing.
func Sanitize(schema schemamark.JSONLD) schemamark.SanitizationResult {
	removed := sanitizeNode(map[string]any(schema), "")
	return schemamark.SanitizationResult{
		Schema:            schema,
		RemovedProperties: removed,
		WasModified:       len(removed) > 0,
	}
}

// sanitizeNode applies the property rules to one object and recurses into
// nested typed objects and arrays. Removal paths are prefixed with the
// parent key (and array index where applicable).
func sanitizeNode(node map[string]any, prefix string) []schemamark.RemovedProperty {
	// Without a declared type there is nothing to validate against.
	if t, _ := node["@type"].(string); t == "" {
		return nil
	}
	schemaType, _ := node["@type"].(string)

	var removed []schemamark.RemovedProperty

	// Sorted key order keeps removal reports deterministic.
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch {
		case key == "speakable":
			removed = append(removed, schemamark.RemovedProperty{
				Code:         schemamark.RemovalSpeakable,
				Property:     path,
				Message:      "speakable is removed from all schemas: selector-based speakable markup breaks too easily against live pages",
				RemovedValue: node[key],
			})
			delete(node, key)

		case (key == "articleSection" || key == "articleBody") && !articleLikeTypes[schemaType]:
			removed = append(removed, schemamark.RemovedProperty{
				Code:         schemamark.RemovalInvalidProperty,
				Property:     path,
				Message:      fmt.Sprintf("%s is not valid for type %s", key, schemaType),
				RemovedValue: node[key],
			})
			delete(node, key)

		case key == "wordCount" && !creativeWorkTypes[schemaType]:
			removed = append(removed, schemamark.RemovedProperty{
				Code:         schemamark.RemovalInvalidProperty,
				Property:     path,
				Message:      fmt.Sprintf("wordCount is not valid for type %s", schemaType),
				RemovedValue: node[key],
			})
			delete(node, key)

		default:
			removed = append(removed, sanitizeChild(node[key], path)...)
		}
	}

	return removed
}

// sanitizeChild recurses into nested typed objects and arrays of typed
// objects. Untyped values are left alone.
func sanitizeChild(value any, path string) []schemamark.RemovedProperty {
	if obj, ok := asObject(value); ok {
		return sanitizeNode(obj, path)
	}

	arr, ok := value.([]any)
	if !ok {
		return nil
	}

	var removed []schemamark.RemovedProperty
	for i, el := range arr {
		if obj, ok := asObject(el); ok {
			removed = append(removed, sanitizeNode(obj, fmt.Sprintf("%s[%d]", path, i))...)
		}
	}
	return removed
}

// asObject normalizes the two map shapes that appear in a decoded schema
// graph (plain maps from encoding/json and the named JSONLD type).
func asObject(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case schemamark.JSONLD:
		return map[string]any(v), true
	default:
		return nil, false
	}
}
