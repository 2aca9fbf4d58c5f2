package jsonld

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schemamark/schemamark"
)

// Ensure Validator implements schemamark.Validator at compile time.
var _ schemamark.Validator = (*Validator)(nil)

// Validator checks required and structural correctness of a schema. Its
// property rules come from the same tables the sanitizer enforces.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports structural correctness of one schema. A schema is valid
// when it declares a schema.org @context, a @type, and a name or headline.
// Missing recommended properties and type-invalid properties produce
// warnings, not errors.
func (v *Validator) Validate(schema schemamark.JSONLD) schemamark.ValidationResult {
	result := schemamark.ValidationResult{Schema: schema}

	ctx := schema.Context()
	switch {
	case ctx == "":
		result.Errors = append(result.Errors, "missing @context")
	case !strings.Contains(ctx, "schema.org"):
		result.Errors = append(result.Errors, fmt.Sprintf("@context %q is not a schema.org context", ctx))
	}

	schemaType := schema.Type()
	if schemaType == "" {
		result.Errors = append(result.Errors, "missing @type")
	}

	if !present(schema, "name") && !present(schema, "headline") {
		result.Errors = append(result.Errors, "missing name or headline")
	}

	for _, prop := range recommendedProperties {
		if !present(schema, prop) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("recommended property %q is missing", prop))
		}
	}

	if schemaType != "" {
		keys := make([]string, 0, len(schema))
		for k := range schema {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !IsPropertyValidForType(k, schemaType) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("property %q is not valid for type %s", k, schemaType))
			}
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
