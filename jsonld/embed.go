package jsonld

import (
	"encoding/json"
	"strings"

	"github.com/schemamark/schemamark"
)

// Embed renders schemas as HTML script blocks for direct copy/paste into a
// page <head>: one <script type="application/ld+json"> tag per schema,
// pretty-printed with 2-space indentation, separated by a blank line. This
// exact shape is an external format contract.
func Embed(schemas []schemamark.JSONLD) (string, error) {
	blocks := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		payload, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return "", schemamark.Errorf(schemamark.EINTERNAL, "encoding schema: %v", err)
		}
		var b strings.Builder
		b.WriteString("<script type=\"application/ld+json\">\n")
		b.Write(payload)
		b.WriteString("\n</script>")
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n"), nil
}
