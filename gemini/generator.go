// Package gemini implements schemamark.Generator using Google Gemini.
// Prompts carry the page analysis as structured context; responses are
// requested in JSON mode and parsed into Schema.org JSON-LD objects.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schemamark/schemamark"
	"google.golang.org/genai"
)

// Model is the Gemini model used for schema generation.
const Model = "gemini-2.5-flash"

// maxContentTokens bounds the page-content portion of the prompt. Content
// beyond the budget is truncated; metadata always fits.
const maxContentTokens = 100_000

// Ensure Generator implements schemamark.Generator at compile time.
var _ schemamark.Generator = (*Generator)(nil)

// Generator implements schemamark.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	tokens schemamark.TokenCounter
}

// NewGenerator creates a new Generator. The token counter is optional;
// when nil, content is not budget-truncated before prompting.
func NewGenerator(client *genai.Client, tokens schemamark.TokenCounter) *Generator {
	return &Generator{client: client, tokens: tokens}
}

// Generate asks the model for candidate schemas for the analyzed page.
func (g *Generator) Generate(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) ([]schemamark.JSONLD, error) {
	if analysis == nil {
		return nil, schemamark.Errorf(schemamark.EINVALID, "analysis required")
	}
	if analysis.URL == "" {
		return nil, schemamark.Errorf(schemamark.EINVALID, "analysis URL required")
	}

	content, err := g.budgetContent(ctx, analysis.Content)
	if err != nil {
		return nil, err
	}

	prompt := BuildGeneratePrompt(analysis, content, opts)
	config := BuildConfig()

	result, err := g.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, schemamark.Errorf(schemamark.EINTERNAL, "gemini returned nil result")
	}

	return parseSchemas(result.Text())
}

// Refine asks the model to revise an existing schema set per the user's
// instructions.
func (g *Generator) Refine(ctx context.Context, url string, schemas []schemamark.JSONLD, instructions string) (*schemamark.RefineResult, error) {
	if len(schemas) == 0 {
		return nil, schemamark.Errorf(schemamark.EINVALID, "schemas required")
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, schemamark.Errorf(schemamark.EINVALID, "instructions required")
	}

	prompt, err := BuildRefinePrompt(url, schemas, instructions)
	if err != nil {
		return nil, err
	}
	config := BuildConfig()

	result, err := g.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, schemamark.Errorf(schemamark.EINTERNAL, "gemini returned nil result")
	}

	return parseRefineResult(result.Text())
}

// budgetContent truncates page content to the prompt token budget.
func (g *Generator) budgetContent(ctx context.Context, content string) (string, error) {
	if g.tokens == nil || content == "" {
		return content, nil
	}

	count, err := g.tokens.CountTokens(ctx, content)
	if err != nil {
		return "", err
	}
	if count <= maxContentTokens {
		return content, nil
	}

	// Proportional cut, slightly conservative since token density varies.
	keep := len(content) * maxContentTokens / count
	keep = keep * 9 / 10
	return content[:keep], nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Responses are requested in JSON mode so they parse without fence
// stripping.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a structured data expert generating Schema.org JSON-LD markup for web pages. Base the markup only on the page analysis provided. Every schema must include @context set to https://schema.org and a specific @type. Prefer accurate, verifiable values over speculative ones; omit properties you cannot support from the content.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildGeneratePrompt builds the user prompt for schema generation. The
// content argument is the (possibly truncated) page content.
func BuildGeneratePrompt(analysis *schemamark.ContentAnalysis, content string, opts schemamark.GenerateOptions) string {
	var sb strings.Builder

	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<url>%s</url>\n", analysis.URL)
	fmt.Fprintf(&sb, "<title>%s</title>\n", analysis.Title)
	fmt.Fprintf(&sb, "<description>%s</description>\n", analysis.Description)
	fmt.Fprintf(&sb, "<contentType>%s</contentType>\n", analysis.Metadata.ContentType)
	if analysis.Metadata.Language != "" {
		fmt.Fprintf(&sb, "<language>%s</language>\n", analysis.Metadata.Language)
	}
	if analysis.Metadata.Author != nil {
		fmt.Fprintf(&sb, "<author>%s</author>\n", analysis.Metadata.Author.Name)
	}
	if analysis.Metadata.PublishDate != nil {
		fmt.Fprintf(&sb, "<datePublished>%s</datePublished>\n", *analysis.Metadata.PublishDate)
	}
	if analysis.Metadata.ModifiedDate != nil {
		fmt.Fprintf(&sb, "<dateModified>%s</dateModified>\n", *analysis.Metadata.ModifiedDate)
	}
	if analysis.Metadata.Business != nil {
		fmt.Fprintf(&sb, "<siteName>%s</siteName>\n", analysis.Metadata.Business.Name)
	}
	for _, img := range analysis.Metadata.Images {
		fmt.Fprintf(&sb, "<image>%s</image>\n", img)
	}
	if len(analysis.Metadata.Keywords) > 0 {
		fmt.Fprintf(&sb, "<keywords>%s</keywords>\n", strings.Join(analysis.Metadata.Keywords, ", "))
	}
	for _, item := range analysis.Metadata.FAQ {
		sb.WriteString("<faq>\n")
		fmt.Fprintf(&sb, "<question>%s</question>\n", item.Question)
		fmt.Fprintf(&sb, "<answer>%s</answer>\n", item.Answer)
		sb.WriteString("</faq>\n")
	}
	fmt.Fprintf(&sb, "<content>%s</content>\n", content)
	sb.WriteString("</page>\n\n")

	if len(opts.SchemaTypes) > 0 {
		fmt.Fprintf(&sb, "Generate JSON-LD schemas of these types: %s.\n", strings.Join(opts.SchemaTypes, ", "))
	} else {
		sb.WriteString("Generate the JSON-LD schemas best suited to this page.\n")
	}
	sb.WriteString("Respond with a JSON array of schema objects.")

	return sb.String()
}

// BuildRefinePrompt builds the user prompt for schema refinement.
func BuildRefinePrompt(url string, schemas []schemamark.JSONLD, instructions string) (string, error) {
	current, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return "", schemamark.Errorf(schemamark.EINVALID, "failed to encode schemas: %v", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<url>%s</url>\n", url)
	sb.WriteString("<schemas>\n")
	sb.Write(current)
	sb.WriteString("\n</schemas>\n\n")
	fmt.Fprintf(&sb, "Revise the schemas per these instructions: %s\n", instructions)
	sb.WriteString(`Respond with a JSON object: {"schemas": [revised schema objects], "changes": [human-readable descriptions of each change made]}.`)
	return sb.String(), nil
}

// parseSchemas decodes the model response into JSON-LD objects. Both a
// bare array and a single object are accepted.
func parseSchemas(text string) ([]schemamark.JSONLD, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var many []map[string]any
	if err := json.Unmarshal([]byte(text), &many); err == nil {
		schemas := make([]schemamark.JSONLD, 0, len(many))
		for _, m := range many {
			schemas = append(schemas, schemamark.JSONLD(m))
		}
		return schemas, nil
	}

	var single map[string]any
	if err := json.Unmarshal([]byte(text), &single); err == nil {
		return []schemamark.JSONLD{schemamark.JSONLD(single)}, nil
	}

	return nil, schemamark.Errorf(schemamark.EINTERNAL, "model returned unparseable schema payload")
}

// parseRefineResult decodes the refinement response.
func parseRefineResult(text string) (*schemamark.RefineResult, error) {
	var payload struct {
		Schemas []map[string]any `json:"schemas"`
		Changes []string         `json:"changes"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return nil, schemamark.Errorf(schemamark.EINTERNAL, "model returned unparseable refine payload: %v", err)
	}

	result := &schemamark.RefineResult{Changes: payload.Changes}
	for _, m := range payload.Schemas {
		result.Schemas = append(result.Schemas, schemamark.JSONLD(m))
	}
	return result, nil
}
