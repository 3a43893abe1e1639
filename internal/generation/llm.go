package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/ats-probe/internal/types"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

const candidatePrompt = `Generate a realistic software-engineering candidate record as JSON with this exact shape:
{"name": string, "email": string, "phone": string,
 "experience": [{"company": string, "role": string, "start_date": "MM/YYYY", "end_date": "MM/YYYY", "bullets": [string]}],
 "education": [{"school": string, "degree": string, "field": string, "start_date": "MM/YYYY", "end_date": "MM/YYYY"}],
 "skills": [string]}
Use 2-3 experience entries with 2-3 bullets each, 1 education entry, and 4-6 skills.
Return only the JSON object.`

// LLMGenerator generates candidate records with Gemini. It is optional:
// callers without an API key use the seeded Generate instead.
type LLMGenerator struct {
	client *genai.Client
	model  string
}

// NewLLMGenerator creates a Gemini-backed candidate generator
func NewLLMGenerator(ctx context.Context, apiKey, model string) (*LLMGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &LLMGenerator{client: client, model: model}, nil
}

// Generate produces a candidate record and reports the model and token
// usage so telemetry can carry them.
func (g *LLMGenerator) Generate(ctx context.Context) (*Result, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(candidatePrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate candidate record: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	var rec types.CandidateRecord
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse generated record: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("generated record is invalid: %w", err)
	}

	result := &Result{Record: &rec, Model: g.model}
	if resp.UsageMetadata != nil {
		result.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	return result, nil
}

// Close releases resources held by the client
func (g *LLMGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
