package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetchat/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel      = "gemini-2.5-flash"
	temperature       = 0.7
	maxOutputTokens   = 1024
	maxHistoryEntries = 10
)

// Generator produces a free-text answer for a message outside the booking flow.
type Generator interface {
	Generate(ctx context.Context, message string, history []models.Message) (string, error)
}

// GeminiGenerator answers with Gemini under the veterinary system prompt.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelID string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("intelligence: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("intelligence: failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelID)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SystemInstruction = genai.NewUserContent(genai.Text(VeterinarySystemPrompt))

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate sends message with the trailing history as chat context.
// history must not already contain message.
func (g *GeminiGenerator) Generate(ctx context.Context, message string, history []models.Message) (string, error) {
	cs := g.model.StartChat()
	cs.History = toGeminiHistory(history, maxHistoryEntries)

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return responseText(resp)
}

func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// toGeminiHistory keeps the last limit user/assistant messages in Gemini roles.
func toGeminiHistory(history []models.Message, limit int) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range history {
		text := strings.TrimSpace(msg.Content)
		if text == "" || msg.Role == models.RoleSystem {
			continue
		}
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(text)},
		})
	}
	if limit > 0 && len(contents) > limit {
		contents = contents[len(contents)-limit:]
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini returned empty content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
