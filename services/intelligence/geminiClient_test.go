package intelligence

import (
	"context"
	"fmt"
	"testing"

	"vetchat/models"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "  ", "")
	require.Error(t, err)
}

func TestToGeminiHistory(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleSystem, Content: "ignored"},
		{Role: models.RoleUser, Content: "Is chocolate bad for dogs?"},
		{Role: models.RoleAssistant, Content: "Yes, it is toxic."},
		{Role: models.RoleUser, Content: "   "},
	}

	got := toGeminiHistory(history, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "user", got[0].Role)
	assert.Equal(t, []genai.Part{genai.Text("Is chocolate bad for dogs?")}, got[0].Parts)
	assert.Equal(t, "model", got[1].Role)
}

func TestToGeminiHistory_KeepsTail(t *testing.T) {
	var history []models.Message
	for i := 0; i < 15; i++ {
		history = append(history, models.Message{Role: models.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	got := toGeminiHistory(history, 10)
	require.Len(t, got, 10)
	assert.Equal(t, []genai.Part{genai.Text("m5")}, got[0].Parts)
	assert.Equal(t, []genai.Part{genai.Text("m14")}, got[9].Parts)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Cats need "), genai.Text("taurine. ")}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Cats need taurine.", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.Error(t, err)
}
