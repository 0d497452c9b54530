package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"campuschat-backend/internal/models"
)

const (
	defaultModelName    = "gemini-1.5-flash-latest"
	defaultSystemPrompt = "You are a helpful assistant."
)

// ErrEmptyReply is returned when the completion service comes back without
// any reply text.
var ErrEmptyReply = errors.New("no response from completion service")

type CompletionService struct {
	client       *genai.Client
	modelName    string
	systemPrompt string
}

func NewCompletionService(apiKey, modelName, systemPrompt string) (*CompletionService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = defaultModelName
	}
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	return &CompletionService{
		client:       client,
		modelName:    modelName,
		systemPrompt: systemPrompt,
	}, nil
}

func (s *CompletionService) Close() {
	s.client.Close()
}

// Complete sends the ordered chat history to Gemini and returns the next
// assistant turn. The last history entry must be the student's message.
func (s *CompletionService) Complete(ctx context.Context, history []models.Message) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("chat history is empty")
	}

	contents := buildHistory(history)

	last := contents[len(contents)-1]
	if last.Role != "user" {
		return "", fmt.Errorf("last message in history is not from the user")
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(s.systemPrompt)},
	}

	session := model.StartChat()
	session.History = contents[:len(contents)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	reply := strings.TrimSpace(extractText(resp))
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// buildHistory maps stored sender types onto the Gemini role vocabulary:
// "student" turns become "user", everything else is the model.
func buildHistory(history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "model"
		if m.SenderType == models.SenderTypeStudent {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return contents
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
