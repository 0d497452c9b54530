package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"

	"campuschat-backend/internal/models"
)

func TestBuildHistory_RoleMapping(t *testing.T) {
	history := []models.Message{
		{SenderType: models.SenderTypeStudent, Content: "Hello"},
		{SenderType: models.SenderTypeAI, Content: "Hi there"},
		{SenderType: "unknown", Content: "something"},
	}

	contents := buildHistory(history)
	if len(contents) != 3 {
		t.Fatalf("Expected 3 contents, got %d", len(contents))
	}

	wantRoles := []string{"user", "model", "model"}
	for i, c := range contents {
		if c.Role != wantRoles[i] {
			t.Errorf("Content %d: expected role %q, got %q", i, wantRoles[i], c.Role)
		}
	}

	if txt, ok := contents[0].Parts[0].(genai.Text); !ok || string(txt) != "Hello" {
		t.Errorf("Unexpected first part: %v", contents[0].Parts[0])
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hi "), genai.Text("there")}}},
		},
	}

	if got := extractText(resp); got != "Hi there" {
		t.Errorf("Expected 'Hi there', got %q", got)
	}
}

func TestExtractText_NoCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{}
	if got := extractText(resp); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
