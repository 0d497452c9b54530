package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"campuschat-backend/internal/models"
	"campuschat-backend/internal/repository"
)

type chatRepository interface {
	Create(ctx context.Context, userID int64) (*models.Chat, error)
	SoftDelete(ctx context.Context, chatID int64) error
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

type messageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	ListByChat(ctx context.Context, chatID int64) ([]models.Message, error)
}

type completionClient interface {
	Complete(ctx context.Context, history []models.Message) (string, error)
}

type ChatService struct {
	chats             chatRepository
	messages          messageRepository
	completions       completionClient
	completionTimeout time.Duration
}

func NewChatService(chats chatRepository, messages messageRepository, completions completionClient, completionTimeout time.Duration) *ChatService {
	return &ChatService{
		chats:             chats,
		messages:          messages,
		completions:       completions,
		completionTimeout: completionTimeout,
	}
}

func (s *ChatService) CreateChat(ctx context.Context, userID int64) (*models.ChatSummary, error) {
	if userID == 0 {
		return nil, &ValidationError{Message: "User ID is required to create a chat"}
	}

	chat, err := s.chats.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.ChatSummary{
		ID:        chat.ID,
		CreatedAt: chat.CreatedAt,
		Messages:  []models.MessageView{},
	}, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, chatID int64) error {
	if chatID == 0 {
		return &ValidationError{Message: "Chat ID is required"}
	}

	if err := s.chats.SoftDelete(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Message: "Failed to delete chat"}
		}
		return err
	}
	return nil
}

func (s *ChatService) GetMessages(ctx context.Context, chatID int64) ([]models.MessageView, error) {
	if chatID == 0 {
		return nil, &ValidationError{Message: "Chat ID is required."}
	}

	messages, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	views := make([]models.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messages[i].View())
	}
	return views, nil
}

// SendMessage persists the student's turn, replays the chat history into the
// completion service, persists the reply as an "ai" turn under the fixed AI
// author id, and returns the reply text. The student's turn is never rolled
// back when a later step fails.
func (s *ChatService) SendMessage(ctx context.Context, chatID, userID int64, content string) (string, error) {
	if chatID == 0 || userID == 0 || content == "" {
		return "", &ValidationError{Message: "Chat ID, User ID, and message content are required."}
	}

	userMsg := &models.Message{
		ChatID:     chatID,
		SenderID:   userID,
		SenderType: models.SenderTypeStudent,
		Content:    content,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return "", err
	}

	history, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return "", err
	}

	// A slow or hung completion service must not stall the request forever.
	cctx, cancel := context.WithTimeout(ctx, s.completionTimeout)
	defer cancel()

	reply, err := s.completions.Complete(cctx, history)
	if err != nil {
		return "", err
	}

	aiMsg := &models.Message{
		ChatID:     chatID,
		SenderID:   models.AIAuthorID,
		SenderType: models.SenderTypeAI,
		Content:    reply,
	}
	if err := s.messages.Create(ctx, aiMsg); err != nil {
		return "", err
	}

	return reply, nil
}

func (s *ChatService) SearchChats(ctx context.Context, query string) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Message: "Search query cannot be empty."}
	}
	return s.chats.Search(ctx, query)
}
