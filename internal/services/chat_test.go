package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campuschat-backend/internal/models"
	"campuschat-backend/internal/repository"
)

type stubChatRepo struct {
	chat        *models.Chat
	createErr   error
	createdFor  []int64
	deleteErrs  []error
	deleteCalls int
	results     []models.SearchResult
	searched    bool
}

func (s *stubChatRepo) Create(ctx context.Context, userID int64) (*models.Chat, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createdFor = append(s.createdFor, userID)
	return s.chat, nil
}

func (s *stubChatRepo) SoftDelete(ctx context.Context, chatID int64) error {
	s.deleteCalls++
	if s.deleteCalls <= len(s.deleteErrs) {
		return s.deleteErrs[s.deleteCalls-1]
	}
	return nil
}

func (s *stubChatRepo) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	s.searched = true
	return s.results, nil
}

type stubMessageRepo struct {
	stored    []*models.Message
	createErr error
	base      time.Time
}

func (s *stubMessageRepo) Create(ctx context.Context, m *models.Message) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.base.IsZero() {
		s.base = time.Now()
	}
	m.ID = int64(len(s.stored) + 1)
	m.CreatedAt = s.base.Add(time.Duration(len(s.stored)) * time.Second)
	s.stored = append(s.stored, m)
	return nil
}

func (s *stubMessageRepo) ListByChat(ctx context.Context, chatID int64) ([]models.Message, error) {
	out := make([]models.Message, 0)
	for _, m := range s.stored {
		if m.ChatID == chatID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type stubCompletion struct {
	reply       string
	err         error
	gotHistory  []models.Message
	hadDeadline bool
}

func (s *stubCompletion) Complete(ctx context.Context, history []models.Message) (string, error) {
	_, s.hadDeadline = ctx.Deadline()
	s.gotHistory = history
	return s.reply, s.err
}

func TestSendMessage_FullExchange(t *testing.T) {
	chats := &stubChatRepo{}
	messages := &stubMessageRepo{}
	completion := &stubCompletion{reply: "Hi there"}
	svc := NewChatService(chats, messages, completion, time.Minute)

	reply, err := svc.SendMessage(context.Background(), 42, 7, "Hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("Expected reply 'Hi there', got %q", reply)
	}

	if len(messages.stored) != 2 {
		t.Fatalf("Expected 2 stored messages, got %d", len(messages.stored))
	}

	student := messages.stored[0]
	if student.SenderType != models.SenderTypeStudent || student.SenderID != 7 || student.Content != "Hello" {
		t.Errorf("Unexpected student turn: %+v", student)
	}

	ai := messages.stored[1]
	if ai.SenderType != models.SenderTypeAI || ai.SenderID != models.AIAuthorID || ai.Content != "Hi there" {
		t.Errorf("Unexpected ai turn: %+v", ai)
	}

	// the completion saw the history as it stood after the student turn
	if len(completion.gotHistory) != 1 || completion.gotHistory[0].Content != "Hello" {
		t.Errorf("Unexpected completion history: %+v", completion.gotHistory)
	}
	if !completion.hadDeadline {
		t.Error("Expected the completion call to carry a deadline")
	}

	views, err := svc.GetMessages(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(views))
	}
	if views[0].SenderType != models.SenderTypeStudent || views[1].SenderType != models.SenderTypeAI {
		t.Errorf("Messages out of order: %+v", views)
	}
	if !views[0].CreatedAt.Before(views[1].CreatedAt) {
		t.Error("Expected ascending creation-time order")
	}
}

func TestSendMessage_EmptyReplyKeepsStudentTurn(t *testing.T) {
	messages := &stubMessageRepo{}
	completion := &stubCompletion{err: ErrEmptyReply}
	svc := NewChatService(&stubChatRepo{}, messages, completion, time.Minute)

	_, err := svc.SendMessage(context.Background(), 42, 7, "Hello")
	if err == nil {
		t.Fatal("Expected an error for an empty reply")
	}

	if len(messages.stored) != 1 {
		t.Fatalf("Expected only the student turn to persist, got %d messages", len(messages.stored))
	}
	if messages.stored[0].SenderType != models.SenderTypeStudent {
		t.Errorf("Unexpected surviving message: %+v", messages.stored[0])
	}
}

func TestSendMessage_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		chatID  int64
		userID  int64
		message string
	}{
		{"missing chat id", 0, 7, "Hello"},
		{"missing user id", 42, 0, "Hello"},
		{"missing message", 42, 7, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			messages := &stubMessageRepo{}
			svc := NewChatService(&stubChatRepo{}, messages, &stubCompletion{}, time.Minute)

			_, err := svc.SendMessage(context.Background(), tc.chatID, tc.userID, tc.message)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if len(messages.stored) != 0 {
				t.Errorf("Expected no side effect, got %d messages", len(messages.stored))
			}
		})
	}
}

func TestCreateChat(t *testing.T) {
	chats := &stubChatRepo{chat: &models.Chat{ID: 42, UserID: 7, CreatedAt: time.Now()}}
	svc := NewChatService(chats, &stubMessageRepo{}, &stubCompletion{}, time.Minute)

	summary, err := svc.CreateChat(context.Background(), 7)
	if err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}
	if summary.ID != 42 {
		t.Errorf("Expected chat id 42, got %d", summary.ID)
	}
	if summary.Messages == nil || len(summary.Messages) != 0 {
		t.Errorf("Expected an empty messages placeholder, got %+v", summary.Messages)
	}
}

func TestCreateChat_MissingUserID(t *testing.T) {
	chats := &stubChatRepo{}
	svc := NewChatService(chats, &stubMessageRepo{}, &stubCompletion{}, time.Minute)

	_, err := svc.CreateChat(context.Background(), 0)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(chats.createdFor) != 0 {
		t.Error("Expected no chat row")
	}
}

func TestDeleteChat_Twice(t *testing.T) {
	chats := &stubChatRepo{deleteErrs: []error{nil, repository.ErrNotFound}}
	svc := NewChatService(chats, &stubMessageRepo{}, &stubCompletion{}, time.Minute)

	if err := svc.DeleteChat(context.Background(), 42); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}

	err := svc.DeleteChat(context.Background(), 42)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError on second delete, got %v", err)
	}
	if nf.Message != "Failed to delete chat" {
		t.Errorf("Unexpected message: %q", nf.Message)
	}
}

func TestSearchChats_EmptyQuery(t *testing.T) {
	tests := []string{"", "   ", "\t\n"}

	for _, query := range tests {
		chats := &stubChatRepo{}
		svc := NewChatService(chats, &stubMessageRepo{}, &stubCompletion{}, time.Minute)

		_, err := svc.SearchChats(context.Background(), query)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Expected ValidationError for %q, got %v", query, err)
		}
		if chats.searched {
			t.Errorf("Storage was touched for query %q", query)
		}
	}
}

func TestGetMessages_MissingChatID(t *testing.T) {
	svc := NewChatService(&stubChatRepo{}, &stubMessageRepo{}, &stubCompletion{}, time.Minute)

	_, err := svc.GetMessages(context.Background(), 0)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}
