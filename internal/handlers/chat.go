package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"campuschat-backend/internal/models"
)

type chatService interface {
	CreateChat(ctx context.Context, userID int64) (*models.ChatSummary, error)
	DeleteChat(ctx context.Context, chatID int64) error
	GetMessages(ctx context.Context, chatID int64) ([]models.MessageView, error)
	SendMessage(ctx context.Context, chatID, userID int64, message string) (string, error)
	SearchChats(ctx context.Context, query string) ([]models.SearchResult, error)
}

type ChatHandler struct {
	chats chatService
}

func NewChatHandler(chats chatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "User ID is required to create a chat")
		return
	}

	chat, err := h.chats.CreateChat(r.Context(), req.UserID)
	if err != nil {
		handleServiceError(w, err, "An error occurred while creating the chat")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"chat": chat,
	})
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Chat ID is required")
		return
	}

	if err := h.chats.DeleteChat(r.Context(), req.ChatID); err != nil {
		handleServiceError(w, err, "An error occurred while deleting the chat")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Chat marked as deleted successfully",
	})
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	var req models.GetMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Chat ID is required.")
		return
	}

	messages, err := h.chats.GetMessages(r.Context(), req.ChatID)
	if err != nil {
		handleServiceError(w, err, "An error occurred while fetching messages.")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"messages": messages,
	})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Chat ID, User ID, and message content are required.")
		return
	}

	reply, err := h.chats.SendMessage(r.Context(), req.ChatID, req.UserID, req.Message)
	if err != nil {
		handleServiceError(w, err, "An error occurred while processing the message.")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": reply,
	})
}

func (h *ChatHandler) SearchChats(w http.ResponseWriter, r *http.Request) {
	var req models.SearchChatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Search query cannot be empty.")
		return
	}

	results, err := h.chats.SearchChats(r.Context(), req.Query)
	if err != nil {
		handleServiceError(w, err, "An error occurred while searching for chats.")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"results": results,
	})
}
