package models

import "time"

type Chat struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Deleted   bool      `json:"-"`
}

// ChatSummary is a chat as listed after login or creation. Messages are
// always empty here; clients fetch history lazily via getMessages.
type ChatSummary struct {
	ID        int64         `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []MessageView `json:"messages"`
}

type SearchResult struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateChatRequest struct {
	UserID int64 `json:"userId"`
}

type DeleteChatRequest struct {
	ChatID int64 `json:"chatId"`
}

type GetMessagesRequest struct {
	ChatID int64 `json:"chatId"`
}

type SendMessageRequest struct {
	ChatID  int64  `json:"chatId"`
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

type SearchChatsRequest struct {
	Query string `json:"query"`
}
