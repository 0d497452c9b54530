package models

import "time"

const (
	SenderTypeStudent = "student"
	SenderTypeAI      = "ai"
)

// AIAuthorID is the fixed placeholder author recorded on assistant turns.
const AIAuthorID int64 = 1

type Message struct {
	ID         int64     `json:"id"`
	ChatID     int64     `json:"chat_id"`
	SenderID   int64     `json:"sender_id"`
	SenderType string    `json:"sender_type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageView is a message as returned by getMessages.
type MessageView struct {
	SenderType string    `json:"sender_type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m *Message) View() MessageView {
	return MessageView{SenderType: m.SenderType, Content: m.Content, CreatedAt: m.CreatedAt}
}
