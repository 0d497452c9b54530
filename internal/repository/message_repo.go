package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuschat-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO messages (chat_id, sender_id, sender_type, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		m.ChatID, m.SenderID, m.SenderType, m.Content,
	).Scan(&m.ID, &m.CreatedAt)
}

// ListByChat returns the full history, ascending by creation time.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID int64) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, chat_id, sender_id, sender_type, content, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.SenderType, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
