package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuschat-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Create(ctx context.Context, userID int64) (*models.Chat, error) {
	chat := &models.Chat{UserID: userID}
	query := `
		INSERT INTO chats (user_id, deleted)
		VALUES ($1, FALSE)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, userID).Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// SoftDelete flips the deleted flag. Already-deleted and nonexistent chats
// both come back as ErrNotFound.
func (r *ChatRepo) SoftDelete(ctx context.Context, chatID int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE chats SET deleted = TRUE WHERE id = $1 AND deleted = FALSE", chatID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChatRepo) ListActiveByUser(ctx context.Context, userID int64) ([]models.ChatSummary, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, created_at FROM chats WHERE user_id = $1 AND deleted = FALSE ORDER BY created_at ASC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := make([]models.ChatSummary, 0)
	for rows.Next() {
		c := models.ChatSummary{Messages: []models.MessageView{}}
		if err := rows.Scan(&c.ID, &c.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// Search matches the owner's name (case-insensitive) or the chat id rendered
// as text, newest chats first, capped at 20 rows. Soft-deleted chats stay
// joinable here for audit.
func (r *ChatRepo) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, u.name AS user_name, c.created_at
		FROM chats c
		INNER JOIN users u ON c.user_id = u.id
		WHERE u.name ILIKE $1 OR c.id::text LIKE $1
		ORDER BY c.created_at DESC
		LIMIT 20`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.SearchResult, 0)
	for rows.Next() {
		var res models.SearchResult
		if err := rows.Scan(&res.ID, &res.UserName, &res.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
