package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type chatRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewChatRepository constructs a [ChatRepository] backed by db.
func NewChatRepository(db *DB, logger *logger.Logger) ChatRepository {
	logger.Debug().Msg("creating chat repository")
	return &chatRepository{db: db, logger: logger}
}

func (r *chatRepository) Save(ctx context.Context, message models.ChatMessage) (models.ChatMessage, error) {
	log := logger.FromContext(ctx)

	err := r.db.conn(ctx).QueryRowContext(ctx, saveChatMessage, message.UserID, message.Role, message.Content).
		Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.Save").Int64("user_id", message.UserID).Msg("failed to save chat message")
		return models.ChatMessage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return message, nil
}

// History returns the first limit messages of the user in chronological
// order.
func (r *chatRepository) History(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	return r.query(ctx, "*chatRepository.History", chatHistory, userID, limit)
}

// Recent returns the last limit messages of the user in chronological
// order.
func (r *chatRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	return r.query(ctx, "*chatRepository.Recent", recentChatMessages, userID, limit)
}

func (r *chatRepository) query(ctx context.Context, fn, query string, userID int64, limit int) ([]models.ChatMessage, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Err(err).Str("func", fn).Int64("user_id", userID).Msg("failed to load chat messages")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var m models.ChatMessage
		if err = rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan chat row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return messages, nil
}

func (r *chatRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.conn(ctx).ExecContext(ctx, clearChatHistory, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatRepository.Clear").Int64("user_id", userID).Msg("failed to clear chat history")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
