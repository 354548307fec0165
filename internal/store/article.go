package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MaxStoredArticles caps the used-article history. When a batch insert
// pushes past the cap, the oldest entries are evicted first.
const MaxStoredArticles = 500

// UsedArticle records one topic a generated question was based on, so
// future generations for the same category can exclude it.
type UsedArticle struct {
	Topic    string
	Category string
	Question string
	UsedAt   time.Time
}

// ArticleRepo is the topic history store. The generator only ever
// reads topics for one category at a time and appends a batch after a
// successful generation round.
type ArticleRepo interface {
	// ForCategory returns the topics previously used for the given
	// category. Category matching is case-insensitive.
	ForCategory(ctx context.Context, category string) ([]string, error)

	// AddBatch appends entries, then prunes to the retention cap
	// keeping the most recent entries. The append and prune run in one
	// transaction so concurrent readers never observe a partial write.
	AddBatch(ctx context.Context, entries []UsedArticle) error

	// Clear removes all history entries.
	Clear(ctx context.Context) error

	// Count returns the number of retained entries.
	Count(ctx context.Context) (int, error)
}

// articleRepo implements ArticleRepo on SQLite.
type articleRepo struct {
	db  *sql.DB
	max int
}

func (r *articleRepo) ForCategory(ctx context.Context, category string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic FROM used_articles WHERE category = ? COLLATE NOCASE ORDER BY id`,
		category)
	if err != nil {
		return nil, fmt.Errorf("query used articles: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *articleRepo) AddBatch(ctx context.Context, entries []UsedArticle) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO used_articles (topic, category, question, used_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		usedAt := e.UsedAt
		if usedAt.IsZero() {
			usedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, e.Topic, e.Category, e.Question, usedAt); err != nil {
			return fmt.Errorf("insert used article: %w", err)
		}
	}

	// Evict oldest entries beyond the cap.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM used_articles WHERE id NOT IN (
			SELECT id FROM used_articles ORDER BY id DESC LIMIT ?
		)`, r.max)
	if err != nil {
		return fmt.Errorf("prune used articles: %w", err)
	}

	return tx.Commit()
}

func (r *articleRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM used_articles`)
	if err != nil {
		return fmt.Errorf("clear used articles: %w", err)
	}
	return nil
}

func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM used_articles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count used articles: %w", err)
	}
	return n, nil
}
