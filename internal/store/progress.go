package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const progressTable = "progress"

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) MarkComplete(ctx context.Context, topicID, textID, key string) error {
	query, args := builder().Insert(progressTable).
		Columns("topic_id", "text_id", "mode_key", "completed_at").
		Values(topicID, textID, key, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("topic_id", "text_id", "mode_key"),
			entsql.DoNothing(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark %s complete: %w", key, err)
	}
	return nil
}

func (r *progressRepo) Unmark(ctx context.Context, topicID, textID, key string) error {
	query, args := builder().Delete(progressTable).
		Where(entsql.And(textPredicate(topicID, textID), entsql.EQ("mode_key", key))).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unmark %s: %w", key, err)
	}
	return nil
}

func (r *progressRepo) Completed(ctx context.Context, topicID, textID string) ([]string, error) {
	b := builder()
	query, args := b.Select("mode_key").
		From(b.Table(progressTable)).
		Where(textPredicate(topicID, textID)).
		OrderBy("mode_key").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (r *progressRepo) All(ctx context.Context) ([]ProgressRecord, error) {
	b := builder()
	query, args := b.Select("topic_id", "text_id", "mode_key", "completed_at").
		From(b.Table(progressTable)).
		OrderBy("topic_id", "text_id", "mode_key").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var (
			rec ProgressRecord
			ts  int64
		)
		if err := rows.Scan(&rec.TopicID, &rec.TextID, &rec.ModeKey, &ts); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.CompletedAt = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *progressRepo) DeleteText(ctx context.Context, topicID, textID string) error {
	query, args := builder().Delete(progressTable).
		Where(textPredicate(topicID, textID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
