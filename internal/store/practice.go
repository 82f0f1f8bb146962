package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const practiceTable = "practice_states"

type practiceRepo struct {
	db *sql.DB
}

func textPredicate(topicID, textID string) *entsql.Predicate {
	return entsql.And(entsql.EQ("topic_id", topicID), entsql.EQ("text_id", textID))
}

func (r *practiceRepo) Load(ctx context.Context, topicID, textID string) ([]byte, error) {
	b := builder()
	query, args := b.Select("data").
		From(b.Table(practiceTable)).
		Where(textPredicate(topicID, textID)).
		Query()

	var blob []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load practice state: %w", err)
	}
	return blob, nil
}

func (r *practiceRepo) Save(ctx context.Context, topicID, textID string, blob []byte) error {
	query, args := builder().Insert(practiceTable).
		Columns("topic_id", "text_id", "data", "updated_at").
		Values(topicID, textID, blob, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("topic_id", "text_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice state: %w", err)
	}
	return nil
}

func (r *practiceRepo) Delete(ctx context.Context, topicID, textID string) error {
	query, args := builder().Delete(practiceTable).
		Where(textPredicate(topicID, textID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete practice state: %w", err)
	}
	return nil
}
