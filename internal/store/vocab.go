package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const vocabTable = "vocabulary"

var vocabColumns = []string{
	"id", "topic_id", "text_id", "source_term", "base_form", "target_term", "context", "created_at",
}

type vocabRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// termKey folds a source term for the uniqueness check.
func termKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func (r *vocabRepo) Insert(ctx context.Context, rec VocabRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query, args := builder().Insert(vocabTable).
		Columns(slices.Concat(vocabColumns, []string{"sequence", "term_key"})...).
		Values(
			rec.ID, rec.TopicID, rec.TextID, rec.SourceTerm, rec.BaseForm, rec.TargetTerm,
			rec.Context, rec.CreatedAt.UnixMilli(), seqNum, termKey(rec.SourceTerm),
		).
		OnConflict(
			entsql.ConflictColumns("topic_id", "text_id", "term_key"),
			entsql.DoNothing(),
		).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert vocabulary: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert vocabulary: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("vocabulary %q: %w", rec.SourceTerm, ErrDuplicate)
	}
	return nil
}

func (r *vocabRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(vocabTable).Where(entsql.EQ("id", id)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}
	return nil
}

func (r *vocabRepo) Get(ctx context.Context, id string) (*VocabRecord, error) {
	b := builder()
	query, args := b.Select(vocabColumns...).
		From(b.Table(vocabTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanVocab(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *vocabRepo) List(ctx context.Context, topicID, textID string) ([]VocabRecord, error) {
	b := builder()
	sel := b.Select(vocabColumns...).From(b.Table(vocabTable))
	if topicID != "" || textID != "" {
		sel.Where(textPredicate(topicID, textID))
	}
	query, args := sel.OrderBy("sequence").Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var out []VocabRecord
	for rows.Next() {
		rec, err := scanVocab(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *vocabRepo) DeleteText(ctx context.Context, topicID, textID string) error {
	query, args := builder().Delete(vocabTable).Where(textPredicate(topicID, textID)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}
	return nil
}

func scanVocab(row rowScanner) (*VocabRecord, error) {
	var (
		rec VocabRecord
		ts  int64
	)
	err := row.Scan(&rec.ID, &rec.TopicID, &rec.TextID, &rec.SourceTerm, &rec.BaseForm,
		&rec.TargetTerm, &rec.Context, &ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan vocabulary: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(ts)
	return &rec, nil
}
