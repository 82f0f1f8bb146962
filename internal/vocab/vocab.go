// Package vocab is the learner's word list. Entries are scoped to the text
// they were saved from.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lesezeit/internal/exercise"
	"github.com/abhisek/lesezeit/internal/store"
)

var (
	// ErrDuplicate is returned when the text already has the source term.
	ErrDuplicate = errors.New("word already saved")

	// ErrInvalid is returned for entries without a source or target term.
	ErrInvalid = errors.New("source and target term are required")

	// ErrNotFound is returned when removing an unknown entry.
	ErrNotFound = errors.New("vocabulary entry not found")
)

// Entry is a saved word.
type Entry struct {
	ID         string    `json:"id"`
	TopicID    string    `json:"topic_id"`
	TextID     string    `json:"text_id"`
	SourceTerm string    `json:"source_term"`
	BaseForm   string    `json:"base_form,omitempty"`
	TargetTerm string    `json:"target_term"`
	Context    string    `json:"context,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExerciseEntries converts entries for the quiz generator.
func ExerciseEntries(entries []Entry) []exercise.VocabEntry {
	out := make([]exercise.VocabEntry, len(entries))
	for i, e := range entries {
		out[i] = exercise.VocabEntry{
			ID:         e.ID,
			SourceTerm: e.SourceTerm,
			BaseForm:   e.BaseForm,
			TargetTerm: e.TargetTerm,
		}
	}
	return out
}

// EventKind says what happened to an entry.
type EventKind int

const (
	Added EventKind = iota
	Removed
)

// Event is delivered to subscribers after every change.
type Event struct {
	Kind  EventKind
	Entry Entry
}

// Store persists entries and notifies subscribers.
type Store struct {
	repo store.VocabRepo

	mu      sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// NewStore creates a Store backed by repo.
func NewStore(repo store.VocabRepo) *Store {
	return &Store{repo: repo, subs: make(map[int]func(Event))}
}

// Subscribe registers fn for every change and returns a function that
// removes it. Callbacks run on the goroutine that made the change.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Add saves e with a fresh id.
func (s *Store) Add(ctx context.Context, e Entry) (Entry, error) {
	e.SourceTerm = strings.TrimSpace(e.SourceTerm)
	e.BaseForm = strings.TrimSpace(e.BaseForm)
	e.TargetTerm = strings.TrimSpace(e.TargetTerm)
	if e.SourceTerm == "" || e.TargetTerm == "" {
		return Entry{}, ErrInvalid
	}
	e.ID = uuid.NewString()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	err := s.repo.Insert(ctx, store.VocabRecord{
		ID:         e.ID,
		TopicID:    e.TopicID,
		TextID:     e.TextID,
		SourceTerm: e.SourceTerm,
		BaseForm:   e.BaseForm,
		TargetTerm: e.TargetTerm,
		Context:    e.Context,
		CreatedAt:  e.CreatedAt,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return Entry{}, fmt.Errorf("%q: %w", e.SourceTerm, ErrDuplicate)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("add vocabulary: %w", err)
	}

	s.notify(Event{Kind: Added, Entry: e})
	return e, nil
}

// Remove deletes the entry with id.
func (s *Store) Remove(ctx context.Context, id string) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("remove vocabulary: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove vocabulary: %w", err)
	}
	s.notify(Event{Kind: Removed, Entry: fromRecord(*rec)})
	return nil
}

// List returns the entries of one text in the order they were saved. Empty
// ids list every entry.
func (s *Store) List(ctx context.Context, topicID, textID string) ([]Entry, error) {
	recs, err := s.repo.List(ctx, topicID, textID)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	out := make([]Entry, len(recs))
	for i, r := range recs {
		out[i] = fromRecord(r)
	}
	return out, nil
}

// Contains reports whether the text already has term.
func (s *Store) Contains(ctx context.Context, topicID, textID, term string) (bool, error) {
	entries, err := s.List(ctx, topicID, textID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.SourceTerm, strings.TrimSpace(term)) {
			return true, nil
		}
	}
	return false, nil
}

// RemoveText deletes every entry of one text.
func (s *Store) RemoveText(ctx context.Context, topicID, textID string) error {
	entries, err := s.List(ctx, topicID, textID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteText(ctx, topicID, textID); err != nil {
		return fmt.Errorf("remove vocabulary: %w", err)
	}
	for _, e := range entries {
		s.notify(Event{Kind: Removed, Entry: e})
	}
	return nil
}

func fromRecord(r store.VocabRecord) Entry {
	return Entry{
		ID:         r.ID,
		TopicID:    r.TopicID,
		TextID:     r.TextID,
		SourceTerm: r.SourceTerm,
		BaseForm:   r.BaseForm,
		TargetTerm: r.TargetTerm,
		Context:    r.Context,
		CreatedAt:  r.CreatedAt,
	}
}
