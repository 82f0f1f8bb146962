// Package progress records which practice modes of which texts a learner
// has completed.
package progress

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/abhisek/lesezeit/internal/exercise"
	"github.com/abhisek/lesezeit/internal/practice"
	"github.com/abhisek/lesezeit/internal/store"
)

// Change describes one completion flip.
type Change struct {
	TopicID  string
	TextID   string
	Key      string
	Complete bool
}

// Service persists completion marks and notifies subscribers of changes.
type Service struct {
	repo store.ProgressRepo

	mu      sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// NewService creates a Service backed by repo.
func NewService(repo store.ProgressRepo) *Service {
	return &Service{repo: repo, subs: make(map[int]func(Change))}
}

// Subscribe registers fn for every change and returns a function that
// removes it.
func (s *Service) Subscribe(fn func(Change)) func() {
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

func (s *Service) notify(c Change) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Completed returns the completed mode keys of one text.
func (s *Service) Completed(ctx context.Context, topicID, textID string) ([]string, error) {
	keys, err := s.repo.Completed(ctx, topicID, textID)
	if err != nil {
		return nil, fmt.Errorf("completed modes: %w", err)
	}
	return keys, nil
}

// CompletedModes returns the modes of one text that are complete. Cards
// count only when both directions are.
func (s *Service) CompletedModes(ctx context.Context, topicID, textID string) ([]practice.Mode, error) {
	keys, err := s.Completed(ctx, topicID, textID)
	if err != nil {
		return nil, err
	}
	return ModesFromKeys(keys), nil
}

// ModesFromKeys folds progress keys into completed modes.
func ModesFromKeys(keys []string) []practice.Mode {
	var modes []practice.Mode
	for _, m := range practice.Modes() {
		if m == practice.ModeCards {
			both := true
			for _, d := range exercise.Directions() {
				if !slices.Contains(keys, practice.CardsKey(d)) {
					both = false
				}
			}
			if both {
				modes = append(modes, m)
			}
			continue
		}
		if slices.Contains(keys, string(m)) {
			modes = append(modes, m)
		}
	}
	return modes
}

// All returns every completion mark.
func (s *Service) All(ctx context.Context) ([]store.ProgressRecord, error) {
	recs, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return recs, nil
}

// ResetText clears every completion mark of one text.
func (s *Service) ResetText(ctx context.Context, topicID, textID string) error {
	keys, err := s.Completed(ctx, topicID, textID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteText(ctx, topicID, textID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	for _, k := range keys {
		s.notify(Change{TopicID: topicID, TextID: textID, Key: k})
	}
	return nil
}

// Recorder is the progress of one text. It implements practice.Recorder.
// Storage failures are reported on stderr and do not change the in-memory
// view.
type Recorder struct {
	svc     *Service
	topicID string
	textID  string

	mu   sync.Mutex
	done map[string]bool
}

var _ practice.Recorder = (*Recorder)(nil)

// For loads the progress of one text.
func (s *Service) For(ctx context.Context, topicID, textID string) (*Recorder, error) {
	keys, err := s.Completed(ctx, topicID, textID)
	if err != nil {
		return nil, err
	}
	r := &Recorder{svc: s, topicID: topicID, textID: textID, done: make(map[string]bool)}
	for _, k := range keys {
		r.done[k] = true
	}
	return r, nil
}

// MarkModeComplete records key as complete. Marking an already complete key
// changes nothing.
func (r *Recorder) MarkModeComplete(key string) {
	r.mu.Lock()
	if r.done[key] {
		r.mu.Unlock()
		return
	}
	r.done[key] = true
	r.mu.Unlock()

	if err := r.svc.repo.MarkComplete(context.Background(), r.topicID, r.textID, key); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save progress: %v\n", err)
	}
	r.svc.notify(Change{TopicID: r.topicID, TextID: r.textID, Key: key, Complete: true})
}

// IsModeComplete reports whether key is complete.
func (r *Recorder) IsModeComplete(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done[key]
}

// ResetMode clears key.
func (r *Recorder) ResetMode(key string) {
	r.mu.Lock()
	was := r.done[key]
	delete(r.done, key)
	r.mu.Unlock()

	if err := r.svc.repo.Unmark(context.Background(), r.topicID, r.textID, key); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to reset progress: %v\n", err)
	}
	if was {
		r.svc.notify(Change{TopicID: r.topicID, TextID: r.textID, Key: key})
	}
}

// Modes returns the completed modes of the text.
func (r *Recorder) Modes() []practice.Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.done))
	for k := range r.done {
		keys = append(keys, k)
	}
	return ModesFromKeys(keys)
}
