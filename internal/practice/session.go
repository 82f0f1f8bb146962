package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/lesezeit/internal/exercise"
)

// Source is the input the practice modes of one text are built from.
type Source struct {
	Paragraphs []string
	Vocab      []exercise.VocabEntry
}

// Session holds the five practice modes of one (topic, text) pair.
type Session struct {
	TopicID string
	TextID  string

	Cards *CardsMode
	Fill  *GapMode
	Write *GapMode
	Order *OrderMode
	Speak *SpeakMode

	rec Recorder
}

// NewSession builds fresh state for every mode. A nil r uses the global
// random source for the unseeded shuffles.
func NewSession(topicID, textID string, src Source, rec Recorder, r *rand.Rand) *Session {
	sentences := exercise.BuildGapSentences(src.Paragraphs)
	return &Session{
		TopicID: topicID,
		TextID:  textID,
		Cards:   NewCardsMode(src.Vocab, rec, r),
		Fill:    NewGapMode(ModeFill, sentences, rec),
		Write:   NewGapMode(ModeWrite, sentences, rec),
		Order:   NewOrderMode(src.Paragraphs, rec, r),
		Speak:   NewSpeakMode(rec),
		rec:     rec,
	}
}

// Reconcile brings every mode in line with a changed source.
func (s *Session) Reconcile(src Source) {
	sentences := exercise.BuildGapSentences(src.Paragraphs)
	s.Fill.Reconcile(sentences)
	s.Write.Reconcile(sentences)
	s.Order.Reconcile(src.Paragraphs)
	s.Cards.Reconcile(src.Vocab)
}

// Reset regenerates one mode and clears its completion status.
func (s *Session) Reset(m Mode) {
	switch m {
	case ModeCards:
		s.Cards.Reset()
	case ModeFill:
		s.Fill.Reset()
	case ModeWrite:
		s.Write.Reset()
	case ModeOrder:
		s.Order.Reset()
	case ModeSpeak:
		s.Speak.Reset()
	}
}

// Complete reports whether mode m is complete according to the progress
// recorder.
func (s *Session) Complete(m Mode) bool {
	if s.rec == nil {
		return false
	}
	if m == ModeCards {
		for _, d := range exercise.Directions() {
			if !s.rec.IsModeComplete(CardsKey(d)) {
				return false
			}
		}
		return true
	}
	return s.rec.IsModeComplete(string(m))
}

// SnapshotVersion is the current layout version of Snapshot.
const SnapshotVersion = 1

// Snapshot is the persisted state of a session.
type Snapshot struct {
	Version int                  `json:"version"`
	Cards   CardsState           `json:"cards"`
	Fill    ModeState[GapItem]   `json:"fill"`
	Write   ModeState[GapItem]   `json:"write"`
	Order   ModeState[OrderItem] `json:"order"`
	Speak   ModeState[Turn]      `json:"speak"`
}

// Snapshot captures the state of every mode.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Version: SnapshotVersion,
		Cards:   s.Cards.State(),
		Fill:    s.Fill.State(),
		Write:   s.Write.State(),
		Order:   s.Order.State(),
		Speak:   s.Speak.State(),
	}
}

// Marshal encodes the session snapshot.
func (s *Session) Marshal() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Restore merges a saved snapshot into the session. Modes missing from the
// blob, or saved from a source of a different size, keep their fresh state
// (cards are reconciled instead). Unknown fields are ignored.
func (s *Session) Restore(blob []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return fmt.Errorf("decode practice snapshot: %w", err)
	}
	s.Cards.restore(snap.Cards)
	s.Fill.restore(snap.Fill)
	s.Write.restore(snap.Write)
	s.Order.restore(snap.Order)
	s.Speak.restore(snap.Speak)
	return nil
}

// Store persists session snapshots.
type Store interface {
	Load(ctx context.Context, topicID, textID string) ([]byte, error)
	Save(ctx context.Context, topicID, textID string, blob []byte) error
}

// Load builds a session for src and restores the saved state, if any. On
// error the fresh session is still returned.
func Load(ctx context.Context, st Store, topicID, textID string, src Source, rec Recorder, r *rand.Rand) (*Session, error) {
	s := NewSession(topicID, textID, src, rec, r)
	blob, err := st.Load(ctx, topicID, textID)
	if err != nil {
		return s, fmt.Errorf("load practice state: %w", err)
	}
	if len(blob) == 0 {
		return s, nil
	}
	// Restore leaves s untouched when the blob does not decode.
	return s, s.Restore(blob)
}

// Save persists the session.
func (s *Session) Save(ctx context.Context, st Store) error {
	blob, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("encode practice snapshot: %w", err)
	}
	if err := st.Save(ctx, s.TopicID, s.TextID, blob); err != nil {
		return fmt.Errorf("save practice state: %w", err)
	}
	return nil
}
