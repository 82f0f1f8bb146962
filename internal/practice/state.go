// Package practice holds the per-mode state machines of the five practice
// modes. All types are driven from a single goroutine (the UI loop) and are
// not safe for concurrent use.
package practice

// ValidationState is the check result of one exercise item.
type ValidationState string

const (
	Idle      ValidationState = "idle"
	Correct   ValidationState = "correct"
	Incorrect ValidationState = "incorrect"
)

func normalizeState(s ValidationState) ValidationState {
	switch s {
	case Correct, Incorrect:
		return s
	default:
		return Idle
	}
}

// Mode identifies a practice mode.
type Mode string

const (
	ModeCards Mode = "cards"
	ModeFill  Mode = "fill"
	ModeWrite Mode = "write"
	ModeOrder Mode = "order"
	ModeSpeak Mode = "speak"
)

// Modes returns all practice modes in menu order.
func Modes() []Mode {
	return []Mode{ModeCards, ModeFill, ModeWrite, ModeOrder, ModeSpeak}
}

// ParseMode converts s to a Mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Recorder is the progress store of one text. Keys are mode names, with
// cards split per direction (see CardsKey).
type Recorder interface {
	MarkModeComplete(key string)
	IsModeComplete(key string) bool
	ResetMode(key string)
}

// ModeState is the persisted state of one mode. Items is keyed by item
// index. SourceCount is the number of source items (sentences, questions)
// the state was built from and decides whether a saved state can be reused.
type ModeState[T any] struct {
	CurrentIndex int       `json:"current_index"`
	Items        map[int]T `json:"items"`
	Initialized  bool      `json:"initialized"`
	SourceCount  int       `json:"source_count"`
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// completion emits a completion signal each time a mode goes from "not all
// items correct" to "all items correct".
type completion struct {
	key  string
	done bool
}

func (c *completion) observe(rec Recorder, allCorrect bool) {
	if allCorrect && !c.done && rec != nil {
		rec.MarkModeComplete(c.key)
	}
	c.done = allCorrect
}

func (c *completion) reset(rec Recorder) {
	c.done = false
	if rec != nil {
		rec.ResetMode(c.key)
	}
}
