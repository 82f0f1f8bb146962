package reader

import (
	"context"
	"errors"

	"github.com/abhisek/lesezeit/internal/llm"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/tutor"
	"github.com/abhisek/lesezeit/internal/vocab"
)

type translatedMsg struct {
	seq    int
	result tutor.Translation
	err    error
}

type definedMsg struct {
	seq     int
	word    string
	context string
	result  tutor.Definition
	err     error
}

type savedMsg struct {
	entry vocab.Entry
	err   error
}

type spokenMsg struct {
	seq int
	err error
}

// describe turns a service error into a short message for the status line.
func describe(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return ""
	case errors.Is(err, speech.ErrUnavailable):
		return "Speech service unavailable."
	case llm.IsUnavailable(err):
		return "The language model is not reachable right now. Try again in a moment."
	default:
		return err.Error()
	}
}
