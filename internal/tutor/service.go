// Package tutor wraps the language model for reading help and spoken
// practice: translations, dictionary lookups, dialogue questions and answer
// evaluation.
package tutor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/lesezeit/internal/llm"
)

// Service answers tutor requests with an LLM provider. Translations and
// definitions are memoized for the life of the Service.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu          sync.Mutex
	translation map[string]Translation
	definition  map[string]Definition
}

// NewService creates a tutor.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider:    provider,
		cfg:         cfg,
		translation: make(map[string]Translation),
		definition:  make(map[string]Definition),
	}
}

type translationOutput struct {
	Translation string `json:"translation"`
	Note        string `json:"note"`
}

// Translate translates a word or sentence. passage is the surrounding text
// and may be empty.
func (s *Service) Translate(ctx context.Context, text, passage string) (Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Translation{}, ErrEmptyInput
	}
	key := text + "\x00" + passage
	s.mu.Lock()
	cached, ok := s.translation[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	out, err := generate[translationOutput](ctx, s, llm.PurposeTranslate,
		llm.Ask(translateSystem(s.cfg.TargetLanguage), translatePrompt(text, strings.TrimSpace(passage)), translationSchema, s.cfg.MaxTokens))
	if err != nil {
		return Translation{}, fmt.Errorf("translate: %w", err)
	}

	t := Translation{Source: text, Translation: strings.TrimSpace(out.Translation), Note: strings.TrimSpace(out.Note)}
	s.mu.Lock()
	s.translation[key] = t
	s.mu.Unlock()
	return t, nil
}

type definitionOutput struct {
	BaseForm     string `json:"base_form"`
	PartOfSpeech string `json:"part_of_speech"`
	Gender       string `json:"gender"`
	Translation  string `json:"translation"`
	Meaning      string `json:"meaning"`
	Example      string `json:"example"`
}

// Define looks up word as used in sentence. Surrounding punctuation of
// word is ignored.
func (s *Service) Define(ctx context.Context, word, sentence string) (Definition, error) {
	word = strings.TrimFunc(strings.TrimSpace(word), isEdge)
	if word == "" {
		return Definition{}, ErrEmptyInput
	}
	sentence = strings.TrimSpace(sentence)
	key := word + "\x00" + sentence
	s.mu.Lock()
	cached, ok := s.definition[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	out, err := generate[definitionOutput](ctx, s, llm.PurposeDefine,
		llm.Ask(defineSystem(s.cfg.TargetLanguage), definePrompt(word, sentence), definitionSchema, s.cfg.MaxTokens))
	if err != nil {
		return Definition{}, fmt.Errorf("define %q: %w", word, err)
	}

	d := Definition{
		Term:         word,
		BaseForm:     strings.TrimSpace(out.BaseForm),
		PartOfSpeech: out.PartOfSpeech,
		Gender:       out.Gender,
		Translation:  strings.TrimSpace(out.Translation),
		Meaning:      strings.TrimSpace(out.Meaning),
		Example:      strings.TrimSpace(out.Example),
	}
	s.mu.Lock()
	s.definition[key] = d
	s.mu.Unlock()
	return d, nil
}

// GenerateDialogue asks for comprehension questions about a text. Blank
// questions are dropped and at most Config.DialogueQuestions are returned.
func (s *Service) GenerateDialogue(ctx context.Context, title string, paragraphs []string) ([]string, error) {
	if strings.TrimSpace(strings.Join(paragraphs, "")) == "" {
		return nil, ErrEmptyInput
	}
	n := max(s.cfg.DialogueQuestions, 1)
	out, err := generate[Dialogue](ctx, s, llm.PurposeDialogue,
		llm.Ask(dialogueSystem, dialoguePrompt(title, paragraphs, n), dialogueSchema, s.cfg.DialogueMaxTokens))
	if err != nil {
		return nil, fmt.Errorf("generate dialogue: %w", err)
	}

	var questions []string
	for _, q := range out.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, &llm.ErrInvalidResponse{Err: fmt.Errorf("dialogue without questions")}
	}
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions, nil
}

// EvaluateAnswer judges a learner's answer to question. paragraphs is the
// text the question is about.
func (s *Service) EvaluateAnswer(ctx context.Context, question, answer string, paragraphs []string) (Evaluation, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" || strings.TrimSpace(question) == "" {
		return Evaluation{}, ErrEmptyInput
	}
	out, err := generate[Evaluation](ctx, s, llm.PurposeEvaluate,
		llm.Ask(evaluateSystem, evaluatePrompt(question, answer, paragraphs), evaluationSchema, s.cfg.MaxTokens))
	if err != nil {
		return Evaluation{}, fmt.Errorf("evaluate answer: %w", err)
	}
	out.Feedback = strings.TrimSpace(out.Feedback)
	out.Correction = strings.TrimSpace(out.Correction)
	return out, nil
}

func generate[T any](ctx context.Context, s *Service, purpose string, req llm.Request) (T, error) {
	req.Temperature = s.cfg.Temperature
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		var zero T
		return zero, err
	}
	return llm.Decode[T](resp)
}

func isEdge(r rune) bool {
	return strings.ContainsRune(".,;:!?\"'„“”«»()[]-–", r)
}
