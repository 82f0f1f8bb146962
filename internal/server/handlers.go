package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/llm"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/tutor"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TranslateRequest asks for the translation of a word or sentence. Passage
// is the surrounding text, if any.
type TranslateRequest struct {
	Text    string `json:"text"`
	Passage string `json:"passage,omitempty"`
}

// DefineRequest asks for a dictionary entry of Word as used in Sentence.
type DefineRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence,omitempty"`
}

// TextRef names a text of the library.
type TextRef struct {
	TopicID string `json:"topic_id"`
	TextID  string `json:"text_id"`
}

// EvaluateRequest asks whether Answer is acceptable for Question about the
// referenced text.
type EvaluateRequest struct {
	TextRef
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TranscribeResponse carries the recognized text.
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}

// fail maps err to a status code. Unclassified errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *llm.ErrInvalidResponse
	var truncated *llm.ErrMaxTokensExceeded
	switch {
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tutor.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, speech.ErrUnavailable), llm.IsUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, "service unavailable, try again later")
	case errors.As(err, &invalid), errors.As(err, &truncated):
		writeError(w, http.StatusBadGateway, "model returned an unusable answer")
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTopics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.library.Topics())
}

func (s *Server) getTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := s.library.Topic(mux.Vars(r)["topic"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) getText(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	text, err := s.library.Text(vars["topic"], vars["text"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, text)
}

// requireTutor answers 503 when no LLM provider is configured.
func (s *Server) requireTutor(w http.ResponseWriter) bool {
	if s.tutor == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return false
	}
	return true
}

func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	if !s.requireTutor(w) {
		return
	}
	var req TranslateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := s.tutor.Translate(r.Context(), req.Text, req.Passage)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) define(w http.ResponseWriter, r *http.Request) {
	if !s.requireTutor(w) {
		return
	}
	var req DefineRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := s.tutor.Define(r.Context(), req.Word, req.Sentence)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) dialogue(w http.ResponseWriter, r *http.Request) {
	if !s.requireTutor(w) {
		return
	}
	var req TextRef
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, err := s.library.Text(req.TopicID, req.TextID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	questions, err := s.tutor.GenerateDialogue(r.Context(), text.Title, text.Paragraphs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tutor.Dialogue{Questions: questions})
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	if !s.requireTutor(w) {
		return
	}
	var req EvaluateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, err := s.library.Text(req.TopicID, req.TextID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.tutor.EvaluateAnswer(r.Context(), req.Question, req.Answer, text.Paragraphs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) tts(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = speech.DefaultLanguage
	}

	audio, err := s.synth.Synthesize(r.Context(), text, lang)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(audio.Data)
}

func (s *Server) transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field audio is required")
		return
	}
	defer file.Close()

	lang := r.FormValue("lang")
	if lang == "" {
		lang = speech.DefaultLanguage
	}
	name := filepath.Base(header.Filename)
	if filepath.Ext(name) == "" {
		name += ".webm"
	}

	transcript, err := s.trans.Transcribe(r.Context(), file, name, lang)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TranscribeResponse{Transcript: transcript})
}
