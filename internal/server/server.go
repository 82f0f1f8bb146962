// Package server exposes the reading library and the tutor over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/tutor"
)

// Config holds listener settings.
type Config struct {
	Addr           string
	CORSOrigins    []string
	MaxUploadBytes int64
	ShutdownGrace  time.Duration
}

// DefaultConfig listens on :8080 and allows any origin.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		CORSOrigins:    []string{"*"},
		MaxUploadBytes: 10 << 20,
		ShutdownGrace:  10 * time.Second,
	}
}

// ConfigFromEnv reads LESEZEIT_ADDR and LESEZEIT_CORS_ORIGINS (comma
// separated).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LESEZEIT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LESEZEIT_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Tutor is the subset of tutor.Service the API needs.
type Tutor interface {
	Translate(ctx context.Context, text, passage string) (tutor.Translation, error)
	Define(ctx context.Context, word, sentence string) (tutor.Definition, error)
	GenerateDialogue(ctx context.Context, title string, paragraphs []string) ([]string, error)
	EvaluateAnswer(ctx context.Context, question, answer string, paragraphs []string) (tutor.Evaluation, error)
}

// Server serves the API.
type Server struct {
	cfg     Config
	library *content.Library
	tutor   Tutor
	synth   speech.Synthesizer
	trans   speech.Transcriber
	logger  *slog.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithTutor enables the tutor routes. Without it they answer 503.
func WithTutor(t Tutor) Option {
	return func(s *Server) { s.tutor = t }
}

// WithSpeech enables the speech routes. Without it they answer 503.
func WithSpeech(synth speech.Synthesizer, trans speech.Transcriber) Option {
	return func(s *Server) { s.synth, s.trans = synth, trans }
}

// WithLogger replaces the default JSON logger on stderr.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server for library.
func New(cfg Config, library *content.Library, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		library: library,
		synth:   speech.Disabled{},
		trans:   speech.Disabled{},
		logger:  slog.New(slog.NewJSONHandler(os.Stderr, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/topics", s.listTopics).Methods(http.MethodGet)
	api.HandleFunc("/topics/{topic}", s.getTopic).Methods(http.MethodGet)
	api.HandleFunc("/topics/{topic}/texts/{text}", s.getText).Methods(http.MethodGet)
	api.HandleFunc("/translate", s.translate).Methods(http.MethodPost)
	api.HandleFunc("/define", s.define).Methods(http.MethodPost)
	api.HandleFunc("/dialogue", s.dialogue).Methods(http.MethodPost)
	api.HandleFunc("/evaluate", s.evaluate).Methods(http.MethodPost)
	api.HandleFunc("/tts", s.tts).Methods(http.MethodGet)
	api.HandleFunc("/transcribe", s.transcribe).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})
	r.Use(s.recoverer, s.requestLogger)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// Config.ShutdownGrace.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownGrace)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != http.ErrServerClosed {
		return err
	}
	return nil
}
