package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sgtutorhub/assignment_bot/internal/config"
)

const maxUpdateBody = 1 << 20 // 1 MB

// Server is the HTTP surface: the Telegram webhook endpoint and the admin
// API.
type Server struct {
	httpSrv *http.Server
	logger  *zap.Logger
}

// New builds the router. webhook is the bot library's update handler; the
// admin dependencies are narrow interfaces so tests can use fakes.
func New(
	cfg *config.Config,
	webhook http.HandlerFunc,
	tutors TutorAdmin,
	assignments AssignmentAdmin,
	poster ChannelPoster,
	logger *zap.Logger,
) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, maxUpdateBody)
	})

	r.Get("/webhook", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Post("/webhook", s.webhookHandler(cfg.WebhookSecret, webhook))

	admin := &adminAPI{
		tutors:      tutors,
		assignments: assignments,
		poster:      poster,
		logger:      logger,
	}
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireToken(cfg.AdminAPIToken))
		r.Get("/assignments", admin.listAssignments)
		r.Post("/assignments", admin.createAssignment)
		r.Delete("/assignments/{id}", admin.deleteAssignment)
		r.Patch("/assignments/{id}/status", admin.setStatus)
		r.Patch("/assignments/{id}/applications/{tutorID}", admin.decideApplication)
		r.Patch("/tutors/{id}/chat", admin.bindChat)
	})

	s.httpSrv = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// webhookHandler guards the update endpoint: the secret header must match
// when configured, and the body must at least be a JSON object before the
// bot library sees it. Processing failures still answer 200 so Telegram
// does not retry a poison update forever.
func (s *Server) webhookHandler(secret string, webhook http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if secret != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != secret {
			s.logger.Warn("Webhook call with bad secret", zap.String("remote", r.RemoteAddr))
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if !isJSONObject(body) {
			s.logger.Warn("Webhook body is not a JSON object")
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		webhook(w, r)
	}
}

func isJSONObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}

// Start serves until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpSrv.Addr))
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
