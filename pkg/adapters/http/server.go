package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/internal/presentation/graph"
	"github.com/aretw0/pdaboat/internal/presentation/solution"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/game"
	"github.com/aretw0/pdaboat/pkg/ports"
	"github.com/aretw0/pdaboat/pkg/quiz"
	"github.com/aretw0/pdaboat/pkg/runner"
	"github.com/aretw0/pdaboat/pkg/session"
)

// maxBodyBytes bounds request bodies; inputs themselves are bounded by runner.SanitizeInput.
const maxBodyBytes = 64 << 10

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Template string `json:"template"`
	Input    string `json:"input"`
	Mode     string `json:"mode,omitempty"`
}

// StartRequest is the body of POST /sessions.
type StartRequest struct {
	ID         string `json:"id,omitempty"`
	Template   string `json:"template"`
	Input      string `json:"input"`
	Mode       string `json:"mode,omitempty"`
	Prediction string `json:"prediction,omitempty"`
}

// AnswerRequest is the body of POST /sessions/{id}/answer.
type AnswerRequest struct {
	Answer *int `json:"answer"` // 0-based option index
}

// RestartRequest is the body of POST /sessions/{id}/restart.
type RestartRequest struct {
	Input      *string `json:"input,omitempty"`
	Prediction string  `json:"prediction,omitempty"`
}

// Server serves the simulator and, when configured, game sessions.
type Server struct {
	Sim     ports.Simulator
	Game    *game.Service
	Streams *StreamManager
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithGame enables the /sessions routes.
func WithGame(svc *game.Service) Option {
	return func(s *Server) {
		s.Game = svc
	}
}

// WithMetricsHandler mounts h (usually promhttp) on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the simulator.
func NewHandler(sim ports.Simulator, opts ...Option) http.Handler {
	s := &Server{
		Sim:     sim,
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	s.Streams.logger = s.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/templates", s.ListTemplates)
	r.Get("/templates/{id}", s.GetTemplate)
	r.Post("/simulate", s.Simulate)

	if s.Game != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.StartSession)
			r.Get("/", s.ListSessions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetSession)
				r.Delete("/", s.DeleteSession)
				r.Post("/next", s.NextStep)
				r.Post("/answer", s.AnswerQuiz)
				r.Post("/restart", s.RestartSession)
				r.Get("/events", s.SubscribeEvents)
			})
		})
	}

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":      "pdaboat-http",
		"version":  strings.TrimSpace(pdaboat.Version),
		"sessions": s.Game != nil,
	})
}

// ListTemplates handles the GET /templates request.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sim.Templates())
}

// GetTemplate handles the GET /templates/{id} request.
func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tpl, ok := s.Sim.Template(id)
	if !ok {
		s.writeError(w, fmt.Errorf("%s: %w", id, domain.ErrTemplateNotFound))
		return
	}
	s.writeJSON(w, http.StatusOK, tpl.Info())
}

// Simulate handles the POST /simulate request.
// The optional format query parameter selects json (default), markdown or mermaid.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !s.decode(w, r, &body) {
		return
	}
	mode, err := domain.ParseMode(body.Mode)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	input, ok := s.sanitize(w, body.Input)
	if !ok {
		return
	}

	res := s.Sim.Simulate(r.Context(), body.Template, input, mode)

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		s.writeJSON(w, http.StatusOK, res)
	case "markdown":
		tpl, _ := s.Sim.Template(res.TemplateID)
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(solution.Markdown(res, tpl.Info())))
	case "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(res.Trace, nil)))
	default:
		s.writeStatus(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
	}
}

// StartSession handles the POST /sessions request.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if !s.decode(w, r, &body) {
		return
	}
	mode, err := domain.ParseMode(body.Mode)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	prediction, err := domain.ParsePrediction(body.Prediction)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	input, ok := s.sanitize(w, body.Input)
	if !ok {
		return
	}

	view, err := s.Game.Start(r.Context(), game.StartRequest{
		ID:         body.ID,
		TemplateID: body.Template,
		Input:      input,
		Mode:       mode,
		Prediction: prediction,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+view.Session.ID)
	s.writeJSON(w, http.StatusCreated, view)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Game.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.Game.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Game.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Broadcast(id, "deleted", `{"id":`+quote(id)+`}`)
	w.WriteHeader(http.StatusNoContent)
}

// NextStep handles the POST /sessions/{id}/next request.
func (s *Server) NextStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := s.Game.Advance(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(id, "step", view)
	s.writeJSON(w, http.StatusOK, view)
}

// AnswerQuiz handles the POST /sessions/{id}/answer request.
func (s *Server) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Answer == nil {
		s.writeStatus(w, http.StatusBadRequest, "answer is required")
		return
	}

	id := chi.URLParam(r, "id")
	res, err := s.Game.Answer(r.Context(), id, *body.Answer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(id, "answer", res)
	s.writeJSON(w, http.StatusOK, res)
}

// RestartSession handles the POST /sessions/{id}/restart request.
func (s *Server) RestartSession(w http.ResponseWriter, r *http.Request) {
	var body RestartRequest
	if !s.decode(w, r, &body) {
		return
	}
	prediction, err := domain.ParsePrediction(body.Prediction)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Input != nil {
		clean, ok := s.sanitize(w, *body.Input)
		if !ok {
			return
		}
		body.Input = &clean
	}

	id := chi.URLParam(r, "id")
	view, err := s.Game.Restart(r.Context(), id, body.Input, prediction)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.broadcast(id, "restart", view)
	s.writeJSON(w, http.StatusOK, view)
}

// SubscribeEvents handles the GET /sessions/{id}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeStatus(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.Game.Get(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	s.Logger.Info("SSE: Subscribing to session updates", "session_id", id)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprint(w, msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcast(id, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error("SSE: encode failed", "session_id", id, "err", err)
		return
	}
	s.Streams.Broadcast(id, event, string(data))
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		s.writeStatus(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) sanitize(w http.ResponseWriter, input string) (string, bool) {
	clean, err := runner.SanitizeInput(input)
	if err != nil {
		s.Logger.Warn("Input rejected", "err", err, "size", len(input))
		s.writeStatus(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
		return "", false
	}
	return clean, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTemplateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrSessionExists),
		errors.Is(err, game.ErrQuizPending),
		errors.Is(err, domain.ErrPlaybackComplete),
		errors.Is(err, domain.ErrNoPendingQuiz):
		status = http.StatusConflict
	case errors.Is(err, quiz.ErrQuizNotFound):
		status = http.StatusGone
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", "err", err)
	}
	s.writeStatus(w, status, err.Error())
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
