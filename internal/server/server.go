package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"flowci/internal/event"
	"flowci/internal/logging"
	"flowci/internal/run"
	"flowci/internal/runner"
	"flowci/internal/trigger"
	"flowci/internal/workflow"
)

// Server receives repository events over HTTP and keeps the runs they
// produced in memory. Runs never outlive the process; there is no
// shared state across them.
type Server struct {
	mu   sync.Mutex
	runs map[string]*run.Run

	def    *workflow.Definition
	rules  trigger.Rules
	runner *runner.Runner
	log    *logging.Logger
}

// New creates a Server serving the given workflow.
func New(def *workflow.Definition, rules trigger.Rules, r *runner.Runner, log *logging.Logger) *Server {
	return &Server{
		runs:   make(map[string]*run.Run),
		def:    def,
		rules:  rules,
		runner: r,
		log:    log,
	}
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/events", s.handleEvent)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /events -> evaluate the trigger and maybe start a run
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	ev, err := event.Parse(data)
	if err != nil {
		var invalid *event.InvalidEventError
		if errors.As(err, &invalid) {
			http.Error(w, invalid.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !s.rules.Matches(ev) {
		writeJSON(w, http.StatusOK, map[string]any{"triggered": false})
		return
	}

	rn := run.New(ev)
	s.mu.Lock()
	s.runs[rn.ID] = rn
	s.mu.Unlock()

	go func() {
		if err := s.runner.Execute(context.Background(), s.def, rn); err != nil && s.log != nil {
			s.log.Error("run %s: %v", rn.ID, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"triggered": true,
		"id":        rn.ID,
	})
}

// GET /runs/{id}
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	rn, ok := s.runs[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(rn))
}

// GET /runs
func (s *Server) handleListRuns(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	views := make([]runView, 0, len(s.runs))
	for _, rn := range s.runs {
		views = append(views, viewOf(rn))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, views)
}

type runView struct {
	ID      string                    `json:"id"`
	Kind    event.Kind                `json:"kind"`
	Branch  string                    `json:"branch,omitempty"`
	Created time.Time                 `json:"created"`
	Outcome run.Outcome               `json:"outcome"`
	Jobs    map[string]*run.JobResult `json:"jobs"`
}

func viewOf(rn *run.Run) runView {
	v := runView{
		ID:      rn.ID,
		Created: rn.Created,
		Outcome: rn.Outcome(),
		Jobs:    rn.Jobs(),
	}
	if rn.Event != nil {
		v.Kind = rn.Event.Kind
		v.Branch = rn.Event.Branch
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
