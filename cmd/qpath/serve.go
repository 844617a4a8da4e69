package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"

	"github.com/pdrpinto/qpath"
	"github.com/pdrpinto/qpath/astar"
	"github.com/pdrpinto/qpath/internal/scenario"
)

type snapshot struct {
	Step     int          `json:"step"`
	Lo       [2]float64   `json:"lo"`
	Hi       [2]float64   `json:"hi"`
	Levels   [2]uint      `json:"levels"`
	CellSize [2]float64   `json:"cellSize"`
	Blocked  [][2]float64 `json:"blocked"`
	Open     [][2]float64 `json:"open,omitempty"`
	Closed   [][2]float64 `json:"closed,omitempty"`
	Current  [2]float64   `json:"current"`
	Start    [2]float64   `json:"start"`
	Goal     [2]float64   `json:"goal"`
	Done     bool         `json:"done"`
	Found    bool         `json:"found"`
	Path     [][2]float64 `json:"path,omitempty"`
	Cost     uint32       `json:"cost"`
}

// server drives one stepper at a time; /init replaces it.
type server struct {
	scenario *scenario.Scenario
	limiter  *rate.Limiter
	logger   logr.Logger
	options  []astar.Option
	blocked  [][2]float64

	mu      sync.Mutex
	stepper *qpath.Stepper[scenario.Point, [2]uint, uint32]
}

func newServer(s *scenario.Scenario, stepsPerSecond float64, logger logr.Logger, options []astar.Option) *server {
	limit := rate.Inf
	if stepsPerSecond > 0 {
		limit = rate.Limit(stepsPerSecond)
	}
	q := s.Quantizer()
	blocked := make([][2]float64, 0)
	for _, cell := range s.Blocked() {
		blocked = append(blocked, coords(q.Dequantize(cell)))
	}
	return &server{
		scenario: s,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger.WithName("serve"),
		options:  options,
		blocked:  blocked,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/next", s.handleNext)
	return mux
}

func (s *server) handleInit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.stepper != nil {
		s.stepper.Close()
	}
	s.stepper = s.scenario.NewStepper(context.Background(), s.options...)
	s.mu.Unlock()

	q := s.scenario.Quantizer()
	s.logger.V(1).Info("search reset", "start", s.scenario.StartCell(), "goal", s.scenario.GoalCell())
	writeJSON(w, map[string]any{"ok": true, "levels": q.Levels()})
}

func (s *server) handleNext(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Wait(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusTooManyRequests)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepper == nil {
		http.Error(w, "search not initialized", http.StatusBadRequest)
		return
	}
	st, err := s.stepper.Step()
	if err != nil {
		s.logger.Error(err, "step failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := s.scenario.Quantizer()
	out := snapshot{
		Step:     st.Step,
		Lo:       s.scenario.Lo,
		Hi:       s.scenario.Hi,
		Levels:   q.Levels(),
		CellSize: [2]float64{float64(q.Axis(0).Step()), float64(q.Axis(1).Step())},
		Blocked:  s.blocked,
		Open:     coordList(st.Open),
		Closed:   coordList(st.Closed),
		Current:  coords(st.Current),
		Start:    coords(q.Dequantize(s.scenario.StartCell())),
		Goal:     coords(q.Dequantize(s.scenario.GoalCell())),
		Done:     st.Done,
		Found:    st.Found,
		Path:     coordList(st.Path),
		Cost:     st.Cost,
	}
	writeJSON(w, out)
}

func (s *server) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepper != nil {
		s.stepper.Close()
		s.stepper = nil
	}
}

func coords(p scenario.Point) [2]float64 { return [2]float64{float64(p[0]), float64(p[1])} }

func coordList(points []scenario.Point) [][2]float64 {
	if len(points) == 0 {
		return nil
	}
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = coords(p)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func listenAndServe(ctx context.Context, addr string, s *server, logger logr.Logger) error {
	defer s.close()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.routes(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("serving snapshots", "addr", ln.Addr().String())
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
