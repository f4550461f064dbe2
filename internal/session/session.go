// Package session builds chart pages and keeps them for interactive use.
package session

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"flightplots/internal/charts"
	"flightplots/internal/config"
	"flightplots/internal/dashboard"
	"flightplots/internal/logging"
	"flightplots/internal/metrics"
	"flightplots/internal/schema"
	"flightplots/internal/sink"
	"flightplots/internal/telemetry"
	"flightplots/internal/ui"
	"flightplots/internal/ulog"
)

var (
	// ErrNotFound is returned for unknown session or chart ids.
	ErrNotFound = errors.New("not found")
	// ErrNoToggle is returned when a page has no parameter toggle.
	ErrNoToggle = errors.New("page has no parameter toggle")
)

// Session is one built chart page with its toggle state.
type Session struct {
	ID        string
	LogID     string
	CreatedAt time.Time
	Result    charts.Result

	mu   sync.Mutex
	page *ui.Page
}

// Build assembles and finalizes the chart page for l, records metrics and
// writes a render event. A failing event writer is logged and ignored.
func Build(ctx context.Context, l *ulog.Log, aliases schema.Aliases, cfg *config.Config, source string, events sink.EventWriter) *Session {
	logger := logging.FromContext(ctx)
	start := time.Now()
	res := charts.Build(ctx, l, aliases, cfg)
	page := ui.Finalize(res.Charts, cfg.Plot.Width)
	elapsed := time.Since(start)

	s := &Session{
		ID:        uuid.NewString(),
		LogID:     l.ID,
		CreatedAt: start,
		Result:    res,
		page:      page,
	}
	metrics.ObservePageBuild(elapsed, res.Shown(), len(res.Empty), len(res.Skipped))
	logger.Info("page built", "log", l.ID, "session", s.ID,
		"shown", res.Shown(), "empty", len(res.Empty), "skipped", len(res.Skipped), "duration", elapsed)

	if events != nil {
		row := telemetry.RenderEventRow{
			LogID:         l.ID,
			Source:        source,
			SessionID:     s.ID,
			ChartsShown:   int64(res.Shown()),
			ChartsEmpty:   int64(len(res.Empty)),
			ChartsSkipped: int64(len(res.Skipped)),
			ParamToggle:   page.Toggle != nil,
			DurationMS:    float64(elapsed.Microseconds()) / 1000,
			Timestamp:     start.UTC(),
		}
		if err := events.WriteEvent(row); err != nil {
			logger.Warn("render event not written", "error", err)
		}
	}
	return s
}

// Page returns the finalized page. Callers must not mutate it while the
// session is shared.
func (s *Session) Page() *ui.Page {
	return s.page
}

// Nav returns the navigation entries of the page.
func (s *Session) Nav() []ui.NavEntry {
	return s.page.Nav
}

// ToggleParamChanges clicks the page toggle and returns its new status.
func (s *Session) ToggleParamChanges() (ui.ToggleStatus, error) {
	if s.page.Toggle == nil {
		return ui.ToggleStatus{}, ErrNoToggle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.Toggle.Click()
	metrics.ObserveToggleClick()
	return s.page.Toggle.Status(), nil
}

// RenderChart writes the PNG of chart id in its current toggle state.
func (s *Session) RenderChart(w io.Writer, id string) error {
	c, ok := s.page.Chart(id)
	if !ok {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return dashboard.RenderPNG(w, c)
}

// DefaultLimit is the number of sessions a Store keeps.
const DefaultLimit = 64

// Store keeps the most recent sessions in memory.
type Store struct {
	mu       sync.RWMutex
	limit    int
	sessions map[string]*Session
}

// NewStore returns a store holding at most limit sessions.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{limit: limit, sessions: map[string]*Session{}}
}

// Put adds s, dropping the oldest sessions beyond the limit.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	if len(st.sessions) <= st.limit {
		return
	}
	all := make([]*Session, 0, len(st.sessions))
	for _, v := range st.sessions {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	for _, v := range all[:len(all)-st.limit] {
		delete(st.sessions, v.ID)
	}
}

// Get returns the session with id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
