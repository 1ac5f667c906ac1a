package usecase

import (
	"context"
	"sync"

	"github.com/safeeat/backend/internal/domain"
)

// View identifies the screen a Session is showing
type View string

const (
	ViewHome     View = "home"
	ViewScanner  View = "scanner"
	ViewSettings View = "settings"
	ViewResult   View = "result"
)

// summaryPreviewSize is how many avoided terms the home summary lists
const summaryPreviewSize = 5

// Summary is the home screen overview of the avoid-list and scan history
type Summary struct {
	AvoidedCount int      `json:"avoidedCount"`
	Preview      []string `json:"preview"`
	More         int      `json:"more"`
	CanScan      bool     `json:"canScan"`
	SafeCount    int      `json:"safeCount"`
	UnsafeCount  int      `json:"unsafeCount"`
}

// Session owns the client-side application state: the current view, the
// cached avoid-list and the last scan outcome. All transitions go through
// its methods.
type Session struct {
	mu          sync.Mutex
	preferences domain.PreferenceStore
	view        View
	avoid       []string
	last        *domain.ScanOutcome
	safeCount   int
	unsafeCount int
}

// NewSession creates a session on the home view and loads the avoid-list
func NewSession(ctx context.Context, preferences domain.PreferenceStore) *Session {
	s := &Session{preferences: preferences, view: ViewHome}
	s.Reload(ctx)
	return s
}

// Reload re-reads the avoid-list, as after the settings view saves
func (s *Session) Reload(ctx context.Context) {
	list := s.preferences.GetAvoidList(ctx)
	s.mu.Lock()
	s.avoid = list
	s.mu.Unlock()
}

// View returns the current view
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// AvoidList returns a copy of the cached avoid-list
func (s *Session) AvoidList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.avoid))
	copy(out, s.avoid)
	return out
}

// LastOutcome returns the most recent scan outcome, or nil
func (s *Session) LastOutcome() *domain.ScanOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// ShowHome returns to the home view
func (s *Session) ShowHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewHome
}

// ShowScanner opens the scanner. Scanning without any avoided ingredient is refused.
func (s *Session) ShowScanner() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.avoid) == 0 {
		return domain.ErrEmptyAvoidList
	}
	s.view = ViewScanner
	return nil
}

// ShowSettings opens the settings view
func (s *Session) ShowSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewSettings
}

// ShowResult records outcome and switches to the result view
func (s *Session) ShowResult(outcome *domain.ScanOutcome) error {
	if outcome == nil {
		return domain.ErrInvalidRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = outcome
	if outcome.IsSafe {
		s.safeCount++
	} else {
		s.unsafeCount++
	}
	s.view = ViewResult
	return nil
}

// ScanAgain goes from the result view back to the scanner
func (s *Session) ScanAgain() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != ViewResult {
		return domain.ErrInvalidRequest
	}
	s.view = ViewScanner
	return nil
}

// Summary builds the home screen overview
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	preview := s.avoid
	if len(preview) > summaryPreviewSize {
		preview = preview[:summaryPreviewSize]
	}
	out := make([]string, len(preview))
	copy(out, preview)

	return Summary{
		AvoidedCount: len(s.avoid),
		Preview:      out,
		More:         len(s.avoid) - len(out),
		CanScan:      len(s.avoid) > 0,
		SafeCount:    s.safeCount,
		UnsafeCount:  s.unsafeCount,
	}
}
