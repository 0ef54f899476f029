package timerange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"timerange/models"
	"timerange/timeline"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Defaults fill the fields a SessionRequest leaves out.
type Defaults struct {
	Step        time.Duration
	TicksNumber int
	Location    *time.Location
	// MaxSessions bounds the live sessions; zero means unbounded.
	MaxSessions int
}

type session struct {
	mu         sync.Mutex
	id         string
	calendarID string
	ctrl       *timeline.Controller
	lastSeen   time.Time

	// extra intervals supplied with the request, kept for refreshes
	requested []timeline.Interval

	// filled by the controller callbacks
	update timeline.Update
	change [2]time.Time
}

// DefaultSessionService keeps sessions in memory. Events of one session are
// serialized; distinct sessions proceed independently.
type DefaultSessionService struct {
	Blocked  BlockedService
	Defaults Defaults
	Logger   *zap.Logger
	Now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessionService(blocked BlockedService, defaults Defaults, logger *zap.Logger) *DefaultSessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSessionService{
		Blocked:  blocked,
		Defaults: defaults,
		Logger:   logger,
		Now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (s *DefaultSessionService) now() time.Time {
	loc := s.Defaults.Location
	if loc == nil {
		loc = time.Local
	}
	return s.Now().In(loc)
}

// CreateSession opens a picker. Blocked intervals of the request's calendar
// are loaded for the timeline window and combined with the request's own.
func (s *DefaultSessionService) CreateSession(ctx context.Context, req models.SessionRequest) (*models.SessionView, error) {
	now := s.now()
	opts := timeline.DefaultOptions(now)
	opts.Logger = s.Logger

	if len(req.TimelineInterval) == 2 {
		opts.Timeline = timeline.Interval{Start: req.TimelineInterval[0], End: req.TimelineInterval[1]}.In(now.Location())
		// the current hour may lie outside a custom timeline
		opts.Selected = timeline.Interval{}
	}
	if len(req.SelectedInterval) == 2 {
		opts.Selected = timeline.Interval{Start: req.SelectedInterval[0], End: req.SelectedInterval[1]}.In(now.Location())
	}
	opts.Step = s.Defaults.Step
	if req.Step != 0 {
		opts.Step = time.Duration(req.Step) * time.Millisecond
	}
	opts.TicksNumber = s.Defaults.TicksNumber
	if req.TicksNumber > 0 {
		opts.TicksNumber = req.TicksNumber
	}
	opts.Disabled = req.Disabled
	if layout := req.LabelLayout; layout != "" {
		opts.Format = func(t time.Time) string { return t.Format(layout) }
	}

	sess := &session{
		id:         uuid.New().String(),
		calendarID: req.CalendarID,
		requested:  req.DisabledIntervals,
		lastSeen:   now,
	}
	blocked, err := s.loadBlocked(ctx, sess, opts.Timeline)
	if err != nil {
		return nil, err
	}
	opts.DisabledIntervals = blocked
	opts.OnUpdate = func(u timeline.Update) { sess.update = u }
	opts.OnChange = func(iv [2]time.Time) { sess.change = iv }

	ctrl, err := timeline.NewController(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	sess.ctrl = ctrl

	s.mu.Lock()
	if limit := s.Defaults.MaxSessions; limit > 0 && len(s.sessions) >= limit {
		s.mu.Unlock()
		return nil, ErrTooManySessions
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.Logger.Debug("session created",
		zap.String("sessionID", sess.id),
		zap.String("calendarID", sess.calendarID),
		zap.Int("blocked", len(blocked)))
	return view(sess), nil
}

func (s *DefaultSessionService) loadBlocked(ctx context.Context, sess *session, window timeline.Interval) ([]timeline.Interval, error) {
	blocked := append([]timeline.Interval(nil), sess.requested...)
	if sess.calendarID == "" || s.Blocked == nil {
		return blocked, nil
	}
	stored, err := s.Blocked.ListBlocked(ctx, sess.calendarID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	for _, b := range stored {
		blocked = append(blocked, b.Interval())
	}
	return blocked, nil
}

// acquire looks up a session and locks it. The caller must unlock.
func (s *DefaultSessionService) acquire(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.mu.Lock()
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *DefaultSessionService) GetSession(id string) (*models.SessionView, error) {
	sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()
	return view(sess), nil
}

// RefreshSession reloads the calendar's blocked intervals into the session.
func (s *DefaultSessionService) RefreshSession(ctx context.Context, id string) (*models.SessionView, error) {
	sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	domain := sess.ctrl.Timeline()
	blocked, err := s.loadBlocked(ctx, sess, domain)
	if err != nil {
		return nil, err
	}
	if err := sess.ctrl.Reconfigure(domain, blocked); err != nil {
		return nil, err
	}
	return view(sess), nil
}

func (s *DefaultSessionService) DragStart(id string) (*models.SessionView, error) {
	sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if err := sess.ctrl.DragStart(); err != nil {
		return nil, err
	}
	return view(sess), nil
}

// DragMove forwards an intermediate position and returns the update the
// controller emitted for it.
func (s *DefaultSessionService) DragMove(id string, start, end int64) (timeline.Update, error) {
	sess, err := s.acquire(id)
	if err != nil {
		return timeline.Update{}, err
	}
	defer sess.mu.Unlock()

	if _, err := sess.ctrl.Move(start, end); err != nil {
		return timeline.Update{}, err
	}
	return sess.update, nil
}

func (s *DefaultSessionService) DragEnd(id string) (*models.ChangeEvent, error) {
	sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if _, err := sess.ctrl.DragEnd(); err != nil {
		return nil, err
	}
	s.Logger.Debug("selection committed",
		zap.String("sessionID", sess.id),
		zap.Time("start", sess.change[0]),
		zap.Time("end", sess.change[1]),
		zap.Bool("invalid", sess.ctrl.Invalid()))
	return &models.ChangeEvent{Interval: sess.change}, nil
}

// Hover returns the tooltip for the pointer at percent along the rail.
func (s *DefaultSessionService) Hover(id string, percent float64) (*models.HoverResponse, error) {
	sess, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	p, ok := sess.ctrl.Hover(percent)
	if !ok {
		return &models.HoverResponse{}, nil
	}
	return &models.HoverResponse{
		Visible: true,
		Point:   p,
		Label:   sess.ctrl.Label(p.Value),
	}, nil
}

func (s *DefaultSessionService) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *DefaultSessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were dropped.
func (s *DefaultSessionService) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *DefaultSessionService) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(maxIdle); n > 0 {
					s.Logger.Info("expired idle sessions", zap.Int("count", n))
				}
			}
		}
	}()
}

func view(sess *session) *models.SessionView {
	return &models.SessionView{
		ID:         sess.id,
		CalendarID: sess.calendarID,
		Model:      sess.ctrl.Model(),
	}
}
