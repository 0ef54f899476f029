package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timerange/models"
	"timerange/services/timerange"
	"timerange/timeline"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.June, 3, hour, min, 0, 0, time.UTC)
}

type stubBlocked struct {
	blocks []models.BlockedInterval
}

func (s *stubBlocked) AddBlocked(ctx context.Context, calendarID string, req models.CreateBlockedRequest) (*models.BlockedInterval, error) {
	b := models.BlockedInterval{ID: "b-new", CalendarID: calendarID, Start: req.Start, End: req.End, Reason: req.Reason}
	s.blocks = append(s.blocks, b)
	return &b, nil
}

func (s *stubBlocked) ListBlocked(ctx context.Context, calendarID string, from, to time.Time) ([]models.BlockedInterval, error) {
	var out []models.BlockedInterval
	for _, b := range s.blocks {
		if b.CalendarID == calendarID && b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBlocked) DeleteBlocked(ctx context.Context, calendarID, blockID string) error {
	for i, b := range s.blocks {
		if b.CalendarID == calendarID && b.ID == blockID {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return nil
		}
	}
	return timerange.ErrBlockNotFound
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubBlocked) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blocked := &stubBlocked{}
	sessions := timerange.NewSessionService(blocked, timerange.Defaults{
		Step:        30 * time.Minute,
		TicksNumber: 10,
		Location:    time.UTC,
	}, nil)
	sessions.Now = func() time.Time { return at(10, 20) }

	hb := NewHandlerBundle(NewSessionHandler(sessions), NewBlockedHandler(blocked), HealthHandler)
	r := gin.New()
	r.POST("/api/sessions", hb.CreateSession)
	r.GET("/api/sessions/:sessionID", hb.GetSession)
	r.POST("/api/sessions/:sessionID/refresh", hb.RefreshSession)
	r.GET("/api/sessions/:sessionID/hover", hb.Hover)
	r.DELETE("/api/sessions/:sessionID", hb.DeleteSession)
	r.POST("/api/sessions/:sessionID/drag/start", hb.DragStart)
	r.POST("/api/sessions/:sessionID/drag/move", hb.DragMove)
	r.POST("/api/sessions/:sessionID/drag/end", hb.DragEnd)
	r.POST("/api/calendars/:calendarID/blocked", hb.CreateBlocked)
	r.GET("/api/calendars/:calendarID/blocked", hb.ListBlocked)
	r.DELETE("/api/calendars/:calendarID/blocked/:blockID", hb.DeleteBlocked)
	r.GET("/api/ticks", hb.Ticks)
	r.GET("/health", hb.Health)
	return r, blocked
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestSessionDragFlow(t *testing.T) {
	r, blocked := newTestRouter(t)
	blocked.blocks = []models.BlockedInterval{{ID: "b1", CalendarID: "room-1", Start: at(12, 0), End: at(13, 0)}}

	w := do(t, r, http.MethodPost, "/api/sessions", models.SessionRequest{
		CalendarID:       "room-1",
		TimelineInterval: []time.Time{at(8, 0), at(18, 0)},
		SelectedInterval: []time.Time{at(9, 0), at(10, 0)},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}
	view := decode[models.SessionView](t, w)
	if got, want := view.Model.Domain, [2]int64{timeline.Value(at(8, 0)), timeline.Value(at(18, 0))}; got != want {
		t.Errorf("domain = %v, want %v", got, want)
	}
	if len(view.Model.Blocked) != 1 || view.Model.Blocked[0].ID != "blocked-track-0" {
		t.Errorf("blocked = %+v", view.Model.Blocked)
	}
	base := "/api/sessions/" + view.ID

	move := func(start, end time.Time) *httptest.ResponseRecorder {
		return do(t, r, http.MethodPost, base+"/drag/move", models.DragMoveRequest{
			Values: []int64{timeline.Value(start), timeline.Value(end)},
		})
	}

	if w := move(at(9, 0), at(10, 0)); w.Code != http.StatusConflict {
		t.Errorf("move before start: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, base+"/drag/start", nil); w.Code != http.StatusOK {
		t.Fatalf("start: %d %s", w.Code, w.Body)
	}

	w = move(at(11, 0), at(12, 30))
	if w.Code != http.StatusOK {
		t.Fatalf("move: %d %s", w.Code, w.Body)
	}
	if u := decode[timeline.Update](t, w); !u.Error {
		t.Error("overlapping move reported valid")
	}
	if u := decode[timeline.Update](t, move(at(13, 0), at(14, 0))); u.Error {
		t.Error("move after the block reported invalid")
	}

	w = do(t, r, http.MethodPost, base+"/drag/end", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end: %d %s", w.Code, w.Body)
	}
	change := decode[models.ChangeEvent](t, w)
	want := [2]time.Time{at(13, 0), at(14, 0)}
	if diff := cmp.Diff(want, change.Interval); diff != "" {
		t.Errorf("committed interval (-want +got):\n%s", diff)
	}

	if w := do(t, r, http.MethodPost, base+"/drag/end", nil); w.Code != http.StatusConflict {
		t.Errorf("second end: %d", w.Code)
	}
}

func TestSessionBadMoveBody(t *testing.T) {
	r, _ := newTestRouter(t)
	view := decode[models.SessionView](t, do(t, r, http.MethodPost, "/api/sessions", models.SessionRequest{}))
	w := do(t, r, http.MethodPost, "/api/sessions/"+view.ID+"/drag/move", gin.H{"values": []int64{1}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestSessionHover(t *testing.T) {
	r, _ := newTestRouter(t)
	view := decode[models.SessionView](t, do(t, r, http.MethodPost, "/api/sessions", models.SessionRequest{
		TimelineInterval: []time.Time{at(8, 0), at(18, 0)},
	}))
	base := "/api/sessions/" + view.ID

	w := do(t, r, http.MethodGet, base+"/hover?percent=50", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("hover: %d %s", w.Code, w.Body)
	}
	hover := decode[models.HoverResponse](t, w)
	if !hover.Visible || hover.Label != "13:00" || hover.Point.Value != timeline.Value(at(13, 0)) {
		t.Errorf("hover = %+v", hover)
	}

	if w := do(t, r, http.MethodGet, base+"/hover?percent=abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad percent: %d", w.Code)
	}
}

func TestSessionInvalidTimeline(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/sessions", models.SessionRequest{
		TimelineInterval: []time.Time{at(18, 0), at(8, 0)},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400: %s", w.Code, w.Body)
	}
}

func TestSessionTooManyTicks(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/sessions", models.SessionRequest{TicksNumber: timeline.MaxTicksNumber + 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400: %s", w.Code, w.Body)
	}
}

func TestSessionLifecycle(t *testing.T) {
	r, blocked := newTestRouter(t)
	view := decode[models.SessionView](t, do(t, r, http.MethodPost, "/api/sessions", models.SessionRequest{CalendarID: "room-1"}))
	base := "/api/sessions/" + view.ID

	if w := do(t, r, http.MethodGet, base, nil); w.Code != http.StatusOK {
		t.Errorf("get: %d", w.Code)
	}

	blocked.blocks = append(blocked.blocks, models.BlockedInterval{ID: "b1", CalendarID: "room-1", Start: at(15, 0), End: at(16, 0)})
	w := do(t, r, http.MethodPost, base+"/refresh", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: %d %s", w.Code, w.Body)
	}
	if got := decode[models.SessionView](t, w); len(got.Model.Blocked) != 1 {
		t.Errorf("blocked after refresh = %+v", got.Model.Blocked)
	}

	if w := do(t, r, http.MethodDelete, base, nil); w.Code != http.StatusOK {
		t.Errorf("delete: %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, base, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, base+"/drag/start", nil); w.Code != http.StatusNotFound {
		t.Errorf("start after delete: %d", w.Code)
	}
}

func TestBlockedHandlers(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/calendars/room-1/blocked", models.CreateBlockedRequest{
		Start: at(12, 0), End: at(13, 0), Reason: "lunch",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodGet, "/api/calendars/room-1/blocked?from=2024-06-03T00:00:00Z&to=2024-06-04T00:00:00Z", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body)
	}
	list := decode[struct {
		Blocked []models.BlockedInterval `json:"blocked"`
	}](t, w)
	if len(list.Blocked) != 1 || list.Blocked[0].Reason != "lunch" {
		t.Errorf("blocked = %+v", list.Blocked)
	}

	w = do(t, r, http.MethodGet, "/api/calendars/room-2/blocked?from=2024-06-03T00:00:00Z&to=2024-06-04T00:00:00Z", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"blocked":[]`)) {
		t.Errorf("empty list: %d %s", w.Code, w.Body)
	}

	if w := do(t, r, http.MethodGet, "/api/calendars/room-1/blocked?from=yesterday", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad from: %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/calendars/room-1/blocked/b-new", nil); w.Code != http.StatusOK {
		t.Errorf("delete: %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/calendars/room-1/blocked/b-new", nil); w.Code != http.StatusNotFound {
		t.Errorf("delete missing: %d", w.Code)
	}
}

func TestTicksHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/ticks?start=2024-06-03T00:00:00Z&end=2024-06-03T12:00:00Z&count=12", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ticks: %d %s", w.Code, w.Body)
	}
	got := decode[struct {
		Ticks []timeline.Tick `json:"ticks"`
	}](t, w)
	if len(got.Ticks) != 13 {
		t.Fatalf("got %d ticks, want 13", len(got.Ticks))
	}
	first, last := got.Ticks[0], got.Ticks[12]
	if first.Label != "00:00" || first.Percent != 0 || last.Label != "12:00" || last.Percent != 100 {
		t.Errorf("first = %+v, last = %+v", first, last)
	}

	tests := []struct {
		name, query string
		code        int
	}{
		{"missing start", "end=2024-06-03T12:00:00Z", http.StatusBadRequest},
		{"bad count", "start=2024-06-03T00:00:00Z&end=2024-06-03T12:00:00Z&count=x", http.StatusBadRequest},
		{"reversed", "start=2024-06-03T12:00:00Z&end=2024-06-03T00:00:00Z", http.StatusBadRequest},
		{"count above cap", "start=2024-06-03T00:00:00Z&end=2024-06-04T00:00:00Z&count=1001", http.StatusBadRequest},
		{"huge count", "start=1970-01-01T00:00:00Z&end=2100-01-01T00:00:00Z&count=1000000000", http.StatusBadRequest},
		{"count at cap", "start=2024-06-03T00:00:00Z&end=2024-06-04T00:00:00Z&count=1000", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodGet, "/api/ticks?"+tt.query, nil); w.Code != tt.code {
				t.Errorf("got %d, want %d", w.Code, tt.code)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{timerange.ErrSessionNotFound, http.StatusNotFound},
		{&timeline.DomainError{Start: at(1, 0), End: at(1, 0)}, http.StatusBadRequest},
		{timeline.ErrDisabled, http.StatusConflict},
		{timeline.ErrTooManyTicks, http.StatusBadRequest},
		{timerange.ErrTooManySessions, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
