package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/middleware"
	"ai-task-manager/internal/model"
	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/log"
	"ai-task-manager/pkg/response"
)

type mockUseCase struct {
	err error

	createIn   task.CreateInput
	listIn     task.ListInput
	extractIn  task.ExtractInput
	updateIn   task.UpdateInput
	calendarIn task.CalendarInput
	detailID   int64

	extractOut task.ExtractOutput
	listOut    task.ListOutput
	calOut     task.CalendarOutput
}

var sampleTask = model.Task{
	ID:        7,
	Title:     "Buy milk",
	Status:    model.TaskStatusPending,
	CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
}

func (m *mockUseCase) Create(ctx context.Context, in task.CreateInput) (task.CreateOutput, error) {
	m.createIn = in
	return task.CreateOutput{Task: sampleTask}, m.err
}
func (m *mockUseCase) List(ctx context.Context, in task.ListInput) (task.ListOutput, error) {
	m.listIn = in
	return m.listOut, m.err
}
func (m *mockUseCase) Detail(ctx context.Context, id int64) (task.DetailOutput, error) {
	m.detailID = id
	return task.DetailOutput{Task: sampleTask}, m.err
}
func (m *mockUseCase) Update(ctx context.Context, in task.UpdateInput) (task.UpdateOutput, error) {
	m.updateIn = in
	return task.UpdateOutput{Task: sampleTask}, m.err
}
func (m *mockUseCase) Delete(ctx context.Context, id int64) (task.DeleteOutput, error) {
	m.detailID = id
	return task.DeleteOutput{Task: sampleTask}, m.err
}
func (m *mockUseCase) ExtractAndCreate(ctx context.Context, in task.ExtractInput) (task.ExtractOutput, error) {
	m.extractIn = in
	return m.extractOut, m.err
}
func (m *mockUseCase) Calendar(ctx context.Context, in task.CalendarInput) (task.CalendarOutput, error) {
	m.calendarIn = in
	return m.calOut, m.err
}
func (m *mockUseCase) Digest(ctx context.Context, now time.Time) (task.DigestOutput, error) {
	return task.DigestOutput{}, m.err
}

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func setup(uc *mockUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &handler{
		l:     log.NewNop(),
		uc:    uc,
		dates: datemath.NewParserInLocation(time.UTC),
		now:   func() time.Time { return fixedNow },
	}
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(log.NewNop(), middleware.Config{}))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (response.Resp, map[string]any) {
	t.Helper()
	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	data, _ := resp.Data.(map[string]any)
	return resp, data
}

func TestCreateAI(t *testing.T) {
	due := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	out := sampleTask
	out.DueDate = &due
	out.Description = ptr("No description provided")
	out.Duration = ptr(60)

	uc := &mockUseCase{extractOut: task.ExtractOutput{Task: out, CalendarLink: "https://cal/x"}}
	r := setup(uc)

	w := do(r, http.MethodPost, "/api/v1/tasks/ai", `{"text":"buy milk"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if uc.extractIn.Text != "buy milk" {
		t.Errorf("text not forwarded: %q", uc.extractIn.Text)
	}

	_, data := decode(t, w)
	checks := map[string]any{
		"id":           float64(7),
		"title":        "Buy milk",
		"description":  "No description provided",
		"dueDate":      "2026-03-11T00:00:00Z",
		"duration":     float64(60),
		"status":       "pending",
		"calendarLink": "https://cal/x",
		"createdAt":    "2026-03-10T09:00:00Z",
	}
	for k, want := range checks {
		if data[k] != want {
			t.Errorf("%s = %v, want %v", k, data[k], want)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{"validation", task.NewValidationError("title", "is required"), http.StatusBadRequest, "fields"},
		{"invalid input", errors.Join(task.ErrInvalidInput, errors.New("text is required")), http.StatusBadRequest, "cause"},
		{"not found", task.ErrNotFound, http.StatusNotFound, ""},
		{"malformed", errors.Join(task.ErrMalformedOutput, errors.New("invalid character")), http.StatusBadGateway, "cause"},
		{"generation", errors.Join(task.ErrGeneration, errors.New("timeout")), http.StatusBadGateway, "cause"},
		{"store", errors.Join(task.ErrStore, errors.New("disk full")), http.StatusInternalServerError, "cause"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setup(&mockUseCase{err: tt.err})

			w := do(r, http.MethodPost, "/api/v1/tasks/ai", `{"text":"x"}`)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			resp, _ := decode(t, w)
			if resp.ErrorCode != tt.wantCode {
				t.Errorf("error_code = %d", resp.ErrorCode)
			}
			if tt.wantKey != "" {
				errs, ok := resp.Errors.(map[string]any)
				if !ok {
					t.Fatalf("expected errors object, got %v", resp.Errors)
				}
				if _, ok := errs[tt.wantKey]; !ok {
					t.Errorf("expected %q in errors, got %v", tt.wantKey, errs)
				}
			}
		})
	}
}

func TestCreateAI_BadBody(t *testing.T) {
	uc := &mockUseCase{}
	r := setup(uc)

	for _, body := range []string{`{}`, `{"text":""}`, `not json`} {
		w := do(r, http.MethodPost, "/api/v1/tasks/ai", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
	if uc.extractIn.Text != "" {
		t.Errorf("use case should not be called")
	}
}

func TestCreate(t *testing.T) {
	uc := &mockUseCase{}
	r := setup(uc)

	w := do(r, http.MethodPost, "/api/v1/tasks", `{"title":"Plan","dueDate":"2026-03-12","duration":30,"status":"in_progress"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	in := uc.createIn
	if in.Title != "Plan" || in.Status != model.TaskStatusInProgress || *in.Duration != 30 {
		t.Errorf("unexpected input %+v", in)
	}
	if in.DueDate == nil || !in.DueDate.Equal(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dueDate = %v", in.DueDate)
	}

	w = do(r, http.MethodPost, "/api/v1/tasks", `{"title":"Plan","dueDate":"whenever"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", w.Code)
	}
}

func TestList(t *testing.T) {
	uc := &mockUseCase{listOut: task.ListOutput{Tasks: []model.Task{sampleTask}, Total: 1}}
	r := setup(uc)

	w := do(r, http.MethodGet, "/api/v1/tasks?status=pending&due_from=2026-03-01&due_to=2026-04-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if uc.listIn.Status != model.TaskStatusPending || uc.listIn.DueFrom == nil || uc.listIn.DueTo == nil {
		t.Errorf("filters not forwarded: %+v", uc.listIn)
	}
	_, data := decode(t, w)
	if data["total"] != float64(1) {
		t.Errorf("total = %v", data["total"])
	}

	w = do(r, http.MethodGet, "/api/v1/tasks?due_from=garbage", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad due_from, got %d", w.Code)
	}
}

func TestCalendarRange(t *testing.T) {
	uc := &mockUseCase{}
	r := setup(uc)

	t.Run("explicit inclusive range", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/tasks/calendar?from=2026-03-02&to=2026-03-08", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !uc.calendarIn.From.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) ||
			!uc.calendarIn.To.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("range = [%v, %v)", uc.calendarIn.From, uc.calendarIn.To)
		}
	})

	t.Run("defaults to current month", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/tasks/calendar", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !uc.calendarIn.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) ||
			!uc.calendarIn.To.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("range = [%v, %v)", uc.calendarIn.From, uc.calendarIn.To)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		if w := do(r, http.MethodGet, "/api/v1/tasks/calendar?from=03/02/2026", ""); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestIDRoutes(t *testing.T) {
	uc := &mockUseCase{}
	r := setup(uc)

	for _, path := range []string{"/api/v1/tasks/abc", "/api/v1/tasks/0", "/api/v1/tasks/-3"} {
		if w := do(r, http.MethodGet, path, ""); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d", path, w.Code)
		}
		if w := do(r, http.MethodDelete, path, ""); w.Code != http.StatusBadRequest {
			t.Errorf("DELETE %s: expected 400, got %d", path, w.Code)
		}
	}

	if w := do(r, http.MethodGet, "/api/v1/tasks/7", ""); w.Code != http.StatusOK || uc.detailID != 7 {
		t.Errorf("GET /7: got %d id=%d", w.Code, uc.detailID)
	}

	w := do(r, http.MethodPut, "/api/v1/tasks/7", `{"title":"New","status":"completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT: expected 200, got %d", w.Code)
	}
	if uc.updateIn.ID != 7 || uc.updateIn.Title != "New" || uc.updateIn.DueDate != nil {
		t.Errorf("unexpected update input %+v", uc.updateIn)
	}

	notFound := setup(&mockUseCase{err: task.ErrNotFound})
	if w := do(notFound, http.MethodDelete, "/api/v1/tasks/9", ""); w.Code != http.StatusNotFound {
		t.Errorf("DELETE missing: expected 404, got %d", w.Code)
	}
}

func ptr[T any](v T) *T { return &v }
