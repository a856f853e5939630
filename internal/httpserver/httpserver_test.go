package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"ai-task-manager/internal/middleware"
	"ai-task-manager/internal/task"
	"ai-task-manager/pkg/datemath"
	"ai-task-manager/pkg/log"
)

type stubUseCase struct {
	task.UseCase
}

func (stubUseCase) List(ctx context.Context, in task.ListInput) (task.ListOutput, error) {
	return task.ListOutput{}, nil
}

type stubTelegram struct{}

func (stubTelegram) HandleWebhook(c *gin.Context) { c.String(http.StatusOK, "tg") }

func newTestServer(t *testing.T, cfg Config) *HTTPServer {
	t.Helper()
	cfg.Mode = gin.TestMode
	cfg.Port = 8080
	cfg.TaskUseCase = stubUseCase{}
	cfg.DateMath = datemath.NewParserInLocation(time.UTC)

	srv, err := New(log.NewNop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func serve(srv *HTTPServer, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, req)
	return w
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing mode", Config{Port: 1, TaskUseCase: stubUseCase{}, DateMath: datemath.NewParserInLocation(nil)}},
		{"missing port", Config{Mode: gin.TestMode, TaskUseCase: stubUseCase{}, DateMath: datemath.NewParserInLocation(nil)}},
		{"missing use case", Config{Mode: gin.TestMode, Port: 1, DateMath: datemath.NewParserInLocation(nil)}},
		{"missing parser", Config{Mode: gin.TestMode, Port: 1, TaskUseCase: stubUseCase{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(log.NewNop(), tt.cfg); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, Config{})

	for _, path := range []string{"/health", "/live", "/ready"} {
		w := serve(srv, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: got %d", path, w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing request id header", path)
		}
	}
}

func TestReadyCheckPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	srv := newTestServer(t, Config{DB: db})

	mock.ExpectPing()
	if w := serve(srv, http.MethodGet, "/ready", nil); w.Code != http.StatusOK {
		t.Errorf("healthy db: got %d", w.Code)
	}

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w := serve(srv, http.MethodGet, "/ready", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("failing db: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "database unavailable") {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestTaskRoutesRegistered(t *testing.T) {
	srv := newTestServer(t, Config{})

	if w := serve(srv, http.MethodGet, "/api/v1/tasks", nil); w.Code != http.StatusOK {
		t.Errorf("GET /api/v1/tasks: got %d", w.Code)
	}
}

func TestTelegramWebhookRoute(t *testing.T) {
	t.Run("absent without handler", func(t *testing.T) {
		srv := newTestServer(t, Config{})
		if w := serve(srv, http.MethodPost, "/webhook/telegram", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("open without secret", func(t *testing.T) {
		srv := newTestServer(t, Config{TelegramHandler: stubTelegram{}})
		if w := serve(srv, http.MethodPost, "/webhook/telegram", nil); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("secret enforced", func(t *testing.T) {
		srv := newTestServer(t, Config{
			TelegramHandler: stubTelegram{},
			Middleware:      middleware.Config{TelegramSecret: "s3cret"},
		})

		if w := serve(srv, http.MethodPost, "/webhook/telegram", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("missing secret: expected 401, got %d", w.Code)
		}
		w := serve(srv, http.MethodPost, "/webhook/telegram", map[string]string{middleware.HeaderTelegramSecret: "s3cret"})
		if w.Code != http.StatusOK {
			t.Errorf("valid secret: expected 200, got %d", w.Code)
		}
	})
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, Config{})
	srv.port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
