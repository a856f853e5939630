package llmprovider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	failures  int // number of calls that fail before succeeding; -1 fails forever
	text      string
	delay     time.Duration
	callCount int
	lastReq   *Request
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	m.lastReq = req
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.failures < 0 || m.callCount <= m.failures {
		return nil, errors.New("mock provider error")
	}
	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: m.text}}},
		ProviderName: m.name,
		ModelName:    m.model,
		Usage:        &Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	mu           sync.Mutex
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) record(dst *[]string, arg []any) {
	if len(arg) == 0 {
		return
	}
	if msg, ok := arg[0].(string); ok {
		m.mu.Lock()
		*dst = append(*dst, msg)
		m.mu.Unlock()
	}
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     { m.record(&m.infoMessages, arg) }
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     { m.record(&m.warnMessages, arg) }
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func TestGenerateContent(t *testing.T) {
	tests := []struct {
		name          string
		providers     []*mockProvider
		config        Config
		wantErr       error
		wantProvider  string
		wantCalls     []int
		wantWarnCount int
	}{
		{
			name:         "primary succeeds",
			providers:    []*mockProvider{{name: "primary", text: "ok"}},
			config:       Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Millisecond},
			wantProvider: "primary",
			wantCalls:    []int{1},
		},
		{
			name:         "retry recovers primary",
			providers:    []*mockProvider{{name: "primary", failures: 1, text: "ok"}},
			config:       Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond},
			wantProvider: "primary",
			wantCalls:    []int{2},
		},
		{
			name: "fallback to secondary",
			providers: []*mockProvider{
				{name: "primary", failures: -1},
				{name: "secondary", text: "ok"},
			},
			config:        Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond},
			wantProvider:  "secondary",
			wantCalls:     []int{2, 1},
			wantWarnCount: 1,
		},
		{
			name: "all providers fail",
			providers: []*mockProvider{
				{name: "primary", failures: -1},
				{name: "secondary", failures: -1},
			},
			config:        Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond},
			wantErr:       ErrAllProvidersFailed,
			wantCalls:     []int{2, 2},
			wantWarnCount: 2,
		},
		{
			name: "no fallback when disabled",
			providers: []*mockProvider{
				{name: "primary", failures: -1},
				{name: "secondary", text: "ok"},
			},
			config:        Config{FallbackEnabled: false, RetryAttempts: 2, RetryDelay: time.Millisecond},
			wantErr:       ErrAllProvidersFailed,
			wantCalls:     []int{2, 0},
			wantWarnCount: 1,
		},
		{
			name:          "empty text counts as failure",
			providers:     []*mockProvider{{name: "primary", text: ""}},
			config:        Config{RetryAttempts: 1},
			wantErr:       ErrEmptyResponse,
			wantCalls:     []int{1},
			wantWarnCount: 1,
		},
		{
			name:         "zero retry attempts still calls once",
			providers:    []*mockProvider{{name: "primary", text: "ok"}},
			config:       Config{},
			wantProvider: "primary",
			wantCalls:    []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers := make([]Provider, len(tt.providers))
			for i, p := range tt.providers {
				providers[i] = p
			}
			logger := &mockLogger{}
			cfg := tt.config
			manager := NewManager(providers, &cfg, logger)

			resp, err := manager.GenerateContent(context.Background(), UserPrompt("Hello"))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if resp != nil {
					t.Errorf("expected nil response, got %+v", resp)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if resp.ProviderName != tt.wantProvider {
					t.Errorf("provider = %s, want %s", resp.ProviderName, tt.wantProvider)
				}
				if len(logger.infoMessages) != 1 {
					t.Errorf("expected 1 info log, got %d", len(logger.infoMessages))
				}
			}

			for i, want := range tt.wantCalls {
				if got := tt.providers[i].callCount; got != want {
					t.Errorf("provider %s called %d times, want %d", tt.providers[i].name, got, want)
				}
			}
			if len(logger.warnMessages) != tt.wantWarnCount {
				t.Errorf("warn logs = %d, want %d", len(logger.warnMessages), tt.wantWarnCount)
			}
		})
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, &Config{RetryAttempts: 3}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), UserPrompt("Hello"))
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

// nilProvider returns neither a response nor an error.
type nilProvider struct{ calls int }

func (n *nilProvider) GenerateContent(context.Context, *Request) (*Response, error) {
	n.calls++
	return nil, nil
}

func (n *nilProvider) Name() string  { return "nil" }
func (n *nilProvider) Model() string { return "nil-model" }

func TestGenerateContent_NilResponse(t *testing.T) {
	broken := &nilProvider{}
	backup := &mockProvider{name: "backup", text: "ok"}
	logger := &mockLogger{}
	manager := NewManager([]Provider{broken, backup}, &Config{FallbackEnabled: true, RetryAttempts: 1}, logger)

	resp, err := manager.GenerateContent(context.Background(), UserPrompt("Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProviderName != "backup" {
		t.Errorf("provider = %s, want backup", resp.ProviderName)
	}
	if broken.calls != 1 {
		t.Errorf("nil provider called %d times, want 1", broken.calls)
	}

	alone := NewManager([]Provider{&nilProvider{}}, &Config{RetryAttempts: 1}, &mockLogger{})
	resp, err = alone.GenerateContent(context.Background(), UserPrompt("Hello"))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("error = %v, want ErrEmptyResponse", err)
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", text: "late", delay: time.Second}
	second := &mockProvider{name: "second", text: "ok"}
	manager := NewManager([]Provider{slow, second}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   1,
		MaxTotalTimeout: 20 * time.Millisecond,
	}, &mockLogger{})

	start := time.Now()
	_, err := manager.GenerateContent(context.Background(), UserPrompt("Hello"))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("timeout not enforced, took %v", time.Since(start))
	}
	if second.callCount != 0 {
		t.Errorf("second provider should not run after the deadline, got %d calls", second.callCount)
	}
}

func TestGenerate(t *testing.T) {
	p := &mockProvider{name: "primary", text: `{"title":"x"}`}
	manager := NewManager([]Provider{p}, &Config{RetryAttempts: 1}, &mockLogger{})

	text, err := manager.Generate(context.Background(), "prompt",
		WithTemperature(0.3), WithMaxTokens(512), WithJSONMode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"title":"x"}` {
		t.Errorf("text = %q", text)
	}

	req := p.lastReq
	if req.Temperature != 0.3 || req.MaxTokens != 512 || !req.JSONMode {
		t.Errorf("options not applied: %+v", req)
	}
	if req.Messages[0].Text() != "prompt" || req.Messages[0].Role != "user" {
		t.Errorf("unexpected message: %+v", req.Messages[0])
	}
}

func TestGenerator(t *testing.T) {
	p := &mockProvider{name: "primary", text: "hello"}
	manager := NewManager([]Provider{p}, &Config{RetryAttempts: 1}, &mockLogger{})
	gen := NewGenerator(manager, WithJSONMode(), WithMaxTokens(64))

	text, err := gen.Generate(context.Background(), "hi")
	if err != nil || text != "hello" {
		t.Fatalf("Generate() = %q, %v", text, err)
	}
	if !p.lastReq.JSONMode || p.lastReq.MaxTokens != 64 {
		t.Errorf("bound options not applied: %+v", p.lastReq)
	}
}
