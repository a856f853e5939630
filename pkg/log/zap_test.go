package log

import (
	"context"
	"testing"
)

func TestSplitKV(t *testing.T) {
	tests := []struct {
		name    string
		arg     []any
		wantMsg string
		wantOK  bool
	}{
		{name: "single message", arg: []any{"hello"}, wantOK: false},
		{name: "message with pairs", arg: []any{"LLM generation successful", "provider", "gemini", "tokens", 10}, wantMsg: "LLM generation successful", wantOK: true},
		{name: "odd pair count", arg: []any{"msg", "key"}, wantOK: false},
		{name: "non-string key", arg: []any{"msg", 1, "v"}, wantOK: false},
		{name: "non-string message", arg: []any{42, "k", "v"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, kv, ok := splitKV(tt.arg)
			if ok != tt.wantOK {
				t.Fatalf("splitKV() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && msg != tt.wantMsg {
				t.Errorf("splitKV() msg = %q, want %q", msg, tt.wantMsg)
			}
			if ok && len(kv) != len(tt.arg)-1 {
				t.Errorf("splitKV() kv len = %d, want %d", len(kv), len(tt.arg)-1)
			}
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("expected req-123, got %q", got)
	}
}

func TestInitDoesNotPanic(t *testing.T) {
	for _, cfg := range []ZapConfig{
		{Level: "debug", Mode: "debug", Encoding: "console", ColorEnabled: true},
		{Level: "info", Mode: "production", Encoding: "json"},
		{Level: "not-a-level", Mode: "production", Encoding: "json"},
	} {
		l := Init(cfg)
		l.Debugf(WithRequestID(context.Background(), "abc"), "debug %d", 1)
		l.Info(context.Background(), "message", "key", "value")
	}
	NewNop().Error(context.Background(), "discarded")
}
