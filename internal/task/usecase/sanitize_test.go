package usecase

import "testing"

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"title\":\"Buy milk\"}\n```", `{"title":"Buy milk"}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with prose", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy", `{"a":1}`},
		{"plain object", `  {"a":1}  `, `{"a":1}`},
		{"object with prose", `Sure! {"a":{"b":2}} hope that helps`, `{"a":{"b":2}}`},
		{"no object", "I cannot help", "I cannot help"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeJSONResponse(tt.in); got != tt.want {
				t.Errorf("sanitizeJSONResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
