package usecase

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// sanitizeJSONResponse strips markdown code fences around a model reply.
// Without a fence the text is cut to its outermost JSON object.
func sanitizeJSONResponse(raw string) string {
	raw = strings.TrimSpace(raw)

	if m := codeFenceRe.FindStringSubmatch(raw); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}

	return raw
}
