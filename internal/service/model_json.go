package service

import "strings"

// stripCodeFences removes a surrounding markdown code fence from model
// output. Providers occasionally wrap the payload in ```json blocks even when
// a JSON response format was requested.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
