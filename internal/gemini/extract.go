package gemini

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("gemini: no JSON object in response")

// ExtractJSON pulls the JSON object out of model output that may be wrapped in
// markdown fences or surrounded by prose.
func ExtractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		// a fence on one line keeps its content; the brace scan below skips the backticks
		if lines := strings.Split(s, "\n"); len(lines) > 1 {
			lines = lines[1:]
			if n := len(lines); strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
				lines = lines[:n-1]
			}
			s = strings.TrimSpace(strings.Join(lines, "\n"))
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

// DecodeJSON extracts and unmarshals the JSON object in text into v.
func DecodeJSON(text string, v any) error {
	obj, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(obj), v)
}
