package usecase

import (
	"encoding/json"
	"regexp"
	"strings"
)

const maxSuggestions = 3

// parseSuggestions turns raw provider output into reply candidates: strict
// structured decode first, line splitting as fallback, then dedupe and cap.
// The provider's output format is never trusted.
func parseSuggestions(raw string) []string {
	raw = stripCodeFence(strings.TrimSpace(raw))

	suggestions, ok := parseStrict(raw)
	if !ok {
		suggestions = parseLines(raw)
	}
	return dedupeAndCap(suggestions)
}

// parseStrict accepts {"suggestions": [...]} or a bare JSON string array
func parseStrict(raw string) ([]string, bool) {
	var wrapped struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && len(wrapped.Suggestions) > 0 {
		return wrapped.Suggestions, true
	}

	var bare []string
	if err := json.Unmarshal([]byte(raw), &bare); err == nil && len(bare) > 0 {
		return bare, true
	}
	return nil, false
}

var bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// parseLines splits on line breaks and strips bullet/numbering prefixes and
// wrapping quotes.
func parseLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = bulletPrefix.ReplaceAllString(line, "")
		line = strings.Trim(strings.TrimSpace(line), `"`)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// dedupeAndCap removes case/whitespace-insensitive duplicates and keeps the
// first maxSuggestions.
func dedupeAndCap(suggestions []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, maxSuggestions)
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.Join(strings.Fields(strings.ToLower(s)), " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

var codeFence = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeFence(raw string) string {
	if m := codeFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}
