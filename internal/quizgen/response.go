package quizgen

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// unwrapEnvelope extracts the inner text from a structured completion
// envelope (a JSON object with a choices list carrying a "messages" string
// or a "message" field). Anything else is returned as-is, trimmed. The
// decode is a two-way branch: structured envelope or plain text, no other
// coercion.
func unwrapEnvelope(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "{") {
		return s
	}
	var env struct {
		Choices []struct {
			Messages string          `json:"messages"`
			Message  json.RawMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(s), &env); err != nil || len(env.Choices) == 0 {
		return s
	}
	c := env.Choices[0]
	if c.Messages != "" {
		return strings.TrimSpace(c.Messages)
	}
	if len(c.Message) > 0 {
		var msg struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(c.Message, &msg); err == nil && msg.Content != "" {
			return strings.TrimSpace(msg.Content)
		}
		var plain string
		if err := json.Unmarshal(c.Message, &plain); err == nil && plain != "" {
			return strings.TrimSpace(plain)
		}
	}
	return s
}

// decodeCandidates parses raw model output into a list of candidate
// question items. It unwraps a structured envelope if present, then parses
// the first greedy [...] region (or, absent one, the whole text) as JSON.
func decodeCandidates(raw string) ([]any, FailureKind, error) {
	text := unwrapEnvelope(raw)

	jsonStr := text
	if i := strings.IndexByte(text, '['); i >= 0 {
		if j := strings.LastIndexByte(text, ']'); j > i {
			jsonStr = text[i : j+1]
		}
	}

	var parsed any
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, FailParse, err
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, FailShape, fmt.Errorf("got %T", parsed)
	}
	return items, "", nil
}

// validateCandidate checks one parsed item against the output contract:
// object shape with question and options keys, exactly 4 options that stay
// pairwise distinct after stringify+trim, and a correct_answer that
// resolves to a letter. Rejected candidates are skipped, not fatal.
func validateCandidate(item any) (text string, options []string, correctIndex int, ok bool) {
	m, isMap := item.(map[string]any)
	if !isMap {
		return "", nil, 0, false
	}
	rawQuestion, hasQuestion := m["question"]
	rawOptions, hasOptions := m["options"]
	if !hasQuestion || !hasOptions {
		return "", nil, 0, false
	}

	list, isList := rawOptions.([]any)
	if !isList || len(list) != 4 {
		return "", nil, 0, false
	}
	options = make([]string, 4)
	seen := make(map[string]bool, 4)
	for i, o := range list {
		options[i] = strings.TrimSpace(stringify(o))
		seen[options[i]] = true
	}
	if len(seen) < 4 {
		return "", nil, 0, false
	}

	correctIndex, ok = resolveCorrectIndex(m["correct_answer"])
	if !ok {
		return "", nil, 0, false
	}

	return stringify(rawQuestion), options, correctIndex, true
}

// resolveCorrectIndex normalizes a correct_answer value to a 0-based option
// index. Letters A-D are accepted directly; anything else is interpreted as
// a 1-based numeric index when possible.
func resolveCorrectIndex(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		if val == math.Trunc(val) {
			idx := int(val) - 1
			if idx >= 0 && idx < 4 {
				return idx, true
			}
		}
		return 0, false
	case string:
		letter := strings.ToUpper(strings.TrimSpace(val))
		for i, l := range letters {
			if letter == l {
				return i, true
			}
		}
		if n, err := strconv.Atoi(letter); err == nil {
			idx := n - 1
			if idx >= 0 && idx < 4 {
				return idx, true
			}
		}
	}
	return 0, false
}

// stringify renders an arbitrary decoded JSON value as option text.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
