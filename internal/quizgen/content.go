package quizgen

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// contentStartSkip is how many leading characters are assumed to hold the
// document title, course code, or date rather than body prose.
const contentStartSkip = 400

// minUsableContent is the isolated-content length below which the fallback
// extractor falls back to the full unisolated text.
const minUsableContent = 100

// isolateContent strips the likely header region from the front of raw
// text. The first line of an extracted document usually carries a title or
// date, and questions built from it are useless. This is a heuristic cut,
// not a parser: the result is always a trimmed suffix of the input and is
// never empty when the input is non-empty.
func isolateContent(text string) string {
	if len(text) < contentStartSkip {
		return strings.TrimSpace(text)
	}
	start := contentStartSkip
	// Prefer starting just past a newline so a word is not cut in half.
	if nl := strings.IndexByte(text[contentStartSkip/2:], '\n'); nl >= 0 {
		nl += contentStartSkip / 2
		if nl < contentStartSkip+200 {
			start = nl + 1
		}
	}
	if out := strings.TrimSpace(text[start:]); out != "" {
		return out
	}
	return strings.TrimSpace(text)
}

// chunkContent splits content into overlapping chunks of at most maxLen
// characters so distinct tiers can draw questions from distinct slices of
// the document. Chunks are truncated at a sentence boundary when one exists
// past the window midpoint.
func chunkContent(text string, maxLen, overlap int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}
	var chunks []string
	start := 0
	for start < len(text) {
		end := start + maxLen
		if end > len(text) {
			end = len(text)
		}
		chunk := text[start:end]
		if p := strings.LastIndexByte(chunk, '.'); p > maxLen/2 {
			chunk = chunk[:p+1]
			end = start + len(chunk)
		}
		chunks = append(chunks, chunk)
		if end >= len(text) {
			break
		}
		start = end - overlap
	}
	return chunks
}

// chunkForTier maps a difficulty to a chunk index. With fewer chunks than
// tiers the mapping wraps, so tiers may share source material.
func chunkForTier(chunks []string, d Difficulty) string {
	return chunks[d.ordinal()%len(chunks)]
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]\s+`)
	numericOnlyRe   = regexp.MustCompile(`^[\d\s:/-]+$`)

	// Assignment and arrow operators, plus definition keywords.
	codeTokenRe = regexp.MustCompile(`(?i)←|:=|=>|->|\bdef\s+\w|\bfunction\s*\(`)
	// Leading identifier with parenthesized args and a trailing colon,
	// e.g. "Merge(L, R):".
	codeShapeRe = regexp.MustCompile(`^\s*\w+\s*\([^)]*\)\s*:`)
)

// looksLikeCode reports whether a fragment reads more like source code or
// pseudocode than prose. A cheap lexical filter: false positives and
// negatives are acceptable.
func looksLikeCode(s string) bool {
	if len(s) < 10 {
		return true
	}
	if codeTokenRe.MatchString(s) {
		return true
	}
	if codeShapeRe.MatchString(s) {
		return true
	}
	sym := 0
	for _, c := range s {
		switch c {
		case '(', ')', '[', ']', '{', '}', '=', '<', '>':
			sym++
		}
	}
	return sym >= 3 || (sym >= 2 && len(s) < 60)
}

// extractSentences pulls substantive prose sentences out of raw text for
// the fallback path, in document order. Fragments shorter than minLen,
// purely numeric fragments, and code-like fragments are dropped. When the
// strict pass keeps fewer than 5 sentences the length filter is relaxed
// (the code filter stays) and more fragments are appended up to the cap.
func extractSentences(text string, minLen, maxSentences int) []string {
	content := isolateContent(text)
	if len(content) < minUsableContent {
		content = strings.TrimSpace(text)
	}

	var raw []string
	for _, s := range sentenceSplitRe.Split(content, -1) {
		if s = strings.TrimSpace(s); s != "" {
			raw = append(raw, s)
		}
	}

	var out []string
	for _, s := range raw {
		if len(out) >= maxSentences {
			break
		}
		if len(s) < minLen || numericOnlyRe.MatchString(s) || looksLikeCode(s) {
			continue
		}
		out = append(out, s)
	}

	if len(out) < 5 {
		kept := make(map[string]bool, len(out))
		for _, s := range out {
			kept[s] = true
		}
		for _, s := range raw {
			if len(out) >= maxSentences {
				break
			}
			if kept[s] || looksLikeCode(s) {
				continue
			}
			kept[s] = true
			out = append(out, s)
		}
	}
	return out
}

// cleanOptionText turns an arbitrary-length sentence into a display-ready
// option capped at maxLen characters, preferring a sentence or clause
// boundary over a hard cut.
func cleanOptionText(sentence string, maxLen int) string {
	s := strings.TrimSpace(sentence)
	if len(s) <= maxLen {
		return s
	}
	for _, sep := range []string{". ", ", "} {
		if idx := indexBetween(s, sep, 20, maxLen+20); idx > 30 {
			return strings.TrimSpace(s[:idx+1])
		}
	}
	// Hard cut: back up to a rune boundary so a multibyte rune is never
	// split.
	cut := maxLen - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + "…"
}

// indexBetween returns the index of the first occurrence of sep that lies
// fully within s[from:to], or -1.
func indexBetween(s, sep string, from, to int) int {
	if from >= len(s) {
		return -1
	}
	if to > len(s) {
		to = len(s)
	}
	i := strings.Index(s[from:to], sep)
	if i < 0 {
		return -1
	}
	return from + i
}
