// Package extract is the document-text-extraction boundary: document bytes
// in, plain text out. The generation engine never sees documents, only the
// extracted string.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinUsableLength is the extracted-text length below which a document is
// considered unusable for question generation. Callers must reject shorter
// text before invoking the engine.
const MinUsableLength = 100

// Extractor turns an uploaded document file into plain text. May return
// empty or short text; callers decide usability via MinUsableLength.
type Extractor interface {
	// ExtractText reads the document at path and returns its text content.
	ExtractText(path string) (string, error)

	// Supports reports whether this extractor handles the given file
	// extension (lowercase, with leading dot).
	Supports(ext string) bool
}

// PlainText extracts text from plain-text documents (.txt, .md, .text).
// It normalizes line endings and strips control characters and invalid
// UTF-8 so downstream heuristics see clean prose.
type PlainText struct{}

func (PlainText) Supports(ext string) bool {
	switch ext {
	case ".txt", ".md", ".text":
		return true
	}
	return false
}

func (PlainText) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return Normalize(string(data)), nil
}

// Normalize cleans extracted text: CRLF → LF, invalid UTF-8 and control
// characters (except newline and tab) dropped, outer whitespace trimmed.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ToValidUTF8(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ForFile returns an extractor for the file's extension, or an error when
// no extractor supports it.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	pt := PlainText{}
	if pt.Supports(ext) {
		return pt, nil
	}
	return nil, fmt.Errorf("unsupported document type %q (supported: .txt, .md, .text)", ext)
}

// Usable reports whether extracted text is long enough to generate from.
func Usable(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinUsableLength
}
