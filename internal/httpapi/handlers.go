package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/quizforge/internal/extract"
	"github.com/abhisek/quizforge/internal/quizgen"
)

// maxUploadBytes caps multipart document uploads.
const maxUploadBytes = 32 << 20

// previewLen is how much extracted text the upload endpoint echoes back.
const previewLen = 500

type generateRequest struct {
	Text      string `json:"text"`
	NumEasy   *int   `json:"num_easy"`
	NumMedium *int   `json:"num_medium"`
	NumHard   *int   `json:"num_hard"`
}

type questionResponse struct {
	Questions      []quizgen.Question `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

type uploadResponse struct {
	Filename    string `json:"filename"`
	TextLength  int    `json:"text_length"`
	TextPreview string `json:"text_preview"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "QuizForge API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleHealthImpacts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[quizgen.Difficulty]quizgen.HealthImpact{
		quizgen.Easy:   quizgen.HealthImpactFor(quizgen.Easy),
		quizgen.Medium: quizgen.HealthImpactFor(quizgen.Medium),
		quizgen.Hard:   quizgen.HealthImpactFor(quizgen.Hard),
	})
}

// handleGenerate generates a question batch from already-extracted text.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if !extract.Usable(req.Text) {
		writeError(w, http.StatusBadRequest, "document text is too short or empty")
		return
	}

	counts := s.cfg.DefaultCounts
	if req.NumEasy != nil {
		counts.Easy = *req.NumEasy
	}
	if req.NumMedium != nil {
		counts.Medium = *req.NumMedium
	}
	if req.NumHard != nil {
		counts.Hard = *req.NumHard
	}
	if counts.Easy < 0 || counts.Medium < 0 || counts.Hard < 0 {
		writeError(w, http.StatusBadRequest, "question counts must be non-negative")
		return
	}

	s.respondWithBatch(w, r, req.Text, counts)
}

// handleUpload accepts a multipart document, extracts its text, and returns
// a preview. The document itself is never retained.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := s.extractUpload(w, r)
	if !ok {
		return
	}

	preview := text
	if len(preview) > previewLen {
		preview = preview[:previewLen] + "..."
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		Filename:    filename,
		TextLength:  len(text),
		TextPreview: preview,
	})
}

// handleUploadAndGenerate uploads, extracts, and generates in one call.
// Counts come from form values num_easy/num_medium/num_hard.
func (s *Server) handleUploadAndGenerate(w http.ResponseWriter, r *http.Request) {
	text, _, ok := s.extractUpload(w, r)
	if !ok {
		return
	}

	counts := s.cfg.DefaultCounts
	var err error
	if counts.Easy, err = formCount(r, "num_easy", counts.Easy); err == nil {
		if counts.Medium, err = formCount(r, "num_medium", counts.Medium); err == nil {
			counts.Hard, err = formCount(r, "num_hard", counts.Hard)
		}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondWithBatch(w, r, text, counts)
}

// respondWithBatch runs the generation policy: the model path when a
// provider is configured, regenerating via the fallback path on tier
// failure when configured to degrade gracefully. Model and fallback
// questions are never mixed within one batch.
func (s *Server) respondWithBatch(w http.ResponseWriter, r *http.Request, text string, counts quizgen.Counts) {
	if s.engine == nil {
		writeBatch(w, quizgen.GenerateFallback(text, counts))
		return
	}

	questions, err := s.engine.Generate(r.Context(), text, counts)
	if err != nil {
		var tierErr *quizgen.TierError
		if errors.As(err, &tierErr) && s.cfg.FallbackOnError {
			writeBatch(w, quizgen.GenerateFallback(text, counts))
			return
		}
		writeError(w, http.StatusBadGateway, fmt.Sprintf("question generation failed: %v", err))
		return
	}
	writeBatch(w, questions)
}

// extractUpload pulls the "file" part out of a multipart request, runs the
// matching extractor over a temp copy, and enforces the minimum usable
// length. On failure it writes the error response and returns ok=false.
func (s *Server) extractUpload(w http.ResponseWriter, r *http.Request) (text, filename string, ok bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart request: %v", err))
		return "", "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing \"file\" upload field")
		return "", "", false
	}
	defer file.Close()

	extractor, err := extract.ForFile(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}

	text, err = extractToText(file, extractor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("error processing document: %v", err))
		return "", "", false
	}
	if !extract.Usable(text) {
		writeError(w, http.StatusBadRequest, "document appears to be empty or could not extract sufficient text")
		return "", "", false
	}
	return text, header.Filename, true
}

// extractToText spools the upload to a temp file for the extractor and
// removes it before returning.
func extractToText(file multipart.File, extractor extract.Extractor) (string, error) {
	tmp, err := os.CreateTemp("", "quizforge-upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, copyErr := io.Copy(tmp, file)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", fmt.Errorf("spool upload: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("spool upload: %w", closeErr)
	}

	return extractor.ExtractText(tmpPath)
}

func formCount(r *http.Request, field string, def int) (int, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", field)
	}
	return n, nil
}

func writeBatch(w http.ResponseWriter, questions []quizgen.Question) {
	if questions == nil {
		questions = []quizgen.Question{}
	}
	writeJSON(w, http.StatusOK, questionResponse{
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
