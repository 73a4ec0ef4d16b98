package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/quizgen"
)

const sampleText = "The scheduler assigns each task to the least loaded worker in the pool. " +
	"Workers report their queue depth every second over a shared channel. " +
	"When a worker misses three reports in a row it is marked unhealthy. " +
	"Unhealthy workers receive no new tasks until they report again."

type batchBody struct {
	Questions      []quizgen.Question `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

func newTestServer(t *testing.T, engine quizgen.Generator) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.LLM.Provider = "mock"
	return New(cfg, engine)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBatch(t *testing.T, rec *httptest.ResponseRecorder) batchBody {
	t.Helper()
	var body batchBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "QuizForge API is running")

	rec = doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestHealthImpacts(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodGet, "/health-impacts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var impacts map[string]quizgen.HealthImpact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &impacts))
	assert.Equal(t, quizgen.HealthImpact{Correct: 5, Wrong: -2}, impacts["easy"])
	assert.Equal(t, quizgen.HealthImpact{Correct: 10, Wrong: -5}, impacts["medium"])
	assert.Equal(t, quizgen.HealthImpact{Correct: 20, Wrong: -10}, impacts["hard"])
}

func TestGenerateQuestions_FallbackWithoutProvider(t *testing.T) {
	s := newTestServer(t, nil)

	two, one := 2, 1
	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{
		"text":       sampleText,
		"num_easy":   two,
		"num_medium": one,
		"num_hard":   one,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBatch(t, rec)
	assert.Equal(t, 4, body.TotalQuestions)
	require.Len(t, body.Questions, 4)
	assert.Equal(t, quizgen.Easy, body.Questions[0].Difficulty)
	assert.Equal(t, quizgen.Easy, body.Questions[1].Difficulty)
	assert.Equal(t, quizgen.Medium, body.Questions[2].Difficulty)
	assert.Equal(t, quizgen.Hard, body.Questions[3].Difficulty)
	for _, q := range body.Questions {
		assert.Len(t, q.Options, 4)
		assert.NotEmpty(t, q.ID)
	}
}

func TestGenerateQuestions_DefaultCounts(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{"text": sampleText})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, decodeBatch(t, rec).TotalQuestions)
}

func TestGenerateQuestions_ZeroCountsAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	zero := 0
	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{
		"text":       sampleText,
		"num_easy":   zero,
		"num_medium": zero,
		"num_hard":   zero,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBatch(t, rec)
	assert.Equal(t, 0, body.TotalQuestions)
	assert.NotNil(t, body.Questions)
}

func TestGenerateQuestions_RejectsShortText(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{"text": "too short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestGenerateQuestions_RejectsNegativeCounts(t *testing.T) {
	s := newTestServer(t, nil)
	neg := -1
	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{
		"text":     sampleText,
		"num_easy": neg,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "non-negative")
}

func TestGenerateQuestions_RejectsBadJSON(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/generate-questions", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateQuestions_ModelPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"question":"What does the scheduler balance?","options":["load","heat","cost","time"],"correct_answer":"A"}]`),
	})
	engine := quizgen.New(mock, quizgen.DefaultConfig())
	s := newTestServer(t, engine)

	one, zero := 1, 0
	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{
		"text":       sampleText,
		"num_easy":   one,
		"num_medium": zero,
		"num_hard":   zero,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBatch(t, rec)
	require.Equal(t, 1, body.TotalQuestions)
	assert.Equal(t, "What does the scheduler balance?", body.Questions[0].Text)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateQuestions_TierFailureFallsBack(t *testing.T) {
	// Empty mock queue: every model call fails, so the whole batch is
	// regenerated by the fallback synthesizer.
	engine := quizgen.New(llm.NewMockProvider(), quizgen.DefaultConfig())
	s := newTestServer(t, engine)

	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{"text": sampleText})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, decodeBatch(t, rec).TotalQuestions)
}

func TestGenerateQuestions_TierFailureSurfacesWhenFallbackDisabled(t *testing.T) {
	engine := quizgen.New(llm.NewMockProvider(), quizgen.DefaultConfig())
	cfg := config.Default()
	cfg.LLM.Provider = "mock"
	cfg.FallbackOnError = false
	s := New(cfg, engine)

	rec := doJSON(t, s, http.MethodPost, "/generate-questions", map[string]any{"text": sampleText})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestUpload(t *testing.T) {
	s := newTestServer(t, nil)
	buf, contentType := multipartUpload(t, "lecture.txt", sampleText, nil)

	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "lecture.txt", body.Filename)
	assert.Equal(t, len(sampleText), body.TextLength)
	assert.True(t, strings.HasPrefix(sampleText, strings.TrimSuffix(body.TextPreview, "...")))
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	s := newTestServer(t, nil)
	buf, contentType := multipartUpload(t, "slides.pdf", sampleText, nil)

	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported document type")
}

func TestUpload_RejectsEmptyDocument(t *testing.T) {
	s := newTestServer(t, nil)
	buf, contentType := multipartUpload(t, "empty.txt", "   ", nil)

	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty")
}

func TestUpload_RejectsMissingFileField(t *testing.T) {
	s := newTestServer(t, nil)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "value"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file")
}

func TestUploadAndGenerate(t *testing.T) {
	s := newTestServer(t, nil)
	buf, contentType := multipartUpload(t, "lecture.txt", sampleText, map[string]string{
		"num_easy":   "1",
		"num_medium": "0",
		"num_hard":   "0",
	})

	req := httptest.NewRequest(http.MethodPost, "/upload-and-generate", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBatch(t, rec)
	require.Equal(t, 1, body.TotalQuestions)
	assert.Equal(t, quizgen.Easy, body.Questions[0].Difficulty)
}

func TestUploadAndGenerate_RejectsBadCount(t *testing.T) {
	s := newTestServer(t, nil)
	buf, contentType := multipartUpload(t, "lecture.txt", sampleText, map[string]string{
		"num_easy": "banana",
	})

	req := httptest.NewRequest(http.MethodPost, "/upload-and-generate", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "num_easy")
}
