package quizgen

import (
	"context"
	"strings"

	"github.com/abhisek/quizforge/internal/llm"
)

// Generator produces a batch of quiz questions from document text.
type Generator interface {
	// Generate returns questions grouped by difficulty in easy→medium→hard
	// order, within a tier in generation order. A tier-level failure aborts
	// the whole batch: no partial results are returned.
	Generate(ctx context.Context, text string, counts Counts) ([]Question, error)
}

// Engine implements Generator by driving an LLM provider under the JSON
// output contract of BatchSchema, one request per requested tier.
type Engine struct {
	provider llm.Provider
	config   Config
}

// New creates an Engine with the given provider and config.
func New(provider llm.Provider, cfg Config) *Engine {
	return &Engine{provider: provider, config: cfg.withDefaults()}
}

// Generate runs the model path. Each tier draws its prompt content from a
// different chunk of the isolated document so questions are not all sourced
// from the same slice.
func (e *Engine) Generate(ctx context.Context, text string, counts Counts) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	full := strings.TrimSpace(text)
	if full == "" {
		return nil, nil
	}
	content := isolateContent(full)
	if len(content) < 2*minUsableContent {
		content = full
	}
	chunks := chunkContent(content, e.config.MaxChunkLen, e.config.ChunkOverlap)

	var batch []Question
	for _, tier := range tierOrder {
		count := counts.For(tier)
		if count <= 0 {
			continue
		}
		qs, err := e.generateTier(ctx, tier, count, chunkForTier(chunks, tier))
		if err != nil {
			return nil, err
		}
		batch = append(batch, qs...)
	}
	return batch, nil
}

// generateTier sends one request for a tier and validates whatever comes
// back. Individual malformed candidates are skipped; a tier that yields
// zero accepted candidates is a failure, never a silent undersized batch.
func (e *Engine) generateTier(ctx context.Context, tier Difficulty, count int, content string) ([]Question, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(tier, count, content)},
		},
		Schema:      BatchSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, &TierError{Difficulty: tier, Kind: FailParse, Err: err}
	}

	items, kind, err := decodeCandidates(string(resp.Content))
	if err != nil {
		return nil, &TierError{Difficulty: tier, Kind: kind, Err: err}
	}

	var qs []Question
	for _, item := range items {
		text, options, correctIndex, ok := validateCandidate(item)
		if !ok {
			continue
		}
		qs = append(qs, newQuestion(text, tier, options, correctIndex))
	}
	if len(qs) == 0 {
		return nil, &TierError{Difficulty: tier, Kind: FailNoCandidates}
	}
	return qs, nil
}
