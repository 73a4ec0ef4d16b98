package quizgen

// Config controls the generation engine. Zero values are replaced by the
// defaults from DefaultConfig.
type Config struct {
	// MaxChunkLen is the maximum length of a content chunk sent to the
	// model for one tier.
	MaxChunkLen int `yaml:"max_chunk_len"`

	// ChunkOverlap is how many characters consecutive chunks share.
	// Must be smaller than MaxChunkLen.
	ChunkOverlap int `yaml:"chunk_overlap"`

	// MinSentenceLen is the minimum length of a sentence kept by the
	// fallback extractor's first pass.
	MinSentenceLen int `yaml:"min_sentence_len"`

	// MaxSentences caps how many sentences the fallback extractor keeps.
	MaxSentences int `yaml:"max_sentences"`

	// MaxTokens caps the length of one model response.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the recommended engine settings.
func DefaultConfig() Config {
	return Config{
		MaxChunkLen:    8000,
		ChunkOverlap:   300,
		MinSentenceLen: 30,
		MaxSentences:   40,
		MaxTokens:      4096,
		Temperature:    0.7,
	}
}

// withDefaults fills in zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxChunkLen <= 0 {
		c.MaxChunkLen = def.MaxChunkLen
	}
	if c.ChunkOverlap <= 0 || c.ChunkOverlap >= c.MaxChunkLen {
		c.ChunkOverlap = def.ChunkOverlap
	}
	if c.MinSentenceLen <= 0 {
		c.MinSentenceLen = def.MinSentenceLen
	}
	if c.MaxSentences <= 0 {
		c.MaxSentences = def.MaxSentences
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = def.Temperature
	}
	return c
}
