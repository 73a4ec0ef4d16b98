package quizgen

import "fmt"

// FailureKind classifies why the model path failed for a tier, so
// operators can tell "model is broken" from "model ignored instructions".
type FailureKind string

const (
	// FailParse means the model output was not parseable JSON, or the
	// provider returned an error or empty output.
	FailParse FailureKind = "parse"

	// FailShape means the output parsed but was not a JSON array.
	FailShape FailureKind = "shape"

	// FailNoCandidates means every candidate in the array was rejected
	// during validation.
	FailNoCandidates FailureKind = "no-valid-candidates"
)

// TierError reports a model-path failure for one difficulty tier. A tier
// failure aborts the whole batch: callers wanting graceful degradation
// should regenerate via the fallback path rather than retry piecemeal.
type TierError struct {
	Difficulty Difficulty
	Kind       FailureKind
	Err        error
}

func (e *TierError) Error() string {
	switch e.Kind {
	case FailParse:
		return fmt.Sprintf("model returned unparseable output for %s questions: %v", e.Difficulty, e.Err)
	case FailShape:
		return fmt.Sprintf("model did not return a JSON array for %s questions: %v", e.Difficulty, e.Err)
	case FailNoCandidates:
		return fmt.Sprintf("model returned no valid %s questions (need 4 distinct options and correct_answer A-D)", e.Difficulty)
	}
	return fmt.Sprintf("generation failed for %s questions: %v", e.Difficulty, e.Err)
}

func (e *TierError) Unwrap() error { return e.Err }
