package quizgen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(Medium, 3, "The body content under test.")

	for _, want := range []string{
		"Create 3 medium-level multiple choice questions",
		"The body content under test.",
		"Generate exactly 3 questions",
		"exactly 4 options",
		"DIFFERENT",
		"VARY the correct answer",
		"apply a concept",
		"Return ONLY the JSON array.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

func TestBuildUserMessage_TierGuidanceDiffers(t *testing.T) {
	easy := buildUserMessage(Easy, 1, "content")
	hard := buildUserMessage(Hard, 1, "content")
	if easy == hard {
		t.Error("easy and hard prompts are identical")
	}
	if !strings.Contains(easy, "recall") || !strings.Contains(hard, "synthesize") {
		t.Error("tier guidance not reflected in the prompt")
	}
}

func TestSystemPrompt(t *testing.T) {
	for _, want := range []string{"JSON", "body content", "VARY", "correct_answer"} {
		if !strings.Contains(systemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
