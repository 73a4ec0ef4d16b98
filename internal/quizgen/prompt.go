package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert educational question writer. You generate multiple choice questions ` +
	`in valid JSON only. Base questions ONLY on the actual body content (definitions, steps, facts, examples). ` +
	`Ignore document titles, course codes, and dates. Each question must ask about a SPECIFIC fact, term, or idea from the text. ` +
	`Wrong answers must be plausible distractors (similar-sounding or related but wrong). ` +
	`VARY which option is correct: use A, B, C, and D across questions, not always A. ` +
	`Exactly one option per question is correct; correct_answer is that option's letter.`

// tierGuidance describes the cognitive level expected per difficulty.
var tierGuidance = map[Difficulty]string{
	Easy:   "recall definitions, key terms, explicit facts",
	Medium: "apply a concept, compare, explain",
	Hard:   "synthesize, infer, or evaluate",
}

// buildUserMessage constructs the per-tier user instruction for one content
// chunk. Together with systemPrompt it demands a bare JSON array of exactly
// count objects shaped {question, options[4], correct_answer}.
func buildUserMessage(difficulty Difficulty, count int, content string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The following is BODY CONTENT from a lecture or textbook (titles/headers removed). "+
		"Create %d %s-level multiple choice questions that help a student learn THIS material.\n\n", count, difficulty)

	b.WriteString("Content:\n")
	b.WriteString(content)
	b.WriteString("\n\nRULES:\n")
	fmt.Fprintf(&b, "- Generate exactly %d questions. Each question must ask about a SPECIFIC concept, definition, step, or fact stated in the content "+
		"(e.g. \"What is X?\", \"According to the text, how does Y work?\", \"Which of the following is true about Z?\").\n", count)
	b.WriteString("- Do NOT ask vague questions like \"what best describes the material\" or \"what is the main topic\". " +
		"Ask about concrete things: terms, numbers, steps, causes, examples.\n")
	b.WriteString("- Each question has exactly 4 options. The 3 wrong options must be plausible but incorrect " +
		"(e.g. other terms from the text, common wrong answers). All four option texts must be DIFFERENT.\n")
	fmt.Fprintf(&b, "- VARY the correct answer: across your %d questions, use different letters (A, B, C, D) as correct_answer, not always A.\n", count)
	fmt.Fprintf(&b, "- Difficulty %q means: %s.\n", difficulty, tierGuidance[difficulty])
	b.WriteString("\nOutput format: return ONLY a JSON array, no markdown.\n")
	b.WriteString(`[` + "\n" +
		`  { "question": "Specific question about a concrete fact or term?", "options": ["Option A", "Option B", "Option C", "Option D"], "correct_answer": "B" }` + "\n" +
		`]` + "\n")
	b.WriteString("\nReturn ONLY the JSON array.")

	return b.String()
}
