package quizgen

import "strings"

const (
	correctOptionMaxLen = 95
	distractorMaxLen    = 90
)

// questionStems are rotated so consecutive fallback questions do not repeat
// the same prompt framing.
var questionStems = []string{
	"Which of the following is stated in the reading?",
	"What does the text say? Pick the option that appears in the material.",
	"The material explains or states one of the options below. Which one?",
	"Which statement is found in the text?",
	"One of these is directly stated or explained in the reading. Which?",
	"Which of these does the text support?",
	"The reading includes or implies one of these. Which option?",
	"Which of the following is correct according to the material?",
}

// genericDistractors pad the wrong options when a document is too small to
// supply three distinct alternatives.
var genericDistractors = []string{
	"This is not stated or implied in the text.",
	"The text does not say this.",
	"This contradicts or goes beyond the material.",
}

// Last-resort stems and options for documents with no usable prose at all.
var topicGuessStems = []string{
	"Which of these might the material cover?",
	"What kind of content does the reading likely include?",
	"Which is a plausible topic for this text?",
}

var topicGuessOptions = []string{
	"A key concept or definition from the material",
	"A supporting detail or example from the text",
	"An application or procedure explained in the reading",
	"A main idea or conclusion in the material",
}

// GenerateFallback builds quiz questions without any model: real sentences
// from the document become correct options, neighboring sentences become
// distractors, and the correct letter rotates through A/B/C/D across the
// batch. It always returns exactly counts.Total() questions, grouped in
// easy→medium→hard order.
func GenerateFallback(text string, counts Counts) []Question {
	cfg := DefaultConfig()
	sentences := extractSentences(strings.TrimSpace(text), cfg.MinSentenceLen, cfg.MaxSentences)

	batch := make([]Question, 0, counts.Total())

	// rotation is the batch-global correct-position counter, advanced once
	// per question. Scoped to this call: no ambient mutable state.
	rotation := 0

	if len(sentences) == 0 {
		for _, tier := range tierOrder {
			for i := 0; i < counts.For(tier); i++ {
				ci := rotation % 4
				rotation++
				options := make([]string, len(topicGuessOptions))
				copy(options, topicGuessOptions)
				batch = append(batch, newQuestion(topicGuessStems[i%len(topicGuessStems)], tier, options, ci))
			}
		}
		return batch
	}

	sentenceIdx := 0
	for _, tier := range tierOrder {
		for qNum := 0; qNum < counts.For(tier); qNum++ {
			if sentenceIdx >= len(sentences) {
				sentenceIdx = 0
			}
			correctSentence := sentences[sentenceIdx]
			sentenceIdx++
			correctOption := cleanOptionText(correctSentence, correctOptionMaxLen)

			// The next three other sentences in rotation become distractors,
			// deduplicated against each other and the correct option.
			var wrong []string
			for j := 1; j <= 3; j++ {
				other := sentences[(sentenceIdx-1+j)%len(sentences)]
				if other == correctSentence {
					continue
				}
				w := cleanOptionText(other, distractorMaxLen)
				if w == correctOption || containsString(wrong, w) {
					continue
				}
				wrong = append(wrong, w)
			}
			for len(wrong) < 3 {
				wrong = append(wrong, genericDistractors[len(wrong)%len(genericDistractors)])
			}
			wrong = wrong[:3]

			ci := rotation % 4
			rotation++
			options := make([]string, 4)
			options[ci] = correctOption
			w := 0
			for i := range options {
				if options[i] == "" {
					options[i] = wrong[w]
					w++
				}
			}

			stem := questionStems[(qNum+rotation-1)%len(questionStems)]
			batch = append(batch, newQuestion(stem, tier, options, ci))
		}
	}
	return batch
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
