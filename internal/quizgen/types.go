package quizgen

import (
	"strings"

	"github.com/google/uuid"
)

// Difficulty is one of the three question tiers.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// tierOrder fixes the batch ordering and the tier→chunk mapping.
var tierOrder = []Difficulty{Easy, Medium, Hard}

// ordinal returns the position of d in the fixed easy→medium→hard order.
func (d Difficulty) ordinal() int {
	for i, t := range tierOrder {
		if t == d {
			return i
		}
	}
	return 0
}

// HealthImpact is the per-question scoring weight: healing for a correct
// answer, damage for a wrong one.
type HealthImpact struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// healthImpacts maps each difficulty to its fixed scoring weights.
// Read-only after process start.
var healthImpacts = map[Difficulty]HealthImpact{
	Easy:   {Correct: 5, Wrong: -2},
	Medium: {Correct: 10, Wrong: -5},
	Hard:   {Correct: 20, Wrong: -10},
}

// HealthImpactFor returns the scoring weights for a difficulty.
func HealthImpactFor(d Difficulty) HealthImpact {
	return healthImpacts[d]
}

// letters maps a 0-based option index to its answer letter.
var letters = [4]string{"A", "B", "C", "D"}

// Question is a single multiple-choice quiz question. It is constructed
// once by newQuestion and never mutated afterwards.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"question"`
	Difficulty    Difficulty   `json:"difficulty"`
	Options       []string     `json:"options"`
	CorrectLetter string       `json:"correct_answer"`
	CorrectIndex  int          `json:"correctIndex"`
	HealthImpact  HealthImpact `json:"health_impact"`
}

// Counts is the number of questions requested per tier. Zero skips a tier.
type Counts struct {
	Easy   int `json:"num_easy" yaml:"easy"`
	Medium int `json:"num_medium" yaml:"medium"`
	Hard   int `json:"num_hard" yaml:"hard"`
}

// Total returns the total number of questions requested.
func (c Counts) Total() int {
	return c.Easy + c.Medium + c.Hard
}

// For returns the requested count for one tier.
func (c Counts) For(d Difficulty) int {
	switch d {
	case Easy:
		return c.Easy
	case Medium:
		return c.Medium
	case Hard:
		return c.Hard
	}
	return 0
}

// newQuestion assembles the final Question shape from a validated tuple.
// correctIndex must index options; text falls back to a placeholder when
// empty after trimming.
func newQuestion(text string, difficulty Difficulty, options []string, correctIndex int) Question {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "No question text."
	}
	return Question{
		ID:            uuid.NewString(),
		Text:          text,
		Difficulty:    difficulty,
		Options:       options,
		CorrectLetter: letters[correctIndex],
		CorrectIndex:  correctIndex,
		HealthImpact:  healthImpacts[difficulty],
	}
}
