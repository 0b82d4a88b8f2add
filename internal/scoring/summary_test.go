package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)
	assert.Equal(t, Summary{}, s)

	s = Summarize(nil, 4)
	assert.Equal(t, 4, s.Total)
	assert.Zero(t, s.Accuracy)
	assert.Zero(t, s.Percentage)
}

func TestSummarizeMixedOutcomes(t *testing.T) {
	records := []Record{
		{Position: 0, Outcome: OutcomeCorrect},
		{Position: 1, Outcome: OutcomeCorrect},
		{Position: 2, Outcome: OutcomeSkipped},
		{Position: 3, Outcome: OutcomeCorrect},
		{Position: 4, Outcome: OutcomeIncorrect},
	}
	s := Summarize(records, 5)

	assert.Equal(t, 3, s.Correct)
	assert.Equal(t, 1, s.Incorrect)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 4, s.Attempted)
	assert.InDelta(t, 0.75, s.Accuracy, 1e-9)
	assert.Equal(t, 60, s.Percentage)
	assert.Equal(t, 2, s.BestStreak)
}

func TestSummarizeAllSkipped(t *testing.T) {
	s := Summarize([]Record{{Outcome: OutcomeSkipped}, {Outcome: OutcomeSkipped}}, 2)
	assert.Equal(t, 2, s.Skipped)
	assert.Zero(t, s.Attempted)
	assert.Zero(t, s.Accuracy)
	assert.Zero(t, s.BestStreak)
}
