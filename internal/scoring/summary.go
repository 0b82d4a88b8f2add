package scoring

import "time"

// Outcome of a graded question.
type Outcome string

// Outcome constants.
const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeSkipped   Outcome = "skipped"
)

// Record is one graded question within a session.
type Record struct {
	Position   int       `json:"position"`
	QuestionID int       `json:"question_id"`
	Answer     string    `json:"answer"`
	Outcome    Outcome   `json:"outcome"`
	GradedAt   time.Time `json:"graded_at"`
}

// Summary aggregates a session's records.
// Skipped questions count toward Total but not toward Attempted, so Accuracy
// measures only questions the user actually answered.
type Summary struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Skipped    int     `json:"skipped"`
	Attempted  int     `json:"attempted"`
	Accuracy   float64 `json:"accuracy"`
	Percentage int     `json:"percentage"`
	BestStreak int     `json:"best_streak"`
}

// Summarize computes totals over records for a session of total questions.
func Summarize(records []Record, total int) Summary {
	s := Summary{Total: total}
	streak := 0
	for _, r := range records {
		switch r.Outcome {
		case OutcomeCorrect:
			s.Correct++
			streak++
			if streak > s.BestStreak {
				s.BestStreak = streak
			}
		case OutcomeIncorrect:
			s.Incorrect++
			streak = 0
		case OutcomeSkipped:
			s.Skipped++
			streak = 0
		}
	}
	s.Attempted = s.Correct + s.Incorrect
	if s.Attempted > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Attempted)
	}
	if total > 0 {
		s.Percentage = (s.Correct * 100) / total
	}
	return s
}
