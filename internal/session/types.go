package session

import (
	"errors"
	"fmt"

	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/scoring"
)

// Phase is the engine's lifecycle state.
type Phase string

// Phase constants. Answered is a sub-state of InProgress: the current
// question is graded and waiting to advance.
const (
	PhaseUnselected Phase = "unselected"
	PhaseInProgress Phase = "in_progress"
	PhaseAnswered   Phase = "answered"
	PhaseCompleted  Phase = "completed"
)

// ErrEmptyBank matches any EmptyBankError via errors.Is.
var ErrEmptyBank = errors.New("cannot start quiz")

// EmptyBankError means the chosen variant selected no questions.
type EmptyBankError struct {
	Variant string
}

func (e *EmptyBankError) Error() string {
	return fmt.Sprintf("cannot start quiz: variant %q has no eligible questions", e.Variant)
}

// Is lets errors.Is(err, ErrEmptyBank) succeed.
func (e *EmptyBankError) Is(target error) bool {
	return target == ErrEmptyBank
}

// QuestionView is the part of a question a presentation layer may render.
// Accepted answers stay inside the engine until revealed through feedback.
type QuestionView struct {
	ID       int           `json:"id"`
	Kind     question.Kind `json:"kind"`
	Prompt   string        `json:"prompt"`
	ImageRef string        `json:"image_ref,omitempty"`
	Options  []string      `json:"options,omitempty"`
}

func viewOf(q question.Question) *QuestionView {
	return &QuestionView{
		ID:       q.ID,
		Kind:     q.Kind,
		Prompt:   q.Prompt,
		ImageRef: q.ImageRef,
		Options:  append([]string(nil), q.Options...),
	}
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	SessionID           string           `json:"session_id,omitempty"`
	Generation          uint64           `json:"generation"`
	Revision            uint64           `json:"revision"`
	Phase               Phase            `json:"phase"`
	Variant             string           `json:"variant,omitempty"`
	CurrentQuestion     *QuestionView    `json:"current_question,omitempty"`
	PositionDisplay     int              `json:"position_display"`
	TotalCount          int              `json:"total_count"`
	PendingAnswer       string           `json:"pending_answer"`
	FeedbackText        string           `json:"feedback_text"`
	IsCorrectLastAnswer bool             `json:"is_correct_last_answer"`
	LastOutcome         scoring.Outcome  `json:"last_outcome,omitempty"`
	Answered            bool             `json:"answered"`
	Score               int              `json:"score"`
	Completed           bool             `json:"completed"`
	Summary             *scoring.Summary `json:"summary,omitempty"`
}

// CanSubmit reports whether a submit would be graded against a non-blank
// answer. Presentation layers use it to disable their submit control.
func (s Snapshot) CanSubmit() bool {
	return s.Phase == PhaseInProgress && !isBlank(s.PendingAnswer)
}
