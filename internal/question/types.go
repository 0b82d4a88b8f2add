package question

// Kind tags how a question is presented and answered.
type Kind string

// Kind constants.
const (
	KindFreeText       Kind = "free_text"
	KindImage          Kind = "image"
	KindMultipleChoice Kind = "multiple_choice"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFreeText, KindImage, KindMultipleChoice:
		return true
	}
	return false
}

// Question is an immutable bank entry.
type Question struct {
	ID              int      `json:"id"`
	Kind            Kind     `json:"kind"`
	Prompt          string   `json:"prompt"`
	AcceptedAnswers []string `json:"accepted_answers"`
	ImageRef        string   `json:"image_ref,omitempty"` // KindImage only
	Options         []string `json:"options,omitempty"`   // KindMultipleChoice only
}

// CanonicalAnswer is the phrasing revealed after a miss or a skip.
func (q Question) CanonicalAnswer() string {
	if len(q.AcceptedAnswers) == 0 {
		return ""
	}
	return q.AcceptedAnswers[0]
}

// clone returns a deep copy so callers cannot mutate bank slices.
func (q Question) clone() Question {
	q.AcceptedAnswers = append([]string(nil), q.AcceptedAnswers...)
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
