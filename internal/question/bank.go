package question

import (
	"fmt"
	"strings"

	"github.com/lianhua/qinna-quiz/internal/answer"
)

// Bank is an ordered, read-only question collection. It is never mutated
// after construction and is safe for concurrent reads.
type Bank struct {
	questions []Question
}

// NewBank validates qs and freezes a copy of it in bank order.
func NewBank(qs []Question) (*Bank, error) {
	collector := &issueCollector{}
	seen := make(map[int]struct{}, len(qs))
	frozen := make([]Question, 0, len(qs))

	for i, q := range qs {
		prefix := fmt.Sprintf("questions[%d]", i)
		q = q.clone()
		q.Prompt = strings.TrimSpace(q.Prompt)
		q.ImageRef = strings.TrimSpace(q.ImageRef)

		if q.ID <= 0 {
			collector.add(prefix+".id", "must be positive")
		} else if _, dup := seen[q.ID]; dup {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d", q.ID))
		} else {
			seen[q.ID] = struct{}{}
		}
		if q.Prompt == "" {
			collector.add(prefix+".prompt", "is required")
		}
		if len(q.AcceptedAnswers) == 0 {
			collector.add(prefix+".accepted_answers", "must include at least one entry")
		}
		for j, a := range q.AcceptedAnswers {
			if answer.IsBlank(a) {
				collector.add(fmt.Sprintf("%s.accepted_answers[%d]", prefix, j), "is blank")
			}
		}
		validateKind(collector, prefix, q)
		frozen = append(frozen, q)
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return &Bank{questions: frozen}, nil
}

func validateKind(collector *issueCollector, prefix string, q Question) {
	if !q.Kind.Valid() {
		collector.add(prefix+".kind", fmt.Sprintf("unknown kind %q", q.Kind))
		return
	}
	switch q.Kind {
	case KindFreeText:
		if q.ImageRef != "" {
			collector.add(prefix+".image_ref", "only allowed for image questions")
		}
		if len(q.Options) > 0 {
			collector.add(prefix+".options", "only allowed for multiple choice questions")
		}
	case KindImage:
		if q.ImageRef == "" {
			collector.add(prefix+".image_ref", "is required for image questions")
		}
		if len(q.Options) > 0 {
			collector.add(prefix+".options", "only allowed for multiple choice questions")
		}
	case KindMultipleChoice:
		if q.ImageRef != "" {
			collector.add(prefix+".image_ref", "only allowed for image questions")
		}
		if len(q.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
			return
		}
		for _, a := range q.AcceptedAnswers {
			if !answer.IsCorrect(a, q.Options) {
				collector.add(prefix+".accepted_answers", fmt.Sprintf("%q is not one of the options", a))
			}
		}
	}
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of every question in bank order.
func (b *Bank) Questions() []Question {
	return b.filter(func(Question) bool { return true })
}

// Get looks a question up by id.
func (b *Bank) Get(id int) (Question, bool) {
	for _, q := range b.questions {
		if q.ID == id {
			return q.clone(), true
		}
	}
	return Question{}, false
}

// EligibleFor returns the questions the variant selects, in bank order.
func (b *Bank) EligibleFor(v Variant) []Question {
	if v.Eligible == nil {
		return nil
	}
	return b.filter(v.Eligible)
}

func (b *Bank) filter(keep func(Question) bool) []Question {
	out := make([]Question, 0, len(b.questions))
	for _, q := range b.questions {
		if keep(q) {
			out = append(out, q.clone())
		}
	}
	return out
}

// Issue captures a validation problem in a question bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
