package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lianhua/qinna-quiz/internal/answer"
	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/scoring"
)

// DefaultAutoAdvanceDelay is how long feedback stays up before the next question.
const DefaultAutoAdvanceDelay = 2500 * time.Millisecond

// Action names used in logs and metrics.
const (
	ActionChooseVariant = "choose_variant"
	ActionUpdateAnswer  = "update_answer"
	ActionSubmit        = "submit"
	ActionSkip          = "skip"
	ActionNext          = "next"
	ActionReset         = "reset"
)

// Options configures an Engine.
type Options struct {
	AutoAdvanceDelay time.Duration
	Scheduler        Scheduler
	Messages         Messages
	// ShuffleSeed seeds the question order; zero seeds from the clock.
	ShuffleSeed int64
	Metrics     *Metrics
	Now         func() time.Time
}

// state is the mutable session, owned by Engine and guarded by Engine.mu.
type state struct {
	sessionID   string
	variant     string
	order       []question.Question
	position    int
	pending     string
	answered    bool
	completed   bool
	score       int
	feedback    string
	lastOutcome scoring.Outcome
	records     []scoring.Record
}

// Engine is the quiz session state machine. Actions are serialized by a
// mutex; the auto-advance timer is the only other writer and it re-checks
// that the session it was armed for is still current before acting.
type Engine struct {
	mu        sync.Mutex
	bank      *question.Bank
	variants  question.Variants
	scheduler Scheduler
	delay     time.Duration
	messages  Messages
	rng       *rand.Rand
	metrics   *Metrics
	now       func() time.Time
	logger    zerolog.Logger

	st         state
	generation uint64
	revision   uint64
	ticket     uint64
	timer      Timer

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewEngine creates an engine in the Unselected phase.
func NewEngine(bank *question.Bank, variants question.Variants, opts Options, logger zerolog.Logger) *Engine {
	if opts.AutoAdvanceDelay <= 0 {
		opts.AutoAdvanceDelay = DefaultAutoAdvanceDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Messages == (Messages{}) {
		opts.Messages = MessagesFor("es")
	}
	if opts.ShuffleSeed == 0 {
		opts.ShuffleSeed = time.Now().UnixNano()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		bank:      bank,
		variants:  variants,
		scheduler: opts.Scheduler,
		delay:     opts.AutoAdvanceDelay,
		messages:  opts.Messages,
		rng:       rand.New(rand.NewSource(opts.ShuffleSeed)),
		metrics:   opts.Metrics,
		now:       opts.Now,
		logger:    logger.With().Str("component", "quiz_engine").Logger(),
		subs:      make(map[int]func(Snapshot)),
	}
}

// Variants returns the selectable variants in menu order.
func (e *Engine) Variants() question.Variants {
	return e.variants
}

// ChooseVariant starts a session over the variant's eligible questions in a
// uniformly random order. It fails with *EmptyBankError when the variant
// selects nothing, leaving the engine Unselected. Outside Unselected it is
// ignored.
func (e *Engine) ChooseVariant(name string) (Snapshot, error) {
	var startErr error
	snap := e.apply(func() bool {
		if e.phaseLocked() != PhaseUnselected {
			return e.ignoreLocked(ActionChooseVariant)
		}
		v, _ := e.variants.Lookup(name)
		eligible := e.bank.EligibleFor(v)
		if len(eligible) == 0 {
			e.metrics.startFailed()
			e.logger.Warn().Str("variant", name).Msg("no eligible questions for variant")
			startErr = &EmptyBankError{Variant: name}
			return false
		}

		shuffle(eligible, e.rng)
		e.generation++
		e.st = state{
			sessionID: uuid.NewString(),
			variant:   name,
			order:     eligible,
		}
		e.metrics.sessionStarted()
		e.logger.Info().
			Str("session_id", e.st.sessionID).
			Str("variant", name).
			Int("questions", len(eligible)).
			Msg("quiz session started")
		return true
	})
	return snap, startErr
}

// UpdatePendingAnswer replaces the answer buffer (typed text or the selected
// option) of the current, ungraded question.
func (e *Engine) UpdatePendingAnswer(text string) Snapshot {
	return e.apply(func() bool {
		if e.phaseLocked() != PhaseInProgress {
			return e.ignoreLocked(ActionUpdateAnswer)
		}
		e.st.pending = text
		return true
	})
}

// Submit grades the pending answer. A blank answer is graded incorrect.
// The next question follows after the auto-advance delay.
func (e *Engine) Submit() Snapshot {
	return e.apply(func() bool {
		if e.phaseLocked() != PhaseInProgress {
			return e.ignoreLocked(ActionSubmit)
		}
		q := e.st.order[e.st.position]
		correct := !isBlank(e.st.pending) && answer.IsCorrect(e.st.pending, q.AcceptedAnswers)
		if correct {
			e.st.score++
			e.gradeLocked(q, scoring.OutcomeCorrect, e.messages.Correct)
		} else {
			e.gradeLocked(q, scoring.OutcomeIncorrect, e.messages.incorrect(q.CanonicalAnswer()))
		}
		return true
	})
}

// Skip reveals the canonical answer without scoring. Once the current
// question is already graded, Skip moves on immediately instead.
func (e *Engine) Skip() Snapshot {
	return e.apply(func() bool {
		switch e.phaseLocked() {
		case PhaseInProgress:
			q := e.st.order[e.st.position]
			e.gradeLocked(q, scoring.OutcomeSkipped, e.messages.skipped(q.CanonicalAnswer()))
			return true
		case PhaseAnswered:
			e.advanceLocked()
			return true
		default:
			return e.ignoreLocked(ActionSkip)
		}
	})
}

// Advance moves past a graded question without waiting for the timer.
func (e *Engine) Advance() Snapshot {
	return e.apply(func() bool {
		if e.phaseLocked() != PhaseAnswered {
			return e.ignoreLocked(ActionNext)
		}
		e.advanceLocked()
		return true
	})
}

// Reset discards the session and returns to Unselected. Any armed timer is
// invalidated by the generation bump even if it has already fired.
func (e *Engine) Reset() Snapshot {
	return e.apply(func() bool {
		e.stopTimerLocked()
		if e.st.sessionID != "" {
			e.logger.Info().Str("session_id", e.st.sessionID).Msg("quiz session reset")
		}
		e.generation++
		e.st = state{}
		return true
	})
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change,
// including timer-driven advances. fn runs on the goroutine that caused the
// change, so snapshots may arrive out of order; compare Revision.
func (e *Engine) Subscribe(fn func(Snapshot)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Close stops any pending auto-advance and drops subscribers.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
	e.subs = make(map[int]func(Snapshot))
}

// apply runs mutate under the lock and, when it reports a change, bumps the
// revision and notifies subscribers after unlocking.
func (e *Engine) apply(mutate func() bool) Snapshot {
	e.mu.Lock()
	changed := mutate()
	var subs []func(Snapshot)
	if changed {
		e.revision++
		subs = make([]func(Snapshot), 0, len(e.subs))
		for _, fn := range e.subs {
			subs = append(subs, fn)
		}
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return snap
}

func (e *Engine) phaseLocked() Phase {
	switch {
	case e.st.sessionID == "":
		return PhaseUnselected
	case e.st.completed:
		return PhaseCompleted
	case e.st.answered:
		return PhaseAnswered
	default:
		return PhaseInProgress
	}
}

func (e *Engine) ignoreLocked(action string) bool {
	e.metrics.ignored(action)
	e.logger.Debug().
		Str("action", action).
		Str("phase", string(e.phaseLocked())).
		Msg("ignored action not valid in current phase")
	return false
}

// gradeLocked records the outcome, marks the question answered and arms the
// auto-advance timer.
func (e *Engine) gradeLocked(q question.Question, outcome scoring.Outcome, feedback string) {
	e.st.answered = true
	e.st.lastOutcome = outcome
	e.st.feedback = feedback
	e.st.records = append(e.st.records, scoring.Record{
		Position:   e.st.position,
		QuestionID: q.ID,
		Answer:     e.st.pending,
		Outcome:    outcome,
		GradedAt:   e.now(),
	})
	e.metrics.graded(outcome)
	e.logger.Debug().
		Str("session_id", e.st.sessionID).
		Int("position", e.st.position).
		Int("question_id", q.ID).
		Str("outcome", string(outcome)).
		Int("score", e.st.score).
		Msg("question graded")
	e.armLocked()
}

func (e *Engine) advanceLocked() {
	e.stopTimerLocked()
	if e.st.position >= len(e.st.order)-1 {
		e.st.position = len(e.st.order)
		e.st.completed = true
		e.st.answered = false
		e.st.pending = ""
		e.st.feedback = e.messages.completed(e.st.score, len(e.st.order))
		e.metrics.sessionCompleted()
		e.logger.Info().
			Str("session_id", e.st.sessionID).
			Int("score", e.st.score).
			Int("total", len(e.st.order)).
			Msg("quiz completed")
		return
	}
	e.st.position++
	e.st.pending = ""
	e.st.feedback = ""
	e.st.lastOutcome = ""
	e.st.answered = false
}

func (e *Engine) armLocked() {
	e.stopTimerLocked()
	t := autoAdvance{generation: e.generation, ticket: e.ticket, position: e.st.position}
	e.timer = e.scheduler.AfterFunc(e.delay, func() { e.fire(t) })
}

// stopTimerLocked cancels the armed timer and retires its ticket, so a
// callback that already started cannot match any more.
func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.ticket++
}

func (e *Engine) fire(t autoAdvance) {
	e.apply(func() bool {
		if t.generation != e.generation || t.ticket != e.ticket ||
			t.position != e.st.position || e.phaseLocked() != PhaseAnswered {
			e.logger.Debug().Int("position", t.position).Msg("stale auto-advance ignored")
			return false
		}
		e.timer = nil
		e.advanceLocked()
		return true
	})
}

func (e *Engine) snapshotLocked() Snapshot {
	phase := e.phaseLocked()
	snap := Snapshot{
		SessionID:           e.st.sessionID,
		Generation:          e.generation,
		Revision:            e.revision,
		Phase:               phase,
		Variant:             e.st.variant,
		TotalCount:          len(e.st.order),
		PendingAnswer:       e.st.pending,
		FeedbackText:        e.st.feedback,
		IsCorrectLastAnswer: e.st.lastOutcome == scoring.OutcomeCorrect,
		LastOutcome:         e.st.lastOutcome,
		Answered:            e.st.answered,
		Score:               e.st.score,
		Completed:           e.st.completed,
	}
	switch phase {
	case PhaseInProgress, PhaseAnswered:
		snap.CurrentQuestion = viewOf(e.st.order[e.st.position])
		snap.PositionDisplay = e.st.position + 1
	case PhaseCompleted:
		snap.PositionDisplay = len(e.st.order)
		summary := scoring.Summarize(e.st.records, len(e.st.order))
		snap.Summary = &summary
	}
	return snap
}

func isBlank(s string) bool {
	return answer.IsBlank(s)
}
