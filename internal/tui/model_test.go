package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/session"
)

type manualScheduler struct {
	mu        sync.Mutex
	callbacks []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) session.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, f)
	return manualTimer{}
}

func (s *manualScheduler) fireLast(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	require.NotEmpty(t, s.callbacks)
	f := s.callbacks[len(s.callbacks)-1]
	s.mu.Unlock()
	f()
}

type harness struct {
	engine  *session.Engine
	sched   *manualScheduler
	bank    *question.Bank
	changes chan struct{}
	model   Model
}

func newHarness(t *testing.T, bank *question.Bank, variants question.Variants) *harness {
	t.Helper()
	sched := &manualScheduler{}
	engine := session.NewEngine(bank, variants, session.Options{Scheduler: sched, ShuffleSeed: 9}, zerolog.Nop())
	t.Cleanup(engine.Close)

	changes := make(chan struct{}, 1)
	cancel := engine.Subscribe(func(session.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	t.Cleanup(cancel)

	return &harness{
		engine:  engine,
		sched:   sched,
		bank:    bank,
		changes: changes,
		model:   NewModel(engine, changes, bank, Options{NoColor: true, Locale: "es"}),
	}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) key(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// drain delivers any pending change signal the way the program would.
func (h *harness) drain() {
	for {
		select {
		case <-h.changes:
			h.send(changedMsg{})
		default:
			return
		}
	}
}

func TestMenuRendersVariants(t *testing.T) {
	h := newHarness(t, question.Curriculum(), question.DefaultVariants(question.DefaultBasicCutoff))
	view := h.model.View()
	assert.Contains(t, view, "Qin-Na")
	assert.Contains(t, view, "Escuela Loto Blanco Lianhua")
	assert.Contains(t, view, "Elige una variante:")
	assert.Contains(t, view, "> Palancas 1-18 (18 preguntas)")
	assert.Contains(t, view, "Todas las palancas (32 preguntas)")
}

func TestAnswerFlow(t *testing.T) {
	h := newHarness(t, question.Curriculum(), question.DefaultVariants(question.DefaultBasicCutoff))

	h.key(tea.KeyDown)
	h.key(tea.KeyEnter)
	snap := h.model.Snapshot()
	require.Equal(t, session.PhaseInProgress, snap.Phase)
	assert.Equal(t, question.VariantFull, snap.Variant)
	assert.Contains(t, h.model.View(), "Pregunta 1 de 32")

	// Enter is disabled while the input is blank.
	h.key(tea.KeyEnter)
	assert.Equal(t, session.PhaseInProgress, h.model.Snapshot().Phase)

	q, ok := h.bank.Get(snap.CurrentQuestion.ID)
	require.True(t, ok)
	h.typeText(q.CanonicalAnswer())
	assert.Equal(t, q.CanonicalAnswer(), h.engine.Snapshot().PendingAnswer)

	h.key(tea.KeyEnter)
	snap = h.model.Snapshot()
	assert.Equal(t, session.PhaseAnswered, snap.Phase)
	assert.Equal(t, 1, snap.Score)
	assert.Contains(t, h.model.View(), "¡Correcto!")

	h.key(tea.KeyTab)
	snap = h.model.Snapshot()
	assert.Equal(t, 2, snap.PositionDisplay)
	assert.Empty(t, h.model.input.Value())
	assert.Contains(t, h.model.View(), "Pregunta 2 de 32")
}

func TestTimerDrivenAdvanceRerenders(t *testing.T) {
	h := newHarness(t, question.Curriculum(), question.DefaultVariants(question.DefaultBasicCutoff))
	h.key(tea.KeyEnter)
	h.drain()

	h.key(tea.KeyTab)
	h.drain()
	require.Equal(t, session.PhaseAnswered, h.model.Snapshot().Phase)
	assert.Contains(t, h.model.View(), "Pregunta saltada.")

	h.sched.fireLast(t)
	cmd := waitForChange(h.changes)
	h.send(cmd())

	assert.Equal(t, 2, h.model.Snapshot().PositionDisplay)
	assert.Contains(t, h.model.View(), "Pregunta 2 de 18")
}

func TestStaleSnapshotIsNotRendered(t *testing.T) {
	h := newHarness(t, question.Curriculum(), question.DefaultVariants(question.DefaultBasicCutoff))
	old := h.model.Snapshot()
	h.key(tea.KeyEnter)
	current := h.model.Snapshot()

	h.model = h.model.apply(old)
	assert.Equal(t, current.Revision, h.model.Snapshot().Revision)
}

func TestResetAndQuit(t *testing.T) {
	h := newHarness(t, question.Curriculum(), question.DefaultVariants(question.DefaultBasicCutoff))
	h.key(tea.KeyEnter)
	h.typeText("algo")

	h.key(tea.KeyCtrlR)
	assert.Equal(t, session.PhaseUnselected, h.model.Snapshot().Phase)
	assert.Empty(t, h.model.input.Value())

	cmd := h.key(tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStartFailureIsShown(t *testing.T) {
	variants := question.Variants{{Name: "empty", Label: "Vacía", Eligible: func(question.Question) bool { return false }}}
	h := newHarness(t, question.Curriculum(), variants)

	h.key(tea.KeyEnter)
	assert.Equal(t, session.PhaseUnselected, h.model.Snapshot().Phase)
	assert.Contains(t, h.model.View(), session.MessagesFor("es").CannotStart)
}

func TestMultipleChoiceAndCompletion(t *testing.T) {
	bank, err := question.NewBank([]question.Question{{
		ID:              1,
		Kind:            question.KindMultipleChoice,
		Prompt:          "¿Cuál es la palanca nº 7?",
		AcceptedAnswers: []string{"Doblar el codo"},
		Options:         []string{"Doblar el codo", "Girar la muñeca"},
	}})
	require.NoError(t, err)
	h := newHarness(t, bank, question.DefaultVariants(question.DefaultBasicCutoff))

	h.key(tea.KeyEnter)
	assert.Contains(t, h.model.View(), "( ) Doblar el codo")

	h.key(tea.KeyDown)
	assert.Equal(t, "Doblar el codo", h.engine.Snapshot().PendingAnswer)
	assert.Contains(t, h.model.View(), "(•) Doblar el codo")

	h.key(tea.KeyEnter)
	assert.True(t, h.model.Snapshot().IsCorrectLastAnswer)

	h.key(tea.KeyEnter)
	snap := h.model.Snapshot()
	require.True(t, snap.Completed)
	view := h.model.View()
	assert.Contains(t, view, "¡Cuestionario completado! Tu puntuación es: 1/1")
	assert.Contains(t, view, "Correctas: 1")

	h.key(tea.KeyEnter)
	assert.Equal(t, session.PhaseUnselected, h.model.Snapshot().Phase)
}
