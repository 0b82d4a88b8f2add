package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/session"
)

// Options configures the terminal UI.
type Options struct {
	NoColor bool
	Locale  string
}

// Model renders the quiz and turns key presses into engine actions. It never
// mutates session state itself; every change goes through the engine and
// comes back as a snapshot.
type Model struct {
	engine   *session.Engine
	changes  <-chan struct{}
	snap     session.Snapshot
	variants question.Variants
	counts   []int

	input  textinput.Model
	bar    progress.Model
	menu   int
	option int

	startErr string
	cannot   string
	labels   labels
	noColor  bool
}

// NewModel builds a model over engine. changes receives a signal after
// every engine change, including timer-driven advances.
func NewModel(engine *session.Engine, changes <-chan struct{}, bank *question.Bank, opts Options) Model {
	l := labelsFor(opts.Locale)

	input := textinput.New()
	input.Placeholder = l.Placeholder
	input.CharLimit = 200
	input.Width = 48

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(48))

	variants := engine.Variants()
	counts := make([]int, len(variants))
	for i, v := range variants {
		counts[i] = len(bank.EligibleFor(v))
	}

	m := Model{
		engine:   engine,
		changes:  changes,
		variants: variants,
		counts:   counts,
		input:    input,
		bar:      bar,
		option:   -1,
		cannot:   session.MessagesFor(opts.Locale).CannotStart,
		labels:   l,
		noColor:  opts.NoColor,
	}
	return m.apply(engine.Snapshot())
}

// Init starts the cursor blink and waits for the first engine change.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

// Update handles keys, window resizes and engine change signals.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(typed.Width-4, 10), 60)
		return m, nil
	case changedMsg:
		m = m.apply(m.engine.Snapshot())
		return m, waitForChange(m.changes)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the current snapshot.
func (m Model) View() string {
	var body string
	switch m.snap.Phase {
	case session.PhaseUnselected:
		body = m.renderMenu()
	case session.PhaseCompleted:
		body = m.renderCompleted()
	default:
		body = m.renderQuestion()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), "", body, "") + "\n"
}

// Snapshot returns the snapshot the model last rendered.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlR:
		m.startErr = ""
		return m.apply(m.engine.Reset()), nil
	}

	switch m.snap.Phase {
	case session.PhaseUnselected:
		return m.handleMenuKey(msg)
	case session.PhaseInProgress:
		return m.handleQuestionKey(msg)
	case session.PhaseAnswered:
		switch msg.Type {
		case tea.KeyEnter:
			return m.apply(m.engine.Advance()), nil
		case tea.KeyTab:
			return m.apply(m.engine.Skip()), nil
		}
	case session.PhaseCompleted:
		if msg.Type == tea.KeyEnter {
			return m.apply(m.engine.Reset()), nil
		}
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menu > 0 {
			m.menu--
		}
	case "down", "j":
		if m.menu < len(m.variants)-1 {
			m.menu++
		}
	case "enter":
		if len(m.variants) == 0 {
			return m, nil
		}
		snap, err := m.engine.ChooseVariant(m.variants[m.menu].Name)
		var emptyErr *session.EmptyBankError
		if errors.As(err, &emptyErr) {
			m.startErr = m.cannot
			return m, nil
		}
		m.startErr = ""
		return m.apply(snap), nil
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if !m.snap.CanSubmit() {
			return m, nil
		}
		return m.apply(m.engine.Submit()), nil
	case tea.KeyTab:
		return m.apply(m.engine.Skip()), nil
	}

	if m.isChoice() {
		options := m.snap.CurrentQuestion.Options
		switch msg.String() {
		case "up", "k":
			m.option = max(m.option-1, 0)
		case "down", "j":
			if m.option < len(options)-1 {
				m.option++
			}
		default:
			return m, nil
		}
		return m.apply(m.engine.UpdatePendingAnswer(options[m.option])), nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m = m.apply(m.engine.UpdatePendingAnswer(m.input.Value()))
	}
	return m, cmd
}

// apply adopts snap unless a newer one was already rendered, and syncs the
// input widgets with it.
func (m Model) apply(snap session.Snapshot) Model {
	if snap.Revision < m.snap.Revision {
		return m
	}
	newQuestion := snap.Generation != m.snap.Generation || snap.PositionDisplay != m.snap.PositionDisplay
	m.snap = snap
	if newQuestion {
		m.option = -1
	}
	if m.input.Value() != snap.PendingAnswer {
		m.input.SetValue(snap.PendingAnswer)
	}
	if snap.Phase == session.PhaseInProgress && !m.isChoice() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

func (m Model) isChoice() bool {
	return m.snap.CurrentQuestion != nil && m.snap.CurrentQuestion.Kind == question.KindMultipleChoice
}

// changedMsg tells the model the engine state moved on.
type changedMsg struct{}

// waitForChange blocks until the engine signals a change.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if changes == nil {
			return nil
		}
		if _, ok := <-changes; !ok {
			return tea.Quit()
		}
		return changedMsg{}
	}
}
