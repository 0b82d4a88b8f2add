package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lianhua/qinna-quiz/internal/question"
)

const (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("203")
	colorCursor  = lipgloss.Color("212")
)

func (m Model) renderHeader() string {
	title := m.labels.Title
	if !m.noColor {
		title = lipgloss.NewStyle().Bold(true).Foreground(colorTitle).Render(title)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, stylize(m.labels.Subtitle, m.noColor, colorMuted))
}

func (m Model) renderMenu() string {
	lines := []string{m.labels.ChooseVariant}
	for i, v := range m.variants {
		cursor := "  "
		line := fmt.Sprintf("%s (%s)", v.Label, fmt.Sprintf(m.labels.Questions, m.counts[i]))
		if i == m.menu {
			cursor = "> "
			line = stylize(line, m.noColor, colorCursor)
		}
		lines = append(lines, cursor+line)
	}
	if m.startErr != "" {
		lines = append(lines, "", stylize(m.startErr, m.noColor, colorWrong))
	}
	lines = append(lines, "", stylize(m.labels.HelpMenu, m.noColor, colorMuted))
	return strings.Join(lines, "\n")
}

func (m Model) renderQuestion() string {
	snap := m.snap
	q := snap.CurrentQuestion
	percent := 0.0
	if snap.TotalCount > 0 {
		percent = float64(snap.PositionDisplay) / float64(snap.TotalCount)
	}

	lines := []string{
		m.bar.ViewAs(percent),
		stylize(fmt.Sprintf(m.labels.QuestionOf, snap.PositionDisplay, snap.TotalCount)+"  ·  "+
			fmt.Sprintf(m.labels.Score, snap.Score), m.noColor, colorMuted),
		"",
		q.Prompt,
	}
	if q.Kind == question.KindImage {
		lines = append(lines, stylize(fmt.Sprintf(m.labels.Image, q.ImageRef), m.noColor, colorMuted))
	}
	lines = append(lines, "")

	help := m.labels.HelpQuestion
	if q.Kind == question.KindMultipleChoice {
		help = m.labels.HelpChoice
		for _, opt := range q.Options {
			mark := "( ) "
			if opt == snap.PendingAnswer {
				mark = "(•) "
			}
			lines = append(lines, mark+opt)
		}
	} else {
		lines = append(lines, m.input.View())
	}

	if snap.FeedbackText != "" {
		color := colorWrong
		if snap.IsCorrectLastAnswer {
			color = colorCorrect
		}
		lines = append(lines, "", stylize(snap.FeedbackText, m.noColor, color))
	}
	if snap.Answered {
		help = m.labels.HelpAnswered
	}
	lines = append(lines, "", stylize(help, m.noColor, colorMuted))
	return strings.Join(lines, "\n")
}

func (m Model) renderCompleted() string {
	lines := []string{
		m.bar.ViewAs(1),
		"",
		stylize(m.snap.FeedbackText, m.noColor, colorTitle),
	}
	if s := m.snap.Summary; s != nil {
		lines = append(lines, fmt.Sprintf(m.labels.Summary,
			s.Correct, s.Incorrect, s.Skipped, int(s.Accuracy*100+0.5), s.BestStreak))
	}
	lines = append(lines, "", stylize(m.labels.HelpCompleted, m.noColor, colorMuted))
	return strings.Join(lines, "\n")
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
