package summary

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/results"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Attempt carries what the assessment flow knows about the submission
// before the evaluation comes back.
type Attempt struct {
	AssessmentID int
	Course       string
	DurationSecs int
}

type resultsLoadedMsg struct {
	Payload *results.Payload
	Err     error
}

type animTickMsg time.Time

type attemptSavedMsg struct {
	Err error
}

// SummaryScreen fetches the evaluation for a submitted assessment and
// renders the learner profile with an animated score.
type SummaryScreen struct {
	client   *api.Client
	attempts store.AttemptRepo
	info     Attempt

	loading bool
	errMsg  string

	// regions populated through the renderer sinks
	badge      results.SkillBadge
	message    string
	scoreValue float64
	fraction   string
	diffScores map[string]string
	diffBars   map[string]float64
	strengths  []results.InsightEntry
	weaknesses []results.InsightEntry
	weeks      int
	steps      []string
	sectionsOn bool

	anim *results.ScoreAnimation
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the given submission.
func New(client *api.Client, attempts store.AttemptRepo, info Attempt) *SummaryScreen {
	return &SummaryScreen{
		client:     client,
		attempts:   attempts,
		info:       info,
		loading:    true,
		diffScores: make(map[string]string),
		diffBars:   make(map[string]float64),
	}
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	client := s.client
	id := s.info.AssessmentID
	return func() tea.Msg {
		p, err := client.Results(context.Background(), id)
		return resultsLoadedMsg{Payload: p, Err: err}
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		return s.onResultsLoaded(msg)

	case animTickMsg:
		if s.anim == nil {
			return s, nil
		}
		s.scoreValue = s.anim.Step()
		if s.anim.Done() {
			return s, nil
		}
		return s, s.tickAnim()

	case attemptSavedMsg:
		// History is best effort; a write failure never blocks results.
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) onResultsLoaded(msg resultsLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	renderer := results.NewRenderer(msg.Payload, s.sinks(), nil)
	renderer.RenderSkillBadge()
	renderer.RenderPersonalMessage()
	renderer.RenderDifficultyBreakdown()
	renderer.RenderStrengths()
	renderer.RenderWeaknesses()
	renderer.RenderStats()

	eval := msg.Payload.EvaluationResults
	s.fraction = fmt.Sprintf("%d/%d Correct", eval.TotalCorrect, eval.TotalQuestions)
	s.sectionsOn = true

	s.anim = results.NewScoreAnimation(eval.OverallScore, results.DefaultAnimationDuration)

	return s, tea.Batch(s.tickAnim(), s.saveAttempt(eval))
}

// sinks binds the renderer output regions to screen fields.
func (s *SummaryScreen) sinks() results.Sinks {
	return results.Sinks{
		HideLoading:  func() { s.loading = false },
		ShowSections: func() { s.sectionsOn = true },
		SkillBadge:   func(b results.SkillBadge) { s.badge = b },
		PersonalMessage: func(text string) {
			s.message = text
		},
		DifficultyScore: func(band, text string) { s.diffScores[band] = text },
		DifficultyBar:   func(band string, percent float64) { s.diffBars[band] = percent },
		Strengths:       func(entries []results.InsightEntry) { s.strengths = entries },
		Weaknesses:      func(entries []results.InsightEntry) { s.weaknesses = entries },
		EstimatedWeeks:  func(weeks int) { s.weeks = weeks },
		NextSteps:       func(steps []string) { s.steps = steps },
	}
}

func (s *SummaryScreen) tickAnim() tea.Cmd {
	return tea.Tick(results.StepInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func (s *SummaryScreen) saveAttempt(eval results.EvaluationResults) tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	repo := s.attempts
	attempt := &store.Attempt{
		ID:             uuid.NewString(),
		AssessmentID:   s.info.AssessmentID,
		Course:         s.info.Course,
		Score:          eval.OverallScore,
		TotalCorrect:   eval.TotalCorrect,
		TotalQuestions: eval.TotalQuestions,
		DurationSecs:   s.info.DurationSecs,
		SubmittedAt:    time.Now(),
	}
	return func() tea.Msg {
		return attemptSavedMsg{Err: repo.Append(context.Background(), attempt)}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	if s.loading {
		return components.CenteredFrame(
			theme.Hint.Render("Evaluating your answers..."), width, height)
	}
	if s.errMsg != "" {
		return components.CenteredFrame(
			lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg),
			width, height)
	}
	if !s.sectionsOn {
		return ""
	}

	cw := components.ContentWidth(width)

	gauge := components.NewRingGauge(s.scoreValue)

	top := lipgloss.JoinHorizontal(lipgloss.Center,
		gauge.View(),
		"   ",
		strings.Join([]string{
			lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(s.badge.Icon + " " + s.badge.Label),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.fraction),
		}, "\n"),
	)

	var rows []string
	rows = append(rows, top, "")

	if s.message != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(s.message), "")
	}

	bandFills := map[string]color.Color{
		"beginner":     theme.Success,
		"intermediate": theme.Secondary,
		"advanced":     theme.Accent,
	}
	rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render("By difficulty"))
	for _, band := range results.Bands {
		bar := components.NewProgressBar(
			fmt.Sprintf("%-12s %-5s", band, s.diffScores[band]),
			s.diffBars[band]/100,
			false,
			cw,
		).WithFill(bandFills[band])
		rows = append(rows, bar.View())
	}
	rows = append(rows, "")

	rows = append(rows, s.renderInsights("Strengths", s.strengths, theme.Success)...)
	rows = append(rows, s.renderInsights("Focus areas", s.weaknesses, theme.Accent)...)

	if s.weeks > 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Estimated %d weeks to proficiency", s.weeks)))
	}
	if len(s.steps) > 0 {
		rows = append(rows, "", lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render("Next steps"))
		for _, step := range s.steps {
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).Render("  • "+step))
		}
	}

	content := strings.Join(rows, "\n")
	return components.CenteredFrame(content, width, height)
}

func (s *SummaryScreen) renderInsights(title string, entries []results.InsightEntry, accent color.Color) []string {
	if len(entries) == 0 {
		return nil
	}
	rows := []string{lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(title)}
	for _, e := range entries {
		line := fmt.Sprintf("  %s  %d%%", e.Topic, int(e.Percent+0.5))
		if e.Note != "" {
			line += "  " + e.Note
		}
		rows = append(rows, lipgloss.NewStyle().Foreground(accent).Render(line))
	}
	rows = append(rows, "")
	return rows
}
