package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/summary"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const timerInterval = time.Second

// phase tracks where the user is in the assessment flow.
type phase int

const (
	phaseCourseEntry phase = iota
	phaseLoading
	phaseQuestion
	phaseConfirm
	phaseSubmitting
)

type timerTickMsg time.Time

type quizLoadedMsg struct {
	Assessment *api.Assessment
	Err        error
}

type submitDoneMsg struct {
	Result *api.SubmitResult
	Err    error
}

// Screen runs one assessment from course entry through submission.
type Screen struct {
	client   *api.Client
	attempts store.AttemptRepo

	phase      phase
	courseName components.TextInput
	assessment *api.Assessment
	runner     *quiz.Runner
	picker     components.MultiChoice
	elapsed    string
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates an assessment screen starting at course entry.
func New(client *api.Client, attempts store.AttemptRepo) *Screen {
	return &Screen{
		client:     client,
		attempts:   attempts,
		courseName: components.NewTextInput("e.g. Go Programming", false, 100),
		elapsed:    quiz.FormatElapsed(0),
	}
}

func (s *Screen) Title() string {
	switch s.phase {
	case phaseCourseEntry:
		return "New Assessment"
	case phaseLoading:
		return "Generating Quiz"
	default:
		if s.assessment != nil {
			return s.assessment.CourseName
		}
		return "Assessment"
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseCourseEntry:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "S", Description: "Submit"},
		}
	case phaseConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	default:
		return nil
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.courseName.Init()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.onQuizLoaded(msg)
	case submitDoneMsg:
		return s.onSubmitDone(msg)
	case timerTickMsg:
		if s.runner == nil {
			return s, nil
		}
		s.elapsed = quiz.FormatElapsed(s.runner.ElapsedSeconds())
		return s, s.tickTimer()
	case tea.KeyMsg:
		return s.onKey(msg)
	}

	if s.phase == phaseCourseEntry {
		var cmd tea.Cmd
		s.courseName, cmd = s.courseName.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) onKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseCourseEntry:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s, s.startQuiz()
		}
		var cmd tea.Cmd
		s.courseName, cmd = s.courseName.Update(msg)
		return s, cmd

	case phaseQuestion:
		switch msg.String() {
		case "left", "p":
			s.goTo(s.runner.Retreat)
			return s, nil
		case "right", "n":
			s.goTo(s.runner.Advance)
			return s, nil
		case "s":
			s.phase = phaseConfirm
			return s, nil
		}
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		if q := s.runner.CurrentQuestion(); q != nil && s.picker.HasChosen() {
			s.runner.RecordAnswer(q.ID, s.picker.ChosenOption())
		}
		return s, cmd

	case phaseConfirm:
		switch msg.String() {
		case "y", "enter":
			return s, s.submit()
		case "n", "esc":
			s.phase = phaseQuestion
			return s, nil
		}
	}
	return s, nil
}

func (s *Screen) startQuiz() tea.Cmd {
	name := strings.TrimSpace(s.courseName.Value())
	s.phase = phaseLoading
	s.errMsg = ""
	client := s.client
	return func() tea.Msg {
		a, err := client.StartAssessment(context.Background(), name)
		return quizLoadedMsg{Assessment: a, Err: err}
	}
}

func (s *Screen) onQuizLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseCourseEntry
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.assessment = msg.Assessment
	s.runner = quiz.NewRunner(msg.Assessment.Questions, nil)
	s.phase = phaseQuestion
	s.syncPicker()
	return s, s.tickTimer()
}

// goTo moves with the given navigation func and rebinds the picker.
func (s *Screen) goTo(move func() bool) {
	if move() {
		s.syncPicker()
	}
}

// syncPicker rebuilds the option picker for the current question,
// restoring a previously recorded answer.
func (s *Screen) syncPicker() {
	q := s.runner.CurrentQuestion()
	if q == nil {
		return
	}
	s.runner.MarkViewed(q.ID)
	s.picker = components.NewMultiChoice(q.Options)
	if prev := s.runner.AnswerFor(q.ID); prev != "" {
		for i, opt := range q.Options {
			if opt == prev {
				s.picker.SetChosen(i)
				break
			}
		}
	}
}

func (s *Screen) tickTimer() tea.Cmd {
	return tea.Tick(timerInterval, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *Screen) submit() tea.Cmd {
	s.phase = phaseSubmitting
	client := s.client
	id := s.assessment.ID
	answers := s.runner.ExportAnswers()
	total := s.runner.ElapsedSeconds()
	return func() tea.Msg {
		res, err := client.SubmitAssessment(context.Background(), id, answers, total)
		return submitDoneMsg{Result: res, Err: err}
	}
}

func (s *Screen) onSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseQuestion
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	next := summary.New(s.client, s.attempts, summary.Attempt{
		AssessmentID: msg.Result.AssessmentID,
		Course:       s.assessment.CourseName,
		DurationSecs: s.runner.ElapsedSeconds(),
	})
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseCourseEntry:
		return s.viewCourseEntry(width, height)
	case phaseLoading:
		return components.CenteredFrame(
			theme.Hint.Render("Generating your quiz..."), width, height)
	case phaseConfirm:
		return s.viewConfirm(width, height)
	case phaseSubmitting:
		return components.CenteredFrame(
			theme.Hint.Render("Submitting answers..."), width, height)
	default:
		return s.viewQuestion(width, height)
	}
}

func (s *Screen) viewCourseEntry(width, height int) string {
	var rows []string
	rows = append(rows,
		theme.Title.Render("What do you want to be assessed on?"),
		"",
		s.courseName.View(),
	)
	if s.errMsg != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	card := components.Card(strings.Join(rows, "\n"), components.ContentWidth(width))
	return components.CenteredFrame(card, width, height)
}

func (s *Screen) viewConfirm(width, height int) string {
	unanswered := s.runner.UnansweredCount()
	warning := "All questions answered."
	if unanswered > 0 {
		noun := "questions"
		if unanswered == 1 {
			noun = "question"
		}
		warning = fmt.Sprintf("%d %s still unanswered.", unanswered, noun)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		components.NewButton("Submit (Y)", true, nil).View(),
		"  ",
		components.NewButton("Keep going (N)", false, nil).View(),
	)

	content := strings.Join([]string{
		theme.Title.Render("Submit assessment?"),
		"",
		lipgloss.NewStyle().Foreground(theme.Accent).Render(warning),
		"",
		buttons,
	}, "\n")

	card := components.HighlightCard(content, components.ContentWidth(width))
	return components.CenteredFrame(card, width, height)
}

func (s *Screen) viewQuestion(width, height int) string {
	q := s.runner.CurrentQuestion()
	if q == nil {
		return ""
	}

	cw := components.ContentWidth(width)

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.runner.CurrentIndex()+1, s.runner.TotalQuestions()),
		s.runner.ProgressPercent()/100,
		false,
		cw,
	)

	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %s · %s", q.Difficulty, q.Topic, s.elapsed))

	var rows []string
	rows = append(rows,
		progress.View(),
		meta,
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Text),
	)
	if q.CodeSnippet != "" {
		rows = append(rows, "", theme.Code.Width(cw).Render(q.CodeSnippet))
	}
	rows = append(rows, "", s.picker.View())

	if s.errMsg != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	content := strings.Join(rows, "\n")
	return components.CenteredFrame(content, width, height)
}
