package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// mode selects between the sign-in and sign-up forms.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// field indexes within the active form.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

type authDoneMsg struct {
	Err error
}

// LoginScreen collects credentials and exchanges them for a token.
type LoginScreen struct {
	client      *api.Client
	homeFactory func() screen.Screen

	mode       mode
	name       components.TextInput
	email      components.TextInput
	password   components.TextInput
	focused    int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that transitions to homeFactory's screen
// after a successful sign-in.
func New(client *api.Client, homeFactory func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		client:      client,
		homeFactory: homeFactory,
		name:        components.NewTextInput("Full name", false, 100),
		email:       components.NewTextInput("Email", false, 100),
		password:    components.NewPasswordInput("Password", 100),
		focused:     fieldEmail,
	}
	s.name.Blur()
	s.password.Blur()
	return s
}

func (s *LoginScreen) Title() string {
	if s.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Toggle sign up"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Init()
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.submitting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		home := s.homeFactory()
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: home}
		}

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}

		switch msg.String() {
		case "ctrl+r":
			s.toggleMode()
			return s, nil
		case "tab", "down":
			return s, s.cycleFocus(1)
		case "shift+tab", "up":
			return s, s.cycleFocus(-1)
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	switch s.focused {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldEmail:
		s.email, cmd = s.email.Update(msg)
	case fieldPassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) toggleMode() {
	if s.mode == modeLogin {
		s.mode = modeRegister
		s.setFocus(fieldName)
	} else {
		s.mode = modeLogin
		s.setFocus(fieldEmail)
	}
	s.errMsg = ""
}

func (s *LoginScreen) cycleFocus(dir int) tea.Cmd {
	first := fieldEmail
	if s.mode == modeRegister {
		first = fieldName
	}
	next := s.focused + dir
	if next < first {
		next = fieldPassword
	}
	if next > fieldPassword {
		next = first
	}
	return s.setFocus(next)
}

func (s *LoginScreen) setFocus(field int) tea.Cmd {
	s.name.Blur()
	s.email.Blur()
	s.password.Blur()
	s.focused = field
	switch field {
	case fieldName:
		return s.name.Focus()
	case fieldEmail:
		return s.email.Focus()
	default:
		return s.password.Focus()
	}
}

func (s *LoginScreen) submit() tea.Cmd {
	name := strings.TrimSpace(s.name.Value())
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()

	if email == "" || password == "" {
		s.errMsg = "Email and password are required."
		return nil
	}
	if s.mode == modeRegister && name == "" {
		s.errMsg = "Full name is required."
		return nil
	}

	s.submitting = true
	s.errMsg = ""

	register := s.mode == modeRegister
	client := s.client
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if register {
			err = client.Register(ctx, name, email, password)
		} else {
			err = client.Login(ctx, email, password)
		}
		return authDoneMsg{Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := "Welcome back"
	hint := "Ctrl+R to create an account"
	if s.mode == modeRegister {
		title = "Create your account"
		hint = "Ctrl+R to sign in instead"
	}

	var rows []string
	rows = append(rows, theme.Title.Render(title), "")

	if s.mode == modeRegister {
		rows = append(rows, s.renderField("Name", s.name, fieldName))
	}
	rows = append(rows,
		s.renderField("Email", s.email, fieldEmail),
		s.renderField("Password", s.password, fieldPassword),
	)

	if s.submitting {
		rows = append(rows, "", theme.Hint.Render("Signing in..."))
	} else if s.errMsg != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	rows = append(rows, "", theme.Hint.Render(hint))

	card := components.Card(strings.Join(rows, "\n"), cw)
	return components.CenteredFrame(card, width, height)
}

func (s *LoginScreen) renderField(label string, input components.TextInput, field int) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focused == field {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return style.Render(label) + "\n" + input.View() + "\n"
}
