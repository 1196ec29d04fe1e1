package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/login"
	"github.com/abhisek/quizdeck/internal/screens/welcome"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// navigateLoginMsg is sent when the session ends outside the normal
// screen flow, e.g. the backend rejected a stale token.
type navigateLoginMsg struct{}

// Options carries the dependencies the TUI needs.
type Options struct {
	Session  *auth.Session
	Client   *api.Client
	Attempts store.AttemptRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router       *router.Router
	session      *auth.Session
	loginFactory func() screen.Screen
	width        int
	height       int
}

// newAppModel creates an AppModel starting at the splash screen, which
// hands off to home for a restored session or sign-in otherwise.
func newAppModel(opts Options) AppModel {
	var loginFactory func() screen.Screen
	homeFactory := func() screen.Screen {
		return home.New(opts.Client, opts.Session, opts.Attempts)
	}
	loginFactory = func() screen.Screen {
		return login.New(opts.Client, homeFactory)
	}

	splash := welcome.New(func() screen.Screen {
		if opts.Session.IsAuthenticated() {
			return homeFactory()
		}
		return loginFactory()
	})

	return AppModel{
		router:       router.New(splash),
		session:      opts.Session,
		loginFactory: loginFactory,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateLoginMsg:
		return m, m.router.Reset(m.loginFactory())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// Let the active screen see esc first; screens with
				// sub-flows (the quiz confirm step) consume it.
				break
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.session != nil && m.session.IsAuthenticated() {
		status = "● signed in"
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	} else if m.router.Depth() > 1 {
		footerHints = append([]layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}, footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))

	// Route forced logouts back to the sign-in screen, wherever the
	// user happens to be.
	opts.Session.SetNavigator(func() {
		p.Send(navigateLoginMsg{})
	})

	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
