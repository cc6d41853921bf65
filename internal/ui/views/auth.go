package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/tracker"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

// LoggedIn signals a successful authentication
type LoggedIn struct {
	Session tracker.Session
}

// AuthView handles registration and login
type AuthView struct {
	trk    *tracker.Tracker
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	registering bool
	username    textinput.Model
	password    textinput.Model
	email       textinput.Model
	focusIdx    int // 0=username, 1=password, (2=email), last=submit
	status      string
	statusErr   bool
}

// NewAuthView creates the auth view
func NewAuthView(trk *tracker.Tracker) *AuthView {
	s := styles.NewStyles()

	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 50
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100

	return &AuthView{
		trk:      trk,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
		email:    email,
	}
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount returns the number of focusable slots including the submit button
func (v *AuthView) fieldCount() int {
	if v.registering {
		return 4
	}
	return 3
}

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case msg.String() == "ctrl+r":
			// Toggle between login and register
			v.registering = !v.registering
			v.focusIdx = 0
			v.status = ""
			v.updateFocus()
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case msg.String() == "shift+tab":
			n := v.fieldCount()
			v.focusIdx = (v.focusIdx + n - 1) % n
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < v.fieldCount()-1 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	case 2:
		if v.registering {
			v.email, cmd = v.email.Update(msg)
		}
	}
	return v, cmd
}

func (v *AuthView) updateFocus() {
	v.username.Blur()
	v.password.Blur()
	v.email.Blur()
	switch v.focusIdx {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	case 2:
		if v.registering {
			v.email.Focus()
		}
	}
}

func (v *AuthView) submit() tea.Cmd {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()

	if v.registering {
		email := strings.TrimSpace(v.email.Value())
		if err := v.trk.Register(username, password, email); err != nil {
			v.status = err.Error()
			v.statusErr = true
			return nil
		}
		v.status = "User created successfully. Log in to continue."
		v.statusErr = false
		v.registering = false
		v.password.Reset()
		v.email.Reset()
		v.focusIdx = 0
		v.updateFocus()
		return nil
	}

	sess, err := v.trk.Authenticate(username, password)
	if err != nil {
		v.status = err.Error()
		v.statusErr = true
		return nil
	}
	return func() tea.Msg {
		return LoggedIn{Session: sess}
	}
}

// View renders the view
func (v *AuthView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "Log In"
	if v.registering {
		formTitle = "Register"
	}

	usernameStyle := s.Input
	passwordStyle := s.Input
	emailStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		usernameStyle = s.InputFocused
	case 1:
		passwordStyle = s.InputFocused
	case 2:
		if v.registering {
			emailStyle = s.InputFocused
		} else {
			btnStyle = s.ButtonFocused
		}
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 40)

	rows := []string{
		s.Title.Render("taskdeck"),
		"",
		s.TitleMuted.Render(formTitle),
		"",
		usernameStyle.Width(inputWidth).Render(v.username.View()),
		passwordStyle.Width(inputWidth).Render(v.password.View()),
	}
	if v.registering {
		rows = append(rows, emailStyle.Width(inputWidth).Render(v.email.View()))
	}

	submitLabel := " Log In "
	toggleHint := "register"
	if v.registering {
		submitLabel = " Register "
		toggleHint = "log in"
	}
	rows = append(rows,
		"",
		btnStyle.Render(submitLabel),
	)

	if v.status != "" {
		statusStyle := s.StatusOK
		if v.statusErr {
			statusStyle = s.StatusError
		}
		rows = append(rows, "", statusStyle.Render(v.status))
	}

	rows = append(rows, "",
		s.Help.Render(fmt.Sprintf("%s next • %s %s • %s quit",
			s.HelpKey.Render("tab"),
			s.HelpKey.Render("ctrl+r"),
			toggleHint,
			s.HelpKey.Render("ctrl+c"),
		)),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
