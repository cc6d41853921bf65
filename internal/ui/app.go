package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/tracker"
	"taskdeck/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewAuth View = iota
	ViewProjects
	ViewTasks
)

type App struct {
	trk         *tracker.Tracker
	currentView View
	auth        *views.AuthView
	projectList *views.ProjectListView
	taskBoard   *views.TaskBoardView
	sess        tracker.Session
	width       int
	height      int
}

// Creates a new application
func NewApp(trk *tracker.Tracker) *App {
	return &App{
		trk:         trk,
		currentView: ViewAuth,
		auth:        views.NewAuthView(trk),
	}
}

func (a *App) Init() tea.Cmd {
	return a.auth.Init()
}

func (a *App) openProjects() tea.Cmd {
	a.currentView = ViewProjects
	a.projectList = views.NewProjectListView(a.trk, a.sess)
	return tea.Batch(
		a.projectList.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) openTasks(projectID string) tea.Cmd {
	a.currentView = ViewTasks
	a.taskBoard = views.NewTaskBoardView(a.trk, a.sess, projectID)
	return tea.Batch(
		a.taskBoard.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.LoggedIn:
		a.sess = msg.Session
		return a, a.openProjects()

	case views.SelectedProject:
		return a, a.openTasks(msg.ProjectID)

	case views.BackToProjects:
		return a, a.openProjects()

	case views.LoggedOut:
		a.sess = tracker.Session{}
		a.currentView = ViewAuth
		a.auth = views.NewAuthView(a.trk)
		return a, tea.Batch(
			a.auth.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewAuth:
		_, cmd = a.auth.Update(msg)
	case ViewProjects:
		_, cmd = a.projectList.Update(msg)
	case ViewTasks:
		_, cmd = a.taskBoard.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewProjects:
		if a.projectList != nil {
			return a.projectList.View()
		}
	case ViewTasks:
		if a.taskBoard != nil {
			return a.taskBoard.View()
		}
	}
	return a.auth.View()
}
