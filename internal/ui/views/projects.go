package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/tracker"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

// SelectedProject signals that a project was opened
type SelectedProject struct {
	ProjectID string
}

// LoggedOut signals that the session ended
type LoggedOut struct{}

type projectEntry struct {
	id    string
	title string
	owner string
	mine  bool
}

type projectItem struct {
	entry projectEntry
}

func (i projectItem) Title() string { return i.entry.id }
func (i projectItem) Description() string {
	if i.entry.mine {
		return i.entry.title + " (owner)"
	}
	return i.entry.title + " (member)"
}
func (i projectItem) FilterValue() string { return i.entry.id }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := titleStyle.Render(p.Title())
	desc := descStyle.Render(p.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// ProjectListView shows the session user's projects
type ProjectListView struct {
	trk      *tracker.Tracker
	sess     tracker.Session
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	creating     bool
	newID        textinput.Model
	newTitle     textinput.Model
	focusIdx     int // 0=id, 1=title, 2=confirm
	renaming     bool
	renameInput  textinput.Model
	memberMode   bool
	memberRemove bool
	memberInput  textinput.Model
	deactivating bool
	deactInput   textinput.Model

	confirmingDelete bool
	deleteTargetID   string

	status    string
	statusErr bool

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewProjectListView creates the project list for one session
func NewProjectListView(trk *tracker.Tracker, sess tracker.Session) *ProjectListView {
	s := styles.NewStyles()

	newID := textinput.New()
	newID.Placeholder = "Project id"
	newID.CharLimit = 50

	newTitle := textinput.New()
	newTitle.Placeholder = "Project title"
	newTitle.CharLimit = 100

	renameInput := textinput.New()
	renameInput.Placeholder = "New title"
	renameInput.CharLimit = 100

	memberInput := textinput.New()
	memberInput.Placeholder = "Username"
	memberInput.CharLimit = 50

	deactInput := textinput.New()
	deactInput.Placeholder = "Username to deactivate"
	deactInput.CharLimit = 50

	// Setup custom delegate
	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &ProjectListView{
		trk:         trk,
		sess:        sess,
		list:        l,
		delegate:    delegate,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		newID:       newID,
		newTitle:    newTitle,
		renameInput: renameInput,
		memberInput: memberInput,
		deactInput:  deactInput,
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.loadProjects
}

type projectsLoadedMsg struct {
	entries []projectEntry
}

func (v *ProjectListView) loadProjects() tea.Msg {
	listing, err := v.trk.ListProjects(v.sess)
	if err != nil {
		return err
	}

	var entries []projectEntry
	for _, id := range listing.Owned {
		p, err := v.trk.GetProject(id)
		if err != nil {
			continue
		}
		entries = append(entries, projectEntry{id: id, title: p.Title, owner: p.Owner, mine: true})
	}
	for _, id := range listing.Member {
		p, err := v.trk.GetProject(id)
		if err != nil {
			continue
		}
		entries = append(entries, projectEntry{id: id, title: p.Title, owner: p.Owner})
	}
	return projectsLoadedMsg{entries: entries}
}

func (v *ProjectListView) selectedEntry() (projectEntry, bool) {
	item, ok := v.list.SelectedItem().(projectItem)
	if !ok {
		return projectEntry{}, false
	}
	return item.entry, true
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case projectsLoadedMsg:
		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = projectItem{entry: e}
		}
		v.list.SetItems(items)
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.renaming {
			return v.updateRenaming(msg)
		}
		if v.memberMode {
			return v.updateMembers(msg)
		}
		if v.deactivating {
			return v.updateDeactivating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Logout):
			return v, func() tea.Msg { return LoggedOut{} }

		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.focusIdx = 0
			v.status = ""
			v.newID.Reset()
			v.newTitle.Reset()
			v.newID.Focus()
			v.newTitle.Blur()
			return v, textinput.Blink

		case msg.String() == "r":
			if entry, ok := v.selectedEntry(); ok {
				v.renaming = true
				v.status = ""
				v.renameInput.SetValue(entry.title)
				v.renameInput.Focus()
				return v, textinput.Blink
			}

		case msg.String() == "m":
			if _, ok := v.selectedEntry(); ok {
				v.memberMode = true
				v.memberRemove = false
				v.status = ""
				v.memberInput.Reset()
				v.memberInput.Focus()
				return v, textinput.Blink
			}

		case msg.String() == "x":
			v.deactivating = true
			v.status = ""
			v.deactInput.Reset()
			v.deactInput.Focus()
			return v, textinput.Blink

		case msg.String() == "?":
			v.showHelpPopup = true
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if entry, ok := v.selectedEntry(); ok {
				return v, func() tea.Msg {
					return SelectedProject{ProjectID: entry.id}
				}
			}

		case key.Matches(msg, v.keys.Delete):
			if entry, ok := v.selectedEntry(); ok {
				v.confirmingDelete = true
				v.deleteTargetID = entry.id
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.trk.RemoveProject(v.sess, v.deleteTargetID); err != nil {
			v.setError(err)
			return v, nil
		}
		v.setOK("Project removed successfully.")
		return v, v.loadProjects
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ProjectListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 3
		v.updateCreateFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 2) % 3
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 2 {
			v.focusIdx++
			v.updateCreateFocus()
			return v, nil
		}
		id := strings.TrimSpace(v.newID.Value())
		title := strings.TrimSpace(v.newTitle.Value())
		if err := v.trk.CreateProject(v.sess, id, title); err != nil {
			v.setError(err)
			return v, nil
		}
		v.creating = false
		v.setOK("Project created successfully.")
		return v, v.loadProjects
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newID, cmd = v.newID.Update(msg)
	case 1:
		v.newTitle, cmd = v.newTitle.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) updateCreateFocus() {
	v.newID.Blur()
	v.newTitle.Blur()
	switch v.focusIdx {
	case 0:
		v.newID.Focus()
	case 1:
		v.newTitle.Focus()
	}
}

func (v *ProjectListView) updateRenaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.renaming = false
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		entry, ok := v.selectedEntry()
		if !ok {
			v.renaming = false
			return v, nil
		}
		title := strings.TrimSpace(v.renameInput.Value())
		if err := v.trk.RenameProject(v.sess, entry.id, title); err != nil {
			v.setError(err)
			v.renaming = false
			return v, nil
		}
		v.renaming = false
		v.setOK("Project renamed.")
		return v, v.loadProjects
	}

	var cmd tea.Cmd
	v.renameInput, cmd = v.renameInput.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateMembers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.memberMode = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		// Toggle between add and remove
		v.memberRemove = !v.memberRemove
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		entry, ok := v.selectedEntry()
		if !ok {
			v.memberMode = false
			return v, nil
		}
		username := strings.TrimSpace(v.memberInput.Value())
		var err error
		if v.memberRemove {
			err = v.trk.RemoveMember(v.sess, entry.id, username)
		} else {
			err = v.trk.AddMember(v.sess, entry.id, username)
		}
		if err != nil {
			v.setError(err)
			v.memberMode = false
			return v, nil
		}
		v.memberMode = false
		if v.memberRemove {
			v.setOK("Member removed successfully.")
		} else {
			v.setOK("Member added successfully.")
		}
		return v, v.loadProjects
	}

	var cmd tea.Cmd
	v.memberInput, cmd = v.memberInput.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateDeactivating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.deactivating = false
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		username := strings.TrimSpace(v.deactInput.Value())
		v.deactivating = false
		if err := v.trk.Deactivate(v.sess, username); err != nil {
			v.setError(err)
			return v, nil
		}
		v.setOK(fmt.Sprintf("User %s deactivated.", username))
		return v, nil
	}

	var cmd tea.Cmd
	v.deactInput, cmd = v.deactInput.Update(msg)
	return v, cmd
}

func (v *ProjectListView) setError(err error) {
	v.status = err.Error()
	v.statusErr = true
}

func (v *ProjectListView) setOK(msg string) {
	v.status = msg
	v.statusErr = false
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	if v.renaming {
		return v.renderInputPopup("Rename Project", v.renameInput.View())
	}

	if v.memberMode {
		mode := "Add Member"
		if v.memberRemove {
			mode = "Remove Member"
		}
		return v.renderInputPopup(mode+"  (tab: switch add/remove)", v.memberInput.View())
	}

	if v.deactivating {
		return v.renderInputPopup("Deactivate User", v.deactInput.View())
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderStatus() + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	statusStyle := v.styles.StatusOK
	if v.statusErr {
		statusStyle = v.styles.StatusError
	}
	return statusStyle.Padding(0, 2).Render(v.status) + "\n"
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	idStyle := s.Input
	titleStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		idStyle = s.InputFocused
	case 1:
		titleStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Project"),
		"",
		"Project ID:",
		idStyle.Width(inputWidth).Render(v.newID.View()),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.newTitle.View()),
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • ↵: confirm • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderInputPopup(title, input string) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		"",
		s.InputFocused.Width(clamp(contentWidth-6, 20, 50)).Render(input),
		"",
		s.TitleMuted.Render("↵: confirm • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s rename • %s members • %s del • %s deactivate • %s logout • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("m"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("x"),
			v.styles.HelpKey.Render("ctrl+l"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *ProjectListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      open project",
		s.HelpKey.Render("n") + "      new project",
		s.HelpKey.Render("r") + "      rename project",
		s.HelpKey.Render("m") + "      add/remove member",
		s.HelpKey.Render("d") + "      delete project",
		s.HelpKey.Render("x") + "      deactivate user (manager)",
		s.HelpKey.Render("ctrl+l") + " logout",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render("This also deletes all of its tasks."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
