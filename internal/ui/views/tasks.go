package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/models"
	"taskdeck/internal/tracker"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// BackToProjects signals to go back to project list
type BackToProjects struct{}

// editOp is one entry of the task edit menu
type editOp int

const (
	opTitle editOp = iota
	opDescription
	opBumpEndTime
	opPriority
	opStatus
	opComment
	opUnassign
	opAssign
	opRemove
	opBack
	opLogout
)

var editOpLabels = []string{
	"Modify title",
	"Modify description",
	"Bump end time to now",
	"Modify priority",
	"Modify status",
	"Add comment",
	"Remove member from task",
	"Add member to task",
	"Remove task",
	"Back",
	"Logout",
}

// fieldMode says which single-line/area input the edit flow is collecting
type fieldMode int

const (
	fieldNone fieldMode = iota
	fieldTitle
	fieldDescription
	fieldComment
	fieldAssign
	fieldUnassign
)

// TaskBoardView shows and edits the tasks of one project
type TaskBoardView struct {
	trk       *tracker.Tracker
	sess      tracker.Session
	projectID string
	project   models.Project
	styles    *styles.Styles
	keys      keys.KeyMap

	width  int
	height int
	loaded bool

	cursor  int
	scrollY int

	// Task creation
	creating       bool
	newTitle       textinput.Model
	newDesc        textarea.Model
	newAssignees   textinput.Model
	createFocusIdx int // 0=title, 1=desc, 2=assignees, 3=save

	// Task detail / edit flow
	viewing      bool
	editMenuOpen bool
	editCursor   int
	editTaskID   string

	fMode      fieldMode
	fieldInput textinput.Model
	fieldArea  textarea.Model

	// Priority / status choice
	choosing       bool
	choosingStatus bool
	choiceCursor   int

	confirmingRemove bool

	status    string
	statusErr bool

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskBoardView creates a task board for one project
func NewTaskBoardView(trk *tracker.Tracker, sess tracker.Session, projectID string) *TaskBoardView {
	s := styles.NewStyles()

	newTitle := textinput.New()
	newTitle.Placeholder = "Task title"
	newTitle.CharLimit = 200

	newDesc := textarea.New()
	newDesc.Placeholder = "Description"
	newDesc.CharLimit = 1000
	newDesc.SetWidth(50)
	newDesc.SetHeight(3)
	newDesc.ShowLineNumbers = false

	newAssignees := textinput.New()
	newAssignees.Placeholder = "Assignees (comma separated)"
	newAssignees.CharLimit = 200

	fieldInput := textinput.New()
	fieldInput.CharLimit = 200

	fieldArea := textarea.New()
	fieldArea.CharLimit = 2000
	fieldArea.SetWidth(50)
	fieldArea.SetHeight(3)
	fieldArea.ShowLineNumbers = false

	return &TaskBoardView{
		trk:          trk,
		sess:         sess,
		projectID:    projectID,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		newTitle:     newTitle,
		newDesc:      newDesc,
		newAssignees: newAssignees,
		fieldInput:   fieldInput,
		fieldArea:    fieldArea,
	}
}

// Init initializes the view
func (v *TaskBoardView) Init() tea.Cmd {
	return v.loadProject
}

type projectLoadedMsg struct {
	project models.Project
}

func (v *TaskBoardView) loadProject() tea.Msg {
	p, err := v.trk.GetProject(v.projectID)
	if err != nil {
		return err
	}
	return projectLoadedMsg{project: *p}
}

func (v *TaskBoardView) selectedTask() (models.Task, bool) {
	if len(v.project.Tasks) == 0 || v.cursor >= len(v.project.Tasks) {
		return models.Task{}, false
	}
	return v.project.Tasks[v.cursor], true
}

// Update handles messages
func (v *TaskBoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		inputWidth := clamp(contentWidth-10, 20, 50)
		v.newDesc.SetWidth(inputWidth)
		v.fieldArea.SetWidth(inputWidth)
		return v, nil

	case projectLoadedMsg:
		v.project = msg.project
		v.loaded = true
		if v.cursor >= len(v.project.Tasks) {
			v.cursor = max(0, len(v.project.Tasks)-1)
		}
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingRemove {
			return v.updateConfirmRemove(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.fMode != fieldNone {
			return v.updateFieldInput(msg)
		}
		if v.choosing {
			return v.updateChoosing(msg)
		}
		if v.editMenuOpen {
			return v.updateEditMenu(msg)
		}
		if v.viewing {
			return v.updateViewing(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskBoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Logout):
		return v, func() tea.Msg { return LoggedOut{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.project.Tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if task, ok := v.selectedTask(); ok {
			if !tracker.CanViewTask(v.sess, &task) {
				v.setErrorMsg("Task details are only visible to assignees.")
				return v, nil
			}
			v.viewing = true
			v.status = ""
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.selectedTask(); ok {
			v.editMenuOpen = true
			v.editCursor = 0
			v.editTaskID = task.ID
			v.status = ""
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case msg.String() == "?":
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskBoardView) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewing = false
		return v, nil
	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.selectedTask(); ok {
			v.editMenuOpen = true
			v.editCursor = 0
			v.editTaskID = task.ID
		}
		return v, nil
	case key.Matches(msg, v.keys.Logout):
		return v, func() tea.Msg { return LoggedOut{} }
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *TaskBoardView) updateEditMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editMenuOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.editCursor > 0 {
			v.editCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.editCursor < len(editOpLabels)-1 {
			v.editCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		return v.selectEditOp(editOp(v.editCursor))
	}
	return v, nil
}

func (v *TaskBoardView) selectEditOp(op editOp) (tea.Model, tea.Cmd) {
	switch op {
	case opTitle:
		v.openField(fieldTitle, "New title")
		return v, textinput.Blink
	case opDescription:
		v.openField(fieldDescription, "New description")
		return v, textarea.Blink
	case opBumpEndTime:
		v.editMenuOpen = false
		return v, v.applyEdit(tracker.EditBumpEndTime{})
	case opPriority:
		v.choosing = true
		v.choosingStatus = false
		v.choiceCursor = 0
		return v, nil
	case opStatus:
		v.choosing = true
		v.choosingStatus = true
		v.choiceCursor = 0
		return v, nil
	case opComment:
		v.openField(fieldComment, "Comment")
		return v, textarea.Blink
	case opUnassign:
		v.openField(fieldUnassign, "Username to remove")
		return v, textinput.Blink
	case opAssign:
		v.openField(fieldAssign, "Username to add")
		return v, textinput.Blink
	case opRemove:
		v.confirmingRemove = true
		return v, nil
	case opBack:
		v.editMenuOpen = false
		return v, nil
	case opLogout:
		return v, func() tea.Msg { return LoggedOut{} }
	}
	return v, nil
}

func (v *TaskBoardView) openField(mode fieldMode, placeholder string) {
	v.fMode = mode
	if mode == fieldDescription || mode == fieldComment {
		v.fieldArea.Reset()
		v.fieldArea.Placeholder = placeholder
		v.fieldArea.Focus()
	} else {
		v.fieldInput.Reset()
		v.fieldInput.Placeholder = placeholder
		v.fieldInput.Focus()
	}
}

// fieldUsesArea reports whether the current field mode collects multiline text
func (v *TaskBoardView) fieldUsesArea() bool {
	return v.fMode == fieldDescription || v.fMode == fieldComment
}

func (v *TaskBoardView) updateFieldInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeField()
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submitField()

	case key.Matches(msg, v.keys.Enter):
		// Enter submits single-line fields; textareas take it as a newline
		if !v.fieldUsesArea() {
			return v, v.submitField()
		}
	}

	var cmd tea.Cmd
	if v.fieldUsesArea() {
		v.fieldArea, cmd = v.fieldArea.Update(msg)
	} else {
		v.fieldInput, cmd = v.fieldInput.Update(msg)
	}
	return v, cmd
}

func (v *TaskBoardView) closeField() {
	v.fMode = fieldNone
	v.fieldInput.Blur()
	v.fieldArea.Blur()
}

func (v *TaskBoardView) submitField() tea.Cmd {
	var value string
	if v.fieldUsesArea() {
		value = strings.TrimSpace(v.fieldArea.Value())
	} else {
		value = strings.TrimSpace(v.fieldInput.Value())
	}

	var edit tracker.Edit
	switch v.fMode {
	case fieldTitle:
		edit = tracker.EditTitle{Title: value}
	case fieldDescription:
		edit = tracker.EditDescription{Description: value}
	case fieldComment:
		edit = tracker.EditComment{Content: value}
	case fieldAssign:
		edit = tracker.EditAssign{Username: value}
	case fieldUnassign:
		edit = tracker.EditUnassign{Username: value}
	default:
		v.closeField()
		return nil
	}

	v.closeField()
	return v.applyEdit(edit)
}

func (v *TaskBoardView) updateChoosing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(models.Priorities)
	if v.choosingStatus {
		count = len(models.Statuses)
	}

	switch {
	case key.Matches(msg, v.keys.Back):
		v.choosing = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.choiceCursor > 0 {
			v.choiceCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.choiceCursor < count-1 {
			v.choiceCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		var edit tracker.Edit
		if v.choosingStatus {
			edit = tracker.EditStatus{Status: models.Statuses[v.choiceCursor]}
		} else {
			edit = tracker.EditPriority{Priority: models.Priorities[v.choiceCursor]}
		}
		v.choosing = false
		return v, v.applyEdit(edit)
	}
	return v, nil
}

func (v *TaskBoardView) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingRemove = false
		v.editMenuOpen = false
		v.viewing = false
		return v, v.applyEdit(tracker.EditRemoveTask{})
	case "n", "N", "esc":
		v.confirmingRemove = false
		return v, nil
	}
	return v, nil
}

// applyEdit runs one tracker edit against the task under edit and reloads
func (v *TaskBoardView) applyEdit(edit tracker.Edit) tea.Cmd {
	if err := v.trk.ApplyEdit(v.sess, v.projectID, v.editTaskID, edit); err != nil {
		v.setError(err)
	} else {
		v.setOK("Saved.")
	}
	return v.loadProject
}

func (v *TaskBoardView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveNewTask()

	case key.Matches(msg, v.keys.Tab):
		v.createFocusIdx = (v.createFocusIdx + 1) % 4
		v.updateCreateFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.createFocusIdx = (v.createFocusIdx + 3) % 4
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Enter on title or assignees moves on; enter on save saves
		if v.createFocusIdx == 0 || v.createFocusIdx == 2 {
			v.createFocusIdx++
			v.updateCreateFocus()
			return v, nil
		}
		if v.createFocusIdx == 3 {
			return v, v.saveNewTask()
		}
		// Description textarea keeps enter for newlines
	}

	var cmd tea.Cmd
	switch v.createFocusIdx {
	case 0:
		v.newTitle, cmd = v.newTitle.Update(msg)
	case 1:
		v.newDesc, cmd = v.newDesc.Update(msg)
	case 2:
		v.newAssignees, cmd = v.newAssignees.Update(msg)
	}
	return v, cmd
}

func (v *TaskBoardView) startNewTask() {
	v.creating = true
	v.createFocusIdx = 0
	v.status = ""
	v.newTitle.Reset()
	v.newDesc.Reset()
	v.newAssignees.Reset()
	v.updateCreateFocus()
}

func (v *TaskBoardView) updateCreateFocus() {
	v.newTitle.Blur()
	v.newDesc.Blur()
	v.newAssignees.Blur()
	switch v.createFocusIdx {
	case 0:
		v.newTitle.Focus()
	case 1:
		v.newDesc.Focus()
	case 2:
		v.newAssignees.Focus()
	}
}

func (v *TaskBoardView) saveNewTask() tea.Cmd {
	title := strings.TrimSpace(v.newTitle.Value())
	desc := strings.TrimSpace(v.newDesc.Value())

	var assignees []string
	for _, a := range strings.Split(v.newAssignees.Value(), ",") {
		assignees = append(assignees, strings.TrimSpace(a))
	}
	if len(assignees) == 1 && assignees[0] == "" {
		assignees = nil
	}

	if err := v.trk.AddTask(v.sess, v.projectID, title, desc, assignees); err != nil {
		v.setError(err)
		return v.loadProject
	}
	v.creating = false
	v.setOK("Task added successfully.")
	return v.loadProject
}

func (v *TaskBoardView) ensureVisible() {
	// Each task item is 1 line + 1 margin = 2 lines
	availableHeight := v.height - 10
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := availableHeight / 2
	if visibleItems < 1 {
		visibleItems = 1
	}

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskBoardView) setError(err error) {
	v.status = err.Error()
	v.statusErr = true
}

func (v *TaskBoardView) setErrorMsg(msg string) {
	v.status = msg
	v.statusErr = true
}

func (v *TaskBoardView) setOK(msg string) {
	v.status = msg
	v.statusErr = false
}

// View renders the view
func (v *TaskBoardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingRemove {
		return v.renderRemoveConfirm()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	if v.fMode != fieldNone {
		return v.renderFieldForm()
	}

	if v.choosing {
		return v.renderChoice()
	}

	if v.editMenuOpen {
		return v.renderEditMenu()
	}

	if v.viewing {
		return v.renderTaskDetail()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.project.Title))
	b.WriteString("\n")
	b.WriteString(v.styles.TitleMuted.Render(fmt.Sprintf("owner: %s • members: %s",
		v.project.Owner, strings.Join(v.project.Members, ", "))))
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskBoardView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	statusStyle := v.styles.StatusOK
	if v.statusErr {
		statusStyle = v.styles.StatusError
	}
	return statusStyle.Padding(0, 2).Render(v.status) + "\n"
}

func (v *TaskBoardView) renderTaskList() string {
	s := v.styles

	if len(v.project.Tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	availableHeight := v.height - 12
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := availableHeight / 2
	if visibleItems < 1 {
		visibleItems = 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(v.project.Tasks))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.project.Tasks[i], i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskBoardView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	statusBadge := lipgloss.NewStyle().
		Foreground(styles.StatusColor(task.Status)).
		Render(fmt.Sprintf("[%s]", task.Status))
	priorityBadge := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Render(string(task.Priority))

	line := fmt.Sprintf("%s %s  %s", statusBadge, task.Title, priorityBadge)

	assignees := strings.Join(task.Assignees, ", ")
	if assignees == models.Unassigned {
		assignees = "unassigned"
	}
	subLine := s.TitleMuted.Render(assignees)

	var itemStyle lipgloss.Style
	if selected {
		itemStyle = s.ListSelected.Width(width)
	} else {
		itemStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		itemStyle.Render(line),
		itemStyle.Render(subLine),
	) + "\n"
}

func (v *TaskBoardView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	titleStyle := s.Input
	descStyle := s.Input
	assigneesStyle := s.Input
	btnStyle := s.Button

	switch v.createFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		assigneesStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.newTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.newDesc.View()),
		"",
		"Assignees:",
		assigneesStyle.Width(inputWidth).Render(v.newAssignees.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskBoardView) renderFieldForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var input, hint string
	if v.fieldUsesArea() {
		input = s.InputFocused.Render(v.fieldArea.View())
		hint = "Ctrl+S: save • Esc: cancel"
	} else {
		input = s.InputFocused.Width(clamp(contentWidth-6, 20, 50)).Render(v.fieldInput.View())
		hint = "↵: save • Esc: cancel"
	}

	titles := map[fieldMode]string{
		fieldTitle:       "Modify Title",
		fieldDescription: "Modify Description",
		fieldComment:     "Add Comment",
		fieldAssign:      "Add Member to Task",
		fieldUnassign:    "Remove Member from Task",
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(titles[v.fMode]),
		"",
		input,
		"",
		s.TitleMuted.Render(hint),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskBoardView) renderChoice() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	title := "Change Priority"
	var options []string
	if v.choosingStatus {
		title = "Change Status"
		for i, st := range models.Statuses {
			label := lipgloss.NewStyle().Foreground(styles.StatusColor(st)).Render(string(st))
			if i == v.choiceCursor {
				options = append(options, s.ListSelected.Render(label))
			} else {
				options = append(options, s.ListItem.Render(label))
			}
		}
	} else {
		for i, p := range models.Priorities {
			label := lipgloss.NewStyle().Foreground(styles.PriorityColor(p)).Render(string(p))
			if i == v.choiceCursor {
				options = append(options, s.ListSelected.Render(label))
			} else {
				options = append(options, s.ListItem.Render(label))
			}
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render(title), ""},
			append(options, "", s.TitleMuted.Render("↵: apply • Esc: cancel"))...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskBoardView) renderEditMenu() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var items []string
	for i, label := range editOpLabels {
		if i == v.editCursor {
			items = append(items, s.ListSelected.Render(label))
		} else {
			items = append(items, s.ListItem.Render(label))
		}
	}

	rows := []string{s.Title.Render("Edit Task"), ""}
	rows = append(rows, items...)
	if v.status != "" {
		rows = append(rows, "", v.renderStatus())
	}
	rows = append(rows, "", s.TitleMuted.Render("↵: select • Esc: close"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskBoardView) renderRemoveConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Remove Task?"),
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

func (v *TaskBoardView) renderTaskDetail() string {
	task, ok := v.selectedTask()
	if !ok {
		return ""
	}

	s := v.styles
	maxContentWidth := styles.ContentWidth(v.width)
	textWidth := clamp(maxContentWidth-10, 20, 70)
	labelStyle := s.TitleMuted

	descText := task.Description
	if descText == "" {
		descText = s.TitleMuted.Render("No description")
	}

	assignees := strings.Join(task.Assignees, ", ")
	if assignees == models.Unassigned {
		assignees = "unassigned"
	}

	statusLine := lipgloss.NewStyle().
		Foreground(styles.StatusColor(task.Status)).
		Render(string(task.Status))
	priorityLine := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Render(string(task.Priority))

	// History log, oldest first
	var historyContent string
	if len(task.History) == 0 {
		historyContent = s.TitleMuted.Render("No history yet")
	} else {
		var lines []string
		for _, h := range task.History {
			lines = append(lines, fmt.Sprintf("%s  %s (%s)",
				s.TitleMuted.Render(h.Timestamp.Format("Jan 2, 2006 3:04 PM")),
				h.Change, h.User))
		}
		historyContent = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	// Comment thread
	var commentsContent string
	if len(task.Comments) == 0 {
		commentsContent = s.TitleMuted.Render("No comments yet")
	} else {
		var lines []string
		for _, c := range task.Comments {
			lines = append(lines, lipgloss.JoinVertical(lipgloss.Left,
				s.TitleMuted.Render(fmt.Sprintf("%s • %s", c.Username, c.Timestamp.Format("Jan 2, 2006 3:04 PM"))),
				lipgloss.NewStyle().Width(textWidth).Render(c.Content),
			))
		}
		commentsContent = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.MarginBottom(1).Render(task.Title),
		labelStyle.Render("Task ID"),
		task.ID,
		"",
		labelStyle.Render("Status"),
		statusLine,
		"",
		labelStyle.Render("Priority"),
		priorityLine,
		"",
		labelStyle.Render("Assignees"),
		assignees,
		"",
		labelStyle.Render("Start / End"),
		fmt.Sprintf("%s → %s",
			task.StartTime.Format("Jan 2, 2006 3:04 PM"),
			task.EndTime.Format("Jan 2, 2006 3:04 PM")),
		"",
		labelStyle.Render("Description"),
		lipgloss.NewStyle().Width(textWidth).Render(descText),
		"",
		labelStyle.Render("History"),
		historyContent,
		"",
		labelStyle.Render("Comments"),
		commentsContent,
		"",
		s.Help.Render(fmt.Sprintf("%s edit • %s back • %s logout",
			s.HelpKey.Render("e"),
			s.HelpKey.Render("esc"),
			s.HelpKey.Render("ctrl+l"),
		)),
	)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(content)
	return styles.CenterView(padded, v.width, v.height)
}

func (v *TaskBoardView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s view • %s edit • %s new • %s back • %s logout • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("ctrl+l"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskBoardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      view task details",
		s.HelpKey.Render("e") + "      open edit menu",
		s.HelpKey.Render("n") + "      new task (owner)",
		s.HelpKey.Render("esc") + "    back to projects",
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
