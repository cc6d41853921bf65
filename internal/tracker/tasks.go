package tracker

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskdeck/internal/models"
)

// An Edit is one field change applied to a task. Exactly one history entry
// is appended per accepted edit (task removal excepted, since the log goes
// with the task).
type Edit interface {
	isEdit()
}

// EditTitle replaces the task title
type EditTitle struct {
	Title string
}

// EditDescription replaces the task description
type EditDescription struct {
	Description string
}

// EditBumpEndTime sets the task deadline to now
type EditBumpEndTime struct{}

// EditPriority sets the task priority
type EditPriority struct {
	Priority models.Priority
}

// EditStatus moves the task to another board column
type EditStatus struct {
	Status models.Status
}

// EditComment appends to the task's comment thread
type EditComment struct {
	Content string
}

// EditAssign adds a user to the task's assignees
type EditAssign struct {
	Username string
}

// EditUnassign removes a user from the task's assignees
type EditUnassign struct {
	Username string
}

// EditRemoveTask deletes the task from its project
type EditRemoveTask struct{}

func (EditTitle) isEdit()       {}
func (EditDescription) isEdit() {}
func (EditBumpEndTime) isEdit() {}
func (EditPriority) isEdit()    {}
func (EditStatus) isEdit()      {}
func (EditComment) isEdit()     {}
func (EditAssign) isEdit()      {}
func (EditUnassign) isEdit()    {}
func (EditRemoveTask) isEdit()  {}

// ApplyEdit applies a single edit to one task and persists the whole
// projects document. The task is updated in place by id, so the
// collection's ordering is stable across edits. A rejected edit leaves
// the stored document untouched.
func (t *Tracker) ApplyEdit(sess Session, projectID, taskID string, edit Edit) error {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	p, ok := projects[projectID]
	if !ok {
		return &NotFoundError{Msg: "project not found"}
	}

	idx := -1
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx == -1 {
		t.log.Error("task not found", zap.String("project", projectID), zap.String("task", taskID))
		return &NotFoundError{Msg: "task not found"}
	}
	task := &p.Tasks[idx]

	now := time.Now()
	var change string

	switch e := edit.(type) {
	case EditTitle:
		if err := requireAssignee(task, sess); err != nil {
			return err
		}
		task.Title = e.Title
		change = "title"

	case EditDescription:
		if err := requireAssignee(task, sess); err != nil {
			return err
		}
		task.Description = e.Description
		change = "description"

	case EditBumpEndTime:
		if err := requireAssignee(task, sess); err != nil {
			return err
		}
		task.EndTime = now
		change = "end time"

	case EditPriority:
		if !e.Priority.Valid() {
			return &ValidationError{Msg: "unknown priority"}
		}
		if err := requireAssignee(task, sess); err != nil {
			return err
		}
		task.Priority = e.Priority
		change = fmt.Sprintf("priority update to %s", e.Priority)

	case EditStatus:
		if !e.Status.Valid() {
			return &ValidationError{Msg: "unknown status"}
		}
		if err := requireAssignee(task, sess); err != nil {
			return err
		}
		task.Status = e.Status
		change = fmt.Sprintf("status update to %s", e.Status)

	case EditComment:
		if err := requireAssignee(task, sess); err != nil {
			return err
		}
		task.Comments = append(task.Comments, models.Comment{
			Username:  sess.Username,
			Content:   e.Content,
			Timestamp: now,
		})
		change = "comment"

	case EditAssign:
		if err := t.checkAssigneeChange(p, task, sess, e.Username); err != nil {
			return err
		}
		if e.Username == sess.Username {
			return nil
		}
		if !task.HasAssignee(e.Username) {
			task.Assignees = append(task.Assignees, e.Username)
		}
		change = "add member"

	case EditUnassign:
		if err := t.checkAssigneeChange(p, task, sess, e.Username); err != nil {
			return err
		}
		if e.Username == sess.Username {
			return nil
		}
		assignees := task.Assignees[:0]
		for _, a := range task.Assignees {
			if a != e.Username {
				assignees = append(assignees, a)
			}
		}
		task.Assignees = assignees
		change = "remove member"

	case EditRemoveTask:
		if t.opts.OwnerOnlyRemove && sess.Username != p.Owner {
			return &AuthorizationError{Msg: "only the project owner can remove tasks"}
		}
		p.Tasks = append(p.Tasks[:idx], p.Tasks[idx+1:]...)
		if err := t.store.SaveProjects(projects); err != nil {
			return err
		}
		t.log.Info("task removed", zap.String("project", projectID), zap.String("task", taskID), zap.String("by", sess.Username))
		return nil

	default:
		return &ValidationError{Msg: "unknown edit operation"}
	}

	task.History = append(task.History, models.HistoryEntry{
		Change:    change,
		User:      sess.Username,
		Timestamp: now,
	})
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("task edited",
		zap.String("project", projectID),
		zap.String("task", taskID),
		zap.String("change", change),
		zap.String("by", sess.Username))
	return nil
}

// requireAssignee gates field edits to the task's assignees
func requireAssignee(task *models.Task, sess Session) error {
	if !task.HasAssignee(sess.Username) {
		return &StateError{Msg: "only assignees can edit the task"}
	}
	return nil
}

// checkAssigneeChange gates assignee add/remove to the project owner and
// validates the target against the member list.
func (t *Tracker) checkAssigneeChange(p *models.Project, task *models.Task, sess Session, target string) error {
	if sess.Username != p.Owner {
		t.log.Warn("assignee change denied",
			zap.String("task", task.ID),
			zap.String("actor", sess.Username))
		return &AuthorizationError{Msg: "only the project owner can change task assignees"}
	}
	if target != models.Unassigned && !p.HasMember(target) {
		return &ValidationError{Msg: "all assignees must be project members"}
	}
	return nil
}

// GetTask returns a copy of one task for rendering
func (t *Tracker) GetTask(projectID, taskID string) (*models.Task, error) {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return nil, err
	}
	p, ok := projects[projectID]
	if !ok {
		return nil, &NotFoundError{Msg: "project not found"}
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			cp := p.Tasks[i]
			return &cp, nil
		}
	}
	return nil, &NotFoundError{Msg: "task not found"}
}

// CanViewTask reports whether the session user may see task details:
// assignees always can, and anyone can when the task's only assignee is
// the unassigned placeholder.
func CanViewTask(sess Session, task *models.Task) bool {
	if task.HasAssignee(sess.Username) {
		return true
	}
	return len(task.Assignees) == 1 && task.Assignees[0] == models.Unassigned
}
