package tracker

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskdeck/internal/models"
)

// New tasks start with a 24 hour deadline horizon
const defaultTaskHorizon = 24 * time.Hour

// CreateProject registers a new project with the acting user as owner and
// sole member.
func (t *Tracker) CreateProject(sess Session, projectID, title string) error {
	if projectID == "" || title == "" {
		return &ValidationError{Msg: "project id and title must not be empty"}
	}

	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	if _, ok := projects[projectID]; ok {
		return &ValidationError{Msg: "project id already exists"}
	}

	projects[projectID] = &models.Project{
		Title:   title,
		Owner:   sess.Username,
		Members: []string{sess.Username},
		Tasks:   []models.Task{},
	}
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("project created", zap.String("project", projectID), zap.String("owner", sess.Username))
	return nil
}

// RemoveProject deletes a project and all its tasks. Owner only.
func (t *Tracker) RemoveProject(sess Session, projectID string) error {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	p, ok := projects[projectID]
	if !ok {
		return &NotFoundError{Msg: "project not found"}
	}
	if sess.Username != p.Owner {
		return &AuthorizationError{Msg: "only the project owner can remove the project"}
	}

	delete(projects, projectID)
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("project removed", zap.String("project", projectID), zap.String("by", sess.Username))
	return nil
}

// RenameProject changes a project's title. Owner only.
func (t *Tracker) RenameProject(sess Session, projectID, title string) error {
	if title == "" {
		return &ValidationError{Msg: "project title must not be empty"}
	}

	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	p, ok := projects[projectID]
	if !ok {
		return &NotFoundError{Msg: "project not found"}
	}
	if sess.Username != p.Owner {
		return &AuthorizationError{Msg: "only the project owner can edit basic info"}
	}

	p.Title = title
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("project renamed", zap.String("project", projectID), zap.String("by", sess.Username))
	return nil
}

// AddMember adds a registered user to a project's member list. Owner only;
// adding an existing member is a no-op.
func (t *Tracker) AddMember(sess Session, projectID, username string) error {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	p, ok := projects[projectID]
	if !ok {
		return &NotFoundError{Msg: "project not found"}
	}

	exists, err := t.UserExists(username)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Msg: "user not found"}
	}

	if sess.Username != p.Owner {
		return &AuthorizationError{Msg: "only the project owner can add members"}
	}
	if p.HasMember(username) {
		return nil
	}

	p.Members = append(p.Members, username)
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("member added", zap.String("project", projectID), zap.String("member", username))
	return nil
}

// RemoveMember removes a user from a project's member list. Owner only;
// removing a non-member is a no-op. The owner cannot be removed.
func (t *Tracker) RemoveMember(sess Session, projectID, username string) error {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	p, ok := projects[projectID]
	if !ok {
		return &NotFoundError{Msg: "project not found"}
	}
	if sess.Username != p.Owner {
		return &AuthorizationError{Msg: "only the project owner can remove members"}
	}
	if username == p.Owner {
		return &ValidationError{Msg: "the owner cannot be removed from the project"}
	}
	if !p.HasMember(username) {
		return nil
	}

	members := p.Members[:0]
	for _, m := range p.Members {
		if m != username {
			members = append(members, m)
		}
	}
	p.Members = members
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("member removed", zap.String("project", projectID), zap.String("member", username))
	return nil
}

// AddTask creates a task in a project. Owner only; every assignee must be
// a project member or the unassigned placeholder.
func (t *Tracker) AddTask(sess Session, projectID, title, description string, assignees []string) error {
	if title == "" {
		return &ValidationError{Msg: "task title must not be empty"}
	}

	projects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	p, ok := projects[projectID]
	if !ok {
		return &NotFoundError{Msg: "project not found"}
	}
	if sess.Username != p.Owner {
		return &AuthorizationError{Msg: "only the project owner can add tasks"}
	}
	for _, a := range assignees {
		if a != models.Unassigned && !p.HasMember(a) {
			return &ValidationError{Msg: "all assignees must be project members"}
		}
	}

	if assignees == nil {
		assignees = []string{}
	}
	now := time.Now()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		StartTime:   now,
		EndTime:     now.Add(defaultTaskHorizon),
		Assignees:   assignees,
		Priority:    models.PriorityLow,
		Status:      models.StatusBacklog,
		History:     []models.HistoryEntry{},
		Comments:    []models.Comment{},
	}
	p.Tasks = append(p.Tasks, task)
	if err := t.store.SaveProjects(projects); err != nil {
		return err
	}

	t.log.Info("task added", zap.String("project", projectID), zap.String("task", task.ID), zap.String("by", sess.Username))
	return nil
}

// GetProject returns a copy of one project for rendering
func (t *Tracker) GetProject(projectID string) (*models.Project, error) {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return nil, err
	}
	p, ok := projects[projectID]
	if !ok {
		return nil, &NotFoundError{Msg: "project not found"}
	}
	cp := *p
	return &cp, nil
}

// ProjectListing groups project ids by the session user's role in them
type ProjectListing struct {
	Owned  []string
	Member []string
}

// ListProjects returns the projects the user owns and the ones they belong
// to, each sorted by id.
func (t *Tracker) ListProjects(sess Session) (ProjectListing, error) {
	projects, err := t.store.LoadProjects()
	if err != nil {
		return ProjectListing{}, err
	}

	var listing ProjectListing
	for id, p := range projects {
		if p.Owner == sess.Username {
			listing.Owned = append(listing.Owned, id)
		} else if p.HasMember(sess.Username) {
			listing.Member = append(listing.Member, id)
		}
	}
	sort.Strings(listing.Owned)
	sort.Strings(listing.Member)
	return listing, nil
}
