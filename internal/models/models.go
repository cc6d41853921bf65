package models

import "time"

// Unassigned is the placeholder username kept in assignee lists to mean
// "no one yet". It is exempt from project membership checks.
const Unassigned = ""

// Status is a task's board column
type Status string

const (
	StatusBacklog  Status = "BACKLOG"
	StatusTodo     Status = "TODO"
	StatusDoing    Status = "DOING"
	StatusDone     Status = "DONE"
	StatusArchived Status = "ARCHIVED"
)

// Statuses lists all statuses in board order
var Statuses = []Status{StatusBacklog, StatusTodo, StatusDoing, StatusDone, StatusArchived}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority is a task's urgency level
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists all priorities from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// User is a registered account. Users are soft-deleted: deactivation flips
// Active, the record itself is never removed.
type User struct {
	Password string `json:"password"`
	Email    string `json:"email"`
	Active   bool   `json:"is_active"`
}

// Admin is the singleton bootstrap manager record
type Admin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HistoryEntry is one line of a task's append-only audit log
type HistoryEntry struct {
	Change    string    `json:"change"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// Comment is one entry in a task's comment thread
type Comment struct {
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Task is a single unit of work inside a project
type Task struct {
	ID          string         `json:"task_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Assignees   []string       `json:"assignees"`
	Priority    Priority       `json:"priority"`
	Status      Status         `json:"status"`
	History     []HistoryEntry `json:"history"`
	Comments    []Comment      `json:"comments"`
}

// HasAssignee reports whether username is in the task's assignee list
func (t *Task) HasAssignee(username string) bool {
	for _, a := range t.Assignees {
		if a == username {
			return true
		}
	}
	return false
}

// Project is a collection of tasks shared by a member list. The owner is
// always a member.
type Project struct {
	Title   string   `json:"title"`
	Owner   string   `json:"owner"`
	Members []string `json:"members"`
	Tasks   []Task   `json:"tasks"`
}

// HasMember reports whether username is in the project's member list
func (p *Project) HasMember(username string) bool {
	for _, m := range p.Members {
		if m == username {
			return true
		}
	}
	return false
}

// Users maps username to account record (users.json)
type Users map[string]User

// Projects maps project id to project record (projects.json)
type Projects map[string]*Project
