package tracker

import (
	"errors"
	"testing"

	"taskdeck/internal/models"
)

func TestCreateProjectOwnerIsSoleMember(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	p, err := trk.GetProject("P1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.Owner != "alice" {
		t.Fatalf("owner = %q, want alice", p.Owner)
	}
	if len(p.Members) != 1 || p.Members[0] != "alice" {
		t.Fatalf("members = %v, want [alice]", p.Members)
	}
	if len(p.Tasks) != 0 {
		t.Fatalf("new project has %d tasks", len(p.Tasks))
	}
}

func TestCreateProjectDuplicateID(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	err := trk.CreateProject(alice, "P1", "Another")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("duplicate id: want ValidationError, got %v", err)
	}
}

func TestOnlyOwnerCanManageMembers(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")
	bob := mustRegister(t, trk, "bob")
	mustRegister(t, trk, "carol")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := trk.AddMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	// bob is a member, not the owner
	err := trk.AddMember(bob, "P1", "carol")
	var aerr *AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("non-owner add: want AuthorizationError, got %v", err)
	}
	err = trk.RemoveMember(bob, "P1", "alice")
	if !errors.As(err, &aerr) {
		t.Fatalf("non-owner remove: want AuthorizationError, got %v", err)
	}

	p, _ := trk.GetProject("P1")
	if len(p.Members) != 2 {
		t.Fatalf("members = %v, want [alice bob]", p.Members)
	}
}

func TestMemberOpsIdempotent(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")
	mustRegister(t, trk, "bob")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := trk.AddMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	// Adding twice is a no-op, not an error
	if err := trk.AddMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("second AddMember: %v", err)
	}
	p, _ := trk.GetProject("P1")
	if len(p.Members) != 2 {
		t.Fatalf("members = %v after duplicate add", p.Members)
	}

	if err := trk.RemoveMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	// Removing an absent member is a no-op
	if err := trk.RemoveMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("second RemoveMember: %v", err)
	}
}

func TestOwnerCannotBeRemoved(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	err := trk.RemoveMember(alice, "P1", "alice")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("remove owner: want ValidationError, got %v", err)
	}
}

func TestNonOwnerCannotAddTask(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")
	bob := mustRegister(t, trk, "bob")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := trk.AddMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	err := trk.AddTask(bob, "P1", "T1", "desc", nil)
	var aerr *AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("non-owner AddTask: want AuthorizationError, got %v", err)
	}

	p, _ := trk.GetProject("P1")
	if len(p.Tasks) != 0 {
		t.Fatalf("tasks = %d, want 0 after rejected add", len(p.Tasks))
	}
}

func TestAddTaskAssigneesMustBeMembers(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	err := trk.AddTask(alice, "P1", "T1", "desc", []string{"stranger"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("non-member assignee: want ValidationError, got %v", err)
	}

	// The unassigned placeholder passes the subset check
	if err := trk.AddTask(alice, "P1", "T1", "desc", []string{models.Unassigned}); err != nil {
		t.Fatalf("placeholder assignee rejected: %v", err)
	}
}

func TestAddTaskDefaults(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := trk.AddTask(alice, "P1", "T1", "desc", []string{"alice"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	p, _ := trk.GetProject("P1")
	task := p.Tasks[0]
	if task.ID == "" {
		t.Fatal("task id not generated")
	}
	if task.Priority != models.PriorityLow {
		t.Fatalf("priority = %s, want LOW", task.Priority)
	}
	if task.Status != models.StatusBacklog {
		t.Fatalf("status = %s, want BACKLOG", task.Status)
	}
	if !task.EndTime.After(task.StartTime) {
		t.Fatal("end time not after start time")
	}
	if len(task.History) != 0 || len(task.Comments) != 0 {
		t.Fatal("new task has non-empty history or comments")
	}
}

func TestRemoveProjectOwnerOnly(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")
	bob := mustRegister(t, trk, "bob")

	if err := trk.CreateProject(alice, "P1", "Title"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := trk.AddMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	var aerr *AuthorizationError
	if err := trk.RemoveProject(bob, "P1"); !errors.As(err, &aerr) {
		t.Fatalf("non-owner remove: want AuthorizationError, got %v", err)
	}

	if err := trk.RemoveProject(alice, "P1"); err != nil {
		t.Fatalf("owner remove: %v", err)
	}
	var nerr *NotFoundError
	if _, err := trk.GetProject("P1"); !errors.As(err, &nerr) {
		t.Fatalf("project still present after removal: %v", err)
	}
}

func TestRenameProject(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")
	bob := mustRegister(t, trk, "bob")

	if err := trk.CreateProject(alice, "P1", "Old"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := trk.AddMember(alice, "P1", "bob"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	var aerr *AuthorizationError
	if err := trk.RenameProject(bob, "P1", "Hijacked"); !errors.As(err, &aerr) {
		t.Fatalf("non-owner rename: want AuthorizationError, got %v", err)
	}

	if err := trk.RenameProject(alice, "P1", "New"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	p, _ := trk.GetProject("P1")
	if p.Title != "New" {
		t.Fatalf("title = %q, want New", p.Title)
	}
}

func TestListProjectsGroupsByRole(t *testing.T) {
	trk := newTestTracker(t, Options{})
	alice := mustRegister(t, trk, "alice")
	bob := mustRegister(t, trk, "bob")

	if err := trk.CreateProject(alice, "A1", "Alice's"); err != nil {
		t.Fatal(err)
	}
	if err := trk.CreateProject(bob, "B1", "Bob's"); err != nil {
		t.Fatal(err)
	}
	if err := trk.AddMember(bob, "B1", "alice"); err != nil {
		t.Fatal(err)
	}
	if err := trk.CreateProject(bob, "B2", "Private"); err != nil {
		t.Fatal(err)
	}

	listing, err := trk.ListProjects(alice)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(listing.Owned) != 1 || listing.Owned[0] != "A1" {
		t.Fatalf("owned = %v, want [A1]", listing.Owned)
	}
	if len(listing.Member) != 1 || listing.Member[0] != "B1" {
		t.Fatalf("member = %v, want [B1]", listing.Member)
	}
}
