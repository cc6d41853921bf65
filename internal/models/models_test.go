package models

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("%s not valid", s)
		}
	}
	if Status("SHIPPED").Valid() {
		t.Fatal("unknown status accepted")
	}
	if Status("done").Valid() {
		t.Fatal("status matching is case sensitive")
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities {
		if !p.Valid() {
			t.Fatalf("%s not valid", p)
		}
	}
	if Priority("URGENT").Valid() {
		t.Fatal("unknown priority accepted")
	}
}

func TestTaskHasAssignee(t *testing.T) {
	task := Task{Assignees: []string{"alice", Unassigned}}
	if !task.HasAssignee("alice") {
		t.Fatal("alice missing")
	}
	if task.HasAssignee("bob") {
		t.Fatal("bob present")
	}
	if !task.HasAssignee(Unassigned) {
		t.Fatal("placeholder missing")
	}
}

func TestProjectHasMember(t *testing.T) {
	p := Project{Owner: "alice", Members: []string{"alice", "bob"}}
	if !p.HasMember("bob") {
		t.Fatal("bob missing")
	}
	if p.HasMember("carol") {
		t.Fatal("carol present")
	}
}
