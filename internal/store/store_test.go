package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"taskdeck/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return st
}

func TestMissingFilesLoadEmpty(t *testing.T) {
	st := newTestStore(t)

	users, err := st.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("users = %v, want empty", users)
	}

	projects, err := st.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("projects = %v, want empty", projects)
	}

	admin, err := st.LoadAdmin()
	if err != nil {
		t.Fatalf("LoadAdmin: %v", err)
	}
	if admin != nil {
		t.Fatalf("admin = %+v, want nil", admin)
	}
}

func TestProjectsRoundTrip(t *testing.T) {
	st := newTestStore(t)

	// Fixed UTC instants, so round-tripped values compare equal
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	in := models.Projects{
		"P1": {
			Title:   "Launch",
			Owner:   "alice",
			Members: []string{"alice", "bob"},
			Tasks: []models.Task{
				{
					ID:          "t-1",
					Title:       "Ship it",
					Description: "The big one",
					StartTime:   start,
					EndTime:     end,
					Assignees:   []string{"alice"},
					Priority:    models.PriorityHigh,
					Status:      models.StatusDoing,
					History: []models.HistoryEntry{
						{Change: "status update to DOING", User: "alice", Timestamp: start},
					},
					Comments: []models.Comment{
						{Username: "bob", Content: "on it", Timestamp: start},
					},
				},
			},
		},
	}

	if err := st.SaveProjects(in); err != nil {
		t.Fatalf("SaveProjects: %v", err)
	}
	out, err := st.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\nin:  %+v\nout: %+v", in["P1"], out["P1"])
	}
}

func TestUsersRoundTrip(t *testing.T) {
	st := newTestStore(t)

	in := models.Users{
		"alice": {Password: "hash", Email: "alice@example.com", Active: true},
		"bob":   {Password: "hash2", Email: "bob@example.com", Active: false},
	}
	if err := st.SaveUsers(in); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	out, err := st.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v != %+v", in, out)
	}
}

func TestAdminRoundTrip(t *testing.T) {
	st := newTestStore(t)

	in := &models.Admin{Username: "boss", Password: "hash"}
	if err := st.SaveAdmin(in); err != nil {
		t.Fatalf("SaveAdmin: %v", err)
	}
	out, err := st.LoadAdmin()
	if err != nil {
		t.Fatalf("LoadAdmin: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v != %+v", in, out)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	st := newTestStore(t)

	if err := st.SaveUsers(models.Users{"alice": {Email: "a@example.com"}}); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveUsers(models.Users{"alice": {Email: "b@example.com"}}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestPurge(t *testing.T) {
	st := newTestStore(t)

	if err := st.SaveUsers(models.Users{}); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveProjects(models.Projects{}); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveAdmin(&models.Admin{Username: "boss"}); err != nil {
		t.Fatal(err)
	}

	if err := st.Purge(); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	for _, name := range []string{UsersFile, ProjectsFile, AdminFile} {
		if _, err := os.Stat(filepath.Join(st.Dir(), name)); !os.IsNotExist(err) {
			t.Fatalf("%s still present: %v", name, err)
		}
	}

	// Purging an already-empty directory is fine
	if err := st.Purge(); err != nil {
		t.Fatalf("second Purge: %v", err)
	}
}

func TestCorruptDocumentIsStorageError(t *testing.T) {
	st := newTestStore(t)

	path := filepath.Join(st.Dir(), UsersFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := st.LoadUsers()
	if err == nil {
		t.Fatal("corrupt document loaded without error")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("want StorageError, got %v", err)
	}
}
