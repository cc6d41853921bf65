package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"taskdeck/internal/store"
)

func TestCreateAdmin(t *testing.T) {
	trk := newTestTracker(t, Options{AdminEmail: "admin@gmail.com"})

	if err := trk.CreateAdmin("boss", "secret"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	// The manager is also a regular account
	sess, err := trk.Authenticate("boss", "secret")
	if err != nil {
		t.Fatalf("Authenticate as manager: %v", err)
	}
	ok, err := trk.IsAdmin(sess)
	if err != nil || !ok {
		t.Fatalf("IsAdmin = %v, %v", ok, err)
	}

	other := mustRegister(t, trk, "alice")
	ok, err = trk.IsAdmin(other)
	if err != nil || ok {
		t.Fatalf("IsAdmin for alice = %v, %v", ok, err)
	}
}

func TestCreateAdminSingleton(t *testing.T) {
	trk := newTestTracker(t, Options{AdminEmail: "admin@gmail.com"})

	if err := trk.CreateAdmin("boss", "secret"); err != nil {
		t.Fatal(err)
	}
	var verr *ValidationError
	if err := trk.CreateAdmin("boss2", "secret"); !errors.As(err, &verr) {
		t.Fatalf("second CreateAdmin: want ValidationError, got %v", err)
	}
}

func TestPurgeData(t *testing.T) {
	trk := newTestTracker(t, Options{AdminEmail: "admin@gmail.com"})

	if err := trk.CreateAdmin("boss", "secret"); err != nil {
		t.Fatal(err)
	}
	sess := mustRegister(t, trk, "alice")
	if err := trk.CreateProject(sess, "P1", "Title"); err != nil {
		t.Fatal(err)
	}

	if err := trk.PurgeData(); err != nil {
		t.Fatalf("PurgeData: %v", err)
	}

	for _, name := range []string{store.UsersFile, store.ProjectsFile, store.AdminFile} {
		if _, err := os.Stat(filepath.Join(trk.Store().Dir(), name)); !os.IsNotExist(err) {
			t.Fatalf("%s still present after purge: %v", name, err)
		}
	}

	// A fresh bootstrap works after a purge
	if err := trk.CreateAdmin("boss", "secret"); err != nil {
		t.Fatalf("CreateAdmin after purge: %v", err)
	}
}
