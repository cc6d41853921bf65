// Package store persists the tracker's state as whole JSON documents on
// local disk. Every load reads a full document, every save rewrites it
// through a temp file and rename so a crash never leaves a partial write.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taskdeck/internal/models"
)

// Document file names inside the data directory
const (
	UsersFile    = "users.json"
	ProjectsFile = "projects.json"
	AdminFile    = "admin.json"
)

// StorageError wraps a disk or encoding failure so callers can tell it
// apart from domain errors.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store reads and writes the three tracker documents under one directory
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Path: dir, Err: err}
	}
	return &Store{dir: dir}, nil
}

// DefaultDir returns the platform data directory for taskdeck
func DefaultDir() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "taskdeck"), nil
}

// Dir returns the store's data directory
func (s *Store) Dir() string { return s.dir }

// LoadUsers reads users.json; a missing file is an empty user set
func (s *Store) LoadUsers() (models.Users, error) {
	users := models.Users{}
	if err := s.load(UsersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUsers rewrites users.json
func (s *Store) SaveUsers(users models.Users) error {
	return s.save(UsersFile, users)
}

// LoadProjects reads projects.json; a missing file is an empty project set
func (s *Store) LoadProjects() (models.Projects, error) {
	projects := models.Projects{}
	if err := s.load(ProjectsFile, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SaveProjects rewrites projects.json
func (s *Store) SaveProjects(projects models.Projects) error {
	return s.save(ProjectsFile, projects)
}

// LoadAdmin reads admin.json. It returns nil when no admin has been
// bootstrapped yet.
func (s *Store) LoadAdmin() (*models.Admin, error) {
	var admin models.Admin
	path := filepath.Join(s.dir, AdminFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	if err := s.load(AdminFile, &admin); err != nil {
		return nil, err
	}
	if admin.Username == "" {
		return nil, nil
	}
	return &admin, nil
}

// SaveAdmin writes admin.json
func (s *Store) SaveAdmin(admin *models.Admin) error {
	return s.save(AdminFile, admin)
}

// Purge deletes all three documents. Missing files are not an error.
func (s *Store) Purge() error {
	for _, name := range []string{UsersFile, ProjectsFile, AdminFile} {
		path := filepath.Join(s.dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return &StorageError{Path: path, Err: err}
		}
	}
	return nil
}

func (s *Store) load(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StorageError{Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &StorageError{Path: path, Err: err}
	}
	return nil
}

// save writes v to a temp file in the same directory and renames it over
// the target so readers never observe a half-written document.
func (s *Store) save(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &StorageError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Path: path, Err: err}
	}
	return nil
}
