package tracker

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/models"
)

// CreateAdmin bootstraps the singleton manager record and registers the
// same account as a normal user. It fails if a manager already exists.
func (t *Tracker) CreateAdmin(username, password string) error {
	existing, err := t.store.LoadAdmin()
	if err != nil {
		return err
	}
	if existing != nil {
		return &ValidationError{Msg: "system manager already exists"}
	}

	if err := t.Register(username, password, t.opts.AdminEmail); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := t.store.SaveAdmin(&models.Admin{Username: username, Password: string(hash)}); err != nil {
		return err
	}

	t.log.Info("manager created", zap.String("username", username))
	return nil
}

// IsAdmin reports whether the session user is the bootstrap manager
func (t *Tracker) IsAdmin(sess Session) (bool, error) {
	admin, err := t.store.LoadAdmin()
	if err != nil {
		return false, err
	}
	return admin != nil && admin.Username == sess.Username, nil
}

// PurgeData deletes all persisted documents
func (t *Tracker) PurgeData() error {
	if err := t.store.Purge(); err != nil {
		return err
	}
	t.log.Warn("all data purged")
	return nil
}
