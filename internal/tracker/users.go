package tracker

import (
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/models"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Register creates a new active user. Usernames and emails are unique
// across all accounts; the email check applies regardless of username.
func (t *Tracker) Register(username, password, email string) error {
	if !usernameRe.MatchString(username) {
		return &ValidationError{Msg: "invalid username format"}
	}
	if !emailRe.MatchString(email) {
		return &ValidationError{Msg: "invalid email format"}
	}
	if password == "" {
		return &ValidationError{Msg: "password must not be empty"}
	}

	users, err := t.store.LoadUsers()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return &ValidationError{Msg: "username or email already exists"}
	}
	for _, u := range users {
		if u.Email == email {
			return &ValidationError{Msg: "username or email already exists"}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users[username] = models.User{
		Password: string(hash),
		Email:    email,
		Active:   true,
	}
	if err := t.store.SaveUsers(users); err != nil {
		return err
	}

	if t.opts.AdminEmail != "" && email == t.opts.AdminEmail {
		t.log.Info("admin user created", zap.String("username", username))
	} else {
		t.log.Info("user created", zap.String("username", username))
	}
	return nil
}

// Authenticate checks credentials and returns a session for the user.
// Unknown usernames and wrong passwords report the same way.
func (t *Tracker) Authenticate(username, password string) (Session, error) {
	users, err := t.store.LoadUsers()
	if err != nil {
		return Session{}, err
	}
	u, ok := users[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return Session{}, &ValidationError{Msg: "invalid username or password"}
	}
	if !u.Active {
		t.log.Warn("inactive account login attempt", zap.String("username", username))
		return Session{}, &StateError{Msg: "account is inactive"}
	}

	t.log.Info("user logged in", zap.String("username", username))
	return Session{Username: username}, nil
}

// Deactivate flips a user's active flag off. Only the bootstrap admin may
// do this, and there is no reactivation path.
func (t *Tracker) Deactivate(sess Session, username string) error {
	admin, err := t.store.LoadAdmin()
	if err != nil {
		return err
	}
	if admin == nil || sess.Username != admin.Username {
		t.log.Warn("deactivate denied", zap.String("actor", sess.Username), zap.String("target", username))
		return &AuthorizationError{Msg: "only the manager can deactivate members"}
	}

	users, err := t.store.LoadUsers()
	if err != nil {
		return err
	}
	u, ok := users[username]
	if !ok {
		return &NotFoundError{Msg: "user not found"}
	}
	u.Active = false
	users[username] = u
	if err := t.store.SaveUsers(users); err != nil {
		return err
	}

	t.log.Info("user deactivated", zap.String("username", username), zap.String("by", sess.Username))
	return nil
}

// UserExists reports whether username is registered
func (t *Tracker) UserExists(username string) (bool, error) {
	users, err := t.store.LoadUsers()
	if err != nil {
		return false, err
	}
	_, ok := users[username]
	return ok, nil
}
