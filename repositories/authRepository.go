package repositories

import (
	"SolidarityHospital/models"
	"SolidarityHospital/store"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrUsernameTaken = errors.New("username already exists")

// UserRepository keeps the users mapping, the per-user sessions and the currentUser
// record of the latest login.
type UserRepository struct {
	store store.Store
	mu    sync.Mutex
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) load(ctx context.Context) (models.Users, error) {
	users := models.Users{}
	if _, err := store.LoadValue(ctx, r.store, store.Users, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if users == nil {
		users = models.Users{}
	}
	return users, nil
}

// GetAll returns the users mapping. When it is empty the seed is stored first, so the
// bootstrap accounts exist on first use.
func (r *UserRepository) GetAll(ctx context.Context, seed func() (models.Users, error)) (models.Users, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) > 0 || seed == nil {
		return users, nil
	}

	users, err = seed()
	if err != nil {
		return nil, fmt.Errorf("failed to build bootstrap accounts: %w", err)
	}
	if err := store.SaveValue(ctx, r.store, store.Users, users); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	log.Info().Int("accounts", len(users)).Msg("Seeded bootstrap accounts")
	return users, nil
}

// Create adds a credential. It fails with ErrUsernameTaken if the username exists.
func (r *UserRepository) Create(ctx context.Context, username string, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, exists := users[username]; exists {
		return ErrUsernameTaken
	}
	users[username] = user
	if err := store.SaveValue(ctx, r.store, store.Users, users); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash of an existing user.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	user, exists := users[username]
	if !exists {
		return ErrRecordNotFound
	}
	user.Password = hashedPassword
	users[username] = user
	if err := store.SaveValue(ctx, r.store, store.Users, users); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *UserRepository) loadSessions(ctx context.Context) (map[string]models.Session, error) {
	sessions := map[string]models.Session{}
	if _, err := store.LoadValue(ctx, r.store, store.Sessions, &sessions); err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if sessions == nil {
		sessions = map[string]models.Session{}
	}
	return sessions, nil
}

// SaveSession records the session under its username and makes it the currentUser record.
func (r *UserRepository) SaveSession(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return err
	}
	sessions[session.Username] = session
	if err := store.SaveValue(ctx, r.store, store.Sessions, sessions); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := store.SaveValue(ctx, r.store, store.CurrentUser, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession returns the session of username, or nil when that user is not logged in.
func (r *UserRepository) GetSession(ctx context.Context, username string) (*models.Session, error) {
	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	session, ok := sessions[username]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// ClearSession ends the session of username. The currentUser record is removed only
// when it belongs to that user.
func (r *UserRepository) ClearSession(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return err
	}
	if _, ok := sessions[username]; ok {
		delete(sessions, username)
		if err := store.SaveValue(ctx, r.store, store.Sessions, sessions); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}

	var current models.Session
	found, err := store.LoadValue(ctx, r.store, store.CurrentUser, &current)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if found && current.Username == username {
		if err := r.store.Remove(ctx, store.CurrentUser); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	return nil
}
