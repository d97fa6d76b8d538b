package users

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/warrick-io/warrick/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context) ([]User, error)
	Mutate(ctx context.Context, fn func([]User) ([]User, error)) error
	ActiveSession(ctx context.Context) (*Session, error)
	SetActiveSession(ctx context.Context, sess Session) error
	ClearActiveSession(ctx context.Context) error
}

// ServiceConfig tunes account handling.
type ServiceConfig struct {
	// SeedPassword is the password of the initial admin account.
	SeedPassword string
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

// Service handles user business logic.
type Service struct {
	repo     RepositoryPort
	cost     int
	seedHash string
	now      func() time.Time
	newID    func() string
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, cfg ServiceConfig) (*Service, error) {
	cost := cfg.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	seedHash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("users: hash seed password: %w", err)
	}
	return &Service{
		repo:     repo,
		cost:     cost,
		seedHash: string(seedHash),
		now:      time.Now,
		newID:    func() string { return "user-" + uuid.NewString() },
	}, nil
}

// seed returns the account list used before any account has been saved.
func (s *Service) seed() []User {
	return []User{{
		ID:           "admin-01",
		Role:         RoleAdmin,
		Name:         "Arvin Hanif",
		Username:     "arvin_hanif",
		Mobile:       "01XXXXXXXXX",
		Email:        "arvin@warrick.io",
		PasswordHash: s.seedHash,
	}}
}

func (s *Service) load(ctx context.Context) ([]User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	if list == nil {
		return s.seed(), nil
	}
	return list, nil
}

func (s *Service) mutate(ctx context.Context, fn func([]User) ([]User, error)) error {
	return s.repo.Mutate(ctx, func(list []User) ([]User, error) {
		if list == nil {
			list = s.seed()
		}
		return fn(list)
	})
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.load(ctx)
}

// Authenticate validates identifier/password credentials. The identifier
// matches a username or a mobile number.
func (s *Service) Authenticate(ctx context.Context, identifier, password string, portal Portal) (User, error) {
	if identifier == "" || password == "" {
		return User{}, shared.ErrInvalidCredentials
	}
	list, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range list {
		if u.Username != identifier && (u.Mobile == "" || u.Mobile != identifier) {
			continue
		}
		legacy, ok := checkPassword(u, password)
		if !ok {
			continue
		}
		if portal == PortalAdmin && u.Role != RoleAdmin {
			return User{}, ErrAdminPortal
		}
		if legacy {
			if u, err = s.upgradePassword(ctx, u.ID, password); err != nil {
				return User{}, err
			}
		}
		return u, nil
	}
	return User{}, shared.ErrInvalidCredentials
}

func checkPassword(u User, password string) (legacy, ok bool) {
	if u.PasswordHash != "" {
		return false, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	}
	if u.Password != "" {
		return true, subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
	}
	return false, false
}

func (s *Service) upgradePassword(ctx context.Context, id, password string) (User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return User{}, err
	}
	var upgraded User
	err = s.mutate(ctx, func(list []User) ([]User, error) {
		idx := indexOf(list, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		list[idx].PasswordHash = hash
		list[idx].Password = ""
		upgraded = list[idx]
		return list, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("users: upgrade password: %w", err)
	}
	return upgraded, nil
}

// Login authenticates and records the account as the active session.
func (s *Service) Login(ctx context.Context, identifier, password string, portal Portal) (User, error) {
	u, err := s.Authenticate(ctx, identifier, password, portal)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.SetActiveSession(ctx, Session{UserID: u.ID, StartedAt: s.now().UnixMilli()}); err != nil {
		return User{}, fmt.Errorf("users: start session: %w", err)
	}
	return u, nil
}

// Logout clears the active session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.ClearActiveSession(ctx); err != nil {
		return fmt.Errorf("users: end session: %w", err)
	}
	return nil
}

// Current returns the account behind the active session.
func (s *Service) Current(ctx context.Context) (User, error) {
	sess, err := s.repo.ActiveSession(ctx)
	if err != nil {
		return User{}, fmt.Errorf("users: load session: %w", err)
	}
	if sess == nil || sess.UserID == "" {
		return User{}, shared.ErrNoSession
	}
	list, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	if idx := indexOf(list, sess.UserID); idx >= 0 {
		return list[idx], nil
	}
	return User{}, shared.ErrNoSession
}

// Register creates an account. Only admins may register accounts.
func (s *Service) Register(ctx context.Context, in UserInput) (User, error) {
	if _, err := shared.RequireAdmin(ctx); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(in.Password) == "" {
		return User{}, fmt.Errorf("%w: password is required", ErrInvalidUser)
	}
	u, err := s.fromInput(in)
	if err != nil {
		return User{}, err
	}
	if u.PasswordHash, err = s.hash(in.Password); err != nil {
		return User{}, err
	}
	u.ID = s.newID()
	err = s.mutate(ctx, func(list []User) ([]User, error) {
		if indexOf(list, u.ID) >= 0 {
			return nil, fmt.Errorf("%w: id %s", ErrInvalidUser, u.ID)
		}
		if err := checkUsername(list, u); err != nil {
			return nil, err
		}
		return append(list, u), nil
	})
	if err != nil {
		return User{}, fmt.Errorf("users: register: %w", err)
	}
	return u, nil
}

// Update replaces an account's details. An empty password keeps the current one.
func (s *Service) Update(ctx context.Context, id string, in UserInput) (User, error) {
	if _, err := shared.RequireAdmin(ctx); err != nil {
		return User{}, err
	}
	next, err := s.fromInput(in)
	if err != nil {
		return User{}, err
	}
	hash := ""
	if in.Password != "" {
		if hash, err = s.hash(in.Password); err != nil {
			return User{}, err
		}
	}
	var updated User
	err = s.mutate(ctx, func(list []User) ([]User, error) {
		idx := indexOf(list, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		next.ID = id
		if err := checkUsername(list, next); err != nil {
			return nil, err
		}
		next.PasswordHash = list[idx].PasswordHash
		next.Password = list[idx].Password
		if hash != "" {
			next.PasswordHash = hash
			next.Password = ""
		}
		list[idx] = next
		updated = next
		return list, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("users: update: %w", err)
	}
	return updated, nil
}

// Delete removes an account. Admins cannot delete themselves.
func (s *Service) Delete(ctx context.Context, id string) error {
	actor, err := shared.RequireAdmin(ctx)
	if err != nil {
		return err
	}
	if actor.UserID == id {
		return ErrSelfDelete
	}
	err = s.mutate(ctx, func(list []User) ([]User, error) {
		idx := indexOf(list, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		return append(list[:idx:idx], list[idx+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	return nil
}

func (s *Service) fromInput(in UserInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return User{}, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	role := in.Role
	if role == "" {
		role = RoleStaff
	}
	if role != RoleAdmin && role != RoleStaff {
		return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, role)
	}
	username := in.Email
	if username == "" {
		username = in.Mobile
	}
	if username == "" {
		return User{}, fmt.Errorf("%w: email or mobile is required", ErrInvalidUser)
	}
	return User{Role: role, Name: name, Username: username, Mobile: in.Mobile, Email: in.Email}, nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("users: hash password: %w", err)
	}
	return string(hash), nil
}

func checkUsername(list []User, u User) error {
	for _, other := range list {
		if other.ID != u.ID && other.Username == u.Username {
			return fmt.Errorf("%w: %s", ErrDuplicateUsername, u.Username)
		}
	}
	return nil
}

func indexOf(list []User, id string) int {
	for i, u := range list {
		if u.ID == id {
			return i
		}
	}
	return -1
}
