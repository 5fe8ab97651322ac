package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/user/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store is the persistence surface the service needs.
type Store interface {
	Save(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Revalidator re-checks a user's reservations after an eligibility-relevant
// change.
type Revalidator interface {
	RevalidateForUser(ctx context.Context, userID string) error
}

// Service manages user accounts. Passwords are bcrypt-hashed before they
// reach the store; the cleartext never leaves this package.
type Service struct {
	store       Store
	revalidator Revalidator
	logger      *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithRevalidator(r Revalidator) Option {
	return func(s *Service) {
		s.revalidator = r
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries the raw fields of a new account.
type CreateInput struct {
	Name       string
	Email      string
	Password   string
	Roles      []string
	Department *string
}

// Create registers a new user. The factory validates roles and department
// membership; this layer only adds hashing and email uniqueness.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.User, error) {
	user, err := domain.NewUser(domain.UserFields{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Password:   in.Password,
		Roles:      in.Roles,
		Department: in.Department,
	})
	if err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	user.Password = string(hash)

	if err := s.store.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return domain.User{}, err
		}
		return domain.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}
		return domain.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// Update merges the draft onto the stored user and re-runs full validation.
// Role or department changes can break existing reservations, so those
// trigger a revalidation pass over the user's reservations.
func (s *Service) Update(ctx context.Context, id string, update domain.UserUpdate) (domain.User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if update.Password != nil {
		raw := *update.Password
		if len(raw) < 8 {
			return domain.User{}, dErrors.New(dErrors.CodeInvalidInput,
				"password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
		}
		hashed := string(hash)
		update.Password = &hashed
	}

	updated, err := current.Apply(update)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.store.Save(ctx, updated); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return domain.User{}, err
		}
		return domain.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}

	if s.revalidator != nil && eligibilityChanged(current, updated) {
		if err := s.revalidator.RevalidateForUser(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "revalidation after user update failed",
				"user_id", id, "error", err)
		}
	}
	return updated, nil
}

// Delete removes a user account.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

func eligibilityChanged(before, after domain.User) bool {
	if !before.Role.Equal(after.Role) {
		return true
	}
	if (before.Department == nil) != (after.Department == nil) {
		return true
	}
	return before.Department != nil && *before.Department != *after.Department
}
