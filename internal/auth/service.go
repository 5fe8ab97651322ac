package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/auth/session"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	userstore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/user/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	mwauth "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/auth"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// UserReader resolves credentials at login.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// SessionStore persists the sessions backing issued tokens.
type SessionStore interface {
	Create(ctx context.Context, sess session.Session) error
	Get(ctx context.Context, id string) (session.Session, error)
	Delete(ctx context.Context, id string) error
}

// Service issues and revokes access tokens. It satisfies the middleware's
// TokenValidator and SessionChecker.
type Service struct {
	users      UserReader
	sessions   SessionStore
	tokens     *TokenService
	sessionTTL time.Duration
	logger     *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(users UserReader, sessions SessionStore, tokens *TokenService, sessionTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginResult carries the minted token and the user it identifies.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        domain.User
}

// Login verifies the credentials and mints a session-backed access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := time.Now()
	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Roles:     user.Role.Strings(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.Generate(user.ID, sess.ID, sess.Roles, s.sessionTTL)
	if err != nil {
		return LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "session_id", sess.ID)
	return LoginResult{AccessToken: token, ExpiresAt: sess.ExpiresAt, User: user}, nil
}

// Logout revokes the session behind the token. Revoking an already dead
// session is not an error.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	s.logger.InfoContext(ctx, "user logged out",
		"user_id", claims.UserID, "session_id", claims.SessionID)
	return nil
}

// ValidateToken implements the middleware's TokenValidator.
func (s *Service) ValidateToken(tokenString string) (*mwauth.TokenClaims, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	return &mwauth.TokenClaims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
		Roles:     claims.Roles,
	}, nil
}

// SessionActive implements the middleware's SessionChecker.
func (s *Service) SessionActive(ctx context.Context, sessionID string) (bool, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sess.Active(time.Now()), nil
}
