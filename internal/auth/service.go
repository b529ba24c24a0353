package auth

import (
	"context"
	"fmt"
	"log"

	"github.com/mramadan/socialmedia/internal/entities"
)

// UserDirectory is the user store the auth service reads and writes through.
// FindByEmail returns (nil, nil) when no user with that email exists; a
// non-nil error always means an infrastructure failure.
type UserDirectory interface {
	Create(ctx context.Context, email, passwordHash string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	SetConfirmed(ctx context.Context, email string) error
}

// Service composes password hashing, the token codec and the user directory.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	users      UserDirectory
	codec      *TokenCodec
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(users UserDirectory, codec *TokenCodec, bcryptCost int) *Service {
	return &Service{
		users:      users,
		codec:      codec,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new unconfirmed user. Returns ErrUserExists when the
// email is already taken.
func (s *Service) Register(ctx context.Context, email, password string) (*entities.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. An unknown email
// and a wrong password both fail with the same ErrInvalidCredentials so the
// response cannot reveal which one it was. A matching but unconfirmed user
// fails with ErrNotConfirmed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsConfirmed {
		return nil, ErrNotConfirmed
	}
	return user, nil
}

// IssueAccessToken issues an access token for the email. It does not
// re-check confirmation: that is enforced at Authenticate time.
func (s *Service) IssueAccessToken(email string) (string, error) {
	return s.codec.Encode(email, TokenTypeAccess)
}

// IssueConfirmationToken issues a confirmation token for the email, used
// right after registration.
func (s *Service) IssueConfirmationToken(email string) (string, error) {
	return s.codec.Encode(email, TokenTypeConfirmation)
}

// ResolveUser decodes a token of the expected type and looks up the user it
// identifies. Fails with one of the codec's errors, or ErrUserNotFound when
// the subject no longer resolves to a user record.
func (s *Service) ResolveUser(ctx context.Context, tokenString string, expectedType TokenType) (*entities.User, error) {
	email, err := s.codec.Decode(tokenString, expectedType)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Confirm resolves a confirmation token and marks its user as confirmed.
// Confirming an already confirmed user succeeds silently.
func (s *Service) Confirm(ctx context.Context, tokenString string) error {
	user, err := s.ResolveUser(ctx, tokenString, TokenTypeConfirmation)
	if err != nil {
		return err
	}

	if err := s.users.SetConfirmed(ctx, user.Email); err != nil {
		return fmt.Errorf("failed to confirm user: %w", err)
	}

	log.Printf("User confirmed: %s", user.Email)
	return nil
}
