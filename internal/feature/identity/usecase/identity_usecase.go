package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/feature/identity/domain/entity"
)

const (
	minPasswordLength = 8

	// dummyHash is compared when the user does not exist so both paths pay for bcrypt.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts user persistence. Defined by the consumer.
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when the id does not resolve.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	// GenerateToken returns the signed token and its lifetime.
	GenerateToken(userID uint, email string, role entity.Role) (string, time.Duration, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *entity.User
}

type identityUsecase struct {
	users    UserRepository
	tokens   TokenGenerator
	hashCost int
}

// NewIdentityUsecase wires the usecase. A hashCost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewIdentityUsecase(users UserRepository, tokens TokenGenerator, hashCost int) *identityUsecase {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &identityUsecase{users: users, tokens: tokens, hashCost: hashCost}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// Signup registers a new account with the given role.
func (u *identityUsecase) Signup(ctx context.Context, role entity.Role, name, email, password string) (*entity.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	case email == "":
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	case password == "":
		return nil, fmt.Errorf("%w: password", ErrMissingField)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Email: email, Password: string(hashed), Role: role}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user of the given role and issues a token.
// A bcrypt comparison runs even when the email is unknown.
func (u *identityUsecase) Login(ctx context.Context, role entity.Role, email, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil || user.Role != role {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := u.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresIn: ttl, User: user}, nil
}

// Profile returns the caller's own account.
func (u *identityUsecase) Profile(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
