package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/repository"
	"github.com/dom/meucoracao/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("record belongs to another user")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *TokenService
	bcryptCost int
	// dummyHash is compared against when no password can match so that login
	// takes about as long whether or not the account exists. It shares the
	// cost of real hashes.
	dummyHash []byte
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("meucoracao-dummy-password"), bcryptCost)
	if err != nil {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("meucoracao-dummy-password"), bcrypt.DefaultCost)
	}
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
	}
}


type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// The unique index catches concurrent registrations; this only saves a
	// bcrypt round for the common case.
	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	// Accounts created through Google have no password.
	if user.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// LoginWithGoogle signs in the account registered under profile.Email,
// creating it without a password on first use.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*AuthResult, error) {
	if profile.Email == "" {
		return nil, ErrGoogleAuth
	}

	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.createGoogleUser(ctx, profile)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	return s.issue(user)
}

func (s *AuthService) createGoogleUser(ctx context.Context, profile GoogleProfile) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      profile.Name,
		Email:     profile.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.userRepo.Create(ctx, user)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		// Registered concurrently.
		return s.userRepo.GetByEmail(ctx, profile.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
