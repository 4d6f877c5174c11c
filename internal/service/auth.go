package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobtracker/jobtracker-api/internal/core"
	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
	"github.com/jobtracker/jobtracker-api/internal/ports"
)

const (
	msgProvideAllValues   = "Please provide all values"
	msgInvalidCredentials = "Invalid Credentials"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  core.UserRepository // Required: user accounts
	Tokens ports.TokenIssuer   // Required: signs identity tokens
	Logger *slog.Logger        // Optional: structured logger
}

// AuthService registers accounts, checks credentials, and issues identity tokens.
type AuthService struct {
	users  core.UserRepository
	tokens ports.TokenIssuer
	logger *slog.Logger

	// hashCost is the bcrypt work factor. Tests lower it.
	hashCost int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Tokens == nil {
		panic("TokenIssuer is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		users:    opts.Users,
		tokens:   opts.Tokens,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if !req.HasAllValues() {
		return nil, apperrors.Validation(msgProvideAllValues)
	}
	if err := req.Validate(); err != nil {
		return nil, asValidationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.NewUser(string(hash)))
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	}
	return s.respond(user)
}

// Login checks credentials and returns the account with a fresh token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if !req.HasAllValues() {
		return nil, apperrors.Validation(msgProvideAllValues)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) && s.logger != nil {
			s.logger.WarnContext(ctx, "stored password hash unusable", "user_id", user.ID, "error", err)
		}
		return nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}

	return s.respond(user)
}

// UpdateUser replaces the caller's profile and returns it with a fresh token.
func (s *AuthService) UpdateUser(
	ctx context.Context,
	id domainauth.Identity,
	req model.UpdateUserRequest,
) (*model.AuthResponse, error) {
	if !req.HasAllValues() {
		return nil, apperrors.Validation(msgProvideAllValues)
	}
	if err := req.Validate(); err != nil {
		return nil, asValidationError(err)
	}

	user, err := s.users.Update(ctx, id.UserID, req)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.respond(user)
}

func (s *AuthService) respond(u *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(domainauth.Identity{UserID: u.ID, Name: u.Name})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.AuthResponse{
		User:     u.Public(),
		Location: u.Location,
		Token:    token,
	}, nil
}
