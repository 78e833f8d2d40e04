package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contacts_api/internal/model"
	"contacts_api/internal/repository"
	"contacts_api/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService provides sign-up and sign-in
type AuthService interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*AuthResult, error)
	SignIn(ctx context.Context, req model.SignInRequest) (*AuthResult, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	logger   *slog.Logger
	hashCost int
	now      func() time.Time
	newID    func() string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    utils.NewID,
	}
}

// SignUp registers a new user. Email and name must both be unused since the
// name becomes the token subject.
func (s *authService) SignUp(ctx context.Context, req model.SignUpRequest) (*AuthResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return &AuthResult{Result: result(StatusConflict, MsgEmailRegistered)}, nil
	}

	existing, err = s.userRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return &AuthResult{Result: result(StatusConflict, MsgNameTaken)}, nil
	}

	hashedPassword, err := utils.HashPasswordWithCost(req.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:           s.newID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return &AuthResult{Result: result(StatusConflict, MsgUserExists)}, nil
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID), slog.String("name", user.Name))
	return &AuthResult{Result: result(StatusOK, MsgUserRegistered), User: user}, nil
}

// SignIn checks the credentials and issues an access token whose subject is the user's name
func (s *authService) SignIn(ctx context.Context, req model.SignInRequest) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return &AuthResult{Result: result(StatusUnauthorized, MsgInvalidCredentials)}, nil
	}

	token, err := s.jwtUtil.IssueAccessToken(user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Result: result(StatusOK, MsgSignedIn), User: user, Token: token}, nil
}
