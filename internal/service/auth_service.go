package service

import (
	"context"
	"errors"
	"fmt"

	"campusai/internal/auth"
	apperrors "campusai/internal/errors"
	"campusai/internal/logger"
	"campusai/internal/model"
	"campusai/internal/repository"
)

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Name     string
	Role     string
	RollNo   string
	Password string
}

// AuthService handles registration and password login.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, rollNo, password string) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	hasher    auth.PasswordHasher
	validator *RollNoValidator
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, validator *RollNoValidator) AuthService {
	if validator == nil {
		validator = NewRollNoValidator()
	}
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validator,
	}
}

// Signup validates input, hashes the password and stores the user.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if in.Name == "" || in.RollNo == "" || in.Password == "" {
		return nil, apperrors.ErrMissingField
	}
	role := in.Role
	if role == "" {
		role = model.DefaultRole
	}

	if err := s.validator.Validate(role, in.RollNo); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Role:         role,
		RollNo:       in.RollNo,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) || errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.FromContext(ctx).Info("user registered", "id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies the password for rollNo. Unknown roll numbers and wrong
// passwords both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, rollNo, password string) (*model.User, error) {
	if rollNo == "" {
		s.hasher.VerifyNoUser(password)
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByRollNo(ctx, rollNo)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.hasher.VerifyNoUser(password)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
