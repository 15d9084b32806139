package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo             repositories.Repository
	sessionIssuer    *auth.SessionIssuer
	assignmentIssuer *auth.AssignmentIssuer
	logger           *slog.Logger
	validator        *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	sessionIssuer *auth.SessionIssuer,
	assignmentIssuer *auth.AssignmentIssuer,
	logger *slog.Logger,
	v *validator.Validator,
) AuthService {
	return &authService{
		repo:             repo,
		sessionIssuer:    sessionIssuer,
		assignmentIssuer: assignmentIssuer,
		logger:           logger,
		validator:        v,
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)

	token, err := s.sessionIssuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	// A missing account and a wrong password produce the same error so
	// responses never reveal which emails are registered.
	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessionIssuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) IssueAssignmentToken(ctx context.Context, req AssignmentTokenRequest) (*AssignmentTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	// The student must exist before a task grant is minted.
	if _, err := s.repo.Student().GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, req.StudentID)
		}
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}

	token, err := s.assignmentIssuer.Issue(req.StudentID, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue assignment token: %w", err)
	}

	claims, err := s.assignmentIssuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify issued token: %w", err)
	}

	return &AssignmentTokenResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) VerifyAssignmentToken(ctx context.Context, token string) (*AssignmentTokenVerifyResponse, error) {
	claims, err := s.assignmentIssuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, err.Error())
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &AssignmentTokenVerifyResponse{
		StudentID: claims.StudentID,
		TaskID:    claims.TaskID,
		ExpiresAt: expiresAt,
	}, nil
}
