package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/auth"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
	"github.com/shashiranjanraj/kalaghar/pkg/metrics"
	"github.com/shashiranjanraj/kalaghar/pkg/validate"
)

const invalidCredentials = "invalid credentials"

type SignupInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=256"`
	Role     string `json:"role"     validate:"nullable,oneof=Visitor Artist Admin"`
	Email    string `json:"email"    validate:"nullable,email,max=255"`
}

type LoginInput struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"nullable,oneof=Visitor Artist Admin"`
}

// Session is returned by signup and login. Status is only set on login.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Status string `json:"status,omitempty"`
	Token  string `json:"token"`
}

type AuthService struct {
	users            repositories.UserRepository
	allowAdminSignup bool
}

func NewAuthService(users repositories.UserRepository, allowAdminSignup bool) *AuthService {
	return &AuthService{users: users, allowAdminSignup: allowAdminSignup}
}

// Signup creates an account and signs the caller in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.Invalid(errs)
	}
	if in.Role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, apperr.Forbidden("Admin accounts cannot be created through signup")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("Internal Server Error", err)
	}

	u := models.NewUser(in.Name, in.Email, in.Role, hash)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, storeErr(err, "User")
	}

	metrics.Signups.WithLabelValues(u.Role).Inc()
	logger.WithCtx(ctx).Info("user signed up", "user_id", u.ID, "role", u.Role)

	token, _, err := auth.GenerateToken(u.ID, u.Name, u.Role)
	if err != nil {
		return nil, apperr.Internal("Internal Server Error", err)
	}
	return &Session{ID: u.ID, Name: u.Name, Role: u.Role, Email: u.Email, Token: token}, nil
}

// Login verifies (name, role, password). Unknown accounts and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.Invalid(errs)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Role == "" {
		in.Role = models.RoleVisitor
	}

	u, err := s.users.FindByLogin(ctx, in.Name, in.Role)
	if errors.Is(err, repositories.ErrNotFound) {
		auth.BurnCheck(in.Password)
		metrics.LoginFailures.Inc()
		return nil, apperr.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, storeErr(err, "User")
	}

	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		metrics.LoginFailures.Inc()
		return nil, apperr.Unauthorized(invalidCredentials)
	}
	if u.Status == models.StatusBlocked {
		return nil, apperr.Forbidden("Account is blocked")
	}

	token, _, err := auth.GenerateToken(u.ID, u.Name, u.Role)
	if err != nil {
		return nil, apperr.Internal("Internal Server Error", err)
	}
	return &Session{ID: u.ID, Name: u.Name, Role: u.Role, Email: u.Email, Status: u.Status, Token: token}, nil
}

// Me returns the caller's own record.
func (s *AuthService) Me(ctx context.Context, c Caller) (*models.User, error) {
	u, err := s.users.FindByID(ctx, c.ID)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	return u, nil
}
