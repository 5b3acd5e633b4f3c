package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/auth"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
	"github.com/shashiranjanraj/kalaghar/pkg/validate"
)

type ProfileInput struct {
	Name  *string `json:"name"  validate:"nullable,max=100"`
	Email *string `json:"email" validate:"nullable,email,max=255"`
	Photo *string `json:"photo" validate:"nullable,max=1024"`
	Bio   *string `json:"bio"   validate:"nullable,max=2000"`
}

type PasswordInput struct {
	Current string `json:"current" validate:"required"`
	Next    string `json:"next"    validate:"required,max=256"`
}

type SettingsInput struct {
	Notifications *models.NotificationsPatch `json:"notifications"`
	Privacy       *models.PrivacyPatch       `json:"privacy"`
}

type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=Visitor Artist Admin"`
}

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=Active Blocked"`
}

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, storeErr(err, "Users")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	return u, nil
}

// Active reports whether the account may still act with its token. A
// deleted account is a NotFound error.
func (s *UserService) Active(ctx context.Context, id string) (bool, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return u.Status != models.StatusBlocked, nil
}

// UpdateProfile changes name, email, photo or bio. Omitted fields keep
// their stored value.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.Invalid(errs)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Invalid(map[string]string{"name": "The name field is required."})
		}
		in.Name = &name
	}

	return s.update(ctx, id, models.UserPatch{
		Name:  in.Name,
		Email: trimmed(in.Email),
		Photo: in.Photo,
		Bio:   in.Bio,
	})
}

// ChangePassword requires the current password.
func (s *UserService) ChangePassword(ctx context.Context, id string, in PasswordInput) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return apperr.Invalid(errs)
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, "User")
	}
	if !auth.CheckPassword(u.PasswordHash, in.Current) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(in.Next)
	if err != nil {
		return apperr.Internal("Internal Server Error", err)
	}
	if _, err := s.users.UpdateByID(ctx, id, models.UserPatch{PasswordHash: &hash}); err != nil {
		return storeErr(err, "User")
	}
	logger.WithCtx(ctx).Info("password changed", "user_id", id)
	return nil
}

// UpdatePayout replaces the payout method and its details.
func (s *UserService) UpdatePayout(ctx context.Context, id string, in models.Payout) (*models.User, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, apperr.Invalid(errs)
	}
	return s.update(ctx, id, models.UserPatch{Payout: &in})
}

// UpdateSettings merges notification and privacy flags.
func (s *UserService) UpdateSettings(ctx context.Context, id string, in SettingsInput) (*models.User, error) {
	if in.Privacy != nil {
		if errs := validate.Struct(in.Privacy); validate.HasErrors(errs) {
			return nil, apperr.Invalid(prefixed("privacy.", errs))
		}
	}
	return s.update(ctx, id, models.UserPatch{Notifications: in.Notifications, Privacy: in.Privacy})
}

// ChangeRole is idempotent: setting the current role again succeeds.
func (s *UserService) ChangeRole(ctx context.Context, id string, in RoleInput) (*models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.Invalid(errs)
	}
	u, err := s.update(ctx, id, models.UserPatch{Role: &in.Role})
	if err == nil {
		logger.WithCtx(ctx).Info("role changed", "user_id", id, "new_role", in.Role)
	}
	return u, err
}

// ChangeStatus is idempotent.
func (s *UserService) ChangeStatus(ctx context.Context, id string, in StatusInput) (*models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.Invalid(errs)
	}
	u, err := s.update(ctx, id, models.UserPatch{Status: &in.Status})
	if err == nil {
		logger.WithCtx(ctx).Info("status changed", "user_id", id, "new_status", in.Status)
	}
	return u, err
}

// Delete removes the account. Unknown ids are not an error.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return storeErr(err, "User")
	}
	return nil
}

func (s *UserService) update(ctx context.Context, id string, p models.UserPatch) (*models.User, error) {
	if p.Empty() {
		return s.Get(ctx, id)
	}
	u, err := s.users.UpdateByID(ctx, id, p)
	if err != nil {
		return nil, storeErr(err, "User")
	}
	return u, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func prefixed(prefix string, errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[prefix+k] = v
	}
	return out
}
