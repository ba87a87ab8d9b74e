package service

import (
	"context"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
)

type ProfileBackend interface {
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in apiclient.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, in apiclient.PasswordChange) error
}

type ProfileService interface {
	Get(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, ns string, in apiclient.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, in apiclient.PasswordChange) error
}

type profileService struct {
	backend ProfileBackend
	auth    AuthService
}

func NewProfileService(backend ProfileBackend, auth AuthService) ProfileService {
	return &profileService{backend: backend, auth: auth}
}

func (s *profileService) Get(ctx context.Context) (*models.User, error) {
	return s.backend.GetProfile(ctx)
}

// Update saves the profile and refreshes the session's cached user with the backend's copy.
func (s *profileService) Update(ctx context.Context, ns string, in apiclient.ProfileUpdate) (*models.User, error) {
	user, err := s.backend.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	s.auth.CacheUser(ctx, ns, user)
	return user, nil
}

func (s *profileService) ChangePassword(ctx context.Context, in apiclient.PasswordChange) error {
	if in.CurrentPassword == in.NewPassword {
		return fieldError("newPassword", "new password must differ from the current one")
	}
	return s.backend.ChangePassword(ctx, in)
}
