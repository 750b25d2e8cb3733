package services

import (
	"context"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
)

// ProfileService reads and writes the patient's contact details upstream.
type ProfileService struct {
	api providers.HealthAPI
}

// NewProfileService creates a profile service.
func NewProfileService(api providers.HealthAPI) *ProfileService {
	return &ProfileService{api: api}
}

// Get fetches the stored profile.
func (s *ProfileService) Get(ctx context.Context, sess *entities.Session) (*entities.Profile, error) {
	return s.api.GetProfile(ctx, sess.Token)
}

// Save stores updated details and returns the upstream confirmation.
func (s *ProfileService) Save(ctx context.Context, sess *entities.Session, profile *entities.Profile) (string, error) {
	message, err := s.api.SaveProfile(ctx, sess.Token, profile)
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "Profile saved"
	}
	return message, nil
}
