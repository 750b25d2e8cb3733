package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	"github.com/carelinkhq/patient-portal/internal/domain/repositories"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

// AuthService owns the session lifecycle: sign-in creates a session, sign-out
// destroys it, and Current resolves the session for guarded requests.
// Persistence is a serialization boundary behind SessionRepository.
type AuthService struct {
	api      providers.HealthAPI
	sessions repositories.SessionRepository
}

// NewAuthService creates an auth service.
func NewAuthService(api providers.HealthAPI, sessions repositories.SessionRepository) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

// SignIn authenticates upstream and persists the resulting session. A failed
// attempt is persisted too, as a token-less record carrying the failure
// message under the same session ID, so the error survives reloads; the next
// successful sign-in on that ID overwrites it. sessionID may be empty, in
// which case a new one is minted.
func (s *AuthService) SignIn(ctx context.Context, sessionID, email, password string) (*entities.Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		failed := &entities.Session{
			ID:        sessionID,
			Error:     apperrors.MessageOf(err, "Request failed"),
			CreatedAt: time.Now(),
		}
		if saveErr := s.sessions.Save(ctx, failed); saveErr != nil {
			log.Warn().Err(saveErr).Str("session", sessionID).Msg("failed to record sign-in failure")
		}
		return failed, err
	}

	sess := &entities.Session{
		ID:        sessionID,
		Token:     result.Token,
		User:      entities.User{ID: result.UserID, Name: result.Name},
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.NewInternalError("failed to persist session", err)
	}

	log.Info().Str("user", sess.User.ID).Msg("patient signed in")
	return sess, nil
}

// SignUp registers a new patient upstream.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (string, error) {
	message, err := s.api.SignUp(ctx, name, email, password)
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "Account created"
	}
	return message, nil
}

// SignOut clears the session. The original client also clears it on every
// home-page visit, which maps to the same call here.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.NewInternalError("failed to clear session", err)
	}
	return nil
}
