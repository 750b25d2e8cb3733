package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/patient-portal/internal/application/services"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

type fakeSessionRepo struct {
	records map[string]*entities.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{records: map[string]*entities.Session{}}
}

func (r *fakeSessionRepo) Save(_ context.Context, sess *entities.Session) error {
	copied := *sess
	r.records[sess.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id string) (*entities.Session, error) {
	return r.records[id], nil
}

func (r *fakeSessionRepo) Token(_ context.Context, id string) (string, error) {
	if sess, ok := r.records[id]; ok {
		return sess.Token, nil
	}
	return "", nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

func TestAuthService_SignIn(t *testing.T) {
	t.Run("persists the session with its token", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("SignIn", mock.Anything, "pat@example.com", "secret1").
			Return(&entities.AuthResult{Token: "tok-abc", UserID: "u1", Name: "Pat"}, nil)
		repo := newFakeSessionRepo()

		svc := services.NewAuthService(api, repo)
		sess, err := svc.SignIn(context.Background(), "", "pat@example.com", "secret1")
		require.NoError(t, err)
		require.NotEmpty(t, sess.ID)

		stored := repo.records[sess.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "tok-abc", stored.Token)
		assert.Equal(t, "Pat", stored.User.Name)
		assert.Empty(t, stored.Error)
	})

	t.Run("records a failed attempt on a token-less session", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("SignIn", mock.Anything, "pat@example.com", "wrong12").
			Return(nil, apperrors.NewExternalError("Invalid credentials", errors.New("upstream status 401")))
		repo := newFakeSessionRepo()

		svc := services.NewAuthService(api, repo)
		sess, err := svc.SignIn(context.Background(), "", "pat@example.com", "wrong12")
		require.Error(t, err)
		require.NotNil(t, sess)

		stored := repo.records[sess.ID]
		require.NotNil(t, stored, "the failure must be persisted")
		assert.Equal(t, "Invalid credentials", stored.Error)
		assert.Empty(t, stored.Token, "a failed attempt must not authenticate")
	})

	t.Run("a later success clears the recorded failure", func(t *testing.T) {
		api := new(MockHealthAPI)
		api.On("SignIn", mock.Anything, "pat@example.com", "wrong12").
			Return(nil, apperrors.NewExternalError("Invalid credentials", errors.New("upstream status 401")))
		api.On("SignIn", mock.Anything, "pat@example.com", "secret1").
			Return(&entities.AuthResult{Token: "tok-abc", UserID: "u1", Name: "Pat"}, nil)
		repo := newFakeSessionRepo()

		svc := services.NewAuthService(api, repo)
		failed, err := svc.SignIn(context.Background(), "", "pat@example.com", "wrong12")
		require.Error(t, err)

		sess, err := svc.SignIn(context.Background(), failed.ID, "pat@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, failed.ID, sess.ID)

		stored := repo.records[failed.ID]
		require.NotNil(t, stored)
		assert.Empty(t, stored.Error)
		assert.Equal(t, "tok-abc", stored.Token)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.records["sess-1"] = &entities.Session{ID: "sess-1", Token: "tok-abc"}

	svc := services.NewAuthService(new(MockHealthAPI), repo)
	require.NoError(t, svc.SignOut(context.Background(), "sess-1"))
	assert.Empty(t, repo.records)
}
