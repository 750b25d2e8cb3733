package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/patient-portal/internal/api/handlers"
	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

type stubProfileService struct {
	saved []*entities.Profile
}

func (s *stubProfileService) Get(_ context.Context, _ *entities.Session) (*entities.Profile, error) {
	return &entities.Profile{Name: "Pat", City: "Lagos"}, nil
}

func (s *stubProfileService) Save(_ context.Context, _ *entities.Session, profile *entities.Profile) (string, error) {
	s.saved = append(s.saved, profile)
	return "Profile updated", nil
}

func profileRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	sess := &entities.Session{ID: "sess-1", Token: "tok-abc"}
	return req.WithContext(middleware.ContextWithSession(req.Context(), sess))
}

func TestProfileHandler_Get(t *testing.T) {
	handler := handlers.NewProfileHandler(&stubProfileService{})

	w := httptest.NewRecorder()
	handler.Get(w, profileRequest("GET", "/api/profile", ""))

	assert.Equal(t, http.StatusOK, w.Code)

	var profile entities.Profile
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "Pat", profile.Name)
}

func TestProfileHandler_Save(t *testing.T) {
	service := &stubProfileService{}
	handler := handlers.NewProfileHandler(service)

	body := `{"name":"Pat","phone":"08012345678","email":"pat@example.com","city":"Lagos"}`
	w := httptest.NewRecorder()
	handler.Save(w, profileRequest("PUT", "/api/profile", body))

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.Len(t, service.saved, 1) {
		assert.Equal(t, "Lagos", service.saved[0].City)
	}

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Profile updated", response["message"])
}

func TestProfileHandler_Save_BadEmail(t *testing.T) {
	service := &stubProfileService{}
	handler := handlers.NewProfileHandler(service)

	body := `{"name":"Pat","email":"not-an-email"}`
	w := httptest.NewRecorder()
	handler.Save(w, profileRequest("PUT", "/api/profile", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.saved)
}
