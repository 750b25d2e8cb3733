package healthapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	"github.com/carelinkhq/patient-portal/internal/infrastructure/observability"
	apperrors "github.com/carelinkhq/patient-portal/pkg/errors"
)

// RESTAdapter implements HealthAPI against the upstream appointment service.
type RESTAdapter struct {
	baseURL string
	client  *http.Client
	metrics *observability.Metrics
}

// NewRESTAdapter creates an adapter for the upstream API at baseURL.
// metrics may be nil when observability is disabled.
func NewRESTAdapter(baseURL string, timeout time.Duration, metrics *observability.Metrics) providers.HealthAPI {
	return &RESTAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
	}
}

// genericFailure is the fallback shown when the upstream rejects a request
// without a usable message body.
const genericFailure = "Request failed"

// upstreamMessage is the error/info envelope most upstream responses use.
type upstreamMessage struct {
	Message string `json:"message"`
}

// SignIn authenticates against POST /auth/signin.
func (a *RESTAdapter) SignIn(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	var result entities.AuthResult
	payload := map[string]string{"email": email, "password": password}
	if err := a.postJSON(ctx, "/auth/signin", "", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignUp registers a patient via POST /auth/signup.
func (a *RESTAdapter) SignUp(ctx context.Context, name, email, password string) (string, error) {
	var result upstreamMessage
	payload := map[string]string{"name": name, "email": email, "password": password}
	if err := a.postJSON(ctx, "/auth/signup", "", payload, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// GetProfile fetches GET /auth/getProfile.
func (a *RESTAdapter) GetProfile(ctx context.Context, token string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := a.getJSON(ctx, "/auth/getProfile", token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile stores contact details via POST /auth/postProfile.
func (a *RESTAdapter) SaveProfile(ctx context.Context, token string, profile *entities.Profile) (string, error) {
	var result upstreamMessage
	if err := a.postJSON(ctx, "/auth/postProfile", token, profile, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// ListDoctors fetches GET /appoint/getDoctors.
func (a *RESTAdapter) ListDoctors(ctx context.Context, token string) ([]entities.Doctor, error) {
	var doctors []entities.Doctor
	if err := a.getJSON(ctx, "/appoint/getDoctors", token, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// AvailableSlots fetches POST /appoint/getAvailableAppointment for one doctor.
func (a *RESTAdapter) AvailableSlots(ctx context.Context, token, doctorID string) ([]entities.Slot, error) {
	var result struct {
		AvailableSlots []entities.Slot `json:"availableSlots"`
	}
	payload := map[string]string{"doctorId": doctorID}
	if err := a.postJSON(ctx, "/appoint/getAvailableAppointment", token, payload, &result); err != nil {
		return nil, err
	}
	return result.AvailableSlots, nil
}

// BookAppointment submits POST /appoint/bookAppointment as multipart form data.
func (a *RESTAdapter) BookAppointment(ctx context.Context, token string, booking *entities.BookingRequest) (string, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	fields := map[string]string{
		"userId":           booking.UserID,
		"doctorId":         booking.DoctorID,
		"doctorName":       booking.DoctorName,
		"doctorDepartment": booking.DoctorDepartment,
		"time":             booking.Time,
		"date":             booking.Date,
		"comments":         booking.Comments,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", apperrors.NewInternalError("failed to encode booking form", err)
		}
	}
	if booking.Report != nil {
		part, err := form.CreateFormFile("report", booking.Report.Filename)
		if err != nil {
			return "", apperrors.NewInternalError("failed to attach report", err)
		}
		if _, err := part.Write(booking.Report.Data); err != nil {
			return "", apperrors.NewInternalError("failed to attach report", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", apperrors.NewInternalError("failed to finalize booking form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/appoint/bookAppointment", body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build booking request", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	a.authorize(req, token)

	var result upstreamMessage
	if err := a.do(req, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// MyAppointments fetches GET /appoint/myAppointments.
func (a *RESTAdapter) MyAppointments(ctx context.Context, token string) ([]entities.Appointment, error) {
	var result struct {
		Appointments []entities.Appointment `json:"appointments"`
	}
	if err := a.getJSON(ctx, "/appoint/myAppointments", token, &result); err != nil {
		return nil, err
	}
	return result.Appointments, nil
}

// JoinAppointment posts POST /appoint/joinAppointment.
func (a *RESTAdapter) JoinAppointment(ctx context.Context, token, slotTime, doctorID string) (string, error) {
	var result upstreamMessage
	payload := map[string]string{"time": slotTime, "doctorId": doctorID}
	if err := a.postJSON(ctx, "/appoint/joinAppointment", token, payload, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// ListServices fetches GET /appoint/services.
func (a *RESTAdapter) ListServices(ctx context.Context, token string) ([]entities.Service, error) {
	var result struct {
		Services []entities.Service `json:"services"`
	}
	if err := a.getJSON(ctx, "/appoint/services", token, &result); err != nil {
		return nil, err
	}
	return result.Services, nil
}

func (a *RESTAdapter) getJSON(ctx context.Context, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	a.authorize(req, token)
	return a.do(req, out)
}

func (a *RESTAdapter) postJSON(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewInternalError("failed to encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	a.authorize(req, token)
	return a.do(req, out)
}

// do executes the request and maps the outcome onto the error taxonomy:
// transport failures become UNAVAILABLE, non-2xx responses become EXTERNAL
// carrying the upstream message when one is present.
func (a *RESTAdapter) do(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := a.client.Do(req)
	if a.metrics != nil {
		observability.RecordUpstreamMetric(req.Context(), a.metrics, req.URL.Path, time.Since(start))
	}
	if err != nil {
		return apperrors.NewUnavailableError("network error, please try again", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewUnavailableError("network error, please try again", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var m upstreamMessage
		if json.Unmarshal(raw, &m) == nil && m.Message != "" {
			return apperrors.NewExternalError(m.Message, fmt.Errorf("upstream status %d", resp.StatusCode))
		}
		return apperrors.NewExternalError(genericFailure, fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewExternalError(genericFailure, fmt.Errorf("malformed upstream response: %w", err))
	}
	return nil
}

func (a *RESTAdapter) authorize(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
}
