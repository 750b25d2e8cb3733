package healthapi

import (
	"time"

	"github.com/carelinkhq/patient-portal/internal/domain/providers"
	"github.com/carelinkhq/patient-portal/internal/infrastructure/observability"
	"github.com/carelinkhq/patient-portal/pkg/config"
)

// NewHealthAPI selects the upstream adapter from configuration. The mock
// serves local development when no upstream is configured.
func NewHealthAPI(cfg config.UpstreamConfig, metrics *observability.Metrics) providers.HealthAPI {
	if cfg.UseMock || cfg.BaseURL == "" {
		return NewMockAdapter()
	}
	return NewRESTAdapter(cfg.BaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second, metrics)
}
