package services

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/providers"
)

const (
	catalogCacheKey = "catalog:services"
	catalogCacheTTL = 300 // seconds
)

// CatalogService serves the clinic's service catalog, cached briefly since
// the list changes rarely. Without a cache provider every request goes
// straight upstream.
type CatalogService struct {
	api   providers.HealthAPI
	cache providers.CacheProvider
}

// NewCatalogService creates a catalog service. cache may be nil.
func NewCatalogService(api providers.HealthAPI, cache providers.CacheProvider) *CatalogService {
	return &CatalogService{api: api, cache: cache}
}

// List returns the service catalog.
func (s *CatalogService) List(ctx context.Context, sess *entities.Session) ([]entities.Service, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var cached []entities.Service
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	services, err := s.api.ListServices(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(services); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, raw, catalogCacheTTL); err != nil {
				log.Debug().Err(err).Msg("failed to cache service catalog")
			}
		}
	}
	return services, nil
}
