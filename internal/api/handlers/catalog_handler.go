package handlers

import (
	"context"
	"net/http"

	"github.com/carelinkhq/patient-portal/internal/api/middleware"
	"github.com/carelinkhq/patient-portal/internal/domain/entities"
)

// CatalogService defines the interface for the clinic service catalog
type CatalogService interface {
	List(ctx context.Context, sess *entities.Session) ([]entities.Service, error)
}

// CatalogHandler handles the clinic service catalog
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List handles GET /api/services
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	items, err := h.service.List(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": items,
		"count":    len(items),
	})
}
