package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/store"
	"github.com/fiscalis/dgi-api/types/api/responses"
)

// appVersion is stamped on the root banner.
const appVersion = "1.0.0"

// HealthHandler handles liveness and the application banner
type HealthHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{
		store:  st,
		logger: logger.Log,
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.HealthData{
		Status:   "UP",
		Database: "IN_MEMORY",
		Entities: h.store.CollectionCount(),
	})
}

// AppBanner handles GET /: the application identity and its route
// catalogue, outside the envelope.
func (h *HealthHandler) AppBanner(c *gin.Context) {
	c.JSON(http.StatusOK, responses.AppInfo{
		Application: "Backend Fiscal DGI",
		Version:     appVersion,
		Status:      "UP",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Routes:      routeCatalogue,
	})
}

// routeCatalogue lists the HTTP surface for the root banner.
var routeCatalogue = []string{
	"GET    /api/contribuables",
	"GET    /api/contribuables/:id",
	"POST   /api/contribuables",
	"PUT    /api/contribuables/:id",
	"DELETE /api/contribuables/:id",
	"GET    /api/contribuables/:id/declarations",
	"GET    /api/contribuables/:id/avis-imposition",
	"GET    /api/contribuables/:id/notifications",
	"GET    /api/contribuables/:id/AMR",
	"GET    /api/contribuables/:id/etablissements",
	"---",
	"GET    /api/communes",
	"POST   /api/communes",
	"---",
	"GET    /api/etablissements",
	"GET    /api/etablissements/:id",
	"POST   /api/etablissements",
	"PUT    /api/etablissements/:id",
	"---",
	"GET    /api/declarations",
	"GET    /api/declarations/:id",
	"POST   /api/declarations",
	"PUT    /api/declarations/:id",
	"PATCH  /api/declarations/:id/statut",
	"GET    /api/declarations/:id/paiements",
	"---",
	"GET    /api/paiements",
	"GET    /api/paiements/:id",
	"POST   /api/paiements",
	"GET    /api/paiements/:id/beneficiaires",
	"---",
	"GET    /api/avis-imposition",
	"GET    /api/avis-imposition/:id",
	"---",
	"GET    /api/AMR",
	"GET    /api/AMR/:id",
	"POST   /api/AMR",
	"PATCH  /api/AMR/:id/statut",
	"---",
	"GET    /api/notifications",
	"PATCH  /api/notifications/:id/lire",
	"PATCH  /api/notifications/lire-tout",
	"---",
	"GET    /api/dashboard/stats",
	"GET    /api/dashboard/recettes-par-commune",
	"GET    /api/dashboard/declarations-par-type",
	"---",
	"POST   /api/fiscal/calculer-patente",
	"POST   /api/fiscal/calculer-TDL",
}
