package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/types/api/params"
)

// MunicipalityHandler handles the commune registry
type MunicipalityHandler struct {
	municipalityService *services.MunicipalityService
	logger              *zap.Logger
}

// NewMunicipalityHandler creates a new municipality handler
func NewMunicipalityHandler(municipalityService *services.MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{
		municipalityService: municipalityService,
		logger:              logger.Log,
	}
}

// ListMunicipalities handles GET /api/communes
func (h *MunicipalityHandler) ListMunicipalities(c *gin.Context) {
	municipalities, err := h.municipalityService.List(c.Request.Context(), strings.ToUpper(c.Query("type")))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, municipalities)
}

// CreateMunicipality handles POST /api/communes
func (h *MunicipalityHandler) CreateMunicipality(c *gin.Context) {
	var req struct {
		Name string `json:"nom_commune"`
		Type string `json:"type_commune"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendFailure(c, http.StatusBadRequest, "Corps de requête JSON invalide")
		return
	}

	created, err := h.municipalityService.Create(c.Request.Context(), params.CreateMunicipalityParams{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, created)
}
