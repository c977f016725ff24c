package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/helpers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/types/api/params"
)

// EnforcementHandler handles enforcement notices (AMR)
type EnforcementHandler struct {
	enforcementService *services.EnforcementService
	logger             *zap.Logger
}

// NewEnforcementHandler creates a new enforcement handler
func NewEnforcementHandler(enforcementService *services.EnforcementService) *EnforcementHandler {
	return &EnforcementHandler{
		enforcementService: enforcementService,
		logger:             logger.Log,
	}
}

// ListEnforcements handles GET /api/AMR
func (h *EnforcementHandler) ListEnforcements(c *gin.Context) {
	page, size := helpers.ParsePageParams(c.Query("page"), c.Query("size"))

	result, err := h.enforcementService.List(c.Request.Context(), params.ListEnforcementsParams{
		Status:     strings.ToUpper(c.Query("statut")),
		TaxpayerID: int64Query(c, "id_contribuable"),
		Page:       page,
		Size:       size,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// GetEnforcement handles GET /api/AMR/:id
func (h *EnforcementHandler) GetEnforcement(c *gin.Context) {
	detail, err := h.enforcementService.Get(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, detail)
}

// CreateEnforcement handles POST /api/AMR
func (h *EnforcementHandler) CreateEnforcement(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	result, err := h.enforcementService.Create(c.Request.Context(), params.CreateEnforcementParams{
		TaxpayerID: int64Field(body, "id_contribuable"),
		Reason:     stringField(body, "motif"),
		Principal:  body["montant_initial"],
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, result.Enforcement)
}

// ChangeEnforcementStatus handles PATCH /api/AMR/:id/statut
func (h *EnforcementHandler) ChangeEnforcementStatus(c *gin.Context) {
	var req struct {
		Status string `json:"statut"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendFailure(c, http.StatusBadRequest, "Corps de requête JSON invalide")
		return
	}

	updated, err := h.enforcementService.ChangeStatus(c.Request.Context(), idParam(c, "id"), req.Status)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, updated)
}
