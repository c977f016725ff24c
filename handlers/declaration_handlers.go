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

// DeclarationHandler handles declaration lifecycle operations
type DeclarationHandler struct {
	declarationService *services.DeclarationService
	logger             *zap.Logger
}

// NewDeclarationHandler creates a new declaration handler
func NewDeclarationHandler(declarationService *services.DeclarationService) *DeclarationHandler {
	return &DeclarationHandler{
		declarationService: declarationService,
		logger:             logger.Log,
	}
}

// ListDeclarations handles GET /api/declarations
func (h *DeclarationHandler) ListDeclarations(c *gin.Context) {
	page, size := helpers.ParsePageParams(c.Query("page"), c.Query("size"))

	result, err := h.declarationService.List(c.Request.Context(), params.ListDeclarationsParams{
		Status:     strings.ToUpper(c.Query("statut")),
		Type:       strings.ToUpper(c.Query("type_declaration")),
		FiscalYear: intQuery(c, "annee_fiscale"),
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

// GetDeclaration handles GET /api/declarations/:id
func (h *DeclarationHandler) GetDeclaration(c *gin.Context) {
	detail, err := h.declarationService.Get(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, detail)
}

// CreateDeclaration handles POST /api/declarations
func (h *DeclarationHandler) CreateDeclaration(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	result, err := h.declarationService.Create(c.Request.Context(), params.CreateDeclarationParams{
		TaxpayerID: int64Field(body, "id_contribuable"),
		Type:       stringField(body, "type_declaration"),
		FiscalYear: intField(body, "annee_fiscale"),
		AmountDue:  body["montant_a_payer"],
		Extra: extraFields(body,
			"id_contribuable", "type_declaration", "annee_fiscale", "montant_a_payer",
			"id_declaration", "reference_declaration", "statut", "date_soumission"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, result.Declaration)
}

// UpdateDeclaration handles PUT /api/declarations/:id
func (h *DeclarationHandler) UpdateDeclaration(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	var amountDue any
	if v, present := body["montant_a_payer"]; present {
		amountDue = v
	}

	updated, err := h.declarationService.Update(c.Request.Context(), params.UpdateDeclarationParams{
		DeclarationID: idParam(c, "id"),
		Type:          stringPtrField(body, "type_declaration"),
		FiscalYear:    intPtrField(body, "annee_fiscale"),
		Status:        stringPtrField(body, "statut"),
		AmountDue:     amountDue,
		Extra: extraFields(body,
			"id_contribuable", "type_declaration", "annee_fiscale", "montant_a_payer",
			"id_declaration", "reference_declaration", "statut", "date_soumission"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, updated)
}

// ChangeDeclarationStatus handles PATCH /api/declarations/:id/statut
func (h *DeclarationHandler) ChangeDeclarationStatus(c *gin.Context) {
	var req struct {
		Status          string `json:"statut"`
		RejectionReason string `json:"motif_rejet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendFailure(c, http.StatusBadRequest, "Corps de requête JSON invalide")
		return
	}

	result, err := h.declarationService.ChangeStatus(c.Request.Context(), params.ChangeDeclarationStatusParams{
		DeclarationID:   idParam(c, "id"),
		NewStatus:       req.Status,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result.Declaration)
}

// ListDeclarationPayments handles GET /api/declarations/:id/paiements
func (h *DeclarationHandler) ListDeclarationPayments(c *gin.Context) {
	result, err := h.declarationService.GetPayments(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}
