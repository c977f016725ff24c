package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/helpers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/types/api/params"
	"github.com/fiscalis/dgi-api/types/api/responses"
)

// TaxpayerHandler handles taxpayer registry operations
type TaxpayerHandler struct {
	taxpayerService *services.TaxpayerService
	logger          *zap.Logger
}

// NewTaxpayerHandler creates a new taxpayer handler
func NewTaxpayerHandler(taxpayerService *services.TaxpayerService) *TaxpayerHandler {
	return &TaxpayerHandler{
		taxpayerService: taxpayerService,
		logger:          logger.Log,
	}
}

// ListTaxpayers handles GET /api/contribuables
func (h *TaxpayerHandler) ListTaxpayers(c *gin.Context) {
	page, size := helpers.ParsePageParams(c.Query("page"), c.Query("size"))

	result, err := h.taxpayerService.List(c.Request.Context(), params.ListTaxpayersParams{
		Status: c.Query("statut"),
		NIU:    c.Query("NIU"),
		Name:   c.Query("nom"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// GetTaxpayer handles GET /api/contribuables/:id
func (h *TaxpayerHandler) GetTaxpayer(c *gin.Context) {
	detail, err := h.taxpayerService.Get(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, detail)
}

// CreateTaxpayer handles POST /api/contribuables
func (h *TaxpayerHandler) CreateTaxpayer(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	created, err := h.taxpayerService.Create(c.Request.Context(), params.CreateTaxpayerParams{
		NIU:            stringField(body, "NIU"),
		LastName:       stringField(body, "nom"),
		FirstName:      stringField(body, "prenom"),
		CompanyName:    stringField(body, "raison_sociale"),
		Email:          stringField(body, "email"),
		Phone:          stringField(body, "telephone"),
		MunicipalityID: int64Field(body, "id_commune"),
		Extra: extraFields(body,
			"NIU", "nom", "prenom", "raison_sociale", "email", "telephone",
			"id_commune", "id_contribuable", "date_immatriculation", "statut"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, created)
}

// UpdateTaxpayer handles PUT /api/contribuables/:id
func (h *TaxpayerHandler) UpdateTaxpayer(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	updated, err := h.taxpayerService.Update(c.Request.Context(), params.UpdateTaxpayerParams{
		TaxpayerID:     idParam(c, "id"),
		NIU:            stringPtrField(body, "NIU"),
		LastName:       stringPtrField(body, "nom"),
		FirstName:      stringPtrField(body, "prenom"),
		CompanyName:    stringPtrField(body, "raison_sociale"),
		Email:          stringPtrField(body, "email"),
		Phone:          stringPtrField(body, "telephone"),
		MunicipalityID: int64PtrField(body, "id_commune"),
		Extra: extraFields(body,
			"NIU", "nom", "prenom", "raison_sociale", "email", "telephone",
			"id_commune", "id_contribuable", "date_immatriculation", "statut"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, updated)
}

// DeactivateTaxpayer handles DELETE /api/contribuables/:id. Deactivation is
// a status flip, the record stays.
func (h *TaxpayerHandler) DeactivateTaxpayer(c *gin.Context) {
	if err := h.taxpayerService.Deactivate(c.Request.Context(), idParam(c, "id")); err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.MessageData{Message: "Contribuable désactivé avec succès"})
}

// ListTaxpayerDeclarations handles GET /api/contribuables/:id/declarations
func (h *TaxpayerHandler) ListTaxpayerDeclarations(c *gin.Context) {
	declarations, err := h.taxpayerService.Declarations(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, declarations)
}

// ListTaxpayerNotices handles GET /api/contribuables/:id/avis-imposition
func (h *TaxpayerHandler) ListTaxpayerNotices(c *gin.Context) {
	notices, err := h.taxpayerService.Notices(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, notices)
}

// ListTaxpayerNotifications handles GET /api/contribuables/:id/notifications
func (h *TaxpayerHandler) ListTaxpayerNotifications(c *gin.Context) {
	notifications, err := h.taxpayerService.Notifications(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, notifications)
}

// ListTaxpayerEnforcements handles GET /api/contribuables/:id/AMR
func (h *TaxpayerHandler) ListTaxpayerEnforcements(c *gin.Context) {
	enforcements, err := h.taxpayerService.Enforcements(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, enforcements)
}

// ListTaxpayerEstablishments handles GET /api/contribuables/:id/etablissements
func (h *TaxpayerHandler) ListTaxpayerEstablishments(c *gin.Context) {
	establishments, err := h.taxpayerService.Establishments(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, establishments)
}
