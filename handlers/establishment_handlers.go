package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/helpers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/types/api/params"
)

// EstablishmentHandler handles places of business
type EstablishmentHandler struct {
	establishmentService *services.EstablishmentService
	logger               *zap.Logger
}

// NewEstablishmentHandler creates a new establishment handler
func NewEstablishmentHandler(establishmentService *services.EstablishmentService) *EstablishmentHandler {
	return &EstablishmentHandler{
		establishmentService: establishmentService,
		logger:               logger.Log,
	}
}

// ListEstablishments handles GET /api/etablissements
func (h *EstablishmentHandler) ListEstablishments(c *gin.Context) {
	page, size := helpers.ParsePageParams(c.Query("page"), c.Query("size"))

	result, err := h.establishmentService.List(c.Request.Context(), params.ListEstablishmentsParams{
		TaxpayerID:     int64Query(c, "id_contribuable"),
		MunicipalityID: int64Query(c, "id_commune"),
		Page:           page,
		Size:           size,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// GetEstablishment handles GET /api/etablissements/:id
func (h *EstablishmentHandler) GetEstablishment(c *gin.Context) {
	establishment, err := h.establishmentService.Get(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, establishment)
}

// CreateEstablishment handles POST /api/etablissements
func (h *EstablishmentHandler) CreateEstablishment(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	created, err := h.establishmentService.Create(c.Request.Context(), params.CreateEstablishmentParams{
		TaxpayerID:     int64Field(body, "id_contribuable"),
		MunicipalityID: int64Field(body, "id_commune"),
		Name:           stringField(body, "nom_etablissement"),
		Extra: extraFields(body,
			"id_contribuable", "id_commune", "nom_etablissement", "id_etablissement"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, created)
}

// UpdateEstablishment handles PUT /api/etablissements/:id
func (h *EstablishmentHandler) UpdateEstablishment(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	updated, err := h.establishmentService.Update(c.Request.Context(), params.UpdateEstablishmentParams{
		EstablishmentID: idParam(c, "id"),
		MunicipalityID:  int64PtrField(body, "id_commune"),
		Name:            stringPtrField(body, "nom_etablissement"),
		Extra: extraFields(body,
			"id_contribuable", "id_commune", "nom_etablissement", "id_etablissement"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, updated)
}
