package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/types/api/params"
)

// FiscalHandler handles the stateless tax calculators
type FiscalHandler struct {
	fiscalService *services.FiscalService
	logger        *zap.Logger
}

// NewFiscalHandler creates a new fiscal calculator handler
func NewFiscalHandler(fiscalService *services.FiscalService) *FiscalHandler {
	return &FiscalHandler{
		fiscalService: fiscalService,
		logger:        logger.Log,
	}
}

// ComputeLicenseTax handles POST /api/fiscal/calculer-patente
func (h *FiscalHandler) ComputeLicenseTax(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	result, err := h.fiscalService.ComputeLicenseTax(c.Request.Context(), params.LicenseTaxParams{
		Revenue:      body["chiffre_affaire"],
		ActivityType: stringField(body, "type_activite"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// ComputeLocalDevelopmentTax handles POST /api/fiscal/calculer-TDL
func (h *FiscalHandler) ComputeLocalDevelopmentTax(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	result, err := h.fiscalService.ComputeLocalDevelopmentTax(c.Request.Context(), params.LocalDevelopmentTaxParams{
		SurfaceArea:      body["surface_m2"],
		MunicipalityName: stringField(body, "commune"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}
