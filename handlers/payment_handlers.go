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

// PaymentHandler handles payment recording and lookup
type PaymentHandler struct {
	paymentService *services.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger.Log,
	}
}

// ListPayments handles GET /api/paiements
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, size := helpers.ParsePageParams(c.Query("page"), c.Query("size"))

	result, err := h.paymentService.List(c.Request.Context(), params.ListPaymentsParams{
		DeclarationID: int64Query(c, "id_declaration"),
		Status:        strings.ToUpper(c.Query("statut")),
		Mode:          strings.ToUpper(c.Query("mode_paiement")),
		Page:          page,
		Size:          size,
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// GetPayment handles GET /api/paiements/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	detail, err := h.paymentService.Get(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, detail)
}

// RecordPayment handles POST /api/paiements
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	body, ok := bindObject(c)
	if !ok {
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), params.RecordPaymentParams{
		DeclarationID: int64Field(body, "id_declaration"),
		AmountPaid:    body["montant_paye"],
		Mode:          stringField(body, "mode_paiement"),
	})
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, result.Payment)
}

// ListPaymentBeneficiaries handles GET /api/paiements/:id/beneficiaires
func (h *PaymentHandler) ListPaymentBeneficiaries(c *gin.Context) {
	beneficiaries, err := h.paymentService.GetBeneficiaries(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, beneficiaries)
}
