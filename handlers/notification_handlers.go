package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/types/api/responses"
)

// NotificationHandler handles in-portal notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.Log,
	}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.notificationService.List(c.Request.Context(),
		int64Query(c, "id_contribuable"), strings.ToUpper(c.Query("statut")))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, notifications)
}

// MarkNotificationRead handles PATCH /api/notifications/:id/lire
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	updated, err := h.notificationService.MarkRead(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, updated)
}

// MarkAllNotificationsRead handles PATCH /api/notifications/lire-tout. The
// body may scope the operation to one taxpayer.
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	var req struct {
		TaxpayerID int64 `json:"id_contribuable"`
	}
	// An empty body means every taxpayer.
	_ = c.ShouldBindJSON(&req)

	if _, err := h.notificationService.MarkAllRead(c.Request.Context(), req.TaxpayerID); err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.MessageData{Message: "Toutes les notifications marquées comme lues"})
}
