package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
)

// NoticeHandler handles assessment notice lookups
type NoticeHandler struct {
	noticeService *services.NoticeService
	logger        *zap.Logger
}

// NewNoticeHandler creates a new assessment notice handler
func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{
		noticeService: noticeService,
		logger:        logger.Log,
	}
}

// ListNotices handles GET /api/avis-imposition
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	result, err := h.noticeService.List(c.Request.Context(),
		int64Query(c, "id_contribuable"), strings.ToUpper(c.Query("statut")))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, result)
}

// GetNotice handles GET /api/avis-imposition/:id
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	detail, err := h.noticeService.Get(c.Request.Context(), idParam(c, "id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, detail)
}
