package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"vetchat/models"
	"vetchat/services/chat"
	"vetchat/services/session"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	ChatService chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: svc}
}

// SendMessageHandler handles POST /api/chat/message.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	var req models.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.ChatService.SendMessage(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("Chat turn failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

// ChatHistoryHandler handles GET /api/chat/history/:sessionId.
func (h *ChatHandler) ChatHistoryHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	limit := queryInt(c, "limit", session.DefaultMessageLimit)

	msgs, err := h.ChatService.GetHistory(c.Request.Context(), sessionID, limit)
	if errors.Is(err, session.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Session not found", nil)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to load chat history", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load chat history", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sessionId": sessionID,
			"messages":  msgs,
		},
	})
}

// ResetAppointmentHandler handles POST /api/chat/reset-appointment/:sessionId.
func (h *ChatHandler) ResetAppointmentHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := h.ChatService.ResetAppointment(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("Failed to reset booking flow", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reset appointment flow", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment flow reset successfully"})
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
