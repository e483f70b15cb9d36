package handlers

import (
	"errors"
	"net/http"

	"vetchat/models"
	"vetchat/services/session"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	SessionService session.SessionService
}

func NewSessionHandler(svc session.SessionService) *SessionHandler {
	return &SessionHandler{SessionService: svc}
}

// CreateSessionHandler handles POST /api/sessions. The body is optional.
func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	var input models.SessionInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	sess, err := h.SessionService.CreateSession(c.Request.Context(), input)
	if err != nil {
		getLogger(c).Error("Failed to create session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sess.Summary()})
}

// GetSessionHandler handles GET /api/sessions/:sessionId.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	sess, err := h.SessionService.GetSession(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Session not found", nil)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to get session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get session", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess.Summary()})
}

// GetSessionsByUserHandler handles GET /api/sessions/user/:userId.
func (h *SessionHandler) GetSessionsByUserHandler(c *gin.Context) {
	userID := c.Param("userId")
	sessions, err := h.SessionService.GetSessionsByUserID(c.Request.Context(), userID, queryInt(c, "limit", session.DefaultUserLimit))
	if err != nil {
		getLogger(c).Error("Failed to list sessions", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list sessions", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sessions})
}

// DeleteSessionHandler handles DELETE /api/sessions/:sessionId.
func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	err := h.SessionService.DeleteSession(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Session not found", nil)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to delete session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete session", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session deleted successfully"})
}
