package handlers

import (
	"errors"
	"net/http"
	"time"

	"project-board-api/internal/database"
	"project-board-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StartFocusRequest represents the request payload for starting a session
type StartFocusRequest struct {
	TaskID string `json:"taskId"`
}

// StartFocus handles POST /api/focus/start
// A user has at most one running session; starting a new one while another
// runs is rejected.
func StartFocus(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	// body is optional
	var req StartFocusRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var running int64
	if err := database.GetDB().Model(&models.FocusSession{}).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Count(&running).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check running sessions"})
		return
	}
	if running > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A focus session is already running"})
		return
	}

	if req.TaskID != "" {
		if _, ok := loadAccessibleTask(c, req.TaskID, userID); !ok {
			return
		}
	}

	session := models.FocusSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    req.TaskID,
		StartedAt: time.Now().UTC(),
	}
	if err := database.GetDB().Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// StopFocus handles POST /api/focus/:id/stop
func StopFocus(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	var session models.FocusSession
	if err := database.GetDB().Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		}
		return
	}
	if session.EndedAt != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Session already stopped"})
		return
	}

	now := time.Now().UTC()
	session.EndedAt = &now
	session.DurationMinutes = int(now.Sub(session.StartedAt).Minutes())
	if err := database.GetDB().Save(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetFocusSessions handles GET /api/focus
func GetFocusSessions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var sessions []models.FocusSession
	if err := database.GetDB().
		Where("user_id = ?", userID).
		Order("started_at desc").
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}
