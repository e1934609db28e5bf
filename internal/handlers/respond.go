package handlers

import (
	"errors"
	"net/http"

	"project-board-api/internal/board"

	"github.com/gin-gonic/gin"
)

// respondError maps the coordinator's error taxonomy to HTTP responses.
// Storage-layer detail is never included in a response body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrAssignmentIndeterminate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// callerID returns the authenticated user id, writing a 401 when missing.
func callerID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return "", false
	}
	return userID, true
}
