package handlers

import (
	"errors"
	"net/http"

	"project-board-api/internal/database"
	"project-board-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateNoteRequest represents the request payload for creating a note
type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// CreateNote handles POST /api/projects/:id/notes
func CreateNote(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if !requireParticipant(c, projectID, userID) {
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		AuthorID:  userID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := database.GetDB().Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

// GetNotes handles GET /api/projects/:id/notes
func GetNotes(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if !requireParticipant(c, projectID, userID) {
		return
	}

	var notes []models.Note
	if err := database.GetDB().
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
		"count": len(notes),
	})
}

// DeleteNote handles DELETE /api/notes/:id
// Only the author may delete a note.
func DeleteNote(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	noteID := c.Param("id")
	var note models.Note
	if err := database.GetDB().Where("id = ? AND author_id = ?", noteID, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch note"})
		}
		return
	}

	if err := database.GetDB().Delete(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
		"id":      noteID,
	})
}
