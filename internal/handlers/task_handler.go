package handlers

import (
	"errors"
	"net/http"

	"project-board-api/internal/assign"
	"project-board-api/internal/board"
	"project-board-api/internal/database"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// coordinator is shared by the task handlers; set once at startup (or per
// test) via InitCoordinator so the column cache survives across requests.
var coordinator *board.Coordinator

// InitCoordinator wires the board coordinator with its collaborators.
// suggester may be nil to disable advisory assignment suggestions.
func InitCoordinator(db *gorm.DB, suggester assign.Suggester) {
	coordinator = board.NewCoordinator(db, assign.NewResolver(suggester), realtime.GetHub())
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description"`
	ProjectID     string              `json:"projectId" binding:"required"`
	ColumnID      string              `json:"columnId" binding:"required"`
	Priority      models.TaskPriority `json:"priority"`
	AssigneeID    string              `json:"assigneeId"`
	UseAutoAssign bool                `json:"useAutoAssign"`
}

// MoveTaskRequest represents the request payload for moving a task
type MoveTaskRequest struct {
	TargetColumnID string `json:"targetColumnId" binding:"required"`
	DropIndex      int    `json:"dropIndex"`
}

// UpdateTaskRequest represents the request payload for updating task fields
// that do not affect board placement.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Priority    *models.TaskPriority `json:"priority"`
	AssigneeID  *string              `json:"assigneeId"`
}

// CreateTask handles POST /api/tasks
func CreateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := coordinator.CreateTask(c.Request.Context(), board.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		ProjectID:     req.ProjectID,
		ColumnID:      req.ColumnID,
		Priority:      req.Priority,
		AssigneeID:    req.AssigneeID,
		UseAutoAssign: req.UseAutoAssign,
		CreatorID:     userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// MoveTask handles POST /api/tasks/:id/move
func MoveTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := coordinator.MoveTask(c.Request.Context(), userID, taskID, req.TargetColumnID, req.DropIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTasks handles GET /api/tasks?projectId=...&columnId=...
// Tasks are returned in board order: position ascending, creation order as
// the tie-break.
func GetTasks(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId query param is required"})
		return
	}
	if !requireParticipant(c, projectID, userID) {
		return
	}

	db := database.GetDB()
	query := db.Model(&models.Task{}).Where("project_id = ?", projectID)
	if columnID := c.Query("columnId"); columnID != "" {
		query = query.Where("column_id = ?", columnID)
	}

	var tasks []models.Task
	if err := query.Order("position asc").Order("created_at asc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	task, ok := loadAccessibleTask(c, c.Param("id"), userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Column and position changes go through MoveTask; this updates the rest.
func UpdateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	task, ok := loadAccessibleTask(c, c.Param("id"), userID)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		task.AssigneeID = *req.AssigneeID
	}

	if err := database.GetDB().Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func DeleteTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	task, ok := loadAccessibleTask(c, c.Param("id"), userID)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      task.ID,
	})
}

// loadAccessibleTask fetches a task and verifies the caller participates in
// its project, answering 404 either way so existence is not revealed.
func loadAccessibleTask(c *gin.Context, taskID, userID string) (models.Task, bool) {
	var task models.Task
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return task, false
	}
	if err := database.GetDB().Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return task, false
	}
	if !requireParticipant(c, task.ProjectID, userID) {
		return task, false
	}
	return task, true
}

// requireParticipant writes a 404 when the caller is not part of the
// project; returns true when access is allowed.
func requireParticipant(c *gin.Context, projectID, userID string) bool {
	authz := board.NewDBAuthorizer(database.GetDB())
	ok, err := authz.IsParticipant(c.Request.Context(), projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check project access"})
		return false
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return false
	}
	return true
}
