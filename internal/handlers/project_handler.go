package handlers

import (
	"errors"
	"net/http"
	"strings"

	"project-board-api/internal/database"
	"project-board-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
	Key  string `json:"key" binding:"required"`
}

// AddMemberRequest represents the request payload for adding a member
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// CreateColumnRequest represents the request payload for adding a column
type CreateColumnRequest struct {
	Name      string `json:"name" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

// defaultColumns seeds every new project's board. The names matter: they are
// what the classifier reads when a task is dropped.
var defaultColumns = []struct {
	name      string
	isDefault bool
}{
	{"To Do", false},
	{"In Progress", false},
	{"Done", true},
}

// CreateProject handles POST /api/projects
// Creates the project and its default columns in one transaction.
func CreateProject(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := strings.ToUpper(strings.TrimSpace(req.Key))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key must not be blank"})
		return
	}

	project := models.Project{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Key:     key,
		OwnerID: userID,
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for i, col := range defaultColumns {
			column := models.Column{
				ID:        uuid.NewString(),
				ProjectID: project.ID,
				Name:      col.name,
				IsDefault: col.isDefault,
				Position:  i,
			}
			if err := tx.Create(&column).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects handles GET /api/projects
// Returns projects the caller owns or is a member of.
func GetProjects(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	db := database.GetDB()

	var memberProjectIDs []string
	if err := db.Model(&models.ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &memberProjectIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	var projects []models.Project
	query := db.Where("owner_id = ?", userID)
	if len(memberProjectIDs) > 0 {
		query = query.Or("id IN ?", memberProjectIDs)
	}
	if err := query.Order("created_at asc").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject handles GET /api/projects/:id
func GetProject(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if !requireParticipant(c, projectID, userID) {
		return
	}

	var project models.Project
	if err := database.GetDB().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	var members []models.ProjectMember
	if err := database.GetDB().Where("project_id = ?", projectID).Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"members": members,
	})
}

// AddMember handles POST /api/projects/:id/members
// Only the owner may add members.
func AddMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	var project models.Project
	if err := database.GetDB().Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", req.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown userId"})
		return
	}

	role := req.Role
	if role == "" {
		role = "member"
	}
	member := models.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	}
	if err := database.GetDB().Create(&member).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already a member"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetColumns handles GET /api/projects/:id/columns
func GetColumns(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if !requireParticipant(c, projectID, userID) {
		return
	}

	var columns []models.Column
	if err := database.GetDB().
		Where("project_id = ?", projectID).
		Order("position asc").
		Find(&columns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch columns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columns,
		"count":   len(columns),
	})
}

// CreateColumn handles POST /api/projects/:id/columns
func CreateColumn(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if !requireParticipant(c, projectID, userID) {
		return
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var maxPos int
	row := database.GetDB().Model(&models.Column{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(position), -1)").
		Row()
	if err := row.Scan(&maxPos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	column := models.Column{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
		Position:  maxPos + 1,
	}
	if err := database.GetDB().Create(&column).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, column)
}
