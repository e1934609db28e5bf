package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-board-api/internal/auth"
	"project-board-api/internal/database"
	"project-board-api/internal/middleware"
	"project-board-api/internal/models"
	"project-board-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type boardEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	token   string
	owner   models.User
	project models.Project
	todo    models.Column
	done    models.Column
}

func newBoardEnv(t *testing.T) *boardEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	InitCoordinator(db, nil)

	env := &boardEnv{db: db}
	env.owner = models.User{ID: "u-1", Username: "alice", FirstName: "Alice", LastName: "Smith", Password: "x"}
	require.NoError(t, db.Create(&env.owner).Error)

	env.project = models.Project{ID: "p-1", Name: "Board", Key: "BRD", OwnerID: env.owner.ID}
	require.NoError(t, db.Create(&env.project).Error)

	env.todo = models.Column{ID: "c-1", ProjectID: env.project.ID, Name: "To Do", Position: 0}
	env.done = models.Column{ID: "c-2", ProjectID: env.project.ID, Name: "Done", IsDefault: true, Position: 1}
	require.NoError(t, db.Create(&env.todo).Error)
	require.NoError(t, db.Create(&env.done).Error)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/tasks", CreateTask)
	api.POST("/tasks/:id/move", MoveTask)
	api.GET("/tasks", GetTasks)
	api.GET("/tasks/:id", GetTaskByID)
	api.POST("/focus/start", StartFocus)
	api.POST("/focus/:id/stop", StopFocus)
	api.GET("/focus", GetFocusSessions)
	env.router = r

	env.token, err = auth.GenerateToken(env.owner.ID, env.owner.Username)
	require.NoError(t, err)
	return env
}

func (e *boardEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateTask_HTTP(t *testing.T) {
	env := newBoardEnv(t)

	w := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Ship it",
		"projectId": env.project.ID,
		"columnId":  env.todo.ID,
		"priority":  "HIGH",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "BRD-1", created.TaskKey)
	require.Equal(t, models.StatusTodo, created.Status)
	require.Equal(t, models.PriorityHigh, created.Priority)
	require.Nil(t, created.CompletedAt)
}

func TestCreateTask_MissingTitleRejected(t *testing.T) {
	env := newBoardEnv(t)

	w := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
		"projectId": env.project.ID,
		"columnId":  env.todo.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveTask_HTTP(t *testing.T) {
	env := newBoardEnv(t)

	w := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
		"title":     "Finish me",
		"projectId": env.project.ID,
		"columnId":  env.todo.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/tasks/%s/move", created.ID), map[string]any{
		"targetColumnId": env.done.ID,
		"dropIndex":      0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var moved models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	require.Equal(t, models.StatusDone, moved.Status)
	require.Equal(t, env.done.ID, moved.ColumnID)
	require.NotNil(t, moved.CompletedAt)
}

func TestMoveTask_UnknownTaskIs404(t *testing.T) {
	env := newBoardEnv(t)

	w := env.do(t, http.MethodPost, "/api/tasks/nope/move", map[string]any{
		"targetColumnId": env.done.ID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTasks_BoardOrder(t *testing.T) {
	env := newBoardEnv(t)

	for _, title := range []string{"first", "second", "third"} {
		w := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":     title,
			"projectId": env.project.ID,
			"columnId":  env.todo.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/tasks?projectId="+env.project.ID+"&columnId="+env.todo.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	require.Equal(t, "first", resp.Tasks[0].Title)
	require.Equal(t, "second", resp.Tasks[1].Title)
	require.Equal(t, "third", resp.Tasks[2].Title)
}

func TestGetTasks_NonParticipantGets404(t *testing.T) {
	env := newBoardEnv(t)

	stranger := models.User{ID: "u-2", Username: "mallory", Password: "x"}
	require.NoError(t, env.db.Create(&stranger).Error)
	var err error
	env.token, err = auth.GenerateToken(stranger.ID, stranger.Username)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/tasks?projectId="+env.project.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
