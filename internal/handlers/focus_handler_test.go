package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"project-board-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestFocusSession_StartAndStop(t *testing.T) {
	env := newBoardEnv(t)

	w := env.do(t, http.MethodPost, "/api/focus/start", map[string]string{})
	require.Equal(t, http.StatusCreated, w.Code)

	var session models.FocusSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.Nil(t, session.EndedAt)

	// a second concurrent session is rejected
	w = env.do(t, http.MethodPost, "/api/focus/start", map[string]string{})
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/focus/"+session.ID+"/stop", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stopped models.FocusSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stopped))
	require.NotNil(t, stopped.EndedAt)

	// stopping twice is a conflict
	w = env.do(t, http.MethodPost, "/api/focus/"+session.ID+"/stop", nil)
	require.Equal(t, http.StatusConflict, w.Code)
}
