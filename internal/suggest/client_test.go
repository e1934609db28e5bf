package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-board-api/internal/assign"

	"github.com/stretchr/testify/require"
)

func TestSuggest_ReturnsChoiceText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Alice Smith"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	text, err := c.Suggest(context.Background(), "Fix login", "", []assign.Candidate{
		{ID: "u-1", Name: "Alice Smith", Role: "engineer"},
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", text)
}

func TestSuggest_Non200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Suggest(context.Background(), "t", "", nil)
	require.Error(t, err)
}

func TestSuggest_MalformedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Suggest(context.Background(), "t", "", nil)
	require.Error(t, err)
}

func TestSuggest_EmptyChoicesIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Suggest(context.Background(), "t", "", nil)
	require.Error(t, err)
}

func TestSuggest_NilClient(t *testing.T) {
	var c *Client
	_, err := c.Suggest(context.Background(), "t", "", nil)
	require.Error(t, err)
}
