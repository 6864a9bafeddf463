package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goodVibes/internal/handlers/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
		var req dto.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "UNAUTHORIZED"})
			return
		}
		writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: "tok", TokenType: "bearer"})
	})
	mux.HandleFunc("GET /api/week", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "UNAUTHORIZED"})
			return
		}
		center := r.URL.Query().Get("center")
		writeJSON(w, http.StatusOK, dto.WeekResponse{
			WindowResponse: dto.WindowResponse{Start: "2024-03-05", End: "2024-03-11", Days: []string{center}},
			MaxLanes:       1,
			Tasks:          []dto.WeekTaskResponse{{Todo: dto.TodoResponse{Title: "Conference"}, SpanWidth: 3}},
		})
	})
	mux.HandleFunc("DELETE /api/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "INVARIANT_VIOLATION", "message": "нельзя"})
	})
	mux.HandleFunc("GET /api/todos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[{"))
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginAndWeek(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL+"/", WithHTTPClient(srv.Client()))
	ctx := context.Background()

	_, err := c.Week(ctx, time.Now(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, c.Login(ctx, "admin", "wrong"), ErrUnauthorized)
	require.NoError(t, c.Login(ctx, "admin", "secret"))
	assert.Equal(t, "tok", c.Token())

	week, err := c.Week(ctx, time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-07"}, week.Days)
	require.Len(t, week.Tasks, 1)
	assert.Equal(t, "Conference", week.Tasks[0].Todo.Title)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())
}

func TestClient_Errors(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, WithHTTPClient(srv.Client()), WithToken("tok"))
	ctx := context.Background()

	err := c.DeleteTodo(ctx, uuid.New())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "INVARIANT_VIOLATION", apiErr.Code)
	assert.Equal(t, "нельзя", apiErr.Message)

	_, err = c.Todos(ctx)
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr), "битый JSON считается сетевой ошибкой")

	srv.Close()
	_, err = c.Calendars(ctx)
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "GET /api/calendars", netErr.Op)
}
