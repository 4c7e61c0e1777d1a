package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_StoresTokenAndSendsBearer(t *testing.T) {
	var gotAuth string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/login":
			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "a@x.io", in["email"])
			assert.Equal(t, "pw", in["password"])
			writeJSON(w, http.StatusOK, map[string]any{
				"status": true, "message": "Login successful",
				"user": map[string]string{"id": "u1", "name": "A", "email": "a@x.io", "token": "tok"},
			})
		case "/api/users/me":
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]any{
				"status": true, "user": map[string]any{"id": "u1", "name": "A", "status": true},
			})
		default:
			http.NotFound(w, r)
		}
	})

	s, err := c.Login(context.Background(), "a@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "tok", c.Token())

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "u1", me.ID)
	assert.Equal(t, "Active", me.StatusLabel())
}

func TestRegister_And_List(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/users/register-user":
			writeJSON(w, http.StatusCreated, map[string]any{
				"status": true, "user": map[string]string{"id": "u2", "name": "B", "email": "b@x.io"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/users/get-users":
			writeJSON(w, http.StatusOK, map[string]any{
				"status": true,
				"users":  []map[string]any{{"id": "u2", "name": "B"}, {"id": "u1", "name": "A"}},
			})
		default:
			http.NotFound(w, r)
		}
	})

	s, err := c.Register(context.Background(), "B", "b@x.io", "1", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u2", s.ID)
	assert.Empty(t, s.Token)

	users, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].ID)
}

func TestSetStatus_And_Delete(t *testing.T) {
	var body map[string]any
	var deletedPath string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusOK, map[string]any{"status": true, "message": "ok"})
		case http.MethodDelete:
			deletedPath = r.URL.EscapedPath()
			writeJSON(w, http.StatusOK, map[string]any{"status": true})
		}
	})

	require.NoError(t, c.SetStatus(context.Background(), "u1", 0))
	assert.Equal(t, "u1", body["id"])
	assert.Equal(t, float64(0), body["status"])

	require.NoError(t, c.Delete(context.Background(), "a/b"))
	assert.Equal(t, "/api/users/delete-user/a%2Fb", deletedPath)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		check func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
		}},
		{"bad request", http.StatusBadRequest, func(t *testing.T, err error) {
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "boom", apiErr.Message)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.code, map[string]any{"status": false, "message": "boom"})
			})
			_, err := c.List(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAPIError_EmptyBodyUsesStatusText(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	err := c.Ping(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLogout_DropsBearer(t *testing.T) {
	var gotAuth []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"status": true})
	})
	c.setToken("tok")

	require.NoError(t, c.Ping(context.Background()))
	c.Logout()
	require.NoError(t, c.Ping(context.Background()))

	assert.Equal(t, []string{"Bearer tok", ""}, gotAuth)
}

func TestPingConcurrentWithLoginLogout(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/login" {
			writeJSON(w, http.StatusOK, map[string]any{"status": true, "user": map[string]string{"id": "u1", "token": "tok"}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": true})
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			assert.NoError(t, c.Ping(ctx))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, err := c.Login(ctx, "a@x.io", "pw")
			assert.NoError(t, err)
			c.Logout()
		}
	}()
	wg.Wait()

	assert.Empty(t, c.Token())
}
