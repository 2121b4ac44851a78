package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointcard/internal/api"
)

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/users", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"email":"a@example.com","name":"A","point_id":"p-1","created_at":"2025-06-13T00:00:00Z","updated_at":"2025-06-13T00:00:00Z"},
			{"id":2,"email":"b@example.com","name":null,"point_id":"p-2","created_at":"2025-06-14T00:00:00Z","updated_at":"2025-06-14T00:00:00Z"}
		]`))
	}))
	defer srv.Close()

	client := api.New(time.Second, srv.URL, "Test Shop")

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "a@example.com", users[0].Email)
	require.NotNil(t, users[0].Name)
	assert.Equal(t, "A", *users[0].Name)
	assert.Nil(t, users[1].Name)
	assert.Equal(t, "p-2", users[1].PointID)
}

func TestCreateUpdateDeleteUser(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{method: r.Method, path: r.URL.Path})

		if r.Method == http.MethodPut {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "Taro", body["name"])
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.New(time.Second, srv.URL, "Test Shop")
	ctx := context.Background()

	require.NoError(t, client.CreateUser(ctx, "Taro", "taro@example.com", "password123"))
	require.NoError(t, client.UpdateUser(ctx, 7, "Taro", "taro@example.com"))
	require.NoError(t, client.DeleteUser(ctx, 7))

	require.Equal(t, []call{
		{http.MethodPost, "/api/users"},
		{http.MethodPut, "/api/users/7"},
		{http.MethodDelete, "/api/users/7"},
	}, calls)
}

func TestListUsersServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"maintenance","errors":{}}`))
	}))
	defer srv.Close()

	client := api.New(time.Second, srv.URL, "Test Shop")

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	require.Equal(t, "maintenance", err.Error())
}
