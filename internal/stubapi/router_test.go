package stubapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointcard/internal/logger"
	"pointcard/internal/models"
)

const logLevel = `debug`

func newTestRouter(t *testing.T) (http.Handler, *Store, *Auth) {
	t.Helper()

	err := logger.Init(logLevel)
	require.NoError(t, err)

	db := NewStore()
	auth := NewAuth([]byte(`test-signing-secret`), time.Hour)

	return NewRouter(db, auth), db, auth
}

func TestRegisterLoginCycle(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := []byte(`{"name":"Taro","email":"taro@example.com","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var registerResponse models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registerResponse))
	require.Nil(t, registerResponse.Token)
	require.NotNil(t, registerResponse.User)
	assert.NotEmpty(t, registerResponse.User.PointID)

	loginBody := []byte(`{"email":"taro@example.com","password":"password123"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResponse models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loginResponse))
	require.NotNil(t, loginResponse.Token)
	require.NotEmpty(t, *loginResponse.Token)
}

func TestPostApiregisterValidationError(t *testing.T) {
	r, _, _ := newTestRouter(t)

	reqBody := []byte(`{"name":"","email":"not-an-email","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPostApiloginInvalidCredentials(t *testing.T) {
	r, db, _ := newTestRouter(t)

	_, err := db.CreateUser("Taro", "taro@example.com", "password123")
	require.NoError(t, err)

	reqBody := []byte(`{"email":"taro@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var apiErr models.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	require.Equal(t, "invalid credentials", apiErr.Message)
}

func TestGetApiuserUnauthorized(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostApipoints(t *testing.T) {
	r, db, auth := newTestRouter(t)

	usr, err := db.CreateUser("Taro", "taro@example.com", "password123")
	require.NoError(t, err)

	tokenString, err := auth.BuildTokenString(usr.ID)
	require.NoError(t, err)

	tests := []struct {
		name            string
		path            string
		pointID         string
		point           int
		token           string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "add success",
			path:           "/api/points/add",
			pointID:        usr.PointID,
			point:          100,
			token:          tokenString,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "use success",
			path:           "/api/points/use",
			pointID:        usr.PointID,
			point:          40,
			token:          tokenString,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "use beyond balance",
			path:            "/api/points/use",
			pointID:         usr.PointID,
			point:           1000,
			token:           tokenString,
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: "insufficient points",
		},
		{
			name:            "unknown point id",
			path:            "/api/points/add",
			pointID:         "no-such-point-id",
			point:           10,
			token:           tokenString,
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: "unknown point id",
		},
		{
			name:            "zero points",
			path:            "/api/points/add",
			pointID:         usr.PointID,
			point:           0,
			token:           tokenString,
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: "invalid points transaction",
		},
		{
			name:           "missing token",
			path:           "/api/points/add",
			pointID:        usr.PointID,
			point:          10,
			token:          "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBody, err := json.Marshal(models.PointsTransactionRequest{
				PointID: tt.pointID,
				Point:   tt.point,
				Shop:    "Test Shop",
			})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, tt.expectedStatus, resp.Code)

			if tt.expectedMessage != "" {
				var apiErr models.APIError
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
				require.Equal(t, tt.expectedMessage, apiErr.Message)
			}
		})
	}

	balance, exists := db.Balance(usr.PointID)
	require.True(t, exists)
	require.Equal(t, 60, balance)

	require.Len(t, db.Ledger(), 2)
}

func TestPointsRequestValidation(t *testing.T) {
	// The request DTO itself enforces the positive-amount contract the
	// client relies on before ever issuing a request.
	reqBody := []byte(`{"point_id":"p-1","point":-5,"shop":"Test Shop"}`)

	r, db, auth := newTestRouter(t)

	usr, err := db.CreateUser("Taro", "taro@example.com", "password123")
	require.NoError(t, err)

	tokenString, err := auth.BuildTokenString(usr.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/points/add", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
