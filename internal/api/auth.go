package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"pointcard/internal/models"
)

// Login exchanges credentials for a bearer token. The caller is
// responsible for persisting the token into the session store.
func (c *Client) Login(
	ctx context.Context,
	email string,
	password string,
) (*models.AuthResponse, error) {
	requestDTO := models.LoginRequest{
		Email:    email,
		Password: password,
	}

	validate := validator.New()
	if err := validate.Struct(requestDTO); err != nil {
		return nil, fmt.Errorf(loginErr1, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/login", requestDTO, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case isSuccess(resp.StatusCode):
		var responseDTO models.AuthResponse
		if err := json.NewDecoder(resp.Body).Decode(&responseDTO); err != nil {
			return nil, fmt.Errorf(loginErr2, err)
		}

		if responseDTO.Token == nil || *responseDTO.Token == "" {
			return nil, models.ErrInvalidCredentials
		}

		return &responseDTO, nil

	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, models.ErrInvalidCredentials

	default:
		return nil, decodeAPIError(resp)
	}
}

// Register creates an account. The backend replies without a token; the
// user logs in afterwards.
func (c *Client) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
) (*models.AuthResponse, error) {
	requestDTO := models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}

	validate := validator.New()
	if err := validate.Struct(requestDTO); err != nil {
		return nil, fmt.Errorf(registerErr1, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/register", requestDTO, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case isSuccess(resp.StatusCode):
		var responseDTO models.AuthResponse
		if err := json.NewDecoder(resp.Body).Decode(&responseDTO); err != nil {
			return nil, fmt.Errorf(registerErr2, err)
		}

		return &responseDTO, nil

	case resp.StatusCode == http.StatusConflict:
		return nil, models.ErrUserAlreadyExists

	default:
		return nil, decodeAPIError(resp)
	}
}
