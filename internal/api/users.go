package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pointcard/internal/models"
)

// FetchUserData loads the authenticated user's profile as the raw JSON
// object the backend returns. Profile payloads vary by deployment, so the
// typed whitelist over this map lives in internal/profile.
func (c *Client) FetchUserData(
	ctx context.Context,
	token string,
) (map[string]any, error) {
	if token == "" {
		return nil, models.ErrUnauthenticated
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/user", nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeAPIError(resp)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf(fetchUserDataErr1, err)
	}

	return raw, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeAPIError(resp)
	}

	var users []models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf(listUsersErr1, err)
	}

	return users, nil
}

func (c *Client) CreateUser(
	ctx context.Context,
	name string,
	email string,
	password string,
) error {
	requestDTO := models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/users", requestDTO, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return decodeAPIError(resp)
	}

	return nil
}

func (c *Client) UpdateUser(
	ctx context.Context,
	id int,
	name string,
	email string,
) error {
	requestDTO := map[string]string{
		"name":  name,
		"email": email,
	}

	resp, err := c.do(
		ctx,
		http.MethodPut,
		fmt.Sprintf("/api/users/%d", id),
		requestDTO,
		"",
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return decodeAPIError(resp)
	}

	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	resp, err := c.do(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("/api/users/%d", id),
		nil,
		"",
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return decodeAPIError(resp)
	}

	return nil
}
