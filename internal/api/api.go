// Package api is the HTTP client for the loyalty-points backend. Every
// call issues a single request and never retries; the ledger lives fully
// on the server side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	client  *http.Client
	baseURL string
	shop    string
}

func New(
	httpClientTimeout time.Duration,
	baseURL string,
	shop string,
) *Client {
	return &Client{
		client:  &http.Client{Timeout: httpClientTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		shop:    shop,
	}
}

// do issues a single request against the backend. A nil requestDTO sends
// no body; a non-empty token is attached as a bearer credential.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	requestDTO any,
	token string,
) (*http.Response, error) {
	var body *bytes.Reader
	if requestDTO != nil {
		raw, err := json.Marshal(requestDTO)
		if err != nil {
			return nil, fmt.Errorf(doErr1, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf(doErr2, err)
	}

	if requestDTO != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return resp, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
