package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"pointcard/internal/models"
)

// SubmitPoints adds or uses points against the scanned point identifier.
// Preconditions: a token must be present (otherwise ErrUnauthenticated,
// with no network call issued) and the amount must be a positive integer.
// On success it returns the user-facing confirmation message; on failure
// the returned error carries the message to surface. Exactly one request
// is issued per call, with no client-side compensation.
func (c *Client) SubmitPoints(
	ctx context.Context,
	pointID string,
	amount int,
	direction models.Direction,
	token string,
) (string, error) {
	if token == "" {
		return "", models.ErrUnauthenticated
	}

	requestDTO := models.PointsTransactionRequest{
		PointID: pointID,
		Point:   amount,
		Shop:    c.shop,
	}

	validate := validator.New()
	if err := validate.Struct(requestDTO); err != nil {
		return "", fmt.Errorf(submitPointsErr1, err)
	}

	resp, err := c.do(
		ctx,
		http.MethodPost,
		fmt.Sprintf("/api/points/%s", direction),
		requestDTO,
		token,
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", decodeAPIError(resp)
	}

	// The success payload is opaque and unused beyond confirming success.
	return successMessage(direction, amount), nil
}

func successMessage(direction models.Direction, amount int) string {
	verb := "added"
	if direction == models.DirectionUse {
		verb = "used"
	}

	return fmt.Sprintf("successfully %s %d points", verb, amount)
}
