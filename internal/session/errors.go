package session

const (
	newErr1 = "in internal/session/session.go/New(): error while `bolt.Open()` calling: %w"

	newErr2 = "in internal/session/session.go/New(): error while the session bucket initialization: %w"

	setTokenErr1 = "unable to persist the auth token: %w"

	clearErr1 = "unable to clear the auth token: %w"
)
