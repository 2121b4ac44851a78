package scanner

import "errors"

// ErrSessionConsumed is returned when Start is called on a session that
// was already started; scanning again requires a fresh session.
var ErrSessionConsumed = errors.New("scan session already started")
