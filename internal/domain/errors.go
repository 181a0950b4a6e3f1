package domain

import "errors"

// Expected pipeline outcomes. GameNotFound yields an informational reply,
// not a failure; ProviderUnavailable is surfaced to the user and logged but
// never retried.
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrProviderUnavailable = errors.New("price provider unavailable")
)
