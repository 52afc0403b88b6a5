package auth

import (
	"context"
)

// ActorInfo identifies an authenticated actor and the couple's shared
// space their data lives in.
type ActorInfo struct {
	ActorID string `json:"actor_id"`
	SpaceID string `json:"space_id"`
	KeyName string `json:"key_name"` // human-readable label for the key
}

// Authorizer validates API keys. The core consumes identity as an
// opaque authenticated-or-not flag plus identifiers; the actual
// identity provider lives behind this interface.
type Authorizer interface {
	// Authorize validates the API key and returns the actor it maps to,
	// or an error when authentication fails.
	Authorize(ctx context.Context, apiKey string) (*ActorInfo, error)
}
