package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only.
	LocalDevAPIKey = "sk_local_olive_dev_key"
)

// MockAuthorizer recognizes only the hardcoded LocalDevAPIKey and
// resolves it to a fixed local development couple.
type MockAuthorizer struct{}

// NewMockAuthorizer creates a new MockAuthorizer for local development.
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

// Authorize validates the hardcoded API key.
func (m *MockAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, errors.New("invalid API key for local development")
	}
	return &ActorInfo{
		ActorID: "olive-dev",
		SpaceID: "local-dev-space",
		KeyName: "Local Development Key",
	}, nil
}

// StaticAuthorizer maps configured API keys to actors. Tokens come
// from configuration in "token=actor:space" comma-separated form.
type StaticAuthorizer struct {
	actors map[string]ActorInfo
}

// NewStaticAuthorizer builds an authorizer from an explicit key map.
func NewStaticAuthorizer(actors map[string]ActorInfo) *StaticAuthorizer {
	return &StaticAuthorizer{actors: actors}
}

// ParseStaticTokens parses the OLIVE_API_TOKENS format:
// "token=actor:space,token2=actor2:space2".
func ParseStaticTokens(raw string) (map[string]ActorInfo, error) {
	out := make(map[string]ActorInfo)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, target, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("malformed token entry %q", entry)
		}
		actor, space, ok := strings.Cut(target, ":")
		if !ok || key == "" || actor == "" || space == "" {
			return nil, fmt.Errorf("malformed token entry %q", entry)
		}
		out[key] = ActorInfo{ActorID: actor, SpaceID: space, KeyName: actor}
	}
	if len(out) == 0 {
		return nil, errors.New("no API tokens configured")
	}
	return out, nil
}

// Authorize resolves the API key against the configured map.
func (s *StaticAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	info, ok := s.actors[apiKey]
	if !ok {
		return nil, errors.New("invalid API key")
	}
	return &info, nil
}
