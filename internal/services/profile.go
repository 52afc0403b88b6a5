package services

import (
	"context"
	"errors"

	"github.com/oliveapp/olive-server/internal/locale"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// ProfileService manages the per-actor profile record and doubles as
// the language coordinator's remote preference store.
type ProfileService struct {
	store store.Store
}

func NewProfileService(s store.Store) *ProfileService {
	return &ProfileService{store: s}
}

// GetProfile returns the actor's profile, creating an empty one on
// first access so every authenticated actor always has a record.
func (s *ProfileService) GetProfile(ctx context.Context, actorID, spaceID string) (*model.Profile, error) {
	p, err := s.store.Profiles().Get(ctx, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return s.store.Profiles().Upsert(ctx, &model.Profile{ActorID: actorID, SpaceID: spaceID})
	}
	return p, err
}

// UpdateProfile applies the non-nil patch fields and persists.
func (s *ProfileService) UpdateProfile(ctx context.Context, actorID, spaceID string, patch model.ProfilePatch) (*model.Profile, error) {
	p, err := s.GetProfile(ctx, actorID, spaceID)
	if err != nil {
		return nil, err
	}
	if patch.DisplayName != nil {
		p.DisplayName = patch.DisplayName
	}
	if patch.PartnerID != nil {
		p.PartnerID = patch.PartnerID
	}
	if patch.Language != nil {
		p.Language = patch.Language
	}
	if patch.TimeZone != nil {
		p.TimeZone = *patch.TimeZone
	}
	return s.store.Profiles().Upsert(ctx, p)
}

// Language implements language.PreferenceStore. A missing profile or
// unset field reads as "no preference".
func (s *ProfileService) Language(ctx context.Context, actorID string) (locale.Locale, bool, error) {
	p, err := s.store.Profiles().Get(ctx, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if p.Language == nil {
		return "", false, nil
	}
	l, ok := locale.Parse(*p.Language)
	if !ok {
		return "", false, nil
	}
	return l, true, nil
}

// SetLanguage implements language.PreferenceStore. A first-time write
// bootstraps the profile the same way GetProfile does.
func (s *ProfileService) SetLanguage(ctx context.Context, actorID, spaceID string, l locale.Locale) error {
	p, err := s.GetProfile(ctx, actorID, spaceID)
	if err != nil {
		return err
	}
	code := string(l)
	p.Language = &code
	_, err = s.store.Profiles().Upsert(ctx, p)
	return err
}
