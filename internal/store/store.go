package store

import (
	"context"

	"github.com/oliveapp/olive-server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres,
// sqlite). All note and list operations are scoped by the couple's
// shared space.
type Store interface {
	Notes() Notes
	Lists() Lists
	Profiles() Profiles
}

type Notes interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	Get(ctx context.Context, spaceID, noteID string) (*model.Note, error)
	List(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error)
	Update(ctx context.Context, n *model.Note) (*model.Note, error)
	Delete(ctx context.Context, spaceID, noteID string) error
}

type Lists interface {
	Create(ctx context.Context, l *model.List) (*model.List, error)
	Get(ctx context.Context, spaceID, listID string) (*model.List, error)
	List(ctx context.Context, spaceID string) ([]*model.List, error)
	Delete(ctx context.Context, spaceID, listID string) error
}

type Profiles interface {
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error)
	Get(ctx context.Context, actorID string) (*model.Profile, error)
}
