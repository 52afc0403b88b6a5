package services

import (
	"context"

	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// ListService manages note lists. List deletion never cascades to
// notes in this layer.
type ListService struct {
	store store.Store
}

func NewListService(s store.Store) *ListService {
	return &ListService{store: s}
}

func (s *ListService) CreateList(ctx context.Context, l *model.List) (*model.List, error) {
	return s.store.Lists().Create(ctx, l)
}

func (s *ListService) GetList(ctx context.Context, spaceID, listID string) (*model.List, error) {
	return s.store.Lists().Get(ctx, spaceID, listID)
}

func (s *ListService) ListLists(ctx context.Context, spaceID string) ([]*model.List, error) {
	return s.store.Lists().List(ctx, spaceID)
}

func (s *ListService) DeleteList(ctx context.Context, spaceID, listID string) error {
	return s.store.Lists().Delete(ctx, spaceID, listID)
}
