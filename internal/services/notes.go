package services

import (
	"context"
	"fmt"
	"time"

	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// NoteService owns note lifecycle semantics: recurrence advancement on
// completion and reminder sent-marker recording.
type NoteService struct {
	store store.Store
	now   func() time.Time
}

func NewNoteService(s store.Store) *NoteService {
	return &NoteService{store: s, now: time.Now}
}

func (s *NoteService) CreateNote(ctx context.Context, n *model.Note) (*model.Note, error) {
	return s.store.Notes().Create(ctx, n)
}

func (s *NoteService) GetNote(ctx context.Context, spaceID, noteID string) (*model.Note, error) {
	return s.store.Notes().Get(ctx, spaceID, noteID)
}

func (s *NoteService) ListNotes(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error) {
	return s.store.Notes().List(ctx, req)
}

func (s *NoteService) UpdateNote(ctx context.Context, n *model.Note) (*model.Note, error) {
	return s.store.Notes().Update(ctx, n)
}

func (s *NoteService) DeleteNote(ctx context.Context, spaceID, noteID string) error {
	return s.store.Notes().Delete(ctx, spaceID, noteID)
}

// CompleteNote finishes a note. A recurring note is not archived:
// its due date advances to the next occurrence after now and its sent
// reminder markers reset, so the next cycle derives fresh reminders.
func (s *NoteService) CompleteNote(ctx context.Context, spaceID, noteID string) (*model.Note, error) {
	n, err := s.store.Notes().Get(ctx, spaceID, noteID)
	if err != nil {
		return nil, err
	}

	if n.Recurrence != nil && n.Recurrence.Valid() && n.DueDate != nil {
		next := n.Recurrence.NextAfter(*n.DueDate)
		now := s.now()
		for !next.After(now) {
			next = n.Recurrence.NextAfter(next)
		}
		n.DueDate = &next
		n.RemindersSent = nil
		n.Completed = false
	} else {
		n.Completed = true
	}

	return s.store.Notes().Update(ctx, n)
}

// MarkReminderSent records that a reminder of the given kind was
// delivered for the note, so derivation stops re-emitting it.
// Recording the same kind twice is a no-op.
func (s *NoteService) MarkReminderSent(ctx context.Context, spaceID, noteID string, kind model.ReminderKind) (*model.Note, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown reminder kind %q", model.ErrValidation, kind)
	}

	n, err := s.store.Notes().Get(ctx, spaceID, noteID)
	if err != nil {
		return nil, err
	}
	if n.ReminderSent(kind) {
		return n, nil
	}
	n.RemindersSent = append(n.RemindersSent, kind)
	return s.store.Notes().Update(ctx, n)
}
