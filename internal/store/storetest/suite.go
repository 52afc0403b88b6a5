package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated
// store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	spaceID := "space-" + uuid.New().String()
	actorID := "actor-" + uuid.New().String()

	// Profiles
	lang := "pt"
	p, err := s.Profiles().Upsert(ctx, &model.Profile{ActorID: actorID, SpaceID: spaceID, Language: &lang})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if p.TimeZone == "" {
		t.Fatalf("UpsertProfile: time zone default missing")
	}
	got, err := s.Profiles().Get(ctx, actorID)
	if err != nil || got == nil || got.Language == nil || *got.Language != "pt" {
		t.Fatalf("GetProfile: got=%+v err=%v", got, err)
	}
	if _, err := s.Profiles().Get(ctx, "missing-actor"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetProfile missing: want ErrNotFound, got %v", err)
	}

	// Upsert overwrites the language preference.
	lang2 := "es"
	if _, err := s.Profiles().Upsert(ctx, &model.Profile{ActorID: actorID, SpaceID: spaceID, Language: &lang2}); err != nil {
		t.Fatalf("UpsertProfile overwrite: %v", err)
	}
	if got, err := s.Profiles().Get(ctx, actorID); err != nil || *got.Language != "es" {
		t.Fatalf("GetProfile after overwrite: got=%+v err=%v", got, err)
	}

	// Lists
	l, err := s.Lists().Create(ctx, &model.List{SpaceID: spaceID, Name: "Groceries", Manual: true})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if l.ListID == "" || l.CreatedAt.IsZero() {
		t.Fatalf("CreateList: missing generated fields: %+v", l)
	}
	if got, err := s.Lists().Get(ctx, spaceID, l.ListID); err != nil || got.Name != "Groceries" {
		t.Fatalf("GetList: got=%+v err=%v", got, err)
	}
	if lst, err := s.Lists().List(ctx, spaceID); err != nil || len(lst) != 1 {
		t.Fatalf("ListLists: n=%d err=%v", len(lst), err)
	}

	// Duplicate list name within a space maps to ErrConflict.
	if _, err := s.Lists().Create(ctx, &model.List{SpaceID: spaceID, Name: "Groceries"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("CreateList duplicate name: want ErrConflict, got %v", err)
	}
	// The same name in another space is fine.
	if _, err := s.Lists().Create(ctx, &model.List{SpaceID: spaceID + "-other", Name: "Groceries"}); err != nil {
		t.Fatalf("CreateList same name other space: %v", err)
	}

	// Notes
	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	summary := "buy olives"
	n, err := s.Notes().Create(ctx, &model.Note{
		SpaceID:       spaceID,
		OriginalInput: "remember to buy olives for dinner",
		Summary:       &summary,
		DueDate:       &due,
		Priority:      model.PriorityHigh,
		Owner:         model.OwnerSelf,
		ListID:        &l.ListID,
		AuthorID:      actorID,
		Recurrence:    &model.Recurrence{Frequency: "weekly", Interval: 2},
	})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if n.NoteID == "" || n.CreatedAt.IsZero() {
		t.Fatalf("CreateNote: missing generated fields: %+v", n)
	}

	got2, err := s.Notes().Get(ctx, spaceID, n.NoteID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got2.Summary == nil || *got2.Summary != summary {
		t.Fatalf("GetNote: summary lost: %+v", got2)
	}
	if got2.DueDate == nil || !got2.DueDate.UTC().Equal(due) {
		t.Fatalf("GetNote: due date mismatch: want %v got %v", due, got2.DueDate)
	}
	if got2.Recurrence == nil || got2.Recurrence.Frequency != "weekly" || got2.Recurrence.Interval != 2 {
		t.Fatalf("GetNote: recurrence lost: %+v", got2.Recurrence)
	}
	if got2.Priority != model.PriorityHigh || got2.Owner != model.OwnerSelf {
		t.Fatalf("GetNote: enums lost: %+v", got2)
	}

	// A second, completed note.
	n2, err := s.Notes().Create(ctx, &model.Note{
		SpaceID:       spaceID,
		OriginalInput: "call the vet",
		Completed:     true,
		AuthorID:      actorID,
	})
	if err != nil {
		t.Fatalf("CreateNote n2: %v", err)
	}
	if n2.Owner != model.OwnerUnassigned {
		t.Fatalf("CreateNote n2: owner default missing: %q", n2.Owner)
	}

	// List with filters
	all, err := s.Notes().List(ctx, model.ListNotesRequest{SpaceID: spaceID})
	if err != nil || len(all) != 2 {
		t.Fatalf("ListNotes: n=%d err=%v", len(all), err)
	}
	active := false
	open, err := s.Notes().List(ctx, model.ListNotesRequest{SpaceID: spaceID, Completed: &active})
	if err != nil || len(open) != 1 || open[0].NoteID != n.NoteID {
		t.Fatalf("ListNotes completed=false: n=%d err=%v", len(open), err)
	}
	byList, err := s.Notes().List(ctx, model.ListNotesRequest{SpaceID: spaceID, ListID: &l.ListID})
	if err != nil || len(byList) != 1 {
		t.Fatalf("ListNotes by list: n=%d err=%v", len(byList), err)
	}

	// Update: record a sent reminder marker.
	got2.RemindersSent = []model.ReminderKind{model.Reminder24h}
	upd, err := s.Notes().Update(ctx, got2)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if !upd.UpdatedAt.After(upd.CreatedAt) && !upd.UpdatedAt.Equal(upd.CreatedAt) {
		t.Fatalf("UpdateNote: updated_at not advanced: %+v", upd)
	}
	reread, err := s.Notes().Get(ctx, spaceID, n.NoteID)
	if err != nil || !reread.ReminderSent(model.Reminder24h) {
		t.Fatalf("GetNote after update: markers=%v err=%v", reread.RemindersSent, err)
	}

	// Update of a missing note reports not found.
	missing := *got2
	missing.NoteID = uuid.New().String()
	if _, err := s.Notes().Update(ctx, &missing); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateNote missing: want ErrNotFound, got %v", err)
	}

	// Space isolation.
	if other, err := s.Notes().List(ctx, model.ListNotesRequest{SpaceID: "space-other"}); err != nil || len(other) != 0 {
		t.Fatalf("ListNotes other space: n=%d err=%v", len(other), err)
	}

	// Deleting a list does not cascade to its notes.
	if err := s.Lists().Delete(ctx, spaceID, l.ListID); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if still, err := s.Notes().Get(ctx, spaceID, n.NoteID); err != nil || still.ListID == nil {
		t.Fatalf("GetNote after list delete: got=%+v err=%v", still, err)
	}

	// Note deletion.
	if err := s.Notes().Delete(ctx, spaceID, n.NoteID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := s.Notes().Get(ctx, spaceID, n.NoteID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetNote after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Notes().Delete(ctx, spaceID, n.NoteID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteNote twice: want ErrNotFound, got %v", err)
	}
}
