package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oliveapp/olive-server/internal/locale"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	notes    map[string]*model.Note
	profiles map[string]*model.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notes:    map[string]*model.Note{},
		profiles: map[string]*model.Profile{},
	}
}

func (f *fakeStore) Notes() store.Notes       { return &fakeNotes{f} }
func (f *fakeStore) Lists() store.Lists       { return fakeLists{} }
func (f *fakeStore) Profiles() store.Profiles { return &fakeProfiles{f} }

type fakeNotes struct{ p *fakeStore }

func (n *fakeNotes) Create(_ context.Context, m *model.Note) (*model.Note, error) {
	cp := *m
	n.p.notes[cp.NoteID] = &cp
	return &cp, nil
}
func (n *fakeNotes) Get(_ context.Context, spaceID, noteID string) (*model.Note, error) {
	m, ok := n.p.notes[noteID]
	if !ok || m.SpaceID != spaceID {
		return nil, model.ErrNotFound
	}
	cp := *m
	return &cp, nil
}
func (n *fakeNotes) List(context.Context, model.ListNotesRequest) ([]*model.Note, error) {
	panic("unused")
}
func (n *fakeNotes) Update(_ context.Context, m *model.Note) (*model.Note, error) {
	if _, ok := n.p.notes[m.NoteID]; !ok {
		return nil, model.ErrNotFound
	}
	cp := *m
	cp.UpdatedAt = time.Now().UTC()
	n.p.notes[cp.NoteID] = &cp
	return &cp, nil
}
func (n *fakeNotes) Delete(context.Context, string, string) error { panic("unused") }

type fakeLists struct{}

func (fakeLists) Create(context.Context, *model.List) (*model.List, error)    { panic("unused") }
func (fakeLists) Get(context.Context, string, string) (*model.List, error)    { panic("unused") }
func (fakeLists) List(context.Context, string) ([]*model.List, error)         { panic("unused") }
func (fakeLists) Delete(context.Context, string, string) error                { panic("unused") }

type fakeProfiles struct{ p *fakeStore }

func (f *fakeProfiles) Upsert(_ context.Context, p *model.Profile) (*model.Profile, error) {
	cp := *p
	f.p.profiles[cp.ActorID] = &cp
	return &cp, nil
}
func (f *fakeProfiles) Get(_ context.Context, actorID string) (*model.Profile, error) {
	p, ok := f.p.profiles[actorID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// --- Tests ---

func seedNote(fs *fakeStore, n model.Note) {
	cp := n
	fs.notes[cp.NoteID] = &cp
}

func TestCompleteNoteNonRecurring(t *testing.T) {
	fs := newFakeStore()
	seedNote(fs, model.Note{NoteID: "n1", SpaceID: "s1", OriginalInput: "water plants"})
	svc := NewNoteService(fs)

	got, err := svc.CompleteNote(context.Background(), "s1", "n1")
	if err != nil {
		t.Fatalf("CompleteNote: %v", err)
	}
	if !got.Completed {
		t.Fatal("note should be completed")
	}
}

func TestCompleteNoteRecurringAdvancesDueDate(t *testing.T) {
	fs := newFakeStore()
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	due := now.Add(2 * time.Hour)
	seedNote(fs, model.Note{
		NoteID:        "n1",
		SpaceID:       "s1",
		OriginalInput: "date night",
		DueDate:       &due,
		Recurrence:    &model.Recurrence{Frequency: "weekly", Interval: 1},
		RemindersSent: []model.ReminderKind{model.Reminder24h},
	})
	svc := NewNoteService(fs)
	svc.now = func() time.Time { return now }

	got, err := svc.CompleteNote(context.Background(), "s1", "n1")
	if err != nil {
		t.Fatalf("CompleteNote: %v", err)
	}
	if got.Completed {
		t.Fatal("recurring note must stay active")
	}
	want := due.AddDate(0, 0, 7)
	if got.DueDate == nil || !got.DueDate.Equal(want) {
		t.Fatalf("due date: want %v got %v", want, got.DueDate)
	}
	if len(got.RemindersSent) != 0 {
		t.Fatalf("sent markers must reset, got %v", got.RemindersSent)
	}
}

func TestCompleteNoteRecurringSkipsPastOccurrences(t *testing.T) {
	fs := newFakeStore()
	now := time.Date(2026, time.May, 20, 10, 0, 0, 0, time.UTC)
	// Due three weeks in the past; the next occurrence must land after now.
	due := now.AddDate(0, 0, -21)
	seedNote(fs, model.Note{
		NoteID:     "n1",
		SpaceID:    "s1",
		DueDate:    &due,
		Recurrence: &model.Recurrence{Frequency: "weekly", Interval: 1},
	})
	svc := NewNoteService(fs)
	svc.now = func() time.Time { return now }

	got, err := svc.CompleteNote(context.Background(), "s1", "n1")
	if err != nil {
		t.Fatalf("CompleteNote: %v", err)
	}
	if got.DueDate == nil || !got.DueDate.After(now) {
		t.Fatalf("next occurrence %v not after now %v", got.DueDate, now)
	}
}

func TestCompleteNoteMissing(t *testing.T) {
	svc := NewNoteService(newFakeStore())
	if _, err := svc.CompleteNote(context.Background(), "s1", "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMarkReminderSent(t *testing.T) {
	fs := newFakeStore()
	seedNote(fs, model.Note{NoteID: "n1", SpaceID: "s1"})
	svc := NewNoteService(fs)

	got, err := svc.MarkReminderSent(context.Background(), "s1", "n1", model.Reminder24h)
	if err != nil {
		t.Fatalf("MarkReminderSent: %v", err)
	}
	if !got.ReminderSent(model.Reminder24h) {
		t.Fatal("marker not recorded")
	}

	// Idempotent.
	again, err := svc.MarkReminderSent(context.Background(), "s1", "n1", model.Reminder24h)
	if err != nil {
		t.Fatalf("MarkReminderSent twice: %v", err)
	}
	if len(again.RemindersSent) != 1 {
		t.Fatalf("marker duplicated: %v", again.RemindersSent)
	}
}

func TestMarkReminderSentInvalidKind(t *testing.T) {
	svc := NewNoteService(newFakeStore())
	_, err := svc.MarkReminderSent(context.Background(), "s1", "n1", "weird")
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestProfileServiceLanguage(t *testing.T) {
	fs := newFakeStore()
	svc := NewProfileService(fs)
	ctx := context.Background()

	// Absent profile reads as no preference, not an error.
	if _, ok, err := svc.Language(ctx, "a1"); ok || err != nil {
		t.Fatalf("Language absent: ok=%v err=%v", ok, err)
	}

	if err := svc.SetLanguage(ctx, "a1", "s1", locale.Portuguese); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	l, ok, err := svc.Language(ctx, "a1")
	if err != nil || !ok || l != locale.Portuguese {
		t.Fatalf("Language: l=%q ok=%v err=%v", l, ok, err)
	}
}

func TestSetLanguageBootstrapsProfile(t *testing.T) {
	fs := newFakeStore()
	svc := NewProfileService(fs)

	// A first-time write must create the profile with the actor's
	// space, same as GetProfile's first-access bootstrap.
	if err := svc.SetLanguage(context.Background(), "a1", "s1", locale.Spanish); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	p, ok := fs.profiles["a1"]
	if !ok {
		t.Fatal("profile not created")
	}
	if p.SpaceID != "s1" {
		t.Fatalf("space not threaded through: %+v", p)
	}
	if p.Language == nil || *p.Language != "es" {
		t.Fatalf("language not persisted: %+v", p)
	}
}

func TestProfileServiceLanguageMalformedValue(t *testing.T) {
	fs := newFakeStore()
	bad := "klingon"
	fs.profiles["a1"] = &model.Profile{ActorID: "a1", Language: &bad}
	svc := NewProfileService(fs)

	if _, ok, err := svc.Language(context.Background(), "a1"); ok || err != nil {
		t.Fatalf("malformed value must read as absent: ok=%v err=%v", ok, err)
	}
}

func TestUpdateProfilePatch(t *testing.T) {
	fs := newFakeStore()
	svc := NewProfileService(fs)
	ctx := context.Background()

	name := "Ana"
	p, err := svc.UpdateProfile(ctx, "a1", "s1", model.ProfilePatch{DisplayName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.DisplayName == nil || *p.DisplayName != "Ana" {
		t.Fatalf("display name not applied: %+v", p)
	}

	lang := "es"
	p, err = svc.UpdateProfile(ctx, "a1", "s1", model.ProfilePatch{Language: &lang})
	if err != nil {
		t.Fatalf("UpdateProfile lang: %v", err)
	}
	if p.DisplayName == nil || *p.DisplayName != "Ana" {
		t.Fatal("unpatched field was clobbered")
	}
	if p.Language == nil || *p.Language != "es" {
		t.Fatalf("language not applied: %+v", p)
	}
}
