package model

import "time"

// Priority orders notes in derived views. The zero value ("") ranks the
// same as low.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight maps a priority to its numeric rank. Unset or unknown values
// weigh the same as low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Owner says which half of the couple a note belongs to.
type Owner string

const (
	OwnerSelf       Owner = "self"
	OwnerPartner    Owner = "partner"
	OwnerUnassigned Owner = "unassigned"
)

// Valid reports whether o is one of the enumerated owners.
func (o Owner) Valid() bool {
	switch o {
	case OwnerSelf, OwnerPartner, OwnerUnassigned:
		return true
	}
	return false
}

// ReminderKind distinguishes an explicit user-set reminder from the two
// automatic due-date offsets.
type ReminderKind string

const (
	ReminderExplicit ReminderKind = "explicit"
	Reminder24h      ReminderKind = "24h"
	Reminder2h       ReminderKind = "2h"
)

// Valid reports whether k is one of the enumerated reminder kinds.
func (k ReminderKind) Valid() bool {
	switch k {
	case ReminderExplicit, Reminder24h, Reminder2h:
		return true
	}
	return false
}

// Recurrence repeats a note's due date at a fixed cadence.
type Recurrence struct {
	Frequency string `json:"frequency"` // daily, weekly, monthly, yearly
	Interval  int    `json:"interval"`
}

// Valid reports whether the recurrence has a known frequency and a
// positive interval.
func (r Recurrence) Valid() bool {
	if r.Interval < 1 {
		return false
	}
	switch r.Frequency {
	case "daily", "weekly", "monthly", "yearly":
		return true
	}
	return false
}

// NextAfter returns the first occurrence strictly after t.
func (r Recurrence) NextAfter(t time.Time) time.Time {
	switch r.Frequency {
	case "daily":
		return t.AddDate(0, 0, r.Interval)
	case "weekly":
		return t.AddDate(0, 0, 7*r.Interval)
	case "monthly":
		return t.AddDate(0, r.Interval, 0)
	case "yearly":
		return t.AddDate(r.Interval, 0, 0)
	}
	return t
}

// Note is a shared task or note inside a couple's space.
type Note struct {
	NoteID        string         `json:"noteId"`
	SpaceID       string         `json:"spaceId"`
	OriginalInput string         `json:"originalInput"`
	Summary       *string        `json:"summary,omitempty"`
	Category      *string        `json:"category,omitempty"`
	DueDate       *time.Time     `json:"dueDate,omitempty"`
	ReminderTime  *time.Time     `json:"reminderTime,omitempty"`
	Recurrence    *Recurrence    `json:"recurrence,omitempty"`
	Completed     bool           `json:"completed"`
	Priority      Priority       `json:"priority,omitempty"`
	Owner         Owner          `json:"owner"`
	ListID        *string        `json:"listId,omitempty"`
	AuthorID      string         `json:"authorId"`
	RemindersSent []ReminderKind `json:"remindersSent,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ReminderSent reports whether the given kind was already delivered for
// this note.
func (n *Note) ReminderSent(kind ReminderKind) bool {
	for _, k := range n.RemindersSent {
		if k == kind {
			return true
		}
	}
	return false
}

// List groups notes. Deleting a list does not cascade to its notes.
type List struct {
	ListID      string    `json:"listId"`
	SpaceID     string    `json:"spaceId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Manual      bool      `json:"manual"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Profile is the per-actor key-value record, including the remote
// language preference consumed by the language coordinator.
type Profile struct {
	ActorID     string     `json:"actorId"`
	SpaceID     string     `json:"spaceId"`
	DisplayName *string    `json:"displayName,omitempty"`
	PartnerID   *string    `json:"partnerId,omitempty"`
	Language    *string    `json:"language,omitempty"`
	TimeZone    string     `json:"timeZone"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"`
}

// ListNotesRequest captures filters used when listing notes.
type ListNotesRequest struct {
	SpaceID   string
	ListID    *string
	Completed *bool
	Limit     int
}

// ProfilePatch carries optional profile field updates; nil fields are
// left untouched.
type ProfilePatch struct {
	DisplayName *string
	PartnerID   *string
	Language    *string
	TimeZone    *string
}
