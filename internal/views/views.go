// Package views computes the derived read views the pages render:
// priority ranking, daily bucketing, reminder derivation and the
// navigation badge counts. Every function is pure over its inputs;
// completed notes never appear in any result.
package views

import (
	"sort"
	"time"

	"github.com/oliveapp/olive-server/internal/model"
)

// Auto reminder offsets before a note's due date.
const (
	Offset24h = 24 * time.Hour
	Offset2h  = 2 * time.Hour
)

// Reminder is a single derived reminder instance for a note.
type Reminder struct {
	NoteID string             `json:"noteId"`
	Kind   model.ReminderKind `json:"kind"`
	At     time.Time          `json:"at"`
}

// DayBucket holds the non-completed notes due on one calendar day.
type DayBucket struct {
	Date  time.Time    `json:"date"`
	Notes []model.Note `json:"notes"`
}

// Badges carries the navigation badge counts.
type Badges struct {
	Urgent   int `json:"urgent"`
	Upcoming int `json:"upcoming"`
}

// RankByPriority returns up to max non-completed notes ordered by
// priority weight descending, ties broken by earlier creation time.
func RankByPriority(notes []model.Note, max int) []model.Note {
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if n.Completed {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].Priority.Weight(), out[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// DailyBuckets groups non-completed notes by due date over the next
// days calendar days starting today, inclusive. Day boundaries follow
// now's location. Within a day, notes sort by priority weight
// descending.
func DailyBuckets(notes []model.Note, now time.Time, days int) []DayBucket {
	if days < 0 {
		days = 0
	}
	start := midnight(now)
	buckets := make([]DayBucket, days)
	for i := range buckets {
		buckets[i].Date = start.AddDate(0, 0, i)
	}
	for _, n := range notes {
		if n.Completed || n.DueDate == nil {
			continue
		}
		day := midnight(n.DueDate.In(now.Location()))
		idx := daysBetween(start, day)
		if idx < 0 || idx >= days {
			continue
		}
		buckets[idx].Notes = append(buckets[idx].Notes, n)
	}
	for i := range buckets {
		ns := buckets[i].Notes
		sort.SliceStable(ns, func(a, b int) bool {
			return ns[a].Priority.Weight() > ns[b].Priority.Weight()
		})
	}
	return buckets
}

// Reminders derives the pending reminder instances for all
// non-completed notes, soonest first. A reminder is pending when its
// instant is strictly after now and, for the automatic kinds, the note
// has no matching sent marker.
func Reminders(notes []model.Note, now time.Time) []Reminder {
	var out []Reminder
	for _, n := range notes {
		if n.Completed {
			continue
		}
		if n.ReminderTime != nil && n.ReminderTime.After(now) {
			out = append(out, Reminder{NoteID: n.NoteID, Kind: model.ReminderExplicit, At: *n.ReminderTime})
		}
		if n.DueDate == nil {
			continue
		}
		for _, auto := range []struct {
			kind   model.ReminderKind
			offset time.Duration
		}{
			{model.Reminder24h, Offset24h},
			{model.Reminder2h, Offset2h},
		} {
			at := n.DueDate.Add(-auto.offset)
			if !at.After(now) || n.ReminderSent(auto.kind) {
				continue
			}
			out = append(out, Reminder{NoteID: n.NoteID, Kind: auto.kind, At: at})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// UrgentCount counts non-completed notes that are overdue or marked
// high priority.
func UrgentCount(notes []model.Note, now time.Time) int {
	count := 0
	for _, n := range notes {
		if n.Completed {
			continue
		}
		if n.Priority == model.PriorityHigh || (n.DueDate != nil && n.DueDate.Before(now)) {
			count++
		}
	}
	return count
}

// UpcomingCount counts notes with at least one derived reminder instant
// inside the next 24 hours.
func UpcomingCount(notes []model.Note, now time.Time) int {
	horizon := now.Add(24 * time.Hour)
	seen := map[string]bool{}
	for _, r := range Reminders(notes, now) {
		if r.At.After(horizon) {
			continue
		}
		seen[r.NoteID] = true
	}
	return len(seen)
}

// ComputeBadges bundles the two badge counts for the navigation bar.
func ComputeBadges(notes []model.Note, now time.Time) Badges {
	return Badges{
		Urgent:   UrgentCount(notes, now),
		Upcoming: UpcomingCount(notes, now),
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days from a to b, both at
// midnight in the same location. Rounding absorbs DST-shortened and
// DST-lengthened days.
func daysBetween(a, b time.Time) int {
	hours := b.Sub(a).Hours()
	if hours < 0 {
		return int((hours - 12) / 24)
	}
	return int((hours + 12) / 24)
}
