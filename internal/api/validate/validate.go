package validate

import (
	"fmt"
	"time"

	"github.com/oliveapp/olive-server/internal/locale"
	"github.com/oliveapp/olive-server/internal/model"
)

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// LanguageCode validates an explicit language change request.
func LanguageCode(code string) error {
	if code == "" {
		return fmt.Errorf("language is required")
	}
	if _, ok := locale.Parse(code); !ok {
		return fmt.Errorf("unsupported language %q", code)
	}
	return nil
}

// ListName validates a list's display name: 1-60 bytes, non-empty.
func ListName(v string) error {
	if v == "" {
		return fmt.Errorf("name is required")
	}
	if len(v) > 60 {
		return fmt.Errorf("name exceeds 60 characters")
	}
	return nil
}

// -------- Request specific helpers ----------

// CreateNote validates input for creating a note.
func CreateNote(originalInput string, summary *string, priority model.Priority, owner model.Owner, recurrence *model.Recurrence) error {
	if err := NonEmpty("originalInput", originalInput); err != nil {
		return err
	}
	if len(originalInput) > 4000 {
		return fmt.Errorf("originalInput exceeds 4000 characters")
	}
	if err := MaxLen("summary", summary, 500); err != nil {
		return err
	}
	if priority != "" && !priority.Valid() {
		return fmt.Errorf("priority must be one of low, medium, high")
	}
	if owner != "" && !owner.Valid() {
		return fmt.Errorf("owner must be one of self, partner, unassigned")
	}
	if recurrence != nil && !recurrence.Valid() {
		return fmt.Errorf("recurrence requires a known frequency and interval >= 1")
	}
	return nil
}

// ViewWindow validates derived-view query parameters, applying the
// documented defaults for absent values.
func ViewWindow(days int) error {
	if days < 1 || days > 31 {
		return fmt.Errorf("days must be between 1 and 31")
	}
	return nil
}

// ReminderInstant rejects explicit reminder timestamps that are absurdly
// far out; the derivation layer handles past instants itself.
func ReminderInstant(t *time.Time) error {
	if t == nil {
		return nil
	}
	if t.Year() > 2100 {
		return fmt.Errorf("reminderTime is too far in the future")
	}
	return nil
}
