package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// New opens (or creates) a SQLite-backed store at path and applies the
// schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB allows wiring with an existing connection (used by the factory).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &sqStore{db: db}, nil
}

type sqStore struct{ db *sql.DB }

func (s *sqStore) Notes() store.Notes       { return &notes{db: s.db} }
func (s *sqStore) Lists() store.Lists       { return &lists{db: s.db} }
func (s *sqStore) Profiles() store.Profiles { return &profiles{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Notes ---

type notes struct{ db *sql.DB }

const noteColumns = `space_id, note_id, original_input, summary, category, due_date, reminder_time,
        recurrence_frequency, recurrence_interval, completed, priority, owner, list_id, author_id,
        reminders_sent, created_at, updated_at`

func (r *notes) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	out := *n
	if out.NoteID == "" {
		out.NoteID = uuid.New().String()
	}
	if out.Owner == "" {
		out.Owner = model.OwnerUnassigned
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	sent, err := marshalSent(out.RemindersSent)
	if err != nil {
		return nil, err
	}
	freq, interval := recurrenceColumns(out.Recurrence)

	_, err = r.db.ExecContext(ctx, `INSERT INTO notes (`+noteColumns+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		out.SpaceID, out.NoteID, out.OriginalInput, out.Summary, out.Category,
		utcPtr(out.DueDate), utcPtr(out.ReminderTime), freq, interval,
		out.Completed, string(out.Priority), string(out.Owner), out.ListID, out.AuthorID,
		sent, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notes) Get(ctx context.Context, spaceID, noteID string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE space_id = ? AND note_id = ?`,
		spaceID, noteID)
	return scanNote(row)
}

func (r *notes) List(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error) {
	q := `SELECT ` + noteColumns + ` FROM notes WHERE space_id = ?`
	args := []interface{}{req.SpaceID}
	if req.ListID != nil {
		q += ` AND list_id = ?`
		args = append(args, *req.ListID)
	}
	if req.Completed != nil {
		q += ` AND completed = ?`
		args = append(args, *req.Completed)
	}
	q += ` ORDER BY created_at ASC`
	if req.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, req.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notes) Update(ctx context.Context, n *model.Note) (*model.Note, error) {
	out := *n
	out.UpdatedAt = time.Now().UTC()

	sent, err := marshalSent(out.RemindersSent)
	if err != nil {
		return nil, err
	}
	freq, interval := recurrenceColumns(out.Recurrence)

	res, err := r.db.ExecContext(ctx, `UPDATE notes SET original_input = ?, summary = ?, category = ?,
        due_date = ?, reminder_time = ?, recurrence_frequency = ?, recurrence_interval = ?,
        completed = ?, priority = ?, owner = ?, list_id = ?, reminders_sent = ?, updated_at = ?
        WHERE space_id = ? AND note_id = ?`,
		out.OriginalInput, out.Summary, out.Category,
		utcPtr(out.DueDate), utcPtr(out.ReminderTime), freq, interval,
		out.Completed, string(out.Priority), string(out.Owner), out.ListID, sent, out.UpdatedAt,
		out.SpaceID, out.NoteID)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, model.ErrNotFound
	}
	return &out, nil
}

func (r *notes) Delete(ctx context.Context, spaceID, noteID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE space_id = ? AND note_id = ?`, spaceID, noteID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Lists ---

type lists struct{ db *sql.DB }

func (r *lists) Create(ctx context.Context, l *model.List) (*model.List, error) {
	out := *l
	if out.ListID == "" {
		out.ListID = uuid.New().String()
	}
	out.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `INSERT INTO lists (space_id, list_id, name, description, manual, created_at)
        VALUES (?,?,?,?,?,?)`,
		out.SpaceID, out.ListID, out.Name, out.Description, out.Manual, out.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("list name %q already exists: %w", out.Name, model.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The modernc driver exposes no typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *lists) Get(ctx context.Context, spaceID, listID string) (*model.List, error) {
	row := r.db.QueryRowContext(ctx, `SELECT space_id, list_id, name, description, manual, created_at
        FROM lists WHERE space_id = ? AND list_id = ?`, spaceID, listID)
	var out model.List
	err := row.Scan(&out.SpaceID, &out.ListID, &out.Name, &out.Description, &out.Manual, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *lists) List(ctx context.Context, spaceID string) ([]*model.List, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT space_id, list_id, name, description, manual, created_at
        FROM lists WHERE space_id = ? ORDER BY created_at ASC`, spaceID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.List
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.SpaceID, &l.ListID, &l.Name, &l.Description, &l.Manual, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *lists) Delete(ctx context.Context, spaceID, listID string) error {
	// No cascade: notes keep their list reference (handled externally).
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE space_id = ? AND list_id = ?`, spaceID, listID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Profiles ---

type profiles struct{ db *sql.DB }

func (r *profiles) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	out := *p
	now := time.Now().UTC()
	out.UpdatedAt = now
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	if out.TimeZone == "" {
		out.TimeZone = "UTC"
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO profiles
        (actor_id, space_id, display_name, partner_id, language, time_zone, created_at, updated_at, last_seen_at)
        VALUES (?,?,?,?,?,?,?,?,?)
        ON CONFLICT(actor_id) DO UPDATE SET
            space_id = excluded.space_id,
            display_name = excluded.display_name,
            partner_id = excluded.partner_id,
            language = excluded.language,
            time_zone = excluded.time_zone,
            updated_at = excluded.updated_at,
            last_seen_at = excluded.last_seen_at`,
		out.ActorID, out.SpaceID, out.DisplayName, out.PartnerID, out.Language,
		out.TimeZone, out.CreatedAt, out.UpdatedAt, utcPtr(out.LastSeenAt))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *profiles) Get(ctx context.Context, actorID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT actor_id, space_id, display_name, partner_id, language,
        time_zone, created_at, updated_at, last_seen_at FROM profiles WHERE actor_id = ?`, actorID)
	var out model.Profile
	err := row.Scan(&out.ActorID, &out.SpaceID, &out.DisplayName, &out.PartnerID, &out.Language,
		&out.TimeZone, &out.CreatedAt, &out.UpdatedAt, &out.LastSeenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Row helpers ---

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanNote(row rowScanner) (*model.Note, error) {
	var (
		n        model.Note
		priority string
		owner    string
		freq     *string
		interval *int64
		sent     string
	)
	err := row.Scan(&n.SpaceID, &n.NoteID, &n.OriginalInput, &n.Summary, &n.Category,
		&n.DueDate, &n.ReminderTime, &freq, &interval, &n.Completed, &priority, &owner,
		&n.ListID, &n.AuthorID, &sent, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	n.Priority = model.Priority(priority)
	n.Owner = model.Owner(owner)
	if freq != nil && interval != nil {
		n.Recurrence = &model.Recurrence{Frequency: *freq, Interval: int(*interval)}
	}
	if sent != "" && sent != "[]" {
		if err := json.Unmarshal([]byte(sent), &n.RemindersSent); err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func marshalSent(kinds []model.ReminderKind) (string, error) {
	if len(kinds) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(kinds)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func recurrenceColumns(r *model.Recurrence) (*string, *int64) {
	if r == nil {
		return nil, nil
	}
	freq := r.Frequency
	interval := int64(r.Interval)
	return &freq, &interval
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
