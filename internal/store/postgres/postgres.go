package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Notes() store.Notes       { return &notes{db: s.db} }
func (s *pgStore) Lists() store.Lists       { return &lists{db: s.db} }
func (s *pgStore) Profiles() store.Profiles { return &profiles{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
// This is a fast ping-only check since deploy-time migrations handle schema setup.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil // No DSN configured, skip bootstrap
	}

	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.PingContext(ctx)
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

	sent, err := marshalSent(out.RemindersSent)
	if err != nil {
		return nil, err
	}
	freq, interval := recurrenceColumns(out.Recurrence)

	row := r.db.QueryRowContext(ctx, `INSERT INTO notes (`+noteColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
        RETURNING created_at, updated_at`,
		out.SpaceID, out.NoteID, out.OriginalInput, out.Summary, out.Category,
		out.DueDate, out.ReminderTime, freq, interval,
		out.Completed, string(out.Priority), string(out.Owner), out.ListID, out.AuthorID, sent)
	if err := row.Scan(&out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notes) Get(ctx context.Context, spaceID, noteID string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE space_id = $1 AND note_id = $2`,
		spaceID, noteID)
	return scanNote(row)
}

func (r *notes) List(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error) {
	q := `SELECT ` + noteColumns + ` FROM notes WHERE space_id = $1`
	args := []interface{}{req.SpaceID}
	if req.ListID != nil {
		args = append(args, *req.ListID)
		q += fmt.Sprintf(` AND list_id = $%d`, len(args))
	}
	if req.Completed != nil {
		args = append(args, *req.Completed)
		q += fmt.Sprintf(` AND completed = $%d`, len(args))
	}
	q += ` ORDER BY created_at ASC`
	if req.Limit > 0 {
		args = append(args, req.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
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

	sent, err := marshalSent(out.RemindersSent)
	if err != nil {
		return nil, err
	}
	freq, interval := recurrenceColumns(out.Recurrence)

	row := r.db.QueryRowContext(ctx, `UPDATE notes SET original_input = $1, summary = $2, category = $3,
        due_date = $4, reminder_time = $5, recurrence_frequency = $6, recurrence_interval = $7,
        completed = $8, priority = $9, owner = $10, list_id = $11, reminders_sent = $12, updated_at = now()
        WHERE space_id = $13 AND note_id = $14
        RETURNING updated_at`,
		out.OriginalInput, out.Summary, out.Category,
		out.DueDate, out.ReminderTime, freq, interval,
		out.Completed, string(out.Priority), string(out.Owner), out.ListID, sent,
		out.SpaceID, out.NoteID)
	if err := row.Scan(&out.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *notes) Delete(ctx context.Context, spaceID, noteID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE space_id = $1 AND note_id = $2`, spaceID, noteID)
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

	row := r.db.QueryRowContext(ctx, `INSERT INTO lists (space_id, list_id, name, description, manual, created_at)
        VALUES ($1,$2,$3,$4,$5,now())
        RETURNING created_at`,
		out.SpaceID, out.ListID, out.Name, out.Description, out.Manual)
	if err := row.Scan(&out.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("list name %q already exists: %w", out.Name, model.ErrConflict)
		}
		return nil, err
	}
	return &out, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *lists) Get(ctx context.Context, spaceID, listID string) (*model.List, error) {
	row := r.db.QueryRowContext(ctx, `SELECT space_id, list_id, name, description, manual, created_at
        FROM lists WHERE space_id = $1 AND list_id = $2`, spaceID, listID)
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
        FROM lists WHERE space_id = $1 ORDER BY created_at ASC`, spaceID)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE space_id = $1 AND list_id = $2`, spaceID, listID)
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
	if out.TimeZone == "" {
		out.TimeZone = "UTC"
	}

	row := r.db.QueryRowContext(ctx, `INSERT INTO profiles
        (actor_id, space_id, display_name, partner_id, language, time_zone, created_at, updated_at, last_seen_at)
        VALUES ($1,$2,$3,$4,$5,$6,now(),now(),$7)
        ON CONFLICT (actor_id) DO UPDATE SET
            space_id = excluded.space_id,
            display_name = excluded.display_name,
            partner_id = excluded.partner_id,
            language = excluded.language,
            time_zone = excluded.time_zone,
            updated_at = now(),
            last_seen_at = excluded.last_seen_at
        RETURNING created_at, updated_at`,
		out.ActorID, out.SpaceID, out.DisplayName, out.PartnerID, out.Language,
		out.TimeZone, out.LastSeenAt)
	if err := row.Scan(&out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *profiles) Get(ctx context.Context, actorID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT actor_id, space_id, display_name, partner_id, language,
        time_zone, created_at, updated_at, last_seen_at FROM profiles WHERE actor_id = $1`, actorID)
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
		sent     []byte
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
	if len(sent) > 0 && string(sent) != "[]" {
		if err := json.Unmarshal(sent, &n.RemindersSent); err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func marshalSent(kinds []model.ReminderKind) ([]byte, error) {
	if len(kinds) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(kinds)
}

func recurrenceColumns(r *model.Recurrence) (*string, *int64) {
	if r == nil {
		return nil, nil
	}
	freq := r.Frequency
	interval := int64(r.Interval)
	return &freq, &interval
}
