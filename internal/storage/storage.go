package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"alcofree-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// ErrNotFound is returned for operations on a user_id that has no row.
var ErrNotFound = errors.New("storage: user not found")

const (
	dateLayout = "2006-01-02"
	tsLayout   = time.RFC3339
)

// DB wraps the sqlite handle plus a keyed mutex used to serialize
// read-modify-write sequences per user. Different users do not contend.
type DB struct {
	*sql.DB

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{DB: db, locks: map[int64]*sync.Mutex{}}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

// WithUserLock runs fn while holding the per-user mutex. The engine uses it
// for every transition; the scheduler uses it around marker check-and-set.
func (d *DB) WithUserLock(userID int64, fn func() error) error {
	d.mu.Lock()
	l, ok := d.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		d.locks[userID] = l
	}
	d.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn()
}

// ---------- users -----------------------------------------------------------

// GetOrCreate returns the profile, inserting a default row on first contact.
// INSERT OR IGNORE keeps concurrent first contacts from creating duplicates.
func (d *DB) GetOrCreate(userID int64) (*models.UserProfile, error) {
	_, err := d.Exec(`
        INSERT OR IGNORE INTO users (user_id, created_at) VALUES (?, ?)`,
		userID, time.Now().Format(tsLayout))
	if err != nil {
		return nil, err
	}
	return d.Get(userID)
}

func (d *DB) Get(userID int64) (*models.UserProfile, error) {
	row := d.QueryRow(`
        SELECT user_id, created_at, streak, last_sober_date, sober_since_date,
               goal, motivation, weekly_alcohol_spend, weekly_alcohol_hours,
               morning_time, evening_time,
               last_morning_sent_date, last_evening_sent_date,
               onboarding_completed, conv_state, goals, reasons, triggers
        FROM users WHERE user_id = ?`, userID)
	u, err := scanUser(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// Update applies a partial field set. Dates, lists and booleans are encoded
// to their canonical column representation.
func (d *DB) Update(userID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	cols := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for k, v := range fields {
		cols = append(cols, k+" = ?")
		args = append(args, encode(v))
	}
	args = append(args, userID)

	res, err := d.Exec(
		"UPDATE users SET "+strings.Join(cols, ", ")+" WHERE user_id = ?", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encode(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return x.Format(dateLayout)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.Format(dateLayout)
	case bool:
		if x {
			return 1
		}
		return 0
	case models.ConvState:
		return string(x)
	case []string:
		b, _ := json.Marshal(x)
		return string(b)
	default:
		return v
	}
}

// ResetProgress clears the streak, sobriety dates and delivery markers and
// wipes the event log. Tracker numbers and reminder times stay untouched.
func (d *DB) ResetProgress(userID int64) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
        UPDATE users
        SET streak = 0,
            last_sober_date = NULL,
            sober_since_date = NULL,
            last_morning_sent_date = NULL,
            last_evening_sent_date = NULL
        WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM events WHERE user_id = ?`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// ResetTracker clears the tracker configuration and drops the user back to
// the not-onboarded state.
func (d *DB) ResetTracker(userID int64) error {
	_, err := d.Exec(`
        UPDATE users
        SET sober_since_date = NULL,
            weekly_alcohol_spend = NULL,
            weekly_alcohol_hours = NULL,
            goal = ?,
            onboarding_completed = 0,
            conv_state = '',
            motivation = '',
            goals = '[]',
            reasons = '[]',
            triggers = '[]'
        WHERE user_id = ?`, models.GoalUnset, userID)
	return err
}

// ResetReminders clears both reminder times together with their delivery
// markers and any reminder-setup conversation state.
func (d *DB) ResetReminders(userID int64) error {
	_, err := d.Exec(`
        UPDATE users
        SET morning_time = '',
            evening_time = '',
            last_morning_sent_date = NULL,
            last_evening_sent_date = NULL,
            conv_state = CASE WHEN conv_state IN (?, ?) THEN '' ELSE conv_state END
        WHERE user_id = ?`,
		string(models.StateAwaitingMorningTime),
		string(models.StateAwaitingEveningTime),
		userID)
	return err
}

// ListWithReminders returns every profile with a morning or evening time set.
func (d *DB) ListWithReminders() ([]models.UserProfile, error) {
	rows, err := d.Query(`
        SELECT user_id, created_at, streak, last_sober_date, sober_since_date,
               goal, motivation, weekly_alcohol_spend, weekly_alcohol_hours,
               morning_time, evening_time,
               last_morning_sent_date, last_evening_sent_date,
               onboarding_completed, conv_state, goals, reasons, triggers
        FROM users
        WHERE morning_time <> '' OR evening_time <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.UserProfile, error) {
	var (
		u          models.UserProfile
		createdAt  string
		lastSober  sql.NullString
		soberSince sql.NullString
		spend      sql.NullFloat64
		hours      sql.NullFloat64
		lastMorn   sql.NullString
		lastEve    sql.NullString
		onboarded  int
		state      string
		goals      string
		reasons    string
		triggers   string
	)
	err := s.Scan(&u.UserID, &createdAt, &u.Streak, &lastSober, &soberSince,
		&u.Goal, &u.Motivation, &spend, &hours,
		&u.MorningTime, &u.EveningTime, &lastMorn, &lastEve,
		&onboarded, &state, &goals, &reasons, &triggers)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, _ = time.Parse(tsLayout, createdAt)
	u.LastSoberDate = parseDate(lastSober)
	u.SoberSinceDate = parseDate(soberSince)
	u.LastMorningSentDate = parseDate(lastMorn)
	u.LastEveningSentDate = parseDate(lastEve)
	if spend.Valid {
		u.WeeklyAlcoholSpend = &spend.Float64
	}
	if hours.Valid {
		u.WeeklyAlcoholHours = &hours.Float64
	}
	u.OnboardingCompleted = onboarded != 0
	u.State = models.ConvState(state)
	u.Goals = parseList(goals)
	u.Reasons = parseList(reasons)
	u.Triggers = parseList(triggers)
	return &u, nil
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

// ---------- events ----------------------------------------------------------

func (d *DB) AppendEvent(userID int64, eventType string, payload map[string]any) error {
	var payloadJSON any
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = string(b)
	}
	_, err := d.Exec(`
        INSERT INTO events (id, user_id, created_at, event_type, payload)
        VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, time.Now().Format(tsLayout), eventType, payloadJSON)
	return err
}

func (d *DB) CountEventsByType(userID int64) (map[string]int, error) {
	rows, err := d.Query(`
        SELECT event_type, COUNT(*) FROM events
        WHERE user_id = ? GROUP BY event_type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}

func (d *DB) LatestEvent(userID int64, eventType string) (*models.Event, error) {
	events, err := d.ListRecent(userID, eventType, 1)
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

// ListRecent returns up to limit events of the given type, newest first.
func (d *DB) ListRecent(userID int64, eventType string, limit int) ([]models.Event, error) {
	rows, err := d.Query(`
        SELECT id, user_id, created_at, event_type, payload FROM events
        WHERE user_id = ? AND event_type = ?
        ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, eventType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Event
	for rows.Next() {
		var (
			e         models.Event
			createdAt string
			payload   sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &createdAt, &e.Type, &payload); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(tsLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("bad event timestamp %q: %w", createdAt, err)
		}
		if payload.Valid && payload.String != "" {
			if err := json.Unmarshal([]byte(payload.String), &e.Payload); err != nil {
				return nil, err
			}
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// DeleteEvents removes events of one type, or every event when eventType is
// empty. Individual events are never deleted.
func (d *DB) DeleteEvents(userID int64, eventType string) error {
	if eventType == "" {
		_, err := d.Exec(`DELETE FROM events WHERE user_id = ?`, userID)
		return err
	}
	_, err := d.Exec(`DELETE FROM events WHERE user_id = ? AND event_type = ?`, userID, eventType)
	return err
}
