// Package journal keeps a session-scoped SQLite log of the intents
// dispatched to the task store.
package journal

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tasklist/internal/todo"
)

type Entry struct {
	ID          int
	At          time.Time
	Action      todo.Action
	TaskID      string
	Description string
	Filter      todo.Filter
	Applied     bool
}

type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the journal database at path. An empty path opens a private
// in-memory database that disappears with the process.
func Open(path string) (*Journal, error) {
	dsn := ":memory:"
	switch {
	case path == "":
	case strings.HasPrefix(path, "file:"):
		dsn = path
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
		dsn = fileDSN(path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps the in-memory database alive for the session.
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, now: time.Now}
	if err := j.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at TEXT NOT NULL,
	action TEXT NOT NULL,
	task_id TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	filter TEXT NOT NULL DEFAULT '',
	applied INTEGER NOT NULL DEFAULT 0
);`
	_, err := j.db.Exec(ddl)
	return err
}

func (j *Journal) Record(ev todo.Event) error {
	applied := 0
	if ev.Applied {
		applied = 1
	}
	at := j.now().UTC().Format(time.RFC3339Nano)
	_, err := j.db.Exec(`INSERT INTO entries (at, action, task_id, description, filter, applied) VALUES (?, ?, ?, ?, ?, ?);`,
		at, string(ev.Action), ev.TaskID, ev.Description, string(ev.Filter), applied)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := j.db.Query(`SELECT id, at, action, task_id, description, filter, applied FROM entries ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var atStr, action, filter string
		var applied int
		if err := rows.Scan(&e.ID, &atStr, &action, &e.TaskID, &e.Description, &filter, &applied); err != nil {
			return nil, err
		}
		e.Action = todo.Action(action)
		e.Filter = todo.Filter(filter)
		e.Applied = applied == 1
		if at, err := time.Parse(time.RFC3339Nano, atStr); err == nil {
			e.At = at
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (j *Journal) Count() (int, error) {
	var n int
	err := j.db.QueryRow(`SELECT COUNT(*) FROM entries;`).Scan(&n)
	return n, err
}

// fileDSN turns a journal path into an absolute read-write-create URL.
func fileDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	params := url.Values{
		"mode":    {"rwc"},
		"_pragma": {"busy_timeout(5000)"},
	}
	return (&url.URL{Scheme: "file", Path: path, RawQuery: params.Encode()}).String()
}
