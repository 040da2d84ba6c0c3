// Package sqlite implements the storage port on a single-table SQLite
// database. The schema is created by embedded goose migrations.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/maru/gestor/internal/model"
	"github.com/maru/gestor/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps the SQL database connection.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
// Any failure here surfaces as an UnavailableError; individual operations
// assume a healthy backend afterwards.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &store.UnavailableError{Backend: "sqlite", Err: fmt.Errorf("create data directory: %w", err)}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &store.UnavailableError{Backend: "sqlite", Err: fmt.Errorf("open database: %w", err)}
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &store.UnavailableError{Backend: "sqlite", Err: fmt.Errorf("connect: %w", err)}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, &store.UnavailableError{Backend: "sqlite", Err: err}
	}

	return s, nil
}

// migrate runs database migrations using the embedded SQL files.
func (s *Store) migrate() error {
	// Silence goose logging (it corrupts TUI output)
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// transaction executes fn within a transaction, rolling back on any error.
func (s *Store) transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *Store) Create(ctx context.Context, title, description string) (*model.Task, error) {
	if err := store.ValidateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	var t *model.Task
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (title, description, completed, created_at)
			VALUES (?, ?, 0, ?)
		`, title, description, now.Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t = &model.Task{
			ID:          id,
			Title:       title,
			Description: description,
			CreatedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, completed, created_at
		FROM tasks WHERE id = ?
	`, id)
	return scanTask(row)
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, completed, created_at
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *Store) Update(ctx context.Context, id int64, patch store.TaskPatch) (*model.Task, error) {
	var t *model.Task
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT id, title, description, completed, created_at
			FROM tasks WHERE id = ?
		`, id)
		cur, err := scanTask(row)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			cur.Title = *patch.Title
		}
		if patch.Description != nil {
			cur.Description = *patch.Description
		}
		if err := store.ValidateTitle(cur.Title); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE tasks SET title = ?, description = ? WHERE id = ?
		`, cur.Title, cur.Description, id)
		if err != nil {
			return err
		}
		t = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *Store) MarkCompleted(ctx context.Context, id int64) (*model.Task, error) {
	var t *model.Task
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE tasks SET completed = 1 WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound
		}

		row := tx.QueryRowContext(ctx, `
			SELECT id, title, description, completed, created_at
			FROM tasks WHERE id = ?
		`, id)
		t, err = scanTask(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (*model.Task, error) {
	var t model.Task
	var description *string
	var completed int
	var createdAt string

	err := s.Scan(&t.ID, &t.Title, &description, &completed, &createdAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if description != nil {
		t.Description = *description
	}
	t.Completed = completed == 1
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		t.CreatedAt = parsed
	}

	return &t, nil
}
