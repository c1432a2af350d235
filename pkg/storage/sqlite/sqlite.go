package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/gofrs/flock"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/storage"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const memoryPath = ":memory:"

var _ storage.Storage = (*SQLite)(nil)

type SQLite struct {
	db   *sql.DB
	lock *flock.Flock
	fs   afero.Fs
}

// Option configures optional SQLite behavior
type Option func(*SQLite)

// WithFs sets the filesystem used to check whether episode files still exist
func WithFs(fs afero.Fs) Option {
	return func(s *SQLite) {
		s.fs = fs
	}
}

// New opens the sqlite database at filePath, takes the process lock next to it and applies pending migrations.
// A database that is already held by another process returns storage.ErrStoreLocked.
func New(ctx context.Context, filePath string, opts ...Option) (*SQLite, error) {
	s := &SQLite{
		fs: afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if filePath != memoryPath {
		s.lock = flock.New(filePath + ".lock")
		locked, err := s.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire store lock: %w", err)
		}
		if !locked {
			return nil, storage.ErrStoreLocked
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", filePath))
	if err != nil {
		s.unlock()
		return nil, err
	}
	// one owner, one connection; this also keeps an in-memory database alive across calls
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.RunMigrations(ctx); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// RunMigrations creates or upgrades the schema
func (s *SQLite) RunMigrations(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if err := runMigrations(s.db); err != nil {
		log.Debug("failed to run migrations", zap.Error(err))
		return err
	}

	return nil
}

// Close releases the database and the process lock
func (s *SQLite) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
	}

	return errors.Join(err, s.unlock())
}

func (s *SQLite) unlock() error {
	if s.lock == nil {
		return nil
	}

	return s.lock.Unlock()
}

func (s *SQLite) handleInsert(ctx context.Context, stmt sqlite.InsertStatement) (sql.Result, error) {
	return s.handleStatement(ctx, stmt)
}

func (s *SQLite) handleDelete(ctx context.Context, stmt sqlite.DeleteStatement) (sql.Result, error) {
	return s.handleStatement(ctx, stmt)
}

func (s *SQLite) handleStatement(ctx context.Context, stmt sqlite.Statement) (sql.Result, error) {
	log := logger.FromCtx(ctx)
	var result sql.Result

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debug("failed to init transaction", zap.Error(err))
		return result, err
	}

	result, err = stmt.ExecContext(ctx, tx)
	if err != nil {
		log.Debug("failed to execute statement", zap.String("query", stmt.DebugSql()), zap.Error(err))
		tx.Rollback()
		return result, translateError(err)
	}

	return result, tx.Commit()
}

// translateError maps sqlite constraint failures onto storage errors
func translateError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %s", storage.ErrNotFound, sqliteErr.Error())
	default:
		return fmt.Errorf("%w: %s", storage.ErrConstraintViolation, sqliteErr.Error())
	}
}
