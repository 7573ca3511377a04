// Package oracle implements the storage contract against Oracle. Most
// operations go through stored procedures created at Init time; gets and
// lists receive a SYS_REFCURSOR that is drained into generic rows and mapped
// field by field. Reviews and the verification/reset token lookups run as
// plain parameterized queries against the tables.
package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"

	"farmstand/internal/domain/storage"
)

type Store struct {
	url     string
	timeout time.Duration
	db      *sql.DB
}

func New(url string, timeout time.Duration) storage.Storage {
	return &Store{url: url, timeout: timeout}
}

func (s *Store) Init(ctx context.Context) error {
	if s.url == "" {
		return fmt.Errorf("oracle: ORACLE_URL is not set")
	}

	db, err := sql.Open("oracle", s.url)
	if err != nil {
		return fmt.Errorf("oracle: open: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("oracle: ping: %w", err)
	}

	// Setup must fully succeed before the store serves anything; a missing
	// procedure discovered mid-request would be a silent partial failure.
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("oracle: migrate: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func (s *Store) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, storage.ErrUnavailable
	}
	return s.db, nil
}

// queryCursor calls a procedure whose last parameter is an OUT SYS_REFCURSOR
// and drains the cursor into generic rows.
func (s *Store) queryCursor(ctx context.Context, stmt string, args ...interface{}) ([]row, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var cursor go_ora.RefCursor
	args = append(args, sql.Named("p_cur", sql.Out{Dest: &cursor}))
	if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, translate(err)
	}

	rows, err := go_ora.WrapRefCursor(ctx, db, &cursor)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	return drainRows(rows)
}

// queryCursorOne expects at most one row from the cursor.
func (s *Store) queryCursorOne(ctx context.Context, stmt string, args ...interface{}) (row, error) {
	rows, err := s.queryCursor(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0], nil
}

// queryRows runs a plain parameterized query for the handful of lookups that
// have no procedure (token lookups, reviews).
func (s *Store) queryRows(ctx context.Context, query string, args ...interface{}) ([]row, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	return drainRows(rows)
}

func (s *Store) queryRowOne(ctx context.Context, query string, args ...interface{}) (row, error) {
	rows, err := s.queryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0], nil
}

// callCreate calls a procedure whose last parameter is the generated id,
// bound as an output parameter. The caller follows up with a get to return
// the hydrated entity.
func (s *Store) callCreate(ctx context.Context, stmt string, args ...interface{}) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	var id int64
	args = append(args, sql.Named("p_id", sql.Out{Dest: &id}))
	if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (s *Store) callExec(ctx context.Context, stmt string, args ...interface{}) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
		return translate(err)
	}
	return nil
}

// callDelete calls a procedure with an OUT rowcount and reports whether a
// row was removed.
func (s *Store) callDelete(ctx context.Context, stmt string, args ...interface{}) (bool, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	db, err := s.conn()
	if err != nil {
		return false, err
	}

	var deleted int64
	args = append(args, sql.Named("p_deleted", sql.Out{Dest: &deleted}))
	if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
		return false, translate(err)
	}
	return deleted > 0, nil
}

// Oracle error codes worth distinguishing: ORA-00001 unique constraint,
// ORA-02291 parent key not found, ORA-02292 child record found, ORA-02290
// check constraint.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case isOraCode(err, "ORA-00001", "ORA-02291", "ORA-02292", "ORA-02290"):
		return storage.ErrConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
}

func isOraCode(err error, codes ...string) bool {
	msg := err.Error()
	for _, code := range codes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}
