package oracle

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"farmstand/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrate creates the tables once and (re)creates the stored procedures on
// every startup. Any failure aborts Init; the store never runs with half a
// schema.
func migrate(ctx context.Context, db *sql.DB) error {
	var tables int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_tables WHERE table_name = 'FARM_USERS'").Scan(&tables)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}

	if tables == 0 {
		logger.Info("oracle: creating schema")
		if err := runScript(ctx, db, "migrations/schema.sql"); err != nil {
			return err
		}
	}

	return runScript(ctx, db, "migrations/procs.sql")
}

func runScript(ctx context.Context, db *sql.DB, name string) error {
	script, err := migrationFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	for i, stmt := range splitStatements(string(script)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s statement %d: %w", name, i+1, err)
		}
	}
	return nil
}

// splitStatements splits a script on the SQL*Plus convention of a slash
// alone on its own line.
func splitStatements(script string) []string {
	var stmts []string
	var current []string
	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) == "/" {
			stmt := strings.TrimSpace(strings.Join(current, "\n"))
			if stmt != "" {
				stmts = append(stmts, stmt)
			}
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	if stmt := strings.TrimSpace(strings.Join(current, "\n")); stmt != "" {
		stmts = append(stmts, stmt)
	}
	return stmts
}
