package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"casex/internal/config"
	"casex/internal/domain"
)

// Tables created by Migrate
const (
	RunsTable     = "casex_runs"
	FailuresTable = "casex_failures"
)

var schema = []struct {
	object string
	ddl    string
}{
	{RunsTable, `CREATE TABLE IF NOT EXISTS casex_runs (
	run_id CHAR(36) NOT NULL PRIMARY KEY,
	total_fixtures INT NOT NULL,
	total_cases INT NOT NULL,
	passed_cases INT NOT NULL,
	failed_cases INT NOT NULL,
	errored_cases INT NOT NULL,
	duration VARCHAR(64) NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	workers INT NOT NULL,
	timestamp VARCHAR(64) NOT NULL,
	created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
)`},
	{FailuresTable, `CREATE TABLE IF NOT EXISTS casex_failures (
	run_id CHAR(36) NOT NULL,
	position INT NOT NULL,
	test_name VARCHAR(255) NOT NULL,
	file_path VARCHAR(1024) NOT NULL,
	method VARCHAR(255) NOT NULL,
	set_index INT NOT NULL,
	outcome VARCHAR(16) NOT NULL,
	error_details TEXT NOT NULL,
	stack_trace TEXT NOT NULL,
	file VARCHAR(1024) NOT NULL,
	line INT NOT NULL,
	message TEXT NOT NULL,
	resolved BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (run_id, position),
	CONSTRAINT fk_casex_failures_run FOREIGN KEY (run_id) REFERENCES casex_runs (run_id) ON DELETE CASCADE
)`},
}

// ErrNoRuns is returned by Load when the store holds no runs yet.
var ErrNoRuns = errors.New("no runs stored")

// MySQLStorage stores results in a MySQL database
type MySQLStorage struct {
	cfg *config.Config
	db  *sql.DB
}

// OpenMySQL opens the results database named in cfg. The schema must exist;
// see Migrate.
func OpenMySQL(cfg *config.Config) (*MySQLStorage, error) {
	if !isValidDatabaseName(cfg.Database.Name) {
		return nil, fmt.Errorf("invalid database name: %s", cfg.Database.Name)
	}
	db, err := sql.Open("mysql", cfg.DSN(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &MySQLStorage{cfg: cfg, db: db}, nil
}

// Close releases the database handle
func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the results database and its tables if they don't exist.
// It reports one result per object and stops at the first failure.
func Migrate(ctx context.Context, cfg *config.Config) ([]domain.MigrationResult, error) {
	dbName := cfg.Database.Name
	if !isValidDatabaseName(dbName) {
		return nil, fmt.Errorf("invalid database name: %s", dbName)
	}

	// Connect to MySQL server (without specifying database)
	server, err := sql.Open("mysql", cfg.DSN(false))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()

	if err := server.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	var results []domain.MigrationResult
	_, err = server.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName))
	results = append(results, domain.MigrationResult{Object: dbName, Success: err == nil, Error: err})
	if err != nil {
		return results, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}

	db, err := sql.Open("mysql", cfg.DSN(true))
	if err != nil {
		return results, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		_, err := db.ExecContext(ctx, stmt.ddl)
		results = append(results, domain.MigrationResult{Object: stmt.object, Success: err == nil, Error: err})
		if err != nil {
			return results, fmt.Errorf("failed to create table %s: %w", stmt.object, err)
		}
	}
	return results, nil
}

// Save records a run and its failures.
func (s *MySQLStorage) Save(results []domain.CaseResult, failures []domain.TestFailure, duration time.Duration, workers int) error {
	return s.SaveOutput(BuildOutput(results, failures, duration, workers))
}

// SaveOutput upserts the run row and replaces its failures in one transaction.
func (s *MySQLStorage) SaveOutput(output *domain.TestResultsOutput) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := output.Meta
	_, err = tx.ExecContext(ctx, `INSERT INTO casex_runs
	(run_id, total_fixtures, total_cases, passed_cases, failed_cases, errored_cases, duration, duration_seconds, workers, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE total_fixtures = VALUES(total_fixtures), total_cases = VALUES(total_cases),
	passed_cases = VALUES(passed_cases), failed_cases = VALUES(failed_cases), errored_cases = VALUES(errored_cases),
	duration = VALUES(duration), duration_seconds = VALUES(duration_seconds), workers = VALUES(workers), timestamp = VALUES(timestamp)`,
		m.RunID, m.TotalFixtures, m.TotalCases, m.PassedCases, m.FailedCases, m.ErroredCases,
		m.Duration, m.DurationSeconds, m.Workers, m.Timestamp)
	if err != nil {
		return fmt.Errorf("save run %s: %w", m.RunID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM casex_failures WHERE run_id = ?", m.RunID); err != nil {
		return fmt.Errorf("clear failures of run %s: %w", m.RunID, err)
	}

	for i, f := range output.Details {
		trace, err := json.Marshal(f.StackTrace)
		if err != nil {
			return fmt.Errorf("marshal stack trace: %w", err)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO casex_failures
	(run_id, position, test_name, file_path, method, set_index, outcome, error_details, stack_trace, file, line, message, resolved)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.RunID, i, f.TestName, f.FilePath, f.Method, f.SetIndex, f.Outcome.String(),
			f.ErrorDetails, string(trace), f.File, f.Line, f.Message, f.Resolved)
		if err != nil {
			return fmt.Errorf("save failure %s: %w", f.TestName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", m.RunID, err)
	}
	return nil
}

// Load returns the most recent run and its failures.
func (s *MySQLStorage) Load() (*domain.TestResultsOutput, error) {
	ctx := context.Background()
	var m domain.TestResultsMeta
	err := s.db.QueryRowContext(ctx, `SELECT run_id, total_fixtures, total_cases, passed_cases, failed_cases,
	errored_cases, duration, duration_seconds, workers, timestamp
	FROM casex_runs ORDER BY created_at DESC LIMIT 1`).Scan(
		&m.RunID, &m.TotalFixtures, &m.TotalCases, &m.PassedCases, &m.FailedCases,
		&m.ErroredCases, &m.Duration, &m.DurationSeconds, &m.Workers, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("load last run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT test_name, file_path, method, set_index, outcome,
	error_details, stack_trace, file, line, message, resolved
	FROM casex_failures WHERE run_id = ? ORDER BY position`, m.RunID)
	if err != nil {
		return nil, fmt.Errorf("load failures of run %s: %w", m.RunID, err)
	}
	defer rows.Close()

	output := &domain.TestResultsOutput{Meta: m, Details: []domain.TestFailure{}}
	for rows.Next() {
		var f domain.TestFailure
		var outcome, trace string
		if err := rows.Scan(&f.TestName, &f.FilePath, &f.Method, &f.SetIndex, &outcome,
			&f.ErrorDetails, &trace, &f.File, &f.Line, &f.Message, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		if f.Outcome, err = domain.ParseOutcome(outcome); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(trace), &f.StackTrace); err != nil {
			return nil, fmt.Errorf("parse stack trace of %s: %w", f.TestName, err)
		}
		output.Details = append(output.Details, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read failures: %w", err)
	}
	return output, nil
}

// isValidDatabaseName accepts unquoted MySQL identifiers only
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		default:
			return false
		}
	}
	// Reject names MySQL would read as a number
	return strings.Trim(name, "0123456789") != ""
}
