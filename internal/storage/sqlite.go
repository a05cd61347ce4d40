package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage handles all database operations
type Storage struct {
	db *sql.DB
}

// NewStorage creates a new Storage instance, opening/creating the DB and initializing schema
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	storage := &Storage{db: db}

	// Initialize schema
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// initSchema creates tables and indices if they don't exist
func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audits (
		audit_id INTEGER PRIMARY KEY AUTOINCREMENT,
		base_url TEXT NOT NULL,
		mode TEXT NOT NULL,
		total_pages INTEGER DEFAULT 0,
		failed_pages INTEGER DEFAULT 0,
		average_score REAL DEFAULT 0,
		coverage_percent REAL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS page_results (
		result_id INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id INTEGER NOT NULL,
		url TEXT NOT NULL,
		level TEXT NOT NULL,
		success INTEGER NOT NULL,
		score INTEGER DEFAULT 0,
		analysis_time_ms INTEGER DEFAULT 0,
		error TEXT DEFAULT '',
		FOREIGN KEY (audit_id) REFERENCES audits(audit_id)
	);

	CREATE INDEX IF NOT EXISTS idx_audits_base_url ON audits(base_url);
	CREATE INDEX IF NOT EXISTS idx_page_results_audit ON page_results(audit_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun persists an audit run and its page rows in one transaction.
// Returns the new audit_id.
func (s *Storage) SaveRun(run AuditRun, pages []PageRow) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO audits (base_url, mode, total_pages, failed_pages, average_score, coverage_percent)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.BaseURL, run.Mode, run.TotalPages, run.FailedPages, run.AverageScore, run.CoveragePercent)
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit: %w", err)
	}

	auditID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve audit_id: %w", err)
	}

	for _, page := range pages {
		_, err := tx.Exec(`
			INSERT INTO page_results (audit_id, url, level, success, score, analysis_time_ms, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, auditID, page.URL, page.Level, page.Success, page.Score, page.AnalysisTimeMs, page.Error)
		if err != nil {
			return 0, fmt.Errorf("failed to insert page result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit audit: %w", err)
	}

	return int(auditID), nil
}

// ListRuns returns the most recent audit runs, newest first
func (s *Storage) ListRuns(limit int) ([]*AuditRun, error) {
	rows, err := s.db.Query(`
		SELECT audit_id, base_url, mode, total_pages, failed_pages, average_score, coverage_percent, created_at
		FROM audits
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*AuditRun
	for rows.Next() {
		var run AuditRun
		if err := rows.Scan(&run.AuditID, &run.BaseURL, &run.Mode, &run.TotalPages,
			&run.FailedPages, &run.AverageScore, &run.CoveragePercent, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetPageRows returns the per-page results of one audit run
func (s *Storage) GetPageRows(auditID int) ([]*PageRow, error) {
	rows, err := s.db.Query(`
		SELECT result_id, audit_id, url, level, success, score, analysis_time_ms, error
		FROM page_results
		WHERE audit_id = ?
		ORDER BY result_id ASC
	`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to get page results: %w", err)
	}
	defer rows.Close()

	var pages []*PageRow
	for rows.Next() {
		var page PageRow
		if err := rows.Scan(&page.ResultID, &page.AuditID, &page.URL, &page.Level,
			&page.Success, &page.Score, &page.AnalysisTimeMs, &page.Error); err != nil {
			return nil, fmt.Errorf("failed to scan page result: %w", err)
		}
		pages = append(pages, &page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page results: %w", err)
	}

	return pages, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}
