package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"driftscope/domain/core"
	"driftscope/domain/drift"
	"driftscope/internal/errors"
	"driftscope/ports"
)

const reportSchema = `
CREATE TABLE IF NOT EXISTS drift_reports (
	id         TEXT PRIMARY KEY,
	bins       INTEGER NOT NULL,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// ReportRepositoryImpl implements ports.ReportRepository for PostgreSQL
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository connects to PostgreSQL and ensures the report table
// exists
func NewReportRepository(ctx context.Context, databaseURL string) (ports.ReportRepository, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, errors.StorageError("failed to connect to report store", err)
	}
	if _, err := db.ExecContext(ctx, reportSchema); err != nil {
		db.Close()
		return nil, errors.StorageError("failed to ensure report schema", err)
	}
	return &ReportRepositoryImpl{db: db}, nil
}

// reportRow is the storage shape of a report record. The payload travels as
// text so the driver casts it to jsonb instead of bytea.
type reportRow struct {
	ID        string    `db:"id"`
	Bins      int       `db:"bins"`
	Report    string    `db:"report"`
	CreatedAt time.Time `db:"created_at"`
}

func toRow(record *drift.ReportRecord) (*reportRow, error) {
	payload, err := json.Marshal(record.Report)
	if err != nil {
		return nil, errors.StorageError("failed to encode report payload", err)
	}
	return &reportRow{
		ID:        record.ID.String(),
		Bins:      record.Bins,
		Report:    string(payload),
		CreatedAt: record.CreatedAt,
	}, nil
}

func (row *reportRow) toRecord() (*drift.ReportRecord, error) {
	var report drift.DriftReport
	if err := json.Unmarshal([]byte(row.Report), &report); err != nil {
		return nil, errors.StorageError("failed to decode report payload", err)
	}
	return &drift.ReportRecord{
		ID:        core.ReportID(row.ID),
		Bins:      row.Bins,
		Report:    report,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Save stores a report record
func (r *ReportRepositoryImpl) Save(ctx context.Context, record *drift.ReportRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO drift_reports (id, bins, report, created_at)
		VALUES (:id, :bins, :report, :created_at)
	`, row)
	if err != nil {
		return errors.StorageError("failed to save drift report", err)
	}
	return nil
}

// GetByID retrieves a single report record
func (r *ReportRepositoryImpl) GetByID(ctx context.Context, id core.ReportID) (*drift.ReportRecord, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, bins, report, created_at
		FROM drift_reports
		WHERE id = $1
	`, id.String())
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.CodeStorageError, "drift report not found")
	}
	if err != nil {
		return nil, errors.StorageError("failed to load drift report", err)
	}
	return row.toRecord()
}

// ListRecent retrieves the most recently created report records
func (r *ReportRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*drift.ReportRecord, error) {
	if limit < 1 {
		limit = 10
	}
	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, bins, report, created_at
		FROM drift_reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.StorageError("failed to list drift reports", err)
	}

	records := make([]*drift.ReportRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
