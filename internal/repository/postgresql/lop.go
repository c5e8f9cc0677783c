package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const lopColumns = `id, employee_id, marking_date, reason, created_at`

const insertLOP = `
	INSERT INTO lop_records (id, employee_id, marking_date, reason)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + lopColumns

type lopRepositoryImpl struct {
	db *database.DB
}

func scanLOP(row pgx.Row) (lop.LOPRecord, error) {
	var rec lop.LOPRecord
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.MarkingDate, &rec.Reason, &rec.CreatedAt)
	return rec, err
}

// Create implements lop.LOPRepository.
func (r *lopRepositoryImpl) Create(ctx context.Context, record lop.LOPRecord) (lop.LOPRecord, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanLOP(q.QueryRow(ctx, insertLOP, record.ID, record.EmployeeID, record.MarkingDate, record.Reason))
	if err != nil {
		return lop.LOPRecord{}, fmt.Errorf("failed to create LOP record: %w", err)
	}
	return created, nil
}

// CreateBatch implements lop.LOPRepository.
func (r *lopRepositoryImpl) CreateBatch(ctx context.Context, records []lop.LOPRecord) error {
	if len(records) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertLOP, rec.ID, rec.EmployeeID, rec.MarkingDate, rec.Reason)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert LOP batch: %w", err)
		}
	}
	return nil
}

// ExistsForDate implements lop.LOPRepository.
func (r *lopRepositoryImpl) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM lop_records WHERE employee_id = $1 AND marking_date = $2)`,
		employeeID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check LOP record: %w", err)
	}
	return exists, nil
}

// ListByDateRange implements lop.LOPRepository.
func (r *lopRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]lop.LOPRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lopColumns + ` FROM lop_records WHERE marking_date BETWEEN $1 AND $2 ORDER BY marking_date, employee_id`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list LOP records: %w", err)
	}
	return collectLOPs(rows)
}

// ListByEmployeeAndRange implements lop.LOPRepository.
func (r *lopRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]lop.LOPRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lopColumns + ` FROM lop_records WHERE employee_id = $1 AND marking_date BETWEEN $2 AND $3 ORDER BY marking_date`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list LOP records for employee: %w", err)
	}
	return collectLOPs(rows)
}

func collectLOPs(rows pgx.Rows) ([]lop.LOPRecord, error) {
	defer rows.Close()

	var records []lop.LOPRecord
	for rows.Next() {
		rec, err := scanLOP(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func NewLOPRepository(db *database.DB) lop.LOPRepository {
	return &lopRepositoryImpl{db: db}
}
