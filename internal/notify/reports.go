package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProblemReport is a user-submitted misclassification or data problem,
// stored locally until it can be forwarded to council.
type ProblemReport struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Email       string
	Description string
}

// SaveReport stores a problem report and returns its generated id.
func (q *SQLiteQueue) SaveReport(ctx context.Context, name, email, description string) (string, error) {
	if description == "" {
		return "", fmt.Errorf("report description is required")
	}

	id := uuid.NewString()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO problem_reports (id, name, email, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, name, email, description, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to save problem report: %w", err)
	}
	return id, nil
}

// ListReports returns stored problem reports, newest first.
func (q *SQLiteQueue) ListReports(ctx context.Context) ([]ProblemReport, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, email, description, created_at
		FROM problem_reports
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list problem reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []ProblemReport
	for rows.Next() {
		var report ProblemReport
		var createdAt string
		if err := rows.Scan(&report.ID, &report.Name, &report.Email, &report.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan problem report: %w", err)
		}
		if report.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt created_at for report %s: %w", report.ID, err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate problem reports: %w", err)
	}

	return reports, nil
}
