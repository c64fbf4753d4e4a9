package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepository{db: db}
}

// GetByEmployeeAndDateRange implements request.Repository. Single-date
// requests match data->>'date'; ranged requests match on overlap of
// [start_date, end_date] with [startDate, endDate].
func (r *requestRepository) GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, status, data
		FROM requests
		WHERE employee_id = $1
		  AND (
			(data->>'date' >= $2 AND data->>'date' <= $3)
			OR (data->>'start_date' <= $3 AND data->>'end_date' >= $2)
		  )
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests by range: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// GetApprovedPermissions implements request.Repository.
func (r *requestRepository) GetApprovedPermissions(ctx context.Context, employeeID string, date string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, status, data
		FROM requests
		WHERE employee_id = $1
		  AND type = 'PERMISSION'
		  AND status = 'APPROVED'
		  AND data->>'date' = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved permissions: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]request.Request, error) {
	var requests []request.Request
	for rows.Next() {
		var req request.Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.Type, &req.Status, &req.Data); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
