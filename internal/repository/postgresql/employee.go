package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, name, department, branch_id, work_mode,
	is_tracking, last_latitude, last_longitude, last_ping_time,
	tracking_start_time, tracking_end_time,
	is_inside_geofence, outside_geofence_count,
	created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Department, &emp.BranchID, &emp.WorkMode,
		&emp.Tracking.IsTracking, &emp.Tracking.LastLatitude, &emp.Tracking.LastLongitude, &emp.Tracking.LastPingTime,
		&emp.Tracking.TrackingStartTime, &emp.Tracking.TrackingEndTime,
		&emp.Tracking.IsInsideGeofence, &emp.Tracking.OutsideGeofenceCount,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// UpdateTracking implements employee.Repository.
func (r *employeeRepository) UpdateTracking(ctx context.Context, id string, state employee.TrackingState) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_tracking = $2,
		    last_latitude = $3,
		    last_longitude = $4,
		    last_ping_time = $5,
		    tracking_start_time = $6,
		    tracking_end_time = $7,
		    is_inside_geofence = $8,
		    outside_geofence_count = $9,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		id,
		state.IsTracking,
		state.LastLatitude,
		state.LastLongitude,
		state.LastPingTime,
		state.TrackingStartTime,
		state.TrackingEndTime,
		state.IsInsideGeofence,
		state.OutsideGeofenceCount,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update tracking state: %w", err)
	}

	return nil
}

// ListActive implements employee.Repository.
func (r *employeeRepository) ListActive(ctx context.Context, branchID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE deleted_at IS NULL`
	args := []interface{}{}
	if branchID != nil && *branchID != "" {
		query += " AND branch_id = $1"
		args = append(args, *branchID)
	}
	query += " ORDER BY name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListTracking implements employee.Repository.
func (r *employeeRepository) ListTracking(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_tracking = TRUE AND deleted_at IS NULL`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
