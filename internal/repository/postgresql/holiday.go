package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kiranastores/attendance-backend-go/internal/domain/holiday"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// GetHolidayName implements holiday.Repository.
func (r *holidayRepository) GetHolidayName(ctx context.Context, date string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var name string
	err := q.QueryRow(ctx, `SELECT name FROM holidays WHERE date = $1`, date).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get holiday: %w", err)
	}

	return name, nil
}

// GetByDateRange implements holiday.Repository.
func (r *holidayRepository) GetByDateRange(ctx context.Context, startDate, endDate string) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD'), name
		FROM holidays
		WHERE date >= $1 AND date <= $2
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make(map[string]string)
	for rows.Next() {
		var date, name string
		if err := rows.Scan(&date, &name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays[date] = name
	}

	return holidays, rows.Err()
}
