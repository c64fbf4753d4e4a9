package holiday

import "context"

// Repository is the holiday-calendar collaborator.
type Repository interface {
	// GetHolidayName returns the holiday name for the date, or empty string
	// when the date is not a holiday.
	GetHolidayName(ctx context.Context, date string) (string, error)

	// GetByDateRange returns holidays within [startDate, endDate] keyed by date.
	GetByDateRange(ctx context.Context, startDate, endDate string) (map[string]string, error)
}
