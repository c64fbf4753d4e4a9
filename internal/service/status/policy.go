package status

import (
	"fmt"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/config"
)

// Policy carries the attendance thresholds the classifier compares against,
// as minutes from midnight in the deployment timezone.
type Policy struct {
	WorkStartMinutes       int
	WorkEndMinutes         int
	LateGraceMinutes       int
	EarlyOutGraceMinutes   int
	HalfDayInBeforeMinutes int
	HalfDayOutAfterMinutes int
	WeekOff                time.Weekday
}

// PolicyFromConfig parses the HH:MM policy strings into a Policy.
func PolicyFromConfig(cfg config.PolicyConfig) (Policy, error) {
	workStart, err := parseClock(cfg.WorkStart)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid WORK_START: %w", err)
	}
	workEnd, err := parseClock(cfg.WorkEnd)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid WORK_END: %w", err)
	}
	halfIn, err := parseClock(cfg.HalfDayInBefore)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid HALF_DAY_IN_BEFORE: %w", err)
	}
	halfOut, err := parseClock(cfg.HalfDayOutAfter)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid HALF_DAY_OUT_AFTER: %w", err)
	}

	return Policy{
		WorkStartMinutes:       workStart,
		WorkEndMinutes:         workEnd,
		LateGraceMinutes:       cfg.LateGraceMinutes,
		EarlyOutGraceMinutes:   cfg.EarlyOutGraceMinutes,
		HalfDayInBeforeMinutes: halfIn,
		HalfDayOutAfterMinutes: halfOut,
		WeekOff:                time.Weekday(cfg.WeekOffWeekday),
	}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
