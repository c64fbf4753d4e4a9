// Package status holds the daily attendance status classifier: a pure
// function reconciling the day's raw signals (sessions, leave, permission,
// holiday, week-off) into one composite status. It performs no I/O and is
// recomputed on every report request, never cached.
package status

import (
	"fmt"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
)

// DaySessions is the pre-reduced attendance signal for one day: the first
// check-in across all of the day's records and the checkout of the last
// record, sorted by check-in ascending. A nil value means no attendance.
type DaySessions struct {
	CheckIn  time.Time
	CheckOut *time.Time
}

// Inputs are one (employee, day) worth of signals.
type Inputs struct {
	Attendance  *DaySessions
	Leave       *request.Request // LEAVE request covering the date, any status
	Permission  *request.Request // PERMISSION request covering the date
	HolidayName string           // empty when the date is not a holiday
	Date        time.Time        // local date; weekday drives the week-off rule
	Policy      Policy
}

// DayStatus is the classifier output: an exact tag set plus a stable
// human-readable label composed from it.
type DayStatus struct {
	Tags    TagSet `json:"tags"`
	Label   string `json:"status"`
	Remarks string `json:"remarks"`
	Times   Times  `json:"times"`
}

type Times struct {
	In  *string `json:"in"`
	Out *string `json:"out"`
}

// Classify reconciles one day's signals into a composite status.
// Deterministic: same inputs always produce the same output.
func Classify(in Inputs) DayStatus {
	tags := NewTagSet()
	var parts []string
	var remarks []string

	if in.Attendance != nil {
		parts = append(parts, classifyPresent(in, tags, &remarks)...)
	} else {
		parts = append(parts, classifyAbsentFamily(in, tags, &remarks)...)
	}

	// Permission is additive and independent of attendance or leave.
	if in.Permission != nil {
		tags.Add(TagPermission)
		parts = append(parts, string(TagPermission))
	}

	return DayStatus{
		Tags:    tags,
		Label:   joinLabel(parts),
		Remarks: joinLabel(remarks),
		Times:   timesOf(in.Attendance),
	}
}

// classifyPresent handles days with at least one session.
func classifyPresent(in Inputs, tags TagSet, remarks *[]string) []string {
	base := TagPresent
	tags.Add(TagPresent)

	if in.Leave != nil {
		switch in.Leave.Status {
		case request.StatusApproved:
			base = TagPresentOnLeave
			tags.Add(TagPresentOnLeave)
		case request.StatusPending:
			base = TagPresentLeavePending
			tags.Add(TagPresentLeavePending)
		}
	}
	parts := []string{string(base)}

	p := in.Policy
	inMins := minutesOfDay(in.Attendance.CheckIn)

	// Arriving after the half-day cutoff outranks a plain late mark.
	if inMins >= p.HalfDayInBeforeMinutes {
		tags.Add(TagHalfDayIn)
		parts = append(parts, string(TagHalfDayIn))
	} else if inMins > p.WorkStartMinutes+p.LateGraceMinutes {
		tags.Add(TagLateIn)
		parts = append(parts, string(TagLateIn))
		*remarks = append(*remarks, fmt.Sprintf("checked in %dm after %02d:%02d",
			inMins-p.WorkStartMinutes, p.WorkStartMinutes/60, p.WorkStartMinutes%60))
	}

	if in.Attendance.CheckOut != nil {
		outMins := minutesOfDay(*in.Attendance.CheckOut)
		// A checkout on a later calendar day is never early.
		sameDay := in.Attendance.CheckOut.Format("2006-01-02") == in.Attendance.CheckIn.Format("2006-01-02")
		if sameDay && outMins <= p.HalfDayOutAfterMinutes {
			tags.Add(TagHalfDayOut)
			parts = append(parts, string(TagHalfDayOut))
		} else if sameDay && outMins < p.WorkEndMinutes-p.EarlyOutGraceMinutes {
			tags.Add(TagEarlyOut)
			parts = append(parts, string(TagEarlyOut))
			*remarks = append(*remarks, fmt.Sprintf("checked out %dm before %02d:%02d",
				p.WorkEndMinutes-outMins, p.WorkEndMinutes/60, p.WorkEndMinutes%60))
		}
	}

	if in.HolidayName != "" {
		*remarks = append(*remarks, "worked on "+in.HolidayName)
	}

	return parts
}

// classifyAbsentFamily handles days with no session: leave beats holiday,
// holiday beats week-off, week-off beats absent.
func classifyAbsentFamily(in Inputs, tags TagSet, remarks *[]string) []string {
	if in.Leave != nil {
		tags.Add(TagLeave)
		label := in.Leave.Data.LeaveType
		if label == "" {
			label = string(TagLeave)
		}
		switch in.Leave.Status {
		case request.StatusPending:
			label += " (Pending)"
			*remarks = append(*remarks, "leave awaiting approval")
		case request.StatusRejected:
			label += " (Rejected)"
			*remarks = append(*remarks, "leave was rejected")
		}
		return []string{label}
	}

	if in.HolidayName != "" {
		tags.Add(TagHoliday)
		*remarks = append(*remarks, in.HolidayName)
		return []string{in.HolidayName}
	}

	if in.Date.Weekday() == in.Policy.WeekOff {
		tags.Add(TagWeekOff)
		return []string{string(TagWeekOff)}
	}

	tags.Add(TagAbsent)
	return []string{string(TagAbsent)}
}

func timesOf(a *DaySessions) Times {
	if a == nil {
		return Times{}
	}
	in := a.CheckIn.Format("15:04")
	t := Times{In: &in}
	if a.CheckOut != nil {
		out := a.CheckOut.Format("15:04")
		t.Out = &out
	}
	return t
}
