package status

import (
	"testing"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
	"github.com/stretchr/testify/assert"
)

func testPolicy() Policy {
	return Policy{
		WorkStartMinutes:       9 * 60,
		WorkEndMinutes:         18 * 60,
		LateGraceMinutes:       0,
		EarlyOutGraceMinutes:   0,
		HalfDayInBeforeMinutes: 13 * 60,
		HalfDayOutAfterMinutes: 13 * 60,
		WeekOff:                time.Sunday,
	}
}

// day returns a known Monday (2025-06-02).
func day() time.Time {
	return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour, min int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, d.Location())
}

func TestClassify_NoSignals_Absent(t *testing.T) {
	ds := Classify(Inputs{Date: day(), Policy: testPolicy()})

	assert.True(t, ds.Tags.Has(TagAbsent))
	assert.False(t, ds.Tags.Has(TagPresent))
	assert.False(t, ds.Tags.Has(TagWeekOff))
	assert.Equal(t, "Absent", ds.Label)
	assert.Nil(t, ds.Times.In)
}

func TestClassify_PresentAndLateIn(t *testing.T) {
	out := at(day(), 18, 0)
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 5), CheckOut: &out},
		Date:       day(),
		Policy:     testPolicy(),
	})

	assert.True(t, ds.Tags.Has(TagPresent))
	assert.True(t, ds.Tags.Has(TagLateIn))
	assert.False(t, ds.Tags.Has(TagEarlyOut))
	assert.Equal(t, "Present, Late in", ds.Label)
	assert.Equal(t, "09:05", *ds.Times.In)
	assert.Equal(t, "18:00", *ds.Times.Out)
}

func TestClassify_OnTimeNotLate(t *testing.T) {
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0)},
		Date:       day(),
		Policy:     testPolicy(),
	})

	assert.True(t, ds.Tags.Has(TagPresent))
	assert.False(t, ds.Tags.Has(TagLateIn))
}

func TestClassify_LateGraceSuppressesLateIn(t *testing.T) {
	p := testPolicy()
	p.LateGraceMinutes = 10
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 8)},
		Date:       day(),
		Policy:     p,
	})

	assert.False(t, ds.Tags.Has(TagLateIn))
}

func TestClassify_EarlyOut(t *testing.T) {
	out := at(day(), 16, 30)
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0), CheckOut: &out},
		Date:       day(),
		Policy:     testPolicy(),
	})

	assert.True(t, ds.Tags.Has(TagEarlyOut))
	assert.Contains(t, ds.Remarks, "checked out 90m before 18:00")
}

func TestClassify_HalfDayVariants(t *testing.T) {
	out := at(day(), 12, 30)
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 14, 0)},
		Date:       day(),
		Policy:     testPolicy(),
	})
	assert.True(t, ds.Tags.Has(TagHalfDayIn))
	assert.False(t, ds.Tags.Has(TagLateIn), "half day in outranks late in")

	ds = Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0), CheckOut: &out},
		Date:       day(),
		Policy:     testPolicy(),
	})
	assert.True(t, ds.Tags.Has(TagHalfDayOut))
	assert.False(t, ds.Tags.Has(TagEarlyOut), "half day out outranks early out")
}

func TestClassify_MidnightCheckoutNotEarlyOut(t *testing.T) {
	// Checkout on the next calendar day (forgotten checkout closed at 00:30).
	out := at(day().AddDate(0, 0, 1), 0, 30)
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0), CheckOut: &out},
		Date:       day(),
		Policy:     testPolicy(),
	})

	assert.False(t, ds.Tags.Has(TagEarlyOut))
	assert.False(t, ds.Tags.Has(TagHalfDayOut))
}

func TestClassify_PresentOnLeave(t *testing.T) {
	leave := &request.Request{
		Type:   request.TypeLeave,
		Status: request.StatusApproved,
		Data:   request.Payload{LeaveType: "Casual Leave", Date: "2025-06-02"},
	}
	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0)},
		Leave:      leave,
		Date:       day(),
		Policy:     testPolicy(),
	})

	assert.True(t, ds.Tags.Has(TagPresent))
	assert.True(t, ds.Tags.Has(TagPresentOnLeave))
	assert.Equal(t, "Present (On Leave)", ds.Label)

	leave.Status = request.StatusPending
	ds = Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0)},
		Leave:      leave,
		Date:       day(),
		Policy:     testPolicy(),
	})
	assert.True(t, ds.Tags.Has(TagPresentLeavePending))
	assert.Equal(t, "Present (Leave Pending)", ds.Label)
}

func TestClassify_LeaveWithoutAttendance(t *testing.T) {
	cases := []struct {
		status request.Status
		label  string
	}{
		{request.StatusApproved, "Sick Leave"},
		{request.StatusPending, "Sick Leave (Pending)"},
		{request.StatusRejected, "Sick Leave (Rejected)"},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			ds := Classify(Inputs{
				Leave: &request.Request{
					Type:   request.TypeLeave,
					Status: tc.status,
					Data:   request.Payload{LeaveType: "Sick Leave", Date: "2025-06-02"},
				},
				Date:   day(),
				Policy: testPolicy(),
			})

			assert.True(t, ds.Tags.Has(TagLeave))
			assert.False(t, ds.Tags.Has(TagAbsent))
			assert.Equal(t, tc.label, ds.Label)
		})
	}
}

func TestClassify_WeekOff(t *testing.T) {
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := Classify(Inputs{Date: sunday, Policy: testPolicy()})

	assert.True(t, ds.Tags.Has(TagWeekOff))
	assert.False(t, ds.Tags.Has(TagAbsent))
	assert.Equal(t, "Week off", ds.Label)
}

func TestClassify_HolidayBeatsWeekOff(t *testing.T) {
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := Classify(Inputs{Date: sunday, HolidayName: "Founders Day", Policy: testPolicy()})

	assert.True(t, ds.Tags.Has(TagHoliday))
	assert.False(t, ds.Tags.Has(TagWeekOff))
	assert.False(t, ds.Tags.Has(TagAbsent))
	assert.Equal(t, "Founders Day", ds.Label)
}

func TestClassify_PermissionIsAdditive(t *testing.T) {
	perm := &request.Request{
		Type:   request.TypePermission,
		Status: request.StatusApproved,
		Data:   request.Payload{Date: "2025-06-02", Duration: 60},
	}

	ds := Classify(Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 0)},
		Permission: perm,
		Date:       day(),
		Policy:     testPolicy(),
	})
	assert.True(t, ds.Tags.Has(TagPresent))
	assert.True(t, ds.Tags.Has(TagPermission))
	assert.Equal(t, "Present, Permission in", ds.Label)

	// Also additive on a day with no attendance.
	ds = Classify(Inputs{Permission: perm, Date: day(), Policy: testPolicy()})
	assert.True(t, ds.Tags.Has(TagAbsent))
	assert.True(t, ds.Tags.Has(TagPermission))
}

func TestClassify_Deterministic(t *testing.T) {
	in := Inputs{
		Attendance: &DaySessions{CheckIn: at(day(), 9, 30)},
		Date:       day(),
		Policy:     testPolicy(),
	}
	first := Classify(in)
	second := Classify(in)
	assert.Equal(t, first, second)
}
