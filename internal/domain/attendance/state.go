package attendance

// SessionState is the per-employee state reconstructed from the tracking flag
// and the latest open session. It is computed once per operation and then
// dispatched on, so the reconciliation rules stay exhaustive.
type SessionState int

const (
	// StateOut: not tracking, no open session.
	StateOut SessionState = iota
	// StateTracking: tracking with an open session dated today.
	StateTracking
	// StateGhostTracking: tracking flag set but no open session exists.
	// A bookkeeping anomaly that self-heals to a fresh check-in.
	StateGhostTracking
	// StateStaleOpen: an open session dated before today (forgotten checkout).
	StateStaleOpen
	// StateDormantOpen: today's session is open but live tracking stopped;
	// eligible for resume within the grace window.
	StateDormantOpen
)

func (s SessionState) String() string {
	switch s {
	case StateOut:
		return "OUT"
	case StateTracking:
		return "TRACKING"
	case StateGhostTracking:
		return "GHOST_TRACKING"
	case StateStaleOpen:
		return "STALE_OPEN"
	case StateDormantOpen:
		return "DORMANT_OPEN"
	}
	return "UNKNOWN"
}

// ResolveState classifies the employee's session state from the tracking flag
// and the latest open session (nil when none exists). today is the current
// local date in YYYY-MM-DD form.
func ResolveState(isTracking bool, open *Attendance, today string) SessionState {
	if open == nil {
		if isTracking {
			return StateGhostTracking
		}
		return StateOut
	}
	if open.Date < today {
		return StateStaleOpen
	}
	if isTracking {
		return StateTracking
	}
	return StateDormantOpen
}
