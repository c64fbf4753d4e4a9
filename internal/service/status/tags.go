package status

import (
	"encoding/json"
	"sort"
	"strings"
)

// Tag is one component of a day's composite status. Tags compose: a day can
// be Present, Late in, and Permission in at once. Aggregation matches tags
// exactly instead of substring-searching a label.
type Tag string

const (
	TagPresent             Tag = "Present"
	TagPresentOnLeave      Tag = "Present (On Leave)"
	TagPresentLeavePending Tag = "Present (Leave Pending)"
	TagAbsent              Tag = "Absent"
	TagLateIn              Tag = "Late in"
	TagEarlyOut            Tag = "Early out"
	TagHalfDayIn           Tag = "Half day in"
	TagHalfDayOut          Tag = "Half day out"
	TagWeekOff             Tag = "Week off"
	TagHoliday             Tag = "Holiday"
	TagLeave               Tag = "Leave"
	TagPermission          Tag = "Permission in"
)

// TagSet is an unordered set of status tags.
type TagSet map[Tag]struct{}

func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

func (s TagSet) Add(t Tag) {
	s[t] = struct{}{}
}

func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

// HasAny reports whether any of the given tags is present.
func (s TagSet) HasAny(tags ...Tag) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// MarshalJSON renders the set as a sorted string array.
func (s TagSet) MarshalJSON() ([]byte, error) {
	tags := make([]string, 0, len(s))
	for t := range s {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)
	return json.Marshal(tags)
}

func joinLabel(parts []string) string {
	return strings.Join(parts, ", ")
}
