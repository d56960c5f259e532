package schedule

import "sort"

// Sort orders matches by start time with unknown starts last, then by title.
// The sort is stable and happens in place.
func Sort(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return lessMatch(matches[i], matches[j])
	})
	return matches
}

func lessMatch(left, right Match) bool {
	switch {
	case left.StartTime != nil && right.StartTime == nil:
		return true
	case left.StartTime == nil && right.StartTime != nil:
		return false
	case left.StartTime != nil && right.StartTime != nil && !left.StartTime.Equal(*right.StartTime):
		return left.StartTime.Before(*right.StartTime)
	}
	return left.Title < right.Title
}
