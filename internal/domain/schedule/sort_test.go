package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSort(t *testing.T) {
	t.Parallel()

	loc := mustLocation(t)
	early := time.Date(2025, 8, 26, 11, 0, 0, 0, loc)
	late := time.Date(2025, 8, 26, 19, 0, 0, 0, loc)
	sameAsEarlyUTC := early.UTC()

	matches := []Match{
		{Title: "Zeta"},
		{Title: "Night", StartTime: &late},
		{Title: "Beta", StartTime: &sameAsEarlyUTC},
		{Title: "Alpha"},
		{Title: "Alpha", StartTime: &early},
	}

	got := Sort(matches)
	titles := make([]string, 0, len(got))
	for _, m := range got {
		titles = append(titles, m.Title)
	}
	want := []string{"Alpha", "Beta", "Night", "Alpha", "Zeta"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("Sort order mismatch (-want +got):\n%s", diff)
	}
	if got[3].StartTime != nil || got[4].StartTime != nil {
		t.Fatalf("expected undated matches last")
	}
}

func TestSort_Empty(t *testing.T) {
	t.Parallel()

	if got := Sort(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got=%d", len(got))
	}
}
