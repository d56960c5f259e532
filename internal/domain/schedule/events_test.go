package schedule

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []string
		want   []string
	}{
		{
			name:   "wheelchair dropped",
			events: []string{"Wheelchair Quad Doubles", "Wheelchair Men's Singles"},
			want:   []string{},
		},
		{
			name:   "combined singles kept verbatim",
			events: []string{"  Men's and Women's Singles "},
			want:   []string{"Men's and Women's Singles"},
		},
		{
			name:   "mixed doubles mapped",
			events: []string{"Mixed Doubles"},
			want:   []string{"Double and Mixed Double"},
		},
		{
			name:   "gendered singles mapped",
			events: []string{"Women's Singles", "MENS SINGLES"},
			want:   []string{"Women's single", "Men's single"},
		},
		{
			name:   "mojibake apostrophe normalized",
			events: []string{"Womenâ€™s Singles"},
			want:   []string{"Women's single"},
		},
		{
			name:   "generic singles ignored",
			events: []string{"Singles"},
			want:   []string{},
		},
		{
			name:   "duplicates removed across the slot",
			events: []string{"Men's Doubles", "Women's Doubles", "Mixed Doubles", "Men's Singles", "Men's Singles Round 2"},
			want:   []string{"Double and Mixed Double", "Men's single"},
		},
		{
			name:   "combined singles and doubles emit both",
			events: []string{"Men's & Women's Singles and Doubles"},
			want:   []string{"Men's & Women's Singles and Doubles", "Double and Mixed Double"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyEvents(tc.events)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ClassifyEvents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyEventsWith_CustomRules(t *testing.T) {
	t.Parallel()

	rules := []EventRule{
		{
			Name:  "juniors",
			Match: func(e EventText) bool { return e.Has("junior") },
			Emit:  func(EventText) []string { return []string{"Juniors"} },
			Stop:  true,
		},
	}
	rules = append(rules, DefaultEventRules...)

	got := ClassifyEventsWith(rules, []string{"Junior Boys' Singles", "Mixed Doubles"})
	want := []string{"Juniors", "Double and Mixed Double"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ClassifyEventsWith mismatch (-want +got):\n%s", diff)
	}
}
