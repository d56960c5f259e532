package schedule

import "testing"

func TestFormatTeam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		team []TeamSlot
		want string
	}{
		{
			name: "singles player",
			team: []TeamSlot{{DisplayNameA: "A. Player", NationA: "USA"}},
			want: "🇺🇸 A. Player",
		},
		{
			name: "doubles same nation shows one flag",
			team: []TeamSlot{{DisplayNameA: "A. One", DisplayNameB: "B. Two", NationA: "ESP", NationB: "esp"}},
			want: "🇪🇸 A. One & B. Two",
		},
		{
			name: "doubles mixed nations keep first-seen order",
			team: []TeamSlot{{DisplayNameA: "A. One", DisplayNameB: "B. Two", NationA: "MEX", NationB: "USA"}},
			want: "🇲🇽/🇺🇸 A. One & B. Two",
		},
		{
			name: "unknown nation falls back to neutral",
			team: []TeamSlot{{DisplayNameA: "Q. Player", NationA: "ZZZ"}},
			want: "🎾 Q. Player",
		},
		{
			name: "unknown nation skipped when partner resolves",
			team: []TeamSlot{{DisplayNameA: "A", DisplayNameB: "B", NationA: "ZZZ", NationB: "FRA"}},
			want: "🇫🇷 A & B",
		},
		{
			name: "only the first slot is read",
			team: []TeamSlot{{NationA: "ITA"}, {DisplayNameA: "Ignored", NationA: "USA"}},
			want: "🇮🇹",
		},
		{
			name: "nil team",
			team: nil,
			want: "🎾",
		},
		{
			name: "empty slot",
			team: []TeamSlot{{}},
			want: "🎾",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatTeam(tc.team)
			if got != tc.want {
				t.Fatalf("FormatTeam()=%q want=%q", got, tc.want)
			}
			if again := FormatTeam(tc.team); again != got {
				t.Fatalf("FormatTeam not stable: %q then %q", got, again)
			}
		})
	}
}
