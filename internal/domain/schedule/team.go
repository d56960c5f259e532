package schedule

import (
	"strings"

	"github.com/riskibarqy/tennis-calendar/internal/domain/nation"
)

const maxTeamFlags = 2

// FormatTeam renders "<flags> <names>" for the first slot of a team.
// Unknown nations are skipped; a team with no known nation gets the neutral marker.
func FormatTeam(team []TeamSlot) string {
	var slot TeamSlot
	if len(team) > 0 {
		slot = team[0]
	}

	names := make([]string, 0, 2)
	for _, name := range []string{slot.DisplayNameA, slot.DisplayNameB} {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return strings.TrimSpace(teamFlags(slot) + " " + strings.Join(names, " & "))
}

func teamFlags(slot TeamSlot) string {
	regions := make([]string, 0, maxTeamFlags)
	for _, code := range []string{slot.NationA, slot.NationB} {
		iso, ok := nation.ISO2(code)
		if !ok || containsString(regions, iso) {
			continue
		}
		regions = append(regions, iso)
	}

	switch len(regions) {
	case 0:
		return nation.Neutral
	case 1:
		return nation.Flag(regions[0])
	}

	flags := make([]string, 0, maxTeamFlags)
	for _, iso := range regions[:maxTeamFlags] {
		flags = append(flags, nation.Flag(iso))
	}
	return strings.Join(flags, "/")
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
