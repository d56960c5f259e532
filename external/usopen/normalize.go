package usopen

import (
	"strings"
	"time"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
)

// NormalizeDay flattens one day feed into schedule entries. It never touches
// the network; missing courts or matches simply yield fewer entries.
func NormalizeDay(payload DayFeed, tournDay *int, loc *time.Location) []schedule.Entry {
	out := make([]schedule.Entry, 0, len(payload.Courts)*4)
	displayDate := strings.TrimSpace(string(payload.DisplayDate))

	for _, court := range payload.Courts {
		courtName := strings.TrimSpace(string(court.CourtName))
		if courtName == "" {
			courtName = schedule.UnknownCourt
		}

		for _, item := range court.Matches {
			entry := schedule.Entry{
				EventName:   strings.TrimSpace(string(item.EventName)),
				RoundName:   strings.TrimSpace(string(item.RoundName)),
				Court:       courtName,
				DisplayDate: displayDate,
				TournDay:    copyInt(tournDay),
				Team1:       teamLabel(item.Team1),
				Team2:       teamLabel(item.Team2),
			}

			epoch, ok := item.StartEpoch.nonZero()
			if !ok {
				epoch, ok = court.StartEpoch.nonZero()
			}
			if ok {
				start := schedule.EpochTime(epoch, loc)
				entry.StartEpoch = &epoch
				entry.StartTime = &start
			}

			out = append(out, entry)
		}
	}
	return out
}

func teamLabel(items []teamItem) string {
	slots := make([]schedule.TeamSlot, 0, len(items))
	for _, item := range items {
		slots = append(slots, schedule.TeamSlot{
			DisplayNameA: string(item.DisplayNameA),
			DisplayNameB: string(item.DisplayNameB),
			NationA:      string(item.NationA),
			NationB:      string(item.NationB),
		})
	}
	return schedule.FormatTeam(slots)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
