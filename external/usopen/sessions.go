package usopen

import (
	"sort"
	"strings"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
)

// FlattenSessions walks draws -> dates -> sessions -> time blocks and returns
// one slot per time block. Draw keys are visited in sorted order.
func FlattenSessions(payload TournamentSchedulePayload) []schedule.SessionSlot {
	draws := payload.TournamentSchedule.Draws
	keys := make([]string, 0, len(draws))
	for key := range draws {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]schedule.SessionSlot, 0, 64)
	for _, key := range keys {
		draw := draws[key]
		drawName := firstNonEmpty(string(draw.Name), key)

		for _, day := range draw.Dates {
			tournDay, ok := day.TournDay.nonZero()
			if !ok {
				continue
			}
			var dayEpoch *int64
			if epoch, ok := day.Epoch.nonZero(); ok {
				dayEpoch = &epoch
			}

			for _, session := range day.Session {
				for _, block := range session.Times {
					out = append(out, schedule.SessionSlot{
						Draw:      drawName,
						TournDay:  int(tournDay),
						Date:      string(day.Date),
						DayEpoch:  dayEpoch,
						SessionID: string(session.SessionID),
						Link:      session.Link.URL,
						Gate:      string(block.Gate),
						Start:     string(block.Start),
						Events:    eventNames(block.Events),
					})
				}
			}
		}
	}
	return out
}

func eventNames(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
