package schedule

import "strings"

const (
	labelMenSingles   = "Men's single"
	labelWomenSingles = "Women's single"
	labelDoublesGroup = "Double and Mixed Double"
)

// EventText is a session-schedule event line with its normalized form.
type EventText struct {
	Raw        string
	Normalized string
}

func (e EventText) Has(fragment string) bool {
	return strings.Contains(e.Normalized, fragment)
}

func (e EventText) Singles() bool { return e.Has("single") }
func (e EventText) Doubles() bool { return e.Has("double") }

// "women" contains "men", so every women's line also reads as men's.
// The check strips the women tokens first.
func (e EventText) Men() bool {
	rest := strings.NewReplacer("women's", "", "womens", "", "women", "").Replace(e.Normalized)
	return strings.Contains(rest, "men")
}

func (e EventText) Women() bool { return e.Has("women") }

// EventRule emits canonical labels for a session event line. Rules run in
// order; a rule with Stop set ends evaluation for the line when it matches.
type EventRule struct {
	Name  string
	Match func(EventText) bool
	Emit  func(EventText) []string
	Stop  bool
}

// DefaultEventRules is the classification table for session schedules.
var DefaultEventRules = []EventRule{
	{
		Name:  "drop wheelchair",
		Match: func(e EventText) bool { return e.Has("wheelchair") },
		Emit:  func(EventText) []string { return nil },
		Stop:  true,
	},
	{
		Name:  "keep combined singles",
		Match: func(e EventText) bool { return e.Singles() && e.Men() && e.Women() },
		Emit:  func(e EventText) []string { return []string{e.Raw} },
	},
	{
		Name:  "men's singles",
		Match: func(e EventText) bool { return e.Singles() && e.Men() && !e.Women() },
		Emit:  func(EventText) []string { return []string{labelMenSingles} },
	},
	{
		Name:  "women's singles",
		Match: func(e EventText) bool { return e.Singles() && e.Women() && !e.Men() },
		Emit:  func(EventText) []string { return []string{labelWomenSingles} },
	},
	{
		Name:  "drop generic singles",
		Match: func(e EventText) bool { return e.Singles() && !e.Men() && !e.Women() },
		Emit:  func(EventText) []string { return nil },
	},
	{
		Name:  "doubles",
		Match: func(e EventText) bool { return e.Doubles() },
		Emit:  func(EventText) []string { return []string{labelDoublesGroup} },
	},
}

// ClassifyEvents maps free-text event lines to canonical labels using
// DefaultEventRules. Output is deduplicated in first-seen order.
func ClassifyEvents(events []string) []string {
	return ClassifyEventsWith(DefaultEventRules, events)
}

func ClassifyEventsWith(rules []EventRule, events []string) []string {
	out := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, raw := range events {
		text := newEventText(raw)
		for _, rule := range rules {
			if !rule.Match(text) {
				continue
			}
			for _, label := range rule.Emit(text) {
				if _, ok := seen[label]; ok {
					continue
				}
				seen[label] = struct{}{}
				out = append(out, label)
			}
			if rule.Stop {
				break
			}
		}
	}
	return out
}

func newEventText(raw string) EventText {
	clean := strings.TrimSpace(raw)
	norm := strings.NewReplacer("â€™", "'", "’", "'").Replace(clean)
	return EventText{Raw: clean, Normalized: strings.ToLower(norm)}
}
