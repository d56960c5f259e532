package usopen

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/tennis-calendar/internal/usecase"
)

// DayShape tags the layout a day-index element was published in.
type DayShape int

const (
	ShapeUnknown DayShape = iota
	// ShapeURLList is a bare per-day feed URL string.
	ShapeURLList
	// ShapeNestedDays is a day object carrying its own eventDays list.
	ShapeNestedDays
	// ShapeFlatDays is a day object with tournDay and feedUrl.
	ShapeFlatDays
)

func (s DayShape) String() string {
	switch s {
	case ShapeURLList:
		return "url_list"
	case ShapeNestedDays:
		return "nested_days"
	case ShapeFlatDays:
		return "flat_days"
	default:
		return "unknown"
	}
}

var dayListKeys = []string{"scheduleDays", "days", "eventDays", "items"}

// ResolveDayFeeds turns a decoded day-index payload into a uniform day list.
// The returned shape is the one of the first recognised element. Unrecognised
// payloads resolve to an empty list.
func ResolveDayFeeds(raw any) ([]usecase.ExternalDay, DayShape) {
	items := dayList(raw)
	out := make([]usecase.ExternalDay, 0, len(items))
	shape := ShapeUnknown

	for _, item := range items {
		itemShape := classifyDay(item)
		if shape == ShapeUnknown {
			shape = itemShape
		}

		switch itemShape {
		case ShapeURLList:
			out = append(out, usecase.ExternalDay{FeedURL: strings.TrimSpace(item.(string))})
		case ShapeNestedDays:
			for _, nested := range item.(map[string]any)["eventDays"].([]any) {
				obj, ok := nested.(map[string]any)
				if !ok {
					continue
				}
				if day, ok := flatDay(obj); ok {
					out = append(out, day)
				}
			}
		case ShapeFlatDays:
			if day, ok := flatDay(item.(map[string]any)); ok {
				out = append(out, day)
			}
		}
	}
	return out, shape
}

func dayList(raw any) []any {
	switch typed := raw.(type) {
	case []any:
		return typed
	case map[string]any:
		for _, key := range dayListKeys {
			if list, ok := typed[key].([]any); ok {
				return list
			}
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if list, ok := typed[key].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func classifyDay(item any) DayShape {
	switch typed := item.(type) {
	case string:
		if strings.TrimSpace(typed) == "" {
			return ShapeUnknown
		}
		return ShapeURLList
	case map[string]any:
		if nested, ok := typed["eventDays"].([]any); ok && len(nested) > 0 {
			return ShapeNestedDays
		}
		return ShapeFlatDays
	}
	return ShapeUnknown
}

// flatDay keeps objects that either point at a feed or name a tournament day;
// the latter are placeholder candidates.
func flatDay(obj map[string]any) (usecase.ExternalDay, bool) {
	day := usecase.ExternalDay{FeedURL: getString(obj, "feedUrl")}
	if v, ok := getInt(obj, "tournDay"); ok {
		day.TournDay = &v
	}
	if day.FeedURL == "" && day.TournDay == nil {
		return usecase.ExternalDay{}, false
	}
	return day, true
}

func getString(src map[string]any, key string) string {
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getInt(src map[string]any, key string) (int, bool) {
	switch typed := src[key].(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(typed), true
	case int64:
		return int(typed), true
	case int:
		return typed, true
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
