package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile describes one tournament. Empty fields leave the environment value in place.
type Profile struct {
	Name          string `yaml:"name"`
	ProdID        string `yaml:"prodid"`
	Timezone      string `yaml:"timezone"`
	DaysURL       string `yaml:"days_url"`
	ScheduleURL   string `yaml:"schedule_url"`
	MinTournDay   *int   `yaml:"min_tourn_day"`
	EventDuration string `yaml:"event_duration"`
	UIDDomain     string `yaml:"uid_domain"`
	OutputPath    string `yaml:"output_path"`
}

// LoadProfile reads a YAML tournament profile.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile %s: %w", path, err)
	}
	return p, nil
}

// ApplyProfile overlays the non-empty profile fields onto c.
func (c *Config) ApplyProfile(p Profile) error {
	overlay := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	overlay(&c.CalendarName, p.Name)
	overlay(&c.CalendarProdID, p.ProdID)
	overlay(&c.TournamentTimezone, p.Timezone)
	overlay(&c.FeedDaysURL, p.DaysURL)
	overlay(&c.FeedScheduleURL, p.ScheduleURL)
	overlay(&c.CalendarUIDDomain, p.UIDDomain)
	overlay(&c.OutputPath, p.OutputPath)

	if p.MinTournDay != nil {
		c.MinTournDay = *p.MinTournDay
	}
	if v := strings.TrimSpace(p.EventDuration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse profile event_duration: %w", err)
		}
		c.EventDuration = d
	}
	return nil
}
