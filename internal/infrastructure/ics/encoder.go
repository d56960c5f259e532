package ics

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
	"github.com/riskibarqy/tennis-calendar/internal/platform/id"
)

const ContentType = "text/calendar; charset=utf-8"

// Metadata holds the calendar-level properties written into VCALENDAR.
type Metadata struct {
	Name            string
	Timezone        string
	ProdID          string
	RefreshInterval string
	PublishedTTL    string
	UIDDomain       string
	EventDuration   time.Duration
}

func DefaultMetadata() Metadata {
	return Metadata{
		Name:            "US Open 2025",
		Timezone:        "America/New_York",
		ProdID:          "-//Your Org//US Open 2025//EN",
		RefreshInterval: "PT1H",
		PublishedTTL:    "PT1H",
		UIDDomain:       id.DefaultDomain,
		EventDuration:   2 * time.Hour,
	}
}

type Encoder struct {
	meta Metadata
	uids id.Generator
	now  func() time.Time
}

type Option func(*Encoder)

// WithClock fixes DTSTAMP, mainly for reproducible output in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEncoder(meta Metadata, opts ...Option) *Encoder {
	defaults := DefaultMetadata()
	if strings.TrimSpace(meta.ProdID) == "" {
		meta.ProdID = defaults.ProdID
	}
	if meta.EventDuration <= 0 {
		meta.EventDuration = defaults.EventDuration
	}

	e := &Encoder{
		meta: meta,
		uids: id.NewStableGenerator(meta.UIDDomain),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build assembles the calendar. Matches without a start time are written
// without DTSTART/DTEND.
func (e *Encoder) Build(matches []schedule.Match) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.meta.ProdID)
	if v := strings.TrimSpace(e.meta.Name); v != "" {
		cal.SetXWRCalName(v)
	}
	if v := strings.TrimSpace(e.meta.Timezone); v != "" {
		cal.SetXWRTimezone(v)
	}
	if v := strings.TrimSpace(e.meta.RefreshInterval); v != "" {
		cal.SetRefreshInterval(v, ical.WithValue("DURATION"))
	}
	if v := strings.TrimSpace(e.meta.PublishedTTL); v != "" {
		cal.SetXPublishedTTL(v)
	}

	stamp := e.now().UTC()
	for _, m := range matches {
		title := m.Title
		if strings.TrimSpace(title) == "" {
			title = "Match (TBD)"
		}

		start := ""
		if m.StartTime != nil {
			start = m.StartTime.Format(time.RFC3339)
		}

		event := cal.AddEvent(e.uids.NewID(title, m.Court, start))
		event.SetDtStampTime(stamp)
		event.SetSummary(title)
		if m.Court != "" {
			event.SetLocation(m.Court)
		}
		if m.Description != "" {
			event.SetDescription(m.Description)
		}
		if m.StartTime != nil {
			event.SetStartAt(*m.StartTime)
			event.SetEndAt(m.StartTime.Add(e.meta.EventDuration))
		}
		event.SetTimeTransparency(ical.TransparencyTransparent)
	}
	return cal
}

// Encode writes the calendar for matches to w.
func (e *Encoder) Encode(w io.Writer, matches []schedule.Match) error {
	if err := e.Build(matches).SerializeTo(w); err != nil {
		return crerr.Wrap(err, "serialize calendar")
	}
	return nil
}

// Render returns the serialized calendar as a fresh byte slice.
func (e *Encoder) Render(matches []schedule.Match) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := e.Encode(buf, matches); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
