package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCalendar = errors.New("invalid iCalendar data")

const (
	statusCancelled = "cancelled"
	statusConfirmed = "confirmed"
	untitled        = "No Title"
	instanceLayout  = "20060102T150405Z"
)

// Source reads events from an iCalendar file, the offline counterpart of the
// Google Calendar client. Recurring events are expanded within the window.
type Source struct {
	path     string
	clock    utils.Clock
	location *time.Location
}

// NewSource reads path on every call. Floating times are interpreted in location.
func NewSource(path string, clock utils.Clock, location *time.Location) *Source {
	if location == nil {
		location = time.UTC
	}
	return &Source{path: path, clock: clock, location: location}
}

// GetEvents ignores the token; the file is the credential.
func (s *Source) GetEvents(ctx context.Context, _ string, days int) ([]meeting.RawEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("unable to open calendar file: %w", err)
	}
	defer file.Close()

	from, to := utils.Window(s.clock, days)
	events, err := Parse(file, from, to, s.location)
	if err != nil {
		return nil, err
	}
	log.Debugf("read %d events from %s between %s and %s", len(events), s.path, from, to)
	return events, nil
}

// Parse decodes every calendar in r and returns the timed, non-cancelled events
// overlapping [from, to], ordered by start time.
func Parse(r io.Reader, from, to time.Time, location *time.Location) ([]meeting.RawEvent, error) {
	decoder := ical.NewDecoder(r)
	var components []*ical.Component
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
		}
		for _, child := range cal.Children {
			if child.Name == ical.CompEvent {
				components = append(components, child)
			}
		}
	}

	overrides := recurrenceOverrides(components, location)
	var found []*component
	for _, comp := range components {
		parsed, err := parseComponent(comp, location)
		if err != nil {
			log.Warnf("skipping calendar event: %v", err)
			continue
		}
		if parsed == nil {
			continue
		}

		set, err := comp.RecurrenceSet(location)
		if err != nil {
			log.Warnf("skipping recurrence of %s: %v", parsed.uid, err)
			set = nil
		}
		if set == nil {
			if parsed.overlaps(from, to) {
				found = append(found, parsed)
			}
			continue
		}

		duration := parsed.end.Sub(parsed.start)
		for _, start := range set.Between(from.Add(-duration), to, true) {
			if overrides[parsed.uid][start.Unix()] {
				continue
			}
			instance := *parsed
			instance.id = instanceId(parsed.uid, start)
			instance.start = start
			instance.end = start.Add(duration)
			if instance.overlaps(from, to) {
				found = append(found, &instance)
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start.Before(found[j].start)
	})
	events := make([]meeting.RawEvent, 0, len(found))
	for _, c := range found {
		events = append(events, c.event())
	}
	return events, nil
}

type component struct {
	id          string
	uid         string
	summary     string
	description string
	status      string
	organizer   string
	attendees   []string
	start       time.Time
	end         time.Time
}

// parseComponent returns nil for all-day and cancelled events.
func parseComponent(comp *ical.Component, location *time.Location) (*component, error) {
	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil || startProp.ValueType() == ical.ValueDate {
		return nil, nil
	}

	event := &ical.Event{Component: comp}
	start, err := event.DateTimeStart(location)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := event.DateTimeEnd(location)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	status := strings.ToLower(propText(comp, ical.PropStatus))
	if status == statusCancelled {
		return nil, nil
	}
	if status == "" {
		status = statusConfirmed
	}

	summary := propText(comp, ical.PropSummary)
	if summary == "" {
		summary = untitled
	}
	uid := propText(comp, ical.PropUID)
	if uid == "" {
		uid = start.UTC().Format(instanceLayout) + "-" + summary
	}

	var attendees []string
	for _, prop := range comp.Props.Values(ical.PropAttendee) {
		attendees = append(attendees, mailAddress(prop.Value))
	}
	var organizer string
	if prop := comp.Props.Get(ical.PropOrganizer); prop != nil {
		organizer = mailAddress(prop.Value)
	}
	id := uid
	if prop := comp.Props.Get(ical.PropRecurrenceID); prop != nil {
		if recurrenceId, err := prop.DateTime(location); err == nil {
			id = instanceId(uid, recurrenceId)
		}
	}

	return &component{
		id:          id,
		uid:         uid,
		summary:     summary,
		description: propText(comp, ical.PropDescription),
		status:      status,
		organizer:   organizer,
		attendees:   attendees,
		start:       start,
		end:         end,
	}, nil
}

func (c *component) overlaps(from, to time.Time) bool {
	return c.end.After(from) && c.start.Before(to)
}

func (c *component) event() meeting.RawEvent {
	return meeting.RawEvent{
		Id:          c.id,
		Summary:     c.summary,
		Description: c.description,
		Start:       c.start.Format(time.RFC3339),
		End:         c.end.Format(time.RFC3339),
		Attendees:   c.attendees,
		Organizer:   c.organizer,
		Status:      c.status,
	}
}

// recurrenceOverrides indexes modified instances by UID and original start.
func recurrenceOverrides(components []*ical.Component, location *time.Location) map[string]map[int64]bool {
	overrides := map[string]map[int64]bool{}
	for _, comp := range components {
		prop := comp.Props.Get(ical.PropRecurrenceID)
		if prop == nil {
			continue
		}
		recurrenceId, err := prop.DateTime(location)
		if err != nil {
			continue
		}
		uid := propText(comp, ical.PropUID)
		if overrides[uid] == nil {
			overrides[uid] = map[int64]bool{}
		}
		overrides[uid][recurrenceId.Unix()] = true
	}
	return overrides
}

func instanceId(uid string, start time.Time) string {
	return uid + "_" + start.UTC().Format(instanceLayout)
}

func propText(comp *ical.Component, name string) string {
	value, err := comp.Props.Text(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

func mailAddress(value string) string {
	if len(value) >= len("mailto:") && strings.EqualFold(value[:len("mailto:")], "mailto:") {
		return value[len("mailto:"):]
	}
	return value
}
