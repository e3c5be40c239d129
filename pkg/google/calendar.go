package google

import (
	"context"
	"fmt"
	"time"

	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
)

const (
	primaryCalendar = "primary"
	pageSize        = 2500
	statusCancelled = "cancelled"
	statusConfirmed = "confirmed"
	untitled        = "No Title"
)

// GetEvents returns the timed, non-cancelled events of the primary calendar
// within the last days, following every result page.
func (c *Client) GetEvents(ctx context.Context, token string, days int) ([]meeting.RawEvent, error) {
	service, err := c.calendarService(ctx, token)
	if err != nil {
		return nil, err
	}

	from, to := utils.Window(c.clock, days)
	var events []meeting.RawEvent
	err = service.Events.List(primaryCalendar).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(pageSize).
		Pages(ctx, func(page *gcal.Events) error {
			events = append(events, googleEventsToEvents(page.Items)...)
			return nil
		})
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
		log.Error(err)
		return nil, err
	}

	log.Debugf("retrieved %d events from Google Calendar between %s and %s", len(events), from, to)
	if events == nil {
		events = []meeting.RawEvent{}
	}
	return events, nil
}

func googleEventsToEvents(items []*gcal.Event) []meeting.RawEvent {
	events := make([]meeting.RawEvent, 0, len(items))
	for _, item := range items {
		if item.Status == statusCancelled {
			continue
		}
		// all-day events only carry a date
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			log.Tracef("skipping event without start/end time: %s", item.Id)
			continue
		}
		events = append(events, googleEventToEvent(item))
	}
	return events
}

func googleEventToEvent(item *gcal.Event) meeting.RawEvent {
	summary := item.Summary
	if summary == "" {
		summary = untitled
	}
	status := item.Status
	if status == "" {
		status = statusConfirmed
	}

	var attendees []string
	for _, attendee := range item.Attendees {
		attendees = append(attendees, attendee.Email)
	}
	var organizer string
	if item.Organizer != nil {
		organizer = item.Organizer.Email
	}

	return meeting.RawEvent{
		Id:          item.Id,
		Summary:     summary,
		Description: item.Description,
		Start:       item.Start.DateTime,
		End:         item.End.DateTime,
		Attendees:   attendees,
		Organizer:   organizer,
		Status:      status,
	}
}
