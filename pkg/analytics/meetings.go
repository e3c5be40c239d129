package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

var ErrInvalidEvent = errors.New("invalid calendar event")

var recurringPattern = regexp.MustCompile(`(?i)(daily|weekly|bi.?weekly|monthly|recurring|standup|sync)`)

// DeriveMeetings merges the category mapping into the events and computes the
// per-meeting fields. A malformed timestamp fails the whole batch.
func DeriveMeetings(events []meeting.RawEvent, categoryMap map[string]meeting.Category) ([]meeting.CategorizedMeeting, error) {
	meetings := make([]meeting.CategorizedMeeting, 0, len(events))
	for _, event := range events {
		start, err := time.Parse(time.RFC3339, event.Start)
		if err != nil {
			return nil, fmt.Errorf("%w %s: start time %q: %v", ErrInvalidEvent, event.Id, event.Start, err)
		}
		end, err := time.Parse(time.RFC3339, event.End)
		if err != nil {
			return nil, fmt.Errorf("%w %s: end time %q: %v", ErrInvalidEvent, event.Id, event.End, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w %s: ends before it starts", ErrInvalidEvent, event.Id)
		}

		category, ok := categoryMap[event.Id]
		if !ok || !category.IsValid() {
			category = meeting.Other
		}

		attendeeCount := len(event.Attendees)
		if attendeeCount == 0 {
			attendeeCount = 1
		}

		meetings = append(meetings, meeting.CategorizedMeeting{
			RawEvent:      event,
			StartTime:     start,
			EndTime:       end,
			Category:      category,
			Duration:      int(end.Sub(start).Minutes()),
			IsRecurring:   IsRecurring(event),
			AttendeeCount: attendeeCount,
		})
	}
	return meetings, nil
}

// IsRecurring guesses recurrence from the title alone.
func IsRecurring(event meeting.RawEvent) bool {
	return recurringPattern.MatchString(event.Summary)
}
