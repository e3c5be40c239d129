package meeting

import "time"

// RawEvent is a calendar event as delivered by a calendar source. Start and End
// keep the provider's RFC3339 representation; they are parsed during analysis.
type RawEvent struct {
	Id          string   `json:"id"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees,omitempty"`
	Organizer   string   `json:"organizer,omitempty"`
	Status      string   `json:"status"`
}

type CategorizedMeeting struct {
	RawEvent
	StartTime     time.Time
	EndTime       time.Time
	Category      Category
	Duration      int // minutes
	IsRecurring   bool
	AttendeeCount int
}

func (m CategorizedMeeting) Hours() float64 {
	return float64(m.Duration) / 60
}

// UserInfo identifies the calendar owner.
type UserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
