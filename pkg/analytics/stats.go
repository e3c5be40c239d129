package analytics

import (
	"sort"
	"strings"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

const backToBackGapMinutes = 5

func ComputeStats(meetings []meeting.CategorizedMeeting, referenceEmail string) MeetingStats {
	stats := MeetingStats{
		TotalMeetings:      len(meetings),
		MeetingsByCategory: map[meeting.Category]float64{},
		MeetingsByDay:      map[string]int{},
	}

	totalMinutes := 0
	for _, m := range meetings {
		totalMinutes += m.Duration
		stats.LongestMeeting = max(stats.LongestMeeting, m.Duration)
		stats.MeetingsByCategory[m.Category] += m.Hours()
		stats.MeetingsByDay[m.StartTime.Weekday().String()]++

		if m.IsRecurring {
			stats.RecurringMeetings++
		}
		if m.Organizer != "" && !strings.EqualFold(m.Organizer, referenceEmail) {
			stats.ExternalMeetings++
		}
	}
	stats.TotalHours = Round1(float64(totalMinutes) / 60)
	if stats.TotalMeetings > 0 {
		stats.AverageMeetingDuration = float64(totalMinutes) / float64(stats.TotalMeetings)
	}
	stats.BackToBackMeetings = countBackToBack(meetings)

	return stats
}

// countBackToBack counts adjacent meetings (by start time) separated by at most
// five minutes. Overlapping meetings have a negative gap and count too.
func countBackToBack(meetings []meeting.CategorizedMeeting) int {
	sorted := make([]meeting.CategorizedMeeting, len(meetings))
	copy(sorted, meetings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	count := 0
	for i := 0; i+1 < len(sorted); i++ {
		gap := int(sorted[i+1].StartTime.Sub(sorted[i].EndTime).Minutes())
		if gap <= backToBackGapMinutes {
			count++
		}
	}
	return count
}
