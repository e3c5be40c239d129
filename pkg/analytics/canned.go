package analytics

import "github.com/klokku/meeting-fatigue/pkg/meeting"

// NoMeetingsResult is returned for an empty calendar without running the pipeline.
func NoMeetingsResult() AnalysisResult {
	return AnalysisResult{
		Stats: MeetingStats{
			MeetingsByCategory: map[meeting.Category]float64{},
			MeetingsByDay:      map[string]int{},
		},
		FatigueScore: FatigueScore{
			Score:           100,
			Grade:           GradeA,
			Badge:           badges[GradeA],
			Insights:        []string{"No meetings found - ultimate productivity!"},
			Recommendations: []string{"Keep it this way!"},
		},
		CategorizedMeetings: []meeting.CategorizedMeeting{},
		WeeklyTrend:         []TrendPoint{},
	}
}
