package analysis

import (
	"github.com/klokku/meeting-fatigue/pkg/analytics"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

type StatsDTO struct {
	TotalMeetings          int                `json:"totalMeetings"`
	TotalHours             float64            `json:"totalHours"`
	AverageMeetingDuration float64            `json:"averageMeetingDuration"`
	LongestMeeting         int                `json:"longestMeeting"`
	MeetingsByCategory     map[string]float64 `json:"meetingsByCategory"`
	MeetingsByDay          map[string]int     `json:"meetingsByDay"`
	BackToBackMeetings     int                `json:"backToBackMeetings"`
	RecurringMeetings      int                `json:"recurringMeetings"`
	ExternalMeetings       int                `json:"externalMeetings"`
}

type FatigueScoreDTO struct {
	Score           int      `json:"score"`
	Grade           string   `json:"grade"`
	Badge           string   `json:"badge"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

type EmailDTO struct {
	Email string `json:"email"`
}

type MeetingDTO struct {
	Id            string     `json:"id"`
	Summary       string     `json:"summary"`
	Description   string     `json:"description,omitempty"`
	Start         string     `json:"start"`
	End           string     `json:"end"`
	Attendees     []EmailDTO `json:"attendees,omitempty"`
	Organizer     *EmailDTO  `json:"organizer,omitempty"`
	Status        string     `json:"status"`
	Category      string     `json:"category"`
	Duration      int        `json:"duration"`
	IsRecurring   bool       `json:"isRecurring"`
	AttendeeCount int        `json:"attendeeCount"`
}

type TrendPointDTO struct {
	Week  string  `json:"week"`
	Hours float64 `json:"hours"`
}

type UserInfoDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AnalysisDTO struct {
	Stats               StatsDTO        `json:"stats"`
	FatigueScore        FatigueScoreDTO `json:"fatigueScore"`
	CategorizedMeetings []MeetingDTO    `json:"categorizedMeetings"`
	WeeklyTrend         []TrendPointDTO `json:"weeklyTrend"`
	UserInfo            UserInfoDTO     `json:"userInfo"`
}

type CategoryDTO struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ToAnalysisDTO converts a result into the JSON shape served by the API.
func ToAnalysisDTO(result Result) AnalysisDTO {
	stats := result.Analysis.Stats
	byCategory := make(map[string]float64, len(stats.MeetingsByCategory))
	for category, hours := range stats.MeetingsByCategory {
		byCategory[string(category)] = analytics.Round1(hours)
	}
	byDay := make(map[string]int, len(stats.MeetingsByDay))
	for day, count := range stats.MeetingsByDay {
		byDay[day] = count
	}

	meetings := make([]MeetingDTO, 0, len(result.Analysis.CategorizedMeetings))
	for _, m := range result.Analysis.CategorizedMeetings {
		meetings = append(meetings, toMeetingDTO(m))
	}

	trend := make([]TrendPointDTO, 0, len(result.Analysis.WeeklyTrend))
	for _, point := range result.Analysis.WeeklyTrend {
		trend = append(trend, TrendPointDTO{Week: point.Week, Hours: point.Hours})
	}

	score := result.Analysis.FatigueScore
	return AnalysisDTO{
		Stats: StatsDTO{
			TotalMeetings:          stats.TotalMeetings,
			TotalHours:             stats.TotalHours,
			AverageMeetingDuration: stats.AverageMeetingDuration,
			LongestMeeting:         stats.LongestMeeting,
			MeetingsByCategory:     byCategory,
			MeetingsByDay:          byDay,
			BackToBackMeetings:     stats.BackToBackMeetings,
			RecurringMeetings:      stats.RecurringMeetings,
			ExternalMeetings:       stats.ExternalMeetings,
		},
		FatigueScore: FatigueScoreDTO{
			Score:           score.Score,
			Grade:           string(score.Grade),
			Badge:           score.Badge,
			Insights:        score.Insights,
			Recommendations: score.Recommendations,
		},
		CategorizedMeetings: meetings,
		WeeklyTrend:         trend,
		UserInfo: UserInfoDTO{
			Name:  result.UserInfo.Name,
			Email: result.UserInfo.Email,
		},
	}
}

func toMeetingDTO(m meeting.CategorizedMeeting) MeetingDTO {
	var attendees []EmailDTO
	for _, email := range m.Attendees {
		attendees = append(attendees, EmailDTO{Email: email})
	}
	var organizer *EmailDTO
	if m.Organizer != "" {
		organizer = &EmailDTO{Email: m.Organizer}
	}
	return MeetingDTO{
		Id:            m.Id,
		Summary:       m.Summary,
		Description:   m.Description,
		Start:         m.Start,
		End:           m.End,
		Attendees:     attendees,
		Organizer:     organizer,
		Status:        m.Status,
		Category:      string(m.Category),
		Duration:      m.Duration,
		IsRecurring:   m.IsRecurring,
		AttendeeCount: m.AttendeeCount,
	}
}

func categoriesToDTO() []CategoryDTO {
	categories := make([]CategoryDTO, 0, len(meeting.Categories))
	for _, category := range meeting.Categories {
		info := category.Info()
		categories = append(categories, CategoryDTO{
			Id:          string(category),
			Name:        info.Name,
			Color:       info.Color,
			Description: info.Description,
		})
	}
	return categories
}
