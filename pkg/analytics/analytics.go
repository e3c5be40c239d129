package analytics

import (
	"math"
	"time"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
)

const DefaultWindowDays = 30

type MeetingStats struct {
	TotalMeetings          int
	TotalHours             float64
	AverageMeetingDuration float64 // minutes
	LongestMeeting         int     // minutes
	MeetingsByCategory     map[meeting.Category]float64
	MeetingsByDay          map[string]int
	BackToBackMeetings     int
	RecurringMeetings      int
	ExternalMeetings       int
}

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

type FatigueScore struct {
	Score           int
	Grade           Grade
	Badge           string
	Insights        []string
	Recommendations []string
}

type TrendPoint struct {
	Week  string
	Hours float64
}

type AnalysisResult struct {
	Stats               MeetingStats
	FatigueScore        FatigueScore
	CategorizedMeetings []meeting.CategorizedMeeting
	WeeklyTrend         []TrendPoint
}

type Config struct {
	// WindowDays is the length of the analysed period, used to project weekly hours.
	WindowDays int
	WeekStart  time.Weekday
}

// Engine turns categorized calendar events into statistics and a fatigue score.
// It holds configuration only and is safe for concurrent use.
type Engine struct {
	windowDays int
	weekStart  time.Weekday
}

func NewEngine(cfg Config) *Engine {
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Engine{windowDays: windowDays, weekStart: cfg.WeekStart}
}

// WithWindow returns a copy of the engine analysing a window of the given length.
func (e *Engine) WithWindow(days int) *Engine {
	return NewEngine(Config{WindowDays: days, WeekStart: e.weekStart})
}

func (e *Engine) Analyze(events []meeting.RawEvent, categoryMap map[string]meeting.Category, referenceEmail string) (AnalysisResult, error) {
	meetings, err := DeriveMeetings(events, categoryMap)
	if err != nil {
		return AnalysisResult{}, err
	}
	stats := ComputeStats(meetings, referenceEmail)
	score := e.ComputeFatigueScore(stats, meetings)
	trend := e.ComputeWeeklyTrend(meetings)
	log.Debugf("analysed %d meetings: %.1f hours, score %d", stats.TotalMeetings, stats.TotalHours, score.Score)

	return AnalysisResult{
		Stats:               stats,
		FatigueScore:        score,
		CategorizedMeetings: meetings,
		WeeklyTrend:         trend,
	}, nil
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
