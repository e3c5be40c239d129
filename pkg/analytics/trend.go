package analytics

import (
	"sort"

	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

const (
	trendWeeks      = 4
	weekLabelLayout = "2006-01-02"
)

// ComputeWeeklyTrend sums meeting hours per week, keyed by the week start date,
// and keeps the most recent weeks only.
func (e *Engine) ComputeWeeklyTrend(meetings []meeting.CategorizedMeeting) []TrendPoint {
	hoursByWeek := map[string]float64{}
	for _, m := range meetings {
		week := utils.StartOfWeek(m.StartTime, e.weekStart).Format(weekLabelLayout)
		hoursByWeek[week] += m.Hours()
	}

	trend := make([]TrendPoint, 0, len(hoursByWeek))
	for week, hours := range hoursByWeek {
		trend = append(trend, TrendPoint{Week: week, Hours: Round1(hours)})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Week < trend[j].Week
	})

	if len(trend) > trendWeeks {
		trend = trend[len(trend)-trendWeeks:]
	}
	return trend
}
