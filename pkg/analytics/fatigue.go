package analytics

import (
	"fmt"
	"math"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

var badges = map[Grade]string{
	GradeA: "🏆 Calendar Master - You actually own your time!",
	GradeB: "✅ Solid - Minor tweaks needed",
	GradeC: "⚠️ Meeting Overload - Time to push back",
	GradeD: "🔥 Calendar Chaos - Your schedule owns you",
	GradeF: "💀 Meeting Hell - Escape while you can!",
}

const goodControlInsight = "You have good control over your calendar!"

// ComputeFatigueScore applies independent deductions to a score of 100. Every
// rule reads the stats only, so the rules order insights but not the score.
func (e *Engine) ComputeFatigueScore(stats MeetingStats, _ []meeting.CategorizedMeeting) FatigueScore {
	score := 100.0
	var insights, recommendations []string

	weeklyHours := stats.TotalHours / float64(e.windowDays) * 7
	switch {
	case weeklyHours > 25:
		score -= 30
		insights = append(insights, fmt.Sprintf("You spend %.1f hours/week in meetings - that's insane!", weeklyHours))
		recommendations = append(recommendations, "Decline at least 30% of meetings - you really don't need to be there")
	case weeklyHours > 15:
		score -= 20
		insights = append(insights, fmt.Sprintf("%.1f hours/week in meetings is above average", weeklyHours))
		recommendations = append(recommendations, `Try "No Meeting Wednesdays" to get deep work done`)
	case weeklyHours > 10:
		score -= 10
		insights = append(insights, fmt.Sprintf("%.1f hours/week in meetings - not terrible, but room to improve", weeklyHours))
	}

	backToBack := percentage(stats.BackToBackMeetings, stats.TotalMeetings)
	switch {
	case backToBack > 50:
		score -= 20
		insights = append(insights, fmt.Sprintf("%.0f%% of your meetings are back-to-back - no time to breathe!", backToBack))
		recommendations = append(recommendations, "Block 15-min buffers between meetings for sanity breaks")
	case backToBack > 30:
		score -= 10
		insights = append(insights, fmt.Sprintf("%.0f%% of meetings are back-to-back", backToBack))
		recommendations = append(recommendations, "Add calendar buffers to prevent burnout")
	}

	switch avg := stats.AverageMeetingDuration; {
	case avg > 60:
		score -= 15
		insights = append(insights, fmt.Sprintf("Average meeting is %.0f minutes - too long!", avg))
		recommendations = append(recommendations, "Challenge every meeting over 45 minutes - most can be shorter")
	case avg > 45:
		score -= 5
		insights = append(insights, fmt.Sprintf("Average meeting duration: %.0f minutes", avg))
	}

	if recurring := percentage(stats.RecurringMeetings, stats.TotalMeetings); recurring > 60 {
		score -= 10
		insights = append(insights, fmt.Sprintf("%.0f%% are recurring - some are probably dead weight", recurring))
		recommendations = append(recommendations, "Audit recurring meetings quarterly - cancel the zombies")
	}

	if external := percentage(stats.ExternalMeetings, stats.TotalMeetings); external > 70 {
		insights = append(insights, fmt.Sprintf("%.0f%% of meetings organized by others - you're reactive, not proactive", external))
		recommendations = append(recommendations, `Block 2-hour "focus time" blocks daily to own your calendar`)
	}

	if standup := stats.MeetingsByCategory[meeting.Standup]; standup > 10 {
		insights = append(insights, fmt.Sprintf("Spending %.1f hours/month in standups - that's a lot of status updates", standup))
		recommendations = append(recommendations, "Try async standups in Slack/Teams instead")
	}
	if allHands := stats.MeetingsByCategory[meeting.AllHands]; allHands > 5 {
		insights = append(insights, fmt.Sprintf("%.1f hours in all-hands meetings - hope they're worth it", allHands))
	}

	final := int(math.Round(math.Max(0, math.Min(100, score))))
	grade := GradeFor(final)
	if final >= 80 {
		insights = append(insights, goodControlInsight)
	}

	return FatigueScore{
		Score:           final,
		Grade:           grade,
		Badge:           badges[grade],
		Insights:        nonNil(insights),
		Recommendations: nonNil(recommendations),
	}
}

func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

func Badge(grade Grade) string {
	return badges[grade]
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part*100) / float64(total)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
