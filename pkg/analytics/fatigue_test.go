package analytics

import (
	"testing"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
	"github.com/stretchr/testify/assert"
)

func TestComputeFatigueScore_HeavyCalendar(t *testing.T) {
	engine := NewEngine(Config{WindowDays: 30})
	stats := MeetingStats{
		TotalMeetings:          10,
		TotalHours:             120,
		AverageMeetingDuration: 70,
		BackToBackMeetings:     6,
		RecurringMeetings:      7,
		ExternalMeetings:       8,
		MeetingsByCategory:     map[meeting.Category]float64{meeting.Standup: 12, meeting.AllHands: 6},
	}

	score := engine.ComputeFatigueScore(stats, nil)

	assert.Equal(t, 25, score.Score)
	assert.Equal(t, GradeF, score.Grade)
	assert.Equal(t, "💀 Meeting Hell - Escape while you can!", score.Badge)
	assert.Equal(t, []string{
		"You spend 28.0 hours/week in meetings - that's insane!",
		"60% of your meetings are back-to-back - no time to breathe!",
		"Average meeting is 70 minutes - too long!",
		"70% are recurring - some are probably dead weight",
		"80% of meetings organized by others - you're reactive, not proactive",
		"Spending 12.0 hours/month in standups - that's a lot of status updates",
		"6.0 hours in all-hands meetings - hope they're worth it",
	}, score.Insights)
	assert.Equal(t, []string{
		"Decline at least 30% of meetings - you really don't need to be there",
		"Block 15-min buffers between meetings for sanity breaks",
		"Challenge every meeting over 45 minutes - most can be shorter",
		"Audit recurring meetings quarterly - cancel the zombies",
		`Block 2-hour "focus time" blocks daily to own your calendar`,
		"Try async standups in Slack/Teams instead",
	}, score.Recommendations)
}

func TestComputeFatigueScore_LightCalendar(t *testing.T) {
	engine := NewEngine(Config{WindowDays: 30})
	stats := MeetingStats{
		TotalMeetings:          2,
		TotalHours:             1,
		AverageMeetingDuration: 30,
		MeetingsByCategory:     map[meeting.Category]float64{},
	}

	score := engine.ComputeFatigueScore(stats, nil)

	assert.Equal(t, 100, score.Score)
	assert.Equal(t, GradeA, score.Grade)
	assert.Equal(t, []string{"You have good control over your calendar!"}, score.Insights)
	assert.NotNil(t, score.Recommendations)
	assert.Empty(t, score.Recommendations)
}

func TestComputeFatigueScore_ModerateTiers(t *testing.T) {
	engine := NewEngine(Config{WindowDays: 30})
	stats := MeetingStats{
		TotalMeetings:          10,
		TotalHours:             50, // 11.7 hours/week
		AverageMeetingDuration: 50,
		BackToBackMeetings:     4,
		RecurringMeetings:      6,
	}

	score := engine.ComputeFatigueScore(stats, nil)

	assert.Equal(t, 75, score.Score)
	assert.Equal(t, GradeC, score.Grade)
	assert.Equal(t, []string{
		"11.7 hours/week in meetings - not terrible, but room to improve",
		"40% of meetings are back-to-back",
		"Average meeting duration: 50 minutes",
	}, score.Insights)
	assert.Equal(t, []string{"Add calendar buffers to prevent burnout"}, score.Recommendations)
}

func TestComputeFatigueScore_ProjectsWeeklyHoursOverWindow(t *testing.T) {
	stats := MeetingStats{TotalMeetings: 20, TotalHours: 20, AverageMeetingDuration: 30}

	week := NewEngine(Config{WindowDays: 7}).ComputeFatigueScore(stats, nil)
	month := NewEngine(Config{WindowDays: 30}).ComputeFatigueScore(stats, nil)

	assert.Equal(t, 80, week.Score)
	assert.Equal(t, GradeB, week.Grade)
	assert.Equal(t, "20.0 hours/week in meetings is above average", week.Insights[0])
	assert.Equal(t, `Try "No Meeting Wednesdays" to get deep work done`, week.Recommendations[0])
	assert.Equal(t, 100, month.Score)
}

func TestComputeFatigueScore_DefaultWindow(t *testing.T) {
	stats := MeetingStats{TotalMeetings: 20, TotalHours: 120, AverageMeetingDuration: 30}

	score := NewEngine(Config{}).ComputeFatigueScore(stats, nil)

	assert.Equal(t, 70, score.Score)
	assert.Equal(t, "You spend 28.0 hours/week in meetings - that's insane!", score.Insights[0])
}

func TestComputeFatigueScore_NoMeetingsHasNoPercentages(t *testing.T) {
	score := NewEngine(Config{}).ComputeFatigueScore(MeetingStats{}, nil)

	assert.Equal(t, 100, score.Score)
	assert.Equal(t, GradeA, score.Grade)
}

func TestComputeFatigueScore_IsDeterministic(t *testing.T) {
	engine := NewEngine(Config{WindowDays: 14})
	stats := MeetingStats{
		TotalMeetings:          8,
		TotalHours:             30,
		AverageMeetingDuration: 55,
		BackToBackMeetings:     3,
		MeetingsByCategory:     map[meeting.Category]float64{meeting.Standup: 11},
	}

	assert.Equal(t, engine.ComputeFatigueScore(stats, nil), engine.ComputeFatigueScore(stats, nil))
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{100, GradeA},
		{90, GradeA},
		{89, GradeB},
		{80, GradeB},
		{79, GradeC},
		{70, GradeC},
		{69, GradeD},
		{60, GradeD},
		{59, GradeF},
		{0, GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.score), "score %d", tt.score)
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "🏆 Calendar Master - You actually own your time!", Badge(GradeA))
	assert.Equal(t, "✅ Solid - Minor tweaks needed", Badge(GradeB))
	assert.Equal(t, "⚠️ Meeting Overload - Time to push back", Badge(GradeC))
	assert.Equal(t, "🔥 Calendar Chaos - Your schedule owns you", Badge(GradeD))
}
