package categorizer

import (
	"regexp"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

type rule struct {
	category meeting.Category
	pattern  *regexp.Regexp
}

// High-precision title rules, checked before any oracle call.
var fastRules = []rule{
	{meeting.Standup, regexp.MustCompile(`(?i)(standup|scrum|daily sync)`)},
	{meeting.OneOnOne, regexp.MustCompile(`(?i)(1:1|one[ -]on[ -]one|1-1)`)},
	{meeting.Planning, regexp.MustCompile(`(?i)(sprint planning|okr planning)`)},
	{meeting.Interview, regexp.MustCompile(`(?i)(interview|screening)`)},
}

// Broad keyword rules used when the oracle is unavailable, in priority order.
var fallbackRules = []rule{
	{meeting.Standup, regexp.MustCompile(`(?i)(standup|daily|scrum|sync)`)},
	{meeting.OneOnOne, regexp.MustCompile(`(?i)(1:1|one on one|1-1|check.?in)`)},
	{meeting.Planning, regexp.MustCompile(`(?i)(planning|sprint|roadmap|strategy)`)},
	{meeting.Review, regexp.MustCompile(`(?i)(review|demo|retro|retrospective|showcase)`)},
	{meeting.Brainstorm, regexp.MustCompile(`(?i)(brainstorm|ideation|whiteboard)`)},
	{meeting.Training, regexp.MustCompile(`(?i)(training|workshop|learning|onboard)`)},
	{meeting.Interview, regexp.MustCompile(`(?i)(interview|screening|candidate)`)},
	{meeting.AllHands, regexp.MustCompile(`(?i)(all.?hands|town.?hall|company)`)},
	{meeting.Social, regexp.MustCompile(`(?i)(coffee|social|lunch|happy.?hour|team.?building)`)},
}

// FastMatch checks the title against the fast-path rules. ok is false when no rule matches.
func FastMatch(event meeting.RawEvent) (meeting.Category, bool) {
	for _, r := range fastRules {
		if r.pattern.MatchString(event.Summary) {
			return r.category, true
		}
	}
	return "", false
}

// FallbackMatch categorizes from title and description without the oracle. It never fails.
func FallbackMatch(event meeting.RawEvent) meeting.Category {
	combined := event.Summary + " " + event.Description
	for _, r := range fallbackRules {
		if r.pattern.MatchString(combined) {
			return r.category
		}
	}
	return meeting.Other
}
