package categorizer

import (
	"encoding/json"
	"fmt"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

const maxDescriptionRunes = 100

type promptMeeting struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
}

const promptTemplate = `You are a meeting categorization expert.
Categorize the following meetings into ONE of these categories: %s.

Meetings:
%s

Return a JSON object where keys are meeting IDs and values are the category names.
Example format: {"event_id_1": "standup", "event_id_2": "planning"}

Rules:
- "standup" = daily sync, daily standup, scrum, status update
- "one_on_one" = 1:1, check-in, catch up, manager sync
- "planning" = sprint planning, roadmap, strategy, OKRs
- "review" = demo, sprint review, showcase, retrospective
- "brainstorm" = brainstorming, ideation, creative session
- "training" = workshop, learning, onboarding
- "interview" = candidate interview, screening
- "all_hands" = company meeting, town hall
- "social" = coffee chat, team building, happy hour, lunch
- "other" = everything else`

func buildPrompt(batch []meeting.RawEvent) (string, error) {
	meetings := make([]promptMeeting, 0, len(batch))
	for _, e := range batch {
		meetings = append(meetings, promptMeeting{
			Id:    e.Id,
			Title: e.Summary,
			Desc:  truncate(e.Description, maxDescriptionRunes),
		})
	}
	list, err := json.MarshalIndent(meetings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("unable to encode meetings for prompt: %w", err)
	}
	return fmt.Sprintf(promptTemplate, meeting.CategoryNames(), list), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
