package meeting

import "strings"

type Category string

const (
	Standup    Category = "standup"
	OneOnOne   Category = "one_on_one"
	Planning   Category = "planning"
	Review     Category = "review"
	Brainstorm Category = "brainstorm"
	Training   Category = "training"
	Interview  Category = "interview"
	AllHands   Category = "all_hands"
	Social     Category = "social"
	Other      Category = "other"
)

// Categories lists every category in its fixed priority order.
var Categories = []Category{
	Standup,
	OneOnOne,
	Planning,
	Review,
	Brainstorm,
	Training,
	Interview,
	AllHands,
	Social,
	Other,
}

// CategoryInfo is presentation metadata for a category.
type CategoryInfo struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

var categoryInfo = map[Category]CategoryInfo{
	Standup:    {Name: "Standup", Color: "#3b82f6", Description: "Daily team sync-ups and status updates"},
	OneOnOne:   {Name: "1:1", Color: "#8b5cf6", Description: "Individual check-ins with manager or direct reports"},
	Planning:   {Name: "Planning", Color: "#06b6d4", Description: "Sprint planning, roadmap discussions, strategy sessions"},
	Review:     {Name: "Review/Demo", Color: "#10b981", Description: "Sprint reviews, product demos, showcases"},
	Brainstorm: {Name: "Brainstorm", Color: "#f59e0b", Description: "Creative sessions, ideation, whiteboarding"},
	Training:   {Name: "Training", Color: "#ec4899", Description: "Learning sessions, workshops, onboarding"},
	Interview:  {Name: "Interview", Color: "#ef4444", Description: "Candidate interviews, screening calls"},
	AllHands:   {Name: "All-Hands", Color: "#6366f1", Description: "Company-wide meetings, town halls"},
	Social:     {Name: "Social", Color: "#14b8a6", Description: "Team building, coffee chats, virtual hangouts"},
	Other:      {Name: "Other", Color: "#64748b", Description: "Miscellaneous meetings"},
}

func (c Category) IsValid() bool {
	_, ok := categoryInfo[c]
	return ok
}

func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[Other]
}

// ParseCategory maps free text onto the closed category set. Anything unknown is Other.
func ParseCategory(value string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	if c.IsValid() {
		return c
	}
	return Other
}

// CategoryNames returns the category tags joined for use in prompts.
func CategoryNames() string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
