package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategorizer(oracle Oracle, batchSize int) *Categorizer {
	return NewCategorizer(oracle, Config{BatchSize: batchSize, BatchDelay: 0}, nil)
}

func event(id, summary, description string) meeting.RawEvent {
	return meeting.RawEvent{Id: id, Summary: summary, Description: description}
}

func TestCategorize_FastPathSkipsOracle(t *testing.T) {
	oracle := NewFailingStubOracle()
	c := newTestCategorizer(oracle, 25)

	result := c.Categorize(context.Background(), []meeting.RawEvent{
		event("1", "Daily Standup", ""),
		event("2", "1:1 Anna / Tom", ""),
		event("3", "Q3 OKR Planning", ""),
		event("4", "Interview - Backend candidate", ""),
	})

	assert.Equal(t, map[string]meeting.Category{
		"1": meeting.Standup,
		"2": meeting.OneOnOne,
		"3": meeting.Planning,
		"4": meeting.Interview,
	}, result)
	assert.Equal(t, 0, oracle.Calls())
}

func TestCategorize_EmptyInput(t *testing.T) {
	oracle := NewFailingStubOracle()
	c := newTestCategorizer(oracle, 25)

	result := c.Categorize(context.Background(), nil)

	assert.Empty(t, result)
	assert.Equal(t, 0, oracle.Calls())
}

func TestCategorize_UsesOracleResponse(t *testing.T) {
	oracle := NewStubOracle(StubResponse{
		Text: "Here you go:\n```json\n{\"a\": \"review\", \"b\": \"lunch-ish\", \"c\": \"Social\"}\n```",
	})
	c := newTestCategorizer(oracle, 25)

	result := c.Categorize(context.Background(), []meeting.RawEvent{
		event("a", "Q2 Demo Day", ""),
		event("b", "Weekly Sync with Design", ""),
		event("c", "Friday drinks", ""),
		event("d", "Budget talk", ""),
	})

	assert.Equal(t, meeting.Review, result["a"])
	assert.Equal(t, meeting.Other, result["b"], "tags outside the closed set become other")
	assert.Equal(t, meeting.Social, result["c"])
	assert.Equal(t, meeting.Other, result["d"], "ids missing from the response become other")
	assert.Equal(t, 1, oracle.Calls())
}

func TestCategorize_OracleFailureFallsBackToPatterns(t *testing.T) {
	c := newTestCategorizer(NewFailingStubOracle(), 25)

	result := c.Categorize(context.Background(), []meeting.RawEvent{
		event("a", "Weekly Sync with Design", ""),
		event("b", "Team retro", ""),
		event("c", "Catch up", "quick check-in about the roadmap"),
		event("d", "Town Hall", ""),
		event("e", "Misc", ""),
	})

	assert.Equal(t, map[string]meeting.Category{
		"a": meeting.Standup,
		"b": meeting.Review,
		"c": meeting.OneOnOne,
		"d": meeting.AllHands,
		"e": meeting.Other,
	}, result)
}

func TestCategorize_MalformedResponseFallsBackPerBatch(t *testing.T) {
	oracle := NewStubOracle(
		StubResponse{Text: `{"a": "brainstorm"}`},
		StubResponse{Text: "Sorry, I can't categorize these meetings."},
	)
	c := newTestCategorizer(oracle, 1)

	result := c.Categorize(context.Background(), []meeting.RawEvent{
		event("a", "Product ideas", ""),
		event("b", "Onboarding session", ""),
	})

	assert.Equal(t, meeting.Brainstorm, result["a"])
	assert.Equal(t, meeting.Training, result["b"])
	assert.Equal(t, 2, oracle.Calls())
}

func TestCategorize_BatchesRemainingEvents(t *testing.T) {
	oracle := NewStubOracle(
		StubResponse{Text: `{"e0": "planning", "e1": "planning"}`},
		StubResponse{Text: `{"e2": "review", "e3": "review"}`},
		StubResponse{Err: errors.New("rate limited")},
	)
	c := newTestCategorizer(oracle, 2)

	events := make([]meeting.RawEvent, 0, 6)
	for i := 0; i < 5; i++ {
		events = append(events, event(fmt.Sprintf("e%d", i), fmt.Sprintf("Meeting %d", i), ""))
	}
	events = append(events, event("fast", "Scrum", ""))

	result := c.Categorize(context.Background(), events)

	require.Len(t, result, 6)
	assert.Equal(t, 3, oracle.Calls())
	assert.Equal(t, meeting.Planning, result["e0"])
	assert.Equal(t, meeting.Planning, result["e1"])
	assert.Equal(t, meeting.Review, result["e2"])
	assert.Equal(t, meeting.Review, result["e3"])
	assert.Equal(t, meeting.Other, result["e4"])
	assert.Equal(t, meeting.Standup, result["fast"])
	// only the last batch (a single event) is sent in the third prompt
	assert.Contains(t, oracle.Prompts[2], `"id": "e4"`)
	assert.NotContains(t, oracle.Prompts[2], `"id": "e3"`)
}

func TestCategorize_AlwaysFailingOracleEqualsFallbackMatcher(t *testing.T) {
	titles := []string{
		"Weekly Sync with Design", "Sprint review", "Whiteboard session", "Security training",
		"Candidate loop", "All-hands", "Coffee chat", "Roadmap", "Budget", "Check in with Sam",
		"Daily Standup", "Interview", "1-1", "Random", "Happy hour",
	}
	events := make([]meeting.RawEvent, 0, len(titles))
	for i, title := range titles {
		events = append(events, event(fmt.Sprintf("id-%d", i), title, ""))
	}

	result := newTestCategorizer(NewFailingStubOracle(), 4).Categorize(context.Background(), events)

	require.Len(t, result, len(events))
	for _, e := range events {
		assert.Equal(t, FallbackMatch(e), result[e.Id], e.Summary)
	}
}

func TestCategorize_EveryEventGetsValidCategory(t *testing.T) {
	oracle := NewStubOracle(
		StubResponse{Text: `{"x0": "standup", "x1": 42, "x2": null, "unknown": "review"}`},
		StubResponse{Text: `not json at all`},
	)
	c := newTestCategorizer(oracle, 3)
	events := []meeting.RawEvent{
		event("x0", "A", ""), event("x1", "B", ""), event("x2", "C", ""),
		event("x3", "D", ""), event("x4", "E", "sprint stuff"),
	}

	result := c.Categorize(context.Background(), events)

	require.Len(t, result, len(events))
	for _, e := range events {
		assert.True(t, result[e.Id].IsValid(), e.Id)
	}
	assert.NotContains(t, result, "unknown")
	assert.Equal(t, meeting.Other, result["x1"])
	assert.Equal(t, meeting.Planning, result["x4"])
}

func TestCategorize_PromptContainsCategoriesAndTruncatedDescription(t *testing.T) {
	oracle := NewStubOracle(StubResponse{Text: `{}`})
	c := newTestCategorizer(oracle, 25)
	longDescription := strings.Repeat("x", 150)

	c.Categorize(context.Background(), []meeting.RawEvent{event("1", "Budget review", longDescription)})

	require.Equal(t, 1, oracle.Calls())
	prompt := oracle.Prompts[0]
	assert.Contains(t, prompt, meeting.CategoryNames())
	assert.Contains(t, prompt, `"title": "Budget review"`)
	assert.Contains(t, prompt, `"desc": "`+strings.Repeat("x", 100)+`"`)
	assert.NotContains(t, prompt, strings.Repeat("x", 101))
}

func TestCategorize_WaitsBetweenBatchesOnly(t *testing.T) {
	oracle := NewStubOracle(StubResponse{Text: `{}`}, StubResponse{Text: `{}`})
	c := NewCategorizer(oracle, Config{BatchSize: 1, BatchDelay: 30 * time.Millisecond}, nil)

	start := time.Now()
	c.Categorize(context.Background(), []meeting.RawEvent{event("1", "A", ""), event("2", "B", "")})
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Less(t, elapsed, 60*time.Millisecond*10)
}

func TestCategorize_CancelledContextStillCoversEveryEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCategorizer(NewFailingStubOracle(), Config{BatchSize: 1, BatchDelay: time.Hour}, nil)

	result := c.Categorize(ctx, []meeting.RawEvent{event("1", "Lunch", ""), event("2", "Demo", "")})

	assert.Equal(t, meeting.Social, result["1"])
	assert.Equal(t, meeting.Review, result["2"])
}

func TestNewCategorizer_Defaults(t *testing.T) {
	c := NewCategorizer(NewFailingStubOracle(), Config{BatchDelay: -time.Second}, nil)
	assert.Equal(t, DefaultBatchSize, c.batchSize)
	assert.Equal(t, time.Duration(0), c.batchDelay)
}
