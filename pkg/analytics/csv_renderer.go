package analytics

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
)

type CsvRenderer struct {
}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

// Render writes the summary, per-category hours, weekly trend and the meeting
// list as consecutive CSV sections separated by empty rows.
func (r *CsvRenderer) Render(result AnalysisResult) (string, error) {
	stats := result.Stats
	score := result.FatigueScore

	data := [][]string{
		{"Metric", "Value"},
		{"Score", strconv.Itoa(score.Score)},
		{"Grade", string(score.Grade)},
		{"Total meetings", strconv.Itoa(stats.TotalMeetings)},
		{"Total hours", formatHours(stats.TotalHours)},
		{"Average duration", durationToString(fromMinutes(stats.AverageMeetingDuration))},
		{"Longest meeting", durationToString(fromMinutes(float64(stats.LongestMeeting)))},
		{"Back-to-back", strconv.Itoa(stats.BackToBackMeetings)},
		{"Recurring", strconv.Itoa(stats.RecurringMeetings)},
		{"External", strconv.Itoa(stats.ExternalMeetings)},
		{},
		{"Category", "Hours"},
	}
	for _, category := range meeting.Categories {
		hours, ok := stats.MeetingsByCategory[category]
		if !ok {
			continue
		}
		data = append(data, []string{category.Info().Name, formatHours(Round1(hours))})
	}

	data = append(data, []string{}, []string{"Week", "Hours"})
	for _, point := range result.WeeklyTrend {
		data = append(data, []string{point.Week, formatHours(point.Hours)})
	}

	data = append(data, []string{}, []string{"Start", "Title", "Category", "Duration", "Attendees", "Recurring"})
	for _, m := range result.CategorizedMeetings {
		data = append(data, []string{
			m.StartTime.Format("02/01/2006 15:04"),
			m.Summary,
			m.Category.Info().Name,
			durationToString(time.Duration(m.Duration) * time.Minute),
			strconv.Itoa(m.AttendeeCount),
			strconv.FormatBool(m.IsRecurring),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func fromMinutes(value float64) time.Duration {
	return time.Duration(value * float64(time.Minute))
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 1, 64)
}

func durationToString(duration time.Duration) string {
	hours := strconv.Itoa(int(duration.Hours()))
	if len(hours) == 1 {
		hours = "0" + hours
	}
	minutes := strconv.Itoa(int(duration.Minutes()) % 60)
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	return hours + ":" + minutes
}
