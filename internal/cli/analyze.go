package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/klokku/meeting-fatigue/internal/app"
	"github.com/klokku/meeting-fatigue/internal/config"
	"github.com/klokku/meeting-fatigue/internal/rest"
	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/analysis"
	"github.com/klokku/meeting-fatigue/pkg/analytics"
	"github.com/klokku/meeting-fatigue/pkg/ics"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	"github.com/spf13/cobra"
)

// The analysis service requires a token; an .ics file needs none.
const fileToken = "ics"

type analyzeOptions struct {
	icsPath  string
	email    string
	name     string
	timezone string
	days     int
	csv      bool
}

func newAnalyzeCmd(configPath *string, clock utils.Clock) *cobra.Command {
	opts := analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze meetings from an iCalendar file",
		Long: `Reads meetings from an .ics export, categorizes them and prints the
fatigue analysis as JSON (default) or CSV.

Examples:
  meeting-fatigue analyze --ics calendar.ics --email me@example.com
  meeting-fatigue analyze --ics calendar.ics --days 14 --csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runAnalyze(cmd, cfg, clock, opts)
		},
	}
	cmd.Flags().StringVar(&opts.icsPath, "ics", "", "path to the .ics calendar file")
	cmd.Flags().StringVar(&opts.email, "email", "", "your email, meetings organized by others count as external")
	cmd.Flags().StringVar(&opts.name, "name", "", "your display name")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "UTC", "IANA time zone for events without one")
	cmd.Flags().IntVar(&opts.days, "days", 0, "number of days to analyze (default from configuration)")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "print CSV instead of JSON")
	_ = cmd.MarkFlagRequired("ics")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg config.Application, clock utils.Clock, opts analyzeOptions) error {
	location, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
	}
	days := opts.days
	if days <= 0 {
		days = cfg.Analysis.DefaultDays
	}
	if days > cfg.Analysis.MaxDays {
		days = cfg.Analysis.MaxDays
	}

	o := app.NewOracle(cfg.Oracle)
	service := analysis.NewService(
		ics.NewSource(opts.icsPath, clock, location),
		analysis.StaticIdentity{Info: meeting.UserInfo{Email: opts.email, Name: opts.name}},
		app.NewCategorizer(cfg.Oracle, o, nil),
		app.NewEngine(cfg.Analysis),
		nil,
	)
	result, err := service.Analyze(cmd.Context(), fileToken, days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.csv {
		csv, err := analytics.NewCsvRenderer().Render(result.Analysis)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, csv)
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rest.Envelope{Success: true, Message: result.Message, Data: analysis.ToAnalysisDTO(result)})
}
