package cli

import (
	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/spf13/cobra"
)

const DefaultConfigPath = "./config/application.yaml"

// NewRootCmd builds the meeting-fatigue command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&utils.SystemClock{})
}

func newRootCmd(clock utils.Clock) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "meeting-fatigue",
		Short: "Meeting fatigue analyzer",
		Long:  "Categorizes calendar meetings and grades how much of your time they take.",
		// errors are reported once by main
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath, "path to the YAML configuration file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newAnalyzeCmd(&configPath, clock))
	return cmd
}
