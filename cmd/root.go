package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Turn documents into graded multiple-choice quizzes",
	Long: "QuizForge generates multiple choice quiz questions from document text,\n" +
		"using an LLM provider when one is configured and a deterministic\n" +
		"sentence-based synthesizer when none is.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
