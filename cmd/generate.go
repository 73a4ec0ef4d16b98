package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/extract"
	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/quizgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate a question batch from a document file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if p, _ := cmd.Flags().GetString("provider"); cmd.Flags().Changed("provider") {
			cfg.LLM.Provider = p
		}
		if m, _ := cmd.Flags().GetString("model"); cmd.Flags().Changed("model") {
			setModel(&cfg.LLM, m)
		}

		counts := cfg.DefaultCounts
		if n, _ := cmd.Flags().GetInt("easy"); cmd.Flags().Changed("easy") {
			counts.Easy = n
		}
		if n, _ := cmd.Flags().GetInt("medium"); cmd.Flags().Changed("medium") {
			counts.Medium = n
		}
		if n, _ := cmd.Flags().GetInt("hard"); cmd.Flags().Changed("hard") {
			counts.Hard = n
		}
		if counts.Easy < 0 || counts.Medium < 0 || counts.Hard < 0 {
			return fmt.Errorf("question counts must be non-negative")
		}

		extractor, err := extract.ForFile(args[0])
		if err != nil {
			return err
		}
		text, err := extractor.ExtractText(args[0])
		if err != nil {
			return err
		}
		if !extract.Usable(text) {
			return fmt.Errorf("document text is too short to generate questions (need at least %d characters)", extract.MinUsableLength)
		}

		var questions []quizgen.Question
		if fallbackOnly, _ := cmd.Flags().GetBool("fallback"); fallbackOnly {
			questions = quizgen.GenerateFallback(text, counts)
		} else {
			engine, cleanup, err := buildEngine(cmd, cfg.LLM, cfg.RequestLog, cfg.Engine)
			if err != nil {
				return err
			}
			defer cleanup()

			if engine == nil {
				fmt.Fprintln(os.Stderr, "No LLM provider configured; using the fallback synthesizer.")
				questions = quizgen.GenerateFallback(text, counts)
			} else {
				questions, err = engine.Generate(cmd.Context(), text, counts)
				if err != nil {
					return err
				}
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	},
}

func init() {
	generateCmd.Flags().Int("easy", 0, "Number of easy questions (default from config)")
	generateCmd.Flags().Int("medium", 0, "Number of medium questions (default from config)")
	generateCmd.Flags().Int("hard", 0, "Number of hard questions (default from config)")
	generateCmd.Flags().Bool("fallback", false, "Skip the model path and use the fallback synthesizer")
	generateCmd.Flags().String("provider", "", "LLM provider override (anthropic, openai, gemini, openrouter)")
	generateCmd.Flags().String("model", "", "Model override for the selected provider")
}

// setModel applies a model override to whichever vendor is selected.
func setModel(cfg *llm.Config, model string) {
	switch cfg.Provider {
	case "anthropic":
		cfg.Anthropic.Model = model
	case "openai":
		cfg.OpenAI.Model = model
	case "gemini":
		cfg.Gemini.Model = model
	case "openrouter":
		cfg.OpenRouter.Model = model
	}
}
