package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/httpapi"
	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/quizgen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the QuizForge HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		engine, cleanup, err := buildEngine(cmd, cfg.LLM, cfg.RequestLog, cfg.Engine)
		if err != nil {
			return err
		}
		defer cleanup()

		if engine == nil {
			fmt.Println("No LLM provider configured; serving fallback-generated questions only.")
		}

		srv := httpapi.New(cfg, engine)
		fmt.Printf("QuizForge API listening on %s\n", cfg.Addr)
		return http.ListenAndServe(cfg.Addr, srv.Handler())
	},
}

// buildEngine creates the model-path engine, or returns nil when no
// provider is configured anywhere (explicit config or standard key env
// vars). cleanup closes the request log sink.
func buildEngine(cmd *cobra.Command, llmCfg llm.Config, requestLog string, engineCfg quizgen.Config) (quizgen.Generator, func(), error) {
	cleanup := func() {}

	if llmCfg.Validate() != nil {
		discovered, ok := llm.Discover()
		if !ok {
			return nil, cleanup, nil
		}
		llmCfg = discovered
	}

	var sink llm.EventSink = llm.NopSink{}
	if requestLog != "" {
		fs, err := llm.NewFileSink(requestLog)
		if err != nil {
			return nil, cleanup, err
		}
		sink = fs
		cleanup = func() { fs.Close() }
	}

	provider, err := llm.NewProvider(cmd.Context(), llmCfg, sink)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return quizgen.New(provider, engineCfg), cleanup, nil
}
