package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"henna-assistant-be/internal/bootstrap"
	"henna-assistant-be/internal/config"
	"henna-assistant-be/internal/pkg/logger"

	"github.com/spf13/cobra"
)

type options struct {
	knowledgeFile string
	promptFile    string
	provider      string
	model         string
	logFile       string
}

// app is the state shared by all subcommands once the root pre-run has loaded it.
type app struct {
	opts options
	cfg  *config.Config
	log  *logger.ZapLogger
	core *bootstrap.Core
}

// NewRootCommand builds the henna-chat command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "henna-chat",
		Short: "Terminal client for the henna studio assistant",
		Long: `henna-chat answers questions about the studio from the FAQ first and
falls back to the generation service. It can also browse the FAQ and the
service packages.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.knowledgeFile, "knowledge", "", "knowledge file (defaults to KNOWLEDGE_FILE or ./.streamlit/secrets.toml)")
	flags.StringVar(&a.opts.promptFile, "prompt", "", "prompt instruction YAML (defaults to PROMPT_FILE or the embedded one)")
	flags.StringVar(&a.opts.provider, "provider", "", "generation backend: gemini, openai, anthropic or ollama")
	flags.StringVar(&a.opts.model, "model", "", "model name override")
	flags.StringVar(&a.opts.logFile, "log-file", "logs/henna-chat.log", "where diagnostic logs are written")

	root.AddCommand(
		newAskCommand(a),
		newReplCommand(a),
		newFAQCommand(a),
		newPackagesCommand(a),
		newEventsCommand(a),
	)
	return root
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	a.cfg = config.Load()
	if a.opts.knowledgeFile != "" {
		a.cfg.App.KnowledgeFile = a.opts.knowledgeFile
	}
	if a.opts.promptFile != "" {
		a.cfg.App.PromptFile = a.opts.promptFile
	}
	if a.opts.provider != "" {
		a.cfg.Ai.LLMProvider = a.opts.provider
	}
	if a.opts.model != "" {
		a.cfg.Ai.LLMModel = a.opts.model
	}

	// Keep the terminal clean; diagnostics go to the file only
	a.log = logger.NewIsolatedLogger(a.opts.logFile)

	core, err := bootstrap.NewCore(cmd.Context(), a.cfg, a.log)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	a.core = core
	return nil
}
