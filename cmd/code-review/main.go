// Command code-review asks an LLM agent to review the changes in a git
// repository. The agent can inspect status and diffs, read and rewrite files,
// and search the web for solutions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Cyclone1070/codereview/internal/config"
	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/provider/anthropic"
	"github.com/Cyclone1070/codereview/internal/provider/gemini"
	"github.com/Cyclone1070/codereview/internal/provider/openai"
	"github.com/Cyclone1070/codereview/internal/repo"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/tool/file"
	"github.com/Cyclone1070/codereview/internal/tool/git"
	"github.com/Cyclone1070/codereview/internal/tool/search"
	"github.com/Cyclone1070/codereview/internal/tool/service/executor"
	"github.com/Cyclone1070/codereview/internal/tool/service/fs"
	"github.com/Cyclone1070/codereview/internal/tool/service/path"
	"github.com/Cyclone1070/codereview/internal/ui"
	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/Cyclone1070/codereview/internal/workflow/agent"
	"github.com/Cyclone1070/codereview/internal/workflow/conversation"
	"github.com/Cyclone1070/codereview/internal/workflow/driver"
	"github.com/Cyclone1070/codereview/internal/workflow/toolmanager"
	"github.com/chainguard-dev/clog"
	"golang.org/x/term"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = "usage: code-review <user_input> [repo_path]"

// llmProvider is what the agent needs from a model backend.
type llmProvider interface {
	Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error)
}

// Dependencies holds the components required to run a review.
type Dependencies struct {
	Config          *config.Config
	Env             *config.Env
	ProviderFactory func(context.Context, *config.Config, *config.Env) (llmProvider, error)
	Stdout          io.Writer
	Styled          bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := config.LoadEnv(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(env.LogLevel)}))
	ctx = clog.WithLogger(ctx, clog.New(logger.Handler()))

	cfg, err := config.Load()
	if err != nil {
		clog.FromContext(ctx).With("error", err).Warn("failed to load config, using defaults")
		cfg = config.DefaultConfig()
	}

	deps := Dependencies{
		Config:          cfg,
		Env:             env,
		ProviderFactory: newProvider,
		Stdout:          os.Stdout,
		Styled:          term.IsTerminal(int(os.Stdout.Fd())),
	}
	os.Exit(run(ctx, os.Args[1:], deps))
}

// run executes one review and returns the process exit code.
func run(ctx context.Context, args []string, deps Dependencies) int {
	log := clog.FromContext(ctx)

	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		fmt.Fprintln(os.Stderr, usage)
		return exitUsage
	}
	input, dir := args[0], "."
	if len(args) == 2 {
		dir = args[1]
	}

	if err := deps.Env.Apply(deps.Config); err != nil {
		log.With("error", err).Error("invalid configuration")
		return exitFailure
	}

	r, err := repo.Open(dir)
	if err != nil {
		log.With("error", err).Error("cannot open repository")
		return exitFailure
	}
	head, err := r.Head()
	if err != nil {
		log.With("error", err).Debug("cannot resolve HEAD")
	}
	log.With("root", r.Root()).With("dir", r.Dir()).With("branch", head).Info("reviewing repository")

	llm, err := deps.ProviderFactory(ctx, deps.Config, deps.Env)
	if err != nil {
		log.With("error", err).Error("cannot create provider")
		return exitFailure
	}

	tools, err := createTools(ctx, deps.Config, deps.Env, r.Dir())
	if err != nil {
		log.With("error", err).Error("cannot register tools")
		return exitFailure
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan workflow.Event, 64)
	verbose := !deps.Env.Quiet

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if deps.Styled {
			tr := ui.NewTranscript(deps.Stdout, ui.NewMarkdownRenderer(80), verbose, ui.DefaultSpinner, cancel)
			err := tr.Run(events)
			if err == nil {
				return
			}
			log.With("error", err).Warn("terminal output failed, falling back to plain text")
		}
		ui.NewPrinter(deps.Stdout, verbose).Run(context.WithoutCancel(ctx), events)
	}()

	reasoner := agent.New(llm, tools, deps.Config, events)
	d := driver.New(conversation.NewLoop(reasoner), events, nil, deps.Config.Agent.MaxTurns)
	_, runErr := d.Run(ctx, input)

	workflow.Emit(context.WithoutCancel(ctx), events, workflow.DoneEvent{Err: runErr})
	close(events)
	wg.Wait()

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			log.Info("review cancelled")
		}
		return exitFailure
	}
	return exitOK
}

// newProvider dials the backend named in cfg.Provider.Name.
func newProvider(ctx context.Context, cfg *config.Config, env *config.Env) (llmProvider, error) {
	key, err := env.APIKey(cfg.Provider.Name)
	if err != nil {
		return nil, err
	}
	opts := provider.OptionsFromConfig(cfg.Provider)

	switch cfg.Provider.Name {
	case config.ProviderOpenAI:
		return openai.Dial(key, opts), nil
	case config.ProviderAnthropic:
		return anthropic.Dial(key, opts), nil
	case config.ProviderGemini:
		client, err := gemini.Dial(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.New(client, opts), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Name)
	}
}

// createTools wires the review tools against dir, the canonical working
// directory. Relative paths and git commands resolve from there.
func createTools(ctx context.Context, cfg *config.Config, env *config.Env, root string) (*toolmanager.ToolManager, error) {
	resolver := path.NewResolver(root)
	runner := git.NewRunner(executor.New(cfg), cfg, root)
	accessor := file.NewAccessor(fs.NewOSFileSystem(), resolver, cfg)

	tools, err := toolmanager.NewToolManager(
		git.NewStatusTool(runner),
		git.NewDiffTool(runner, resolver),
		file.NewReadFileTool(accessor),
		file.NewWriteFileTool(accessor),
	)
	if err != nil {
		return nil, err
	}

	if env.SerpAPIKey == "" {
		clog.FromContext(ctx).With("tools", tools.Names()).Warn("SERPAPI_API_KEY is not set, search_solution is disabled")
		return tools, nil
	}
	client := search.NewSerpAPIClient(nil, cfg, env.SerpAPIKey)
	if err := tools.Register(search.NewSearchTool(client)); err != nil {
		return nil, err
	}
	clog.FromContext(ctx).With("tools", tools.Names()).Debug("tools registered")
	return tools, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}
