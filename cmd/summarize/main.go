package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"code-summarizer/internal/app"
	"code-summarizer/internal/llm"
	"code-summarizer/internal/pipeline"
	"code-summarizer/internal/report"
)

// errBatchFailed marks runs where at least one file could not be summarized
// (or the server never became reachable). It maps to exit code 1; any other
// error is a usage/config problem and maps to exit code 2.
var errBatchFailed = errors.New("batch failed")

type cliOptions struct {
	output   string
	pdfPath  string
	model    string
	endpoint string
	provider string
	storeDSN string
	quiet    bool
}

func main() {
	os.Exit(execute())
}

func execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, errBatchFailed) {
			return 1
		}
		return 2
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "summarize [paths...]",
		Short: "Summarize code files with a locally hosted language model",
		Long: `Reads code files (or whole directories of them), sends each file's content
to a locally hosted inference server, and emits one generated summary per
file - to the terminal, an append-mode text report, or a PDF report.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "append summaries to this text file instead of only printing them")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&opts.model, "model", "", "model name (overrides LLM_MODEL)")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "inference server URL (overrides LLM_ENDPOINT)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "inference protocol: ollama or openai (overrides LLM_PROVIDER)")
	cmd.Flags().StringVar(&opts.storeDSN, "store-dsn", "", "Postgres DSN for run history (overrides DB_URL)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress terminal summaries; progress and errors still shown")
	return cmd
}

func run(ctx context.Context, opts cliOptions, args []string) error {
	deps, err := app.Build(app.Overrides{
		Provider: opts.provider,
		Endpoint: opts.endpoint,
		Model:    opts.model,
		DBURL:    opts.storeDSN,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		return err
	}
	defer func() {
		if err := deps.Store.Close(); err != nil {
			deps.Log.Warn("failed to close store", "err", err)
		}
	}()

	if err := llm.WaitReachable(ctx, deps.LLM, 3, 500*time.Millisecond); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(
			"Error: inference server unreachable at %s (is the model server running?): %v",
			deps.Config.Endpoint, err))
		return errBatchFailed
	}

	writers, err := buildWriters(opts, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		return err
	}

	sinks := make([]pipeline.Sink, len(writers))
	for i, w := range writers {
		sinks[i] = w
	}

	pipe, err := pipeline.New(pipeline.Options{
		LLM:             deps.LLM,
		Store:           deps.Store,
		Log:             deps.Log,
		Sinks:           sinks,
		Model:           deps.Config.Model,
		MaxFileSize:     deps.Config.MaxFileSize,
		MaxPromptTokens: deps.Config.MaxPromptTokens,
		OnStart: func(total int) {
			color.Cyan("Found %d files to process", total)
		},
		OnProgress: func(i, total int, path string) {
			color.Yellow("Processing (%d/%d): %s", i, total, path)
		},
	})
	if err != nil {
		return err
	}

	results, stats, runErr := pipe.Run(ctx, args)

	for _, w := range writers {
		if err := w.Close(stats); err != nil {
			deps.Log.Error("failed to finalize report", "err", err)
			stats.Failed++
		}
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: run interrupted: %v", runErr))
		return errBatchFailed
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Error processing %s: %v", res.Path, res.Err))
		}
	}
	if opts.output != "" && stats.Summarized > 0 {
		color.Green("\nAnalysis complete! Summary saved to: %s", opts.output)
	}
	if opts.pdfPath != "" && stats.Summarized > 0 {
		color.Green("Analysis complete! PDF report saved to: %s", opts.pdfPath)
	}
	fmt.Printf("Processed %d files (%d summarized, %d skipped, %d failed)\n",
		stats.Total, stats.Summarized, stats.Skipped, stats.Failed)

	if stats.Failed > 0 {
		return errBatchFailed
	}
	return nil
}

func buildWriters(opts cliOptions, args []string) ([]report.Writer, error) {
	var writers []report.Writer
	if !opts.quiet {
		writers = append(writers, report.NewConsoleWriter(os.Stdout))
	}
	if opts.output != "" {
		w, err := report.NewTextFileWriter(opts.output)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	if opts.pdfPath != "" {
		writers = append(writers, report.NewPDFWriter(opts.pdfPath, filepath.Base(args[0])))
	}
	return writers, nil
}
