package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atikulmunna/logscan/internal/analyzer"
	"github.com/atikulmunna/logscan/internal/config"
	"github.com/atikulmunna/logscan/internal/output"
	"github.com/atikulmunna/logscan/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-analyze whenever a debug log is created or written",
	Long: `Analyze the newest debug log, then keep watching the log directory and
print a fresh report each time a matching file changes.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", config.DefaultDebounce, "coalesce changes within this interval")
	rootCmd.AddCommand(watchCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nlogscan shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag(config.KeyDebounce, cmd.Flags().Lookup("debounce")); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	w, err := watcher.New(cfg.LogDirectory, cfg.Pattern, cfg.Debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	go w.Start(ctx)

	an := analyzer.New(cfg)
	var renderer output.Renderer = output.NewTextRendererTo(cmd.OutOrStdout())

	// Only the first pass is fatal; follow logs later failures.
	first, err := an.Run()
	if err != nil {
		return err
	}
	if err := renderer.Render(first); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "logscan watching %s for %s\n", w.Dir(), cfg.Pattern)

	return follow(w.Events, an.Run, renderer.Render)
}
