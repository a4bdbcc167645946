package cmd

import (
	"fmt"
	"os"

	"github.com/atikulmunna/logscan/internal/analyzer"
	"github.com/atikulmunna/logscan/internal/config"
	"github.com/atikulmunna/logscan/internal/hub"
	"github.com/atikulmunna/logscan/internal/model"
	"github.com/atikulmunna/logscan/internal/server"
	"github.com/atikulmunna/logscan/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest analysis over HTTP and WebSocket",
	Long: `Watch the log directory and expose the newest analysis at /api/report,
with live updates pushed to WebSocket clients on /ws.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().Duration("debounce", config.DefaultDebounce, "coalesce changes within this interval")
	cobra.CheckErr(viper.BindPFlag(config.KeyAddr, serveCmd.Flags().Lookup("addr")))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// watch and serve both define --debounce; bind the one being run.
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

	an := analyzer.New(cfg)
	first, err := an.Run()
	if err != nil {
		return err
	}

	analyses := make(chan model.Analysis, 1)
	h := hub.New(analyses)
	h.Publish(first)
	srv := server.New(h, cfg.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w.Start(ctx)
		return nil
	})
	g.Go(func() error {
		h.Start(ctx)
		return nil
	})
	g.Go(func() error {
		defer close(analyses)
		return follow(w.Events, an.Run, func(result model.Analysis) error {
			select {
			case analyses <- result:
			case <-ctx.Done():
			}
			return nil
		})
	})
	g.Go(func() error {
		return srv.Start(ctx)
	})

	fmt.Fprintf(os.Stderr, "logscan serving %s on %s\n", w.Dir(), cfg.Addr)
	return g.Wait()
}
