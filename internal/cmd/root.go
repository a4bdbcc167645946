package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/atikulmunna/logscan/internal/analyzer"
	"github.com/atikulmunna/logscan/internal/config"
	"github.com/atikulmunna/logscan/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd analyzes the newest debug log when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "logscan",
	Short: "logscan: debug log analyzer",
	Long: `logscan finds the most recent debug log (logs/app_debug_*.log by default),
sorts its lines into errors, warnings and performance-metric blocks, and
prints the result.

Examples:
  logscan
  logscan --dir /srv/dmp/logs
  logscan watch
  logscan serve --addr :9000`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "logscan:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.logscan.yaml)")
	flags.StringP("dir", "d", config.DefaultLogDirectory, "directory holding the log files")
	flags.StringP("pattern", "p", config.DefaultPattern, "glob pattern for log file names")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	cobra.CheckErr(viper.BindPFlag(config.KeyLogDirectory, flags.Lookup("dir")))
	cobra.CheckErr(viper.BindPFlag(config.KeyPattern, flags.Lookup("pattern")))
}

func initConfig() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".logscan")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("logscan")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		cobra.CheckErr(fmt.Errorf("read config %s: %w", cfgFile, err))
	}
}

// loadConfig returns the merged, validated configuration.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := analyzer.New(cfg).Run()
	if err != nil {
		return err
	}

	var renderer output.Renderer = output.NewTextRendererTo(cmd.OutOrStdout())
	return renderer.Render(result)
}
