package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gubarz/roadforge/internal/config"
	"github.com/gubarz/roadforge/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile    string
	closeLog   = func() {}
	initFailed error
)

var rootCmd = &cobra.Command{
	Use:   "roadforge",
	Short: "Markdown study roadmaps",
	Long: `Turns markdown study roadmaps into structured weeks, days and tasks.

Roadmaps are plain markdown: "# WEEK N – Title" headers, "### Day N" and
"### Weekend" sub-headers, "- " task lines with an optional link on the
next line. Every other top-level section is kept as reference material.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initFailed
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(parseCmd, refsCmd, todayCmd, exportCmd, ingestCmd, checkCmd, libraryCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default searches ~/.config/roadforge, ~, .)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		initFailed = fmt.Errorf("loading config: %w", err)
		return
	}

	logger, closer, err := logging.New(config.GetLogLevel(), config.GetLogFile())
	if err != nil {
		initFailed = fmt.Errorf("setting up logging: %w", err)
		return
	}
	log.Logger = logger
	closeLog = closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd.Version = version
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}
