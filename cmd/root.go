package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chartrender/config"
	"chartrender/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:          "chartrender",
	Short:        "Renders rhythm game charts",
	Long:         `Renders BanG Dream! charts from Bestdori or local files into PNG overviews.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if err := logger.InitLogger(loaded.LogLevel); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
