package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pinpager/pkg/auth"
	"pinpager/pkg/bot"
	"pinpager/pkg/config"
	"pinpager/pkg/logger"
)

var (
	// Run command flags
	tokenFlag   string
	pollTimeout int
	concurrent  int
	rateLimit   int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bot and listen for chat updates",
	Long: `Start the Telegram long-poll loop and serve browsing sessions until
interrupted. SIGINT or SIGTERM stops the loop gracefully.

The bot token is resolved in order from the --token flag, the
PINPAGER_TELEGRAM_TOKEN environment variable, the configuration file,
and finally the system keychain ('pinpager auth set').`,
	Example: `  # Start with the token stored in the keychain
  pinpager run

  # Start with an explicit token and a lower scrape budget
  pinpager run --token 123456:ABC-DEF --rate-limit 30`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&tokenFlag, "token", "", "Telegram bot token")
	runCmd.Flags().IntVar(&pollTimeout, "poll-timeout", 30, "long-poll timeout in seconds")
	runCmd.Flags().IntVar(&concurrent, "concurrent", 3, "concurrent image fetches per page")
	runCmd.Flags().IntVar(&rateLimit, "rate-limit", 60, "outbound Pinterest requests per minute")
}

func runBot(cmd *cobra.Command, args []string) error {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if tokenFlag != "" {
		flags["token"] = tokenFlag
	}
	if pollTimeout != 30 {
		flags["poll-timeout"] = pollTimeout
	}
	if concurrent != 3 {
		flags["concurrent"] = concurrent
	}
	if rateLimit != 60 {
		flags["rate-limit"] = rateLimit
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return err
	}
	log := logger.GetLogger()

	// Fall back to the keychain when no token came from flag, env, or file
	if cfg.Telegram.Token == "" {
		store, err := auth.NewTokenStore()
		if err == nil {
			token, err := store.Retrieve()
			if err == nil {
				cfg.Telegram.Token = token
				log.Info("using bot token from keychain")
			}
		}
	}
	if cfg.Telegram.Token == "" {
		return errors.New("no bot token found: run 'pinpager auth set' or set PINPAGER_TELEGRAM_TOKEN")
	}

	b, err := bot.New(cfg, log)
	if err != nil {
		log.WithError(err).Error("failed to start bot")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return b.Run(ctx)
}
