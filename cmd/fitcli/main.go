package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peakfit/fitcli/internal/api"
	"github.com/peakfit/fitcli/internal/chat"
	"github.com/peakfit/fitcli/internal/config"
	"github.com/peakfit/fitcli/internal/session"
	"github.com/peakfit/fitcli/internal/stats"
)

type cliApp struct {
	cfg   *config.Config
	log   *log.Logger
	sess  *session.Store
	stats *stats.StatsUpdater
	api   *api.Client
	chat  *chat.Manager
}

var app *cliApp

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fitcli", "tokens.yaml")
}

func initApp(cmd *cobra.Command, _ []string) error {
	logger := log.New(os.Stderr, "[fitcli] ", log.LstdFlags)

	cfg, err := config.NewConfig(
		viper.GetString("api_url"),
		viper.GetString("ws_url"),
		viper.GetString("token_file"),
		viper.GetString("google_client_id"),
	)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sess := session.NewStore(cfg.TokenFile)

	statsUpdater := stats.NewStatsUpdater()
	statsUpdater.Run()

	apiClient := api.NewClient(cfg.APIBaseURL, sess, logger, statsUpdater)

	app = &cliApp{
		cfg:   cfg,
		log:   logger,
		sess:  sess,
		stats: statsUpdater,
		api:   apiClient,
		chat:  chat.NewManager(apiClient, cfg.WSBaseURL, sess, logger, statsUpdater),
	}

	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:               "fitcli",
		Short:             "Terminal client for the PeakFit coaching platform",
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "http://127.0.0.1:8000/api/v1", "backend REST base URL")
	flags.String("ws-url", "ws://127.0.0.1:8001", "backend websocket base URL")
	flags.String("token-file", defaultTokenFile(), "file holding the session tokens")
	flags.String("google-client-id", "", "google oauth client id; empty disables google sign-in")

	viper.BindPFlag("api_url", flags.Lookup("api-url"))
	viper.BindPFlag("ws_url", flags.Lookup("ws-url"))
	viper.BindPFlag("token_file", flags.Lookup("token-file"))
	viper.BindPFlag("google_client_id", flags.Lookup("google-client-id"))

	viper.SetEnvPrefix("FITCLI")
	viper.AutomaticEnv()

	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "fitcli"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.ReadInConfig() // optional, flags and env still apply
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		registerCmd(),
		resetPasswordCmd(),
		accountCmd(),
		profileCmd(),
		dietCmd(),
		trainersCmd(),
		trainerCmd(),
		adminCmd(),
		chatCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
