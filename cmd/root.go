package cmd

import (
    "os"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"

    "github.com/jaminalder/tictactoe-ai/internal/config"
)

var (
    configPath string
    logLevel   string
    jsonLogs   bool
)

var rootCmd = &cobra.Command{
    Use:   "tictactoe",
    Short: "Play Tic-Tac-Toe against a friend or the computer",
    Long: `tictactoe serves a browser Tic-Tac-Toe game with an AI opponent
at three difficulty levels, and exposes the AI on the command line.

Start the web UI
	tictactoe serve

Ask the AI for a move
	tictactoe suggest --board "XX_/OO_/___" --player O --difficulty hard

Let two AIs play each other
	tictactoe selfplay --x hard --o medium --games 100
`,
    SilenceUsage: true,
    PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
        if !jsonLogs {
            log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
        }
        return nil
    },
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
    if err := rootCmd.Execute(); err != nil {
        log.Error().Err(err).Msg("command failed")
        os.Exit(1)
    }
}

// loadConfig reads the config file and lets --log-level override it.
func loadConfig() (config.Config, error) {
    cfg, err := config.Load(configPath)
    if err != nil {
        return cfg, err
    }
    if logLevel != "" {
        cfg.LogLevel = logLevel
    }
    lvl, err := cfg.Level()
    if err != nil {
        return cfg, err
    }
    zerolog.SetGlobalLevel(lvl)
    return cfg, nil
}

func init() {
    rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
    rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
    rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON instead of console text")
}
