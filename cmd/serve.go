package cmd

import (
    "math/rand"
    "net/http"

    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"

    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Run the web UI",
    Args:  cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        cfg, err := loadConfig()
        if err != nil {
            return err
        }
        if serveAddr != "" {
            cfg.Addr = serveAddr
        }
        delay, _ := cfg.Delay()
        difficulty, _ := cfg.DefaultDifficulty()

        svc := app.NewService(
            app.WithAIDelay(delay),
            app.WithRand(rand.New(rand.NewSource(cfg.RandSeed()))),
            app.WithLogger(log.With().Str("component", "service").Logger()),
        )
        handler := web.NewServer(svc,
            web.WithDefaultDifficulty(difficulty),
            web.WithLogger(log.With().Str("component", "http").Logger()),
        )
        log.Info().Str("addr", cfg.Addr).Dur("ai_delay", delay).Stringer("difficulty", difficulty).Msg("starting server")
        return http.ListenAndServe(cfg.Addr, handler)
    },
}

func init() {
    serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
    rootCmd.AddCommand(serveCmd)
}
