package cmd

import (
    "fmt"
    "math/rand"

    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"

    "github.com/jaminalder/tictactoe-ai/internal/ai"
)

var (
    selfplayX     string
    selfplayO     string
    selfplayGames int
    selfplaySeed  int64
)

var selfplayCmd = &cobra.Command{
    Use:   "selfplay",
    Short: "Play AI against AI and print the results",
    Args:  cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        cfg, err := loadConfig()
        if err != nil {
            return err
        }
        x, err := ai.ParseDifficulty(selfplayX)
        if err != nil {
            return err
        }
        o, err := ai.ParseDifficulty(selfplayO)
        if err != nil {
            return err
        }
        if selfplayGames < 1 {
            return fmt.Errorf("games must be at least 1, got %d", selfplayGames)
        }
        seed := selfplaySeed
        if seed == 0 {
            seed = cfg.RandSeed()
        }
        log.Debug().Stringer("x", x).Stringer("o", o).Int("games", selfplayGames).Int64("seed", seed).Msg("selfplay")

        tally, err := ai.PlaySeries(x, o, selfplayGames, rand.New(rand.NewSource(seed)))
        if err != nil {
            return err
        }
        fmt.Fprintf(cmd.OutOrStdout(), "%s (X) vs %s (O), %d games: %s\n", x, o, selfplayGames, tally)
        return nil
    },
}

func init() {
    selfplayCmd.Flags().StringVar(&selfplayX, "x", "hard", "Difficulty for X")
    selfplayCmd.Flags().StringVar(&selfplayO, "o", "hard", "Difficulty for O")
    selfplayCmd.Flags().IntVarP(&selfplayGames, "games", "n", 10, "Number of games")
    selfplayCmd.Flags().Int64Var(&selfplaySeed, "seed", 0, "Random seed (0 uses config or the clock)")
    rootCmd.AddCommand(selfplayCmd)
}
