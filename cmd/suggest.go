package cmd

import (
    "fmt"
    "math/rand"
    "strings"

    "github.com/spf13/cobra"

    "github.com/jaminalder/tictactoe-ai/internal/ai"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

var (
    suggestBoard      string
    suggestPlayer     string
    suggestDifficulty string
    suggestSeed       int64
)

var suggestCmd = &cobra.Command{
    Use:   "suggest",
    Short: "Print the AI's move for a board",
    Long: `Print the cell (0-8, row-major) the AI would play.

The board is nine cells of X, O or _ with optional / between rows.
The player defaults to whoever is to move on that board.`,
    Args: cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        cfg, err := loadConfig()
        if err != nil {
            return err
        }
        b, err := domain.ParseBoard(suggestBoard)
        if err != nil {
            return err
        }
        p := b.ToMove()
        switch strings.ToUpper(suggestPlayer) {
        case "":
        case "X":
            p = domain.X
        case "O":
            p = domain.O
        default:
            return fmt.Errorf("invalid player %q", suggestPlayer)
        }
        d, err := cfg.DefaultDifficulty()
        if suggestDifficulty != "" {
            d, err = ai.ParseDifficulty(suggestDifficulty)
        }
        if err != nil {
            return err
        }
        seed := suggestSeed
        if seed == 0 {
            seed = cfg.RandSeed()
        }

        idx, err := ai.NewChooser(rand.New(rand.NewSource(seed))).Choose(b, p, d)
        if err != nil {
            return err
        }
        next := b
        next[idx] = p
        out := cmd.OutOrStdout()
        fmt.Fprintf(out, "%s plays %d (row %d, col %d)\n", p, idx, idx/3, idx%3)
        fmt.Fprintf(out, "board: %s\n", next)
        if d == ai.Hard {
            sc, err := ai.Score(next, p, p.Opponent())
            if err != nil {
                return err
            }
            fmt.Fprintf(out, "score: %d\n", sc)
        }
        return nil
    },
}

func init() {
    suggestCmd.Flags().StringVarP(&suggestBoard, "board", "b", "_________", "Board as nine cells of X, O or _")
    suggestCmd.Flags().StringVarP(&suggestPlayer, "player", "p", "", "Player to move (X or O)")
    suggestCmd.Flags().StringVarP(&suggestDifficulty, "difficulty", "d", "", "easy, medium or hard (default from config)")
    suggestCmd.Flags().Int64Var(&suggestSeed, "seed", 0, "Random seed (0 uses config or the clock)")
    rootCmd.AddCommand(suggestCmd)
}
