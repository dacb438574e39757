package ai

import (
    "fmt"
    "math/rand"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Tally counts the results of a series of games.
type Tally struct {
    XWins int
    OWins int
    Draws int
}

func (t Tally) String() string {
    return fmt.Sprintf("X wins: %d, O wins: %d, draws: %d", t.XWins, t.OWins, t.Draws)
}

// Add records the outcome of one finished game.
func (t *Tally) Add(g domain.Game) {
    switch {
    case g.Winner == domain.X:
        t.XWins++
    case g.Winner == domain.O:
        t.OWins++
    default:
        t.Draws++
    }
}

// PlayOut plays one game from the empty board with x and o choosing moves
// for their sides, and returns the finished game.
func PlayOut(x, o Difficulty, rng *rand.Rand) (domain.Game, error) {
    g := domain.New()
    for !g.Over {
        d := x
        if g.Turn == domain.O {
            d = o
        }
        idx, err := ChooseMove(g.Board, g.Turn, d, rng)
        if err != nil {
            return g, fmt.Errorf("move %d: %w", g.Moves+1, err)
        }
        if err := g.PlayAt(idx); err != nil {
            return g, fmt.Errorf("move %d at %d: %w", g.Moves+1, idx, err)
        }
    }
    return g, nil
}

// PlaySeries plays n games and tallies the results.
func PlaySeries(x, o Difficulty, n int, rng *rand.Rand) (Tally, error) {
    var t Tally
    for i := 0; i < n; i++ {
        g, err := PlayOut(x, o, rng)
        if err != nil {
            return t, fmt.Errorf("game %d: %w", i+1, err)
        }
        t.Add(g)
    }
    return t, nil
}
