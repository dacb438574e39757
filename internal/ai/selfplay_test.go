package ai

import (
    "math/rand"
    "testing"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

func TestHardVersusHardDraws(t *testing.T) {
    g, err := PlayOut(Hard, Hard, newRand())
    if err != nil {
        t.Fatalf("playout: %v", err)
    }
    if !g.Over || g.Winner != domain.Empty || g.Moves != 9 {
        t.Fatalf("expected a draw, got winner=%v moves=%d board=%v", g.Winner, g.Moves, g.Board)
    }
}

func TestHardNeverLosesAgainstWeakerTiers(t *testing.T) {
    rng := rand.New(rand.NewSource(42))
    for _, other := range []Difficulty{Easy, Medium} {
        asX, err := PlaySeries(Hard, other, 10, rng)
        if err != nil {
            t.Fatalf("hard vs %v: %v", other, err)
        }
        if asX.OWins != 0 {
            t.Fatalf("hard as X lost to %v: %v", other, asX)
        }
        asO, err := PlaySeries(other, Hard, 10, rng)
        if err != nil {
            t.Fatalf("%v vs hard: %v", other, err)
        }
        if asO.XWins != 0 {
            t.Fatalf("hard as O lost to %v: %v", other, asO)
        }
    }
}

// Walks every line the opponent can play and checks minimax never loses.
func TestHardNeverLosesExhaustive(t *testing.T) {
    for _, me := range []domain.Cell{domain.X, domain.O} {
        games := 0
        var walk func(g domain.Game)
        walk = func(g domain.Game) {
            if g.Over {
                games++
                if g.Winner == me.Opponent() {
                    t.Fatalf("minimax as %v lost: %v", me, g.Board)
                }
                return
            }
            if g.Turn == me {
                idx, err := Minimax(g.Board, me)
                if err != nil {
                    t.Fatalf("minimax on %v: %v", g.Board, err)
                }
                if err := g.PlayAt(idx); err != nil {
                    t.Fatalf("minimax picked illegal %d on %v: %v", idx, g.Board, err)
                }
                walk(g)
                return
            }
            for _, i := range g.Board.Empty() {
                next := g
                if err := next.PlayAt(i); err != nil {
                    t.Fatalf("opponent move %d on %v: %v", i, g.Board, err)
                }
                walk(next)
            }
        }
        walk(domain.New())
        if games == 0 {
            t.Fatalf("no games explored for %v", me)
        }
    }
}

func TestTallyString(t *testing.T) {
    var tl Tally
    tl.Add(domain.Game{Over: true, Winner: domain.X})
    tl.Add(domain.Game{Over: true})
    if got := tl.String(); got != "X wins: 1, O wins: 0, draws: 1" {
        t.Fatalf("unexpected tally %q", got)
    }
}
