package ai

import (
    "math"
    "sync"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Leaf scores. Depth does not discount them.
const (
    winScore  = 10
    lossScore = -10
    drawScore = 0
)

// Minimax searches the whole game tree and returns the cell with the
// strictly greatest score for p, lowest index first on ties. Top-level
// branches are scored concurrently on their own board copies.
func Minimax(b domain.Board, p domain.Cell) (int, error) {
    if err := checkPlayer(p); err != nil {
        return -1, err
    }
    empty, err := legalMoves(b)
    if err != nil {
        return -1, err
    }

    scores := make([]int, len(empty))
    var wg sync.WaitGroup
    for n, i := range empty {
        wg.Add(1)
        go func(n, i int) {
            defer wg.Done()
            next := b
            next[i] = p
            scores[n] = score(next, p, p.Opponent())
        }(n, i)
    }
    wg.Wait()

    best, move := math.MinInt, -1
    for n, s := range scores {
        if s > best {
            best, move = s, empty[n]
        }
    }
    return move, nil
}

// Score reports the minimax value of b for me with toMove playing next.
func Score(b domain.Board, me, toMove domain.Cell) (int, error) {
    if err := checkPlayer(me); err != nil {
        return 0, err
    }
    if err := checkPlayer(toMove); err != nil {
        return 0, err
    }
    return score(b, me, toMove), nil
}

func score(b domain.Board, me, toMove domain.Cell) int {
    switch {
    case b.HasWin(me):
        return winScore
    case b.HasWin(me.Opponent()):
        return lossScore
    case b.Full():
        return drawScore
    }

    maximizing := toMove == me
    best := math.MaxInt
    if maximizing {
        best = math.MinInt
    }
    for i, c := range b {
        if c != domain.Empty {
            continue
        }
        next := b
        next[i] = toMove
        s := score(next, me, toMove.Opponent())
        if maximizing && s > best || !maximizing && s < best {
            best = s
        }
    }
    return best
}
