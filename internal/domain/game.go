package domain

import (
    "errors"
    "fmt"
)

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return "_"
    }
}

// Opponent returns the other player; Empty stays Empty.
func (c Cell) Opponent() Cell {
    switch c {
    case X:
        return O
    case O:
        return X
    default:
        return Empty
    }
}

// Game holds the current state of a Tic-Tac-Toe match.
type Game struct {
    Board  Board
    Turn   Cell
    Winner Cell
    Over   bool
    Moves  int
}

// Errors returned by domain operations. All of them wrap ErrIllegalMove.
var (
    ErrIllegalMove = errors.New("illegal move")
    ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrIllegalMove)
    ErrOccupied    = fmt.Errorf("%w: cell occupied", ErrIllegalMove)
    ErrGameOver    = fmt.Errorf("%w: game over", ErrIllegalMove)
    ErrWrongTurn   = fmt.Errorf("%w: wrong turn", ErrIllegalMove)
)

// New returns a new game with X to move.
func New() Game {
    return Game{Turn: X}
}

// Reset puts the game back to an empty board with X to move.
func (g *Game) Reset() {
    *g = New()
}

// PlayAt attempts to play the current turn at cell index idx (0..8).
func (g *Game) PlayAt(idx int) error {
    if g.Over {
        return ErrGameOver
    }
    next, err := ApplyMove(g.Board, idx, g.Turn)
    if err != nil {
        return err
    }
    g.Board = next
    g.Moves++

    st := EvaluateStatus(g.Board, g.Turn)
    switch st.Outcome {
    case Won:
        g.Winner = st.Winner
        g.Over = true
    case Draw:
        g.Winner = Empty
        g.Over = true
    default:
        g.Turn = g.Turn.Opponent()
    }
    return nil
}
