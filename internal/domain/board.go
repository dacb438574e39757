package domain

import (
    "fmt"
    "strings"
)

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// WinLines lists the index triples that win: rows, columns, diagonals.
var WinLines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

// Center and Corners are the cells the heuristic AI prefers.
const Center = 4

var Corners = [4]int{0, 2, 6, 8}

// Outcome is the coarse state of a board.
type Outcome uint8

const (
    InProgress Outcome = iota
    Won
    Draw
)

func (o Outcome) String() string {
    switch o {
    case Won:
        return "won"
    case Draw:
        return "draw"
    default:
        return "in progress"
    }
}

// Status is derived from a board on demand. Winner is set only when Outcome is Won.
type Status struct {
    Outcome Outcome
    Winner  Cell
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool { return s.Outcome != InProgress }

// ApplyMove returns a copy of b with p placed at idx. b itself is never modified.
func ApplyMove(b Board, idx int, p Cell) (Board, error) {
    if idx < 0 || idx >= len(b) {
        return b, ErrOutOfBounds
    }
    if b.Status().Terminal() {
        return b, ErrGameOver
    }
    if p != X && p != O {
        return b, fmt.Errorf("%w: %v is not a player", ErrWrongTurn, p)
    }
    if p != b.ToMove() {
        return b, ErrWrongTurn
    }
    if b[idx] != Empty {
        return b, ErrOccupied
    }
    b[idx] = p
    return b, nil
}

// EvaluateStatus reports Won(last) if last holds a full line, Draw if the board
// is full otherwise, and InProgress in every other case.
func EvaluateStatus(b Board, last Cell) Status {
    if last != Empty && b.HasWin(last) {
        return Status{Outcome: Won, Winner: last}
    }
    if b.Full() {
        return Status{Outcome: Draw}
    }
    return Status{Outcome: InProgress}
}

// Status evaluates the board without knowing who moved last.
func (b Board) Status() Status {
    for _, p := range [2]Cell{X, O} {
        if b.HasWin(p) {
            return Status{Outcome: Won, Winner: p}
        }
    }
    return EvaluateStatus(b, Empty)
}

// HasWin reports whether side holds all three cells of any win line.
func (b Board) HasWin(side Cell) bool {
    _, ok := b.WinningLine(side)
    return ok
}

// WinningLine returns the first line fully held by side.
func (b Board) WinningLine(side Cell) ([3]int, bool) {
    if side == Empty {
        return [3]int{}, false
    }
    for _, ln := range WinLines {
        if b[ln[0]] == side && b[ln[1]] == side && b[ln[2]] == side {
            return ln, true
        }
    }
    return [3]int{}, false
}

// Empty returns the indices of empty cells in ascending order.
func (b Board) Empty() []int {
    out := make([]int, 0, len(b))
    for i, c := range b {
        if c == Empty {
            out = append(out, i)
        }
    }
    return out
}

// Full reports whether every cell is occupied.
func (b Board) Full() bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}

// ToMove derives whose turn it is from the mark counts. X moves first.
func (b Board) ToMove() Cell {
    var nx, no int
    for _, c := range b {
        switch c {
        case X:
            nx++
        case O:
            no++
        }
    }
    if nx > no {
        return O
    }
    return X
}

// String renders the board as "XO_/___/___".
func (b Board) String() string {
    var sb strings.Builder
    for i, c := range b {
        if i > 0 && i%3 == 0 {
            sb.WriteByte('/')
        }
        sb.WriteString(c.String())
    }
    return sb.String()
}

// ParseBoard reads the form produced by String. '.', '-' and '_' are empty
// cells; '/' and whitespace are ignored.
func ParseBoard(s string) (Board, error) {
    var b Board
    n := 0
    for _, r := range s {
        var c Cell
        switch r {
        case '/', ' ', '\t', '\n':
            continue
        case 'x', 'X':
            c = X
        case 'o', 'O':
            c = O
        case '_', '.', '-':
            c = Empty
        default:
            return Board{}, fmt.Errorf("parse board: unexpected %q", r)
        }
        if n >= len(b) {
            return Board{}, fmt.Errorf("parse board: more than %d cells", len(b))
        }
        b[n] = c
        n++
    }
    if n != len(b) {
        return Board{}, fmt.Errorf("parse board: got %d cells, want %d", n, len(b))
    }
    return b, nil
}
