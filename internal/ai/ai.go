// Package ai picks moves for a computer player at one of three difficulty tiers.
package ai

import (
    "errors"
    "fmt"
    "math/rand"
    "strings"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Difficulty selects the move strategy.
type Difficulty uint8

const (
    Easy Difficulty = iota
    Medium
    Hard
)

var (
    // ErrNoLegalMove is returned when asked to move on a full or finished board.
    ErrNoLegalMove = errors.New("no legal move")
    // ErrInvalidPlayer is returned when the side to play is neither X nor O.
    ErrInvalidPlayer = errors.New("invalid player")
)

var difficultyNames = map[string]Difficulty{
    "easy":   Easy,
    "medium": Medium,
    "hard":   Hard,
}

func (d Difficulty) String() string {
    switch d {
    case Easy:
        return "easy"
    case Medium:
        return "medium"
    case Hard:
        return "hard"
    default:
        return fmt.Sprintf("difficulty(%d)", uint8(d))
    }
}

// ParseDifficulty accepts easy, medium or hard in any case.
func ParseDifficulty(s string) (Difficulty, error) {
    d, ok := difficultyNames[strings.ToLower(strings.TrimSpace(s))]
    if !ok {
        return Easy, fmt.Errorf("invalid difficulty %q", s)
    }
    return d, nil
}

// Chooser picks moves using an injected random source. It is not safe for
// concurrent use because *rand.Rand is not.
type Chooser struct {
    rng *rand.Rand
}

// NewChooser returns a Chooser drawing randomness from rng.
func NewChooser(rng *rand.Rand) *Chooser {
    return &Chooser{rng: rng}
}

// Choose returns the cell index player p should play on b.
func (c *Chooser) Choose(b domain.Board, p domain.Cell, d Difficulty) (int, error) {
    return ChooseMove(b, p, d, c.rng)
}

// ChooseMove dispatches to the strategy for d. b is never modified.
func ChooseMove(b domain.Board, p domain.Cell, d Difficulty, rng *rand.Rand) (int, error) {
    if err := checkPlayer(p); err != nil {
        return -1, err
    }
    switch d {
    case Easy:
        return Random(b, rng)
    case Medium:
        return Heuristic(b, p, rng)
    case Hard:
        return Minimax(b, p)
    default:
        return -1, fmt.Errorf("choose move: unknown %v", d)
    }
}

func checkPlayer(p domain.Cell) error {
    if p != domain.X && p != domain.O {
        return fmt.Errorf("%w: %v", ErrInvalidPlayer, p)
    }
    return nil
}

func legalMoves(b domain.Board) ([]int, error) {
    if b.Status().Terminal() {
        return nil, ErrNoLegalMove
    }
    empty := b.Empty()
    if len(empty) == 0 {
        return nil, ErrNoLegalMove
    }
    return empty, nil
}

// Random returns an empty cell drawn uniformly.
func Random(b domain.Board, rng *rand.Rand) (int, error) {
    empty, err := legalMoves(b)
    if err != nil {
        return -1, err
    }
    return empty[rng.Intn(len(empty))], nil
}

// Heuristic looks one ply ahead: take a win, else block the first threat,
// else center, else a random corner, else any random cell.
func Heuristic(b domain.Board, p domain.Cell, rng *rand.Rand) (int, error) {
    if err := checkPlayer(p); err != nil {
        return -1, err
    }
    empty, err := legalMoves(b)
    if err != nil {
        return -1, err
    }
    if i, ok := completesLine(b, empty, p); ok {
        return i, nil
    }
    if i, ok := completesLine(b, empty, p.Opponent()); ok {
        return i, nil
    }
    if b[domain.Center] == domain.Empty {
        return domain.Center, nil
    }
    corners := make([]int, 0, len(domain.Corners))
    for _, i := range domain.Corners {
        if b[i] == domain.Empty {
            corners = append(corners, i)
        }
    }
    if len(corners) > 0 {
        return corners[rng.Intn(len(corners))], nil
    }
    return Random(b, rng)
}

// completesLine returns the lowest empty cell that would win the game for side.
func completesLine(b domain.Board, empty []int, side domain.Cell) (int, bool) {
    for _, i := range empty {
        next := b
        next[i] = side
        if next.HasWin(side) {
            return i, true
        }
    }
    return -1, false
}
