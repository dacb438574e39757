package domain

import (
    "errors"
    "testing"
)

func mustBoard(t *testing.T, s string) Board {
    t.Helper()
    b, err := ParseBoard(s)
    if err != nil {
        t.Fatalf("ParseBoard(%q): %v", s, err)
    }
    return b
}

func TestApplyMoveReturnsCopy(t *testing.T) {
    var b Board
    next, err := ApplyMove(b, 4, X)
    if err != nil {
        t.Fatalf("ApplyMove: %v", err)
    }
    if next[4] != X {
        t.Fatalf("expected X at 4, got %v", next[4])
    }
    if b[4] != Empty {
        t.Fatalf("input board must not change, got %v", b)
    }
}

func TestApplyMoveRejections(t *testing.T) {
    cases := []struct {
        name  string
        board string
        idx   int
        p     Cell
        want  error
    }{
        {"negative index", "___/___/___", -1, X, ErrOutOfBounds},
        {"index past end", "___/___/___", 9, X, ErrOutOfBounds},
        {"occupied", "X__/___/___", 0, O, ErrOccupied},
        {"after win", "XXX/OO_/___", 5, O, ErrGameOver},
        {"after draw", "XOX/XOO/OXX", 0, O, ErrGameOver},
        {"wrong turn", "X__/___/___", 1, X, ErrWrongTurn},
        {"not a player", "___/___/___", 0, Empty, ErrWrongTurn},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            b := mustBoard(t, tc.board)
            got, err := ApplyMove(b, tc.idx, tc.p)
            if !errors.Is(err, tc.want) {
                t.Fatalf("expected %v, got %v", tc.want, err)
            }
            if !errors.Is(err, ErrIllegalMove) {
                t.Fatalf("expected error to match ErrIllegalMove, got %v", err)
            }
            if got != b {
                t.Fatalf("board changed on rejection: %v -> %v", b, got)
            }
        })
    }
}

func TestEvaluateStatus(t *testing.T) {
    cases := []struct {
        board string
        last  Cell
        want  Status
    }{
        {"___/___/___", X, Status{Outcome: InProgress}},
        {"XXX/OO_/___", X, Status{Outcome: Won, Winner: X}},
        {"XX_/OOO/X__", O, Status{Outcome: Won, Winner: O}},
        {"O_X/_OX/X_O", O, Status{Outcome: Won, Winner: O}},
        {"XOX/XOO/OXX", X, Status{Outcome: Draw}},
        // full board where the last mover completed a line is a win, not a draw
        {"XOX/OXO/OXX", X, Status{Outcome: Won, Winner: X}},
    }
    for _, tc := range cases {
        b := mustBoard(t, tc.board)
        if got := EvaluateStatus(b, tc.last); got != tc.want {
            t.Fatalf("EvaluateStatus(%s, %v) = %+v, want %+v", tc.board, tc.last, got, tc.want)
        }
        if got := b.Status(); got != tc.want {
            t.Fatalf("Status(%s) = %+v, want %+v", tc.board, got, tc.want)
        }
    }
}

// Every reachable board evaluates to exactly one status.
func TestStatusIsExclusiveOverAllReachableBoards(t *testing.T) {
    seen := map[Board]bool{}
    var walk func(b Board)
    walk = func(b Board) {
        if seen[b] {
            return
        }
        seen[b] = true
        st := b.Status()
        xWin, oWin := b.HasWin(X), b.HasWin(O)
        if xWin && oWin {
            t.Fatalf("both players win on %v", b)
        }
        switch st.Outcome {
        case Won:
            if st.Winner != X && st.Winner != O {
                t.Fatalf("won without a winner on %v", b)
            }
        case Draw:
            if xWin || oWin || !b.Full() {
                t.Fatalf("bad draw on %v", b)
            }
        case InProgress:
            if xWin || oWin || b.Full() {
                t.Fatalf("bad in-progress on %v", b)
            }
            for _, i := range b.Empty() {
                next, err := ApplyMove(b, i, b.ToMove())
                if err != nil {
                    t.Fatalf("legal move %d rejected on %v: %v", i, b, err)
                }
                walk(next)
            }
        }
    }
    walk(Board{})
    // 5478 distinct legal positions are reachable from the empty board.
    if len(seen) != 5478 {
        t.Fatalf("expected 5478 reachable boards, got %d", len(seen))
    }
}

func TestParseBoardRoundTrip(t *testing.T) {
    b := mustBoard(t, "xx_ oo. ---")
    want := Board{X, X, Empty, O, O, Empty, Empty, Empty, Empty}
    if b != want {
        t.Fatalf("got %v, want %v", b, want)
    }
    if s := b.String(); s != "XX_/OO_/___" {
        t.Fatalf("String() = %q", s)
    }
    for _, bad := range []string{"", "XX", "XXXXXXXXXX", "XX?/___/___"} {
        if _, err := ParseBoard(bad); err == nil {
            t.Fatalf("expected error for %q", bad)
        }
    }
}

func TestToMove(t *testing.T) {
    if p := (Board{}).ToMove(); p != X {
        t.Fatalf("X should move first, got %v", p)
    }
    if p := mustBoard(t, "X__/___/___").ToMove(); p != O {
        t.Fatalf("expected O, got %v", p)
    }
    if p := mustBoard(t, "XO_/___/___").ToMove(); p != X {
        t.Fatalf("expected X, got %v", p)
    }
}
