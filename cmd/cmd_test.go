package cmd

import (
    "bytes"
    "strings"
    "testing"
)

func run(t *testing.T, args ...string) (string, error) {
    t.Helper()
    for _, k := range []string{"PORT", "TTT_ADDR", "LOG_LEVEL", "TTT_AI_DELAY", "TTT_DIFFICULTY", "TTT_SEED"} {
        t.Setenv(k, "")
    }
    var out bytes.Buffer
    rootCmd.SetOut(&out)
    rootCmd.SetErr(&out)
    rootCmd.SetArgs(args)
    err := rootCmd.Execute()
    return out.String(), err
}

func TestSuggestHardTakesWin(t *testing.T) {
    out, err := run(t, "suggest", "--board", "OO_/XX_/___", "--player", "O", "--difficulty", "hard", "--log-level", "error")
    if err != nil {
        t.Fatalf("suggest: %v", err)
    }
    if !strings.Contains(out, "O plays 2") || !strings.Contains(out, "score: 10") {
        t.Fatalf("unexpected output %q", out)
    }
}

func TestSuggestRejectsBadBoard(t *testing.T) {
    if _, err := run(t, "suggest", "--board", "XX?", "--player", "O", "--difficulty", "easy"); err == nil {
        t.Fatalf("expected error for bad board")
    }
}

func TestSuggestFinishedBoard(t *testing.T) {
    if _, err := run(t, "suggest", "--board", "XXX/OO_/___", "--player", "O", "--difficulty", "medium"); err == nil {
        t.Fatalf("expected error for finished board")
    }
}

func TestSelfplayHardDraws(t *testing.T) {
    out, err := run(t, "selfplay", "--x", "hard", "--o", "hard", "--games", "2", "--seed", "5")
    if err != nil {
        t.Fatalf("selfplay: %v", err)
    }
    if !strings.Contains(out, "X wins: 0, O wins: 0, draws: 2") {
        t.Fatalf("unexpected output %q", out)
    }
}

func TestSelfplayRejectsZeroGames(t *testing.T) {
    if _, err := run(t, "selfplay", "--x", "easy", "--o", "easy", "--games", "0", "--seed", "1"); err == nil {
        t.Fatalf("expected error for zero games")
    }
}
