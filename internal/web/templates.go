package web

import (
    "bytes"
    "html/template"
    "net/http"

    "github.com/google/uuid"

    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

type templates struct {
    game  *template.Template
    board *template.Template
    index *template.Template
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-stream" hx-sse="swap:board">{{.BoardHTML}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Parse(boardTemplate))
    return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, data any) []byte {
    var buf bytes.Buffer
    _ = t.Execute(&buf, data)
    return buf.Bytes()
}

const indexTemplate = `<h1>Tic-Tac-Toe</h1>
<form action="/game" method="post">
  <input type="hidden" name="mode" value="friend">
  <button>Play with friend</button>
</form>
<form action="/game" method="post">
  <input type="hidden" name="mode" value="ai">
  <select name="difficulty">
    <option value="easy">Easy</option>
    <option value="medium">Medium</option>
    <option value="hard" selected>Hard</option>
  </select>
  <button>Play vs AI</button>
</form>`

const boardTemplate = `
<div id="board" class="{{.Mode}}">
  <div id="message" class="{{.MessageClass}}">{{.Message}}</div>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="grid">
    {{range .Cells}}
    <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
      <input type="hidden" name="cell" value="{{.Index}}">
      <button type="submit" class="cell {{.Class}}"{{if not .Playable}} disabled{{end}}>{{.Symbol}}</button>
    </form>
    {{end}}
  </div>
  {{if .Over}}
  <form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post">
    <button type="submit">New game</button>
  </form>
  {{end}}
</div>
`

type cellView struct {
    Index    int
    Symbol   string
    Class    string
    Playable bool
}

type boardView struct {
    ID           string
    Mode         string
    Cells        []cellView
    Message      string
    MessageClass string
    Over         bool
    Error        string
}

// newBoardView projects a game state into what the board fragment shows.
func newBoardView(gs app.GameState, errMsg string) boardView {
    g := gs.Game
    v := boardView{ID: gs.ID, Mode: gs.Mode.String(), Over: g.Over, Error: errMsg}

    var line [3]int
    won := false
    switch {
    case g.Over && g.Winner != domain.Empty:
        line, won = g.Board.WinningLine(g.Winner)
        v.Message = g.Winner.String() + " Wins!"
        v.MessageClass = lower(g.Winner) + "-win"
    case g.Over:
        v.Message = "It's a Draw!"
        v.MessageClass = "draw"
    case gs.AIThinking:
        v.Message = "AI is thinking..."
        v.MessageClass = "o-turn"
    default:
        v.Message = "Player " + g.Turn.String() + " Turn"
        v.MessageClass = lower(g.Turn) + "-turn"
    }

    v.Cells = make([]cellView, len(g.Board))
    for i, c := range g.Board {
        cv := cellView{Index: i, Playable: !g.Over && c == domain.Empty}
        if c != domain.Empty {
            cv.Symbol = c.String()
            cv.Class = lower(c)
        }
        if won && (i == line[0] || i == line[1] || i == line[2]) {
            cv.Class += " win-" + lower(g.Winner)
        }
        v.Cells[i] = cv
    }
    return v
}

func lower(c domain.Cell) string {
    switch c {
    case domain.X:
        return "x"
    case domain.O:
        return "o"
    }
    return ""
}

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
    if c, err := r.Cookie("player_id"); err == nil && c.Value != "" && c.Value != app.AIPlayerID {
        return c.Value
    }
    // Generate UUIDv4 for player ID
    v := uuid.NewString()
    http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
    return v
}
