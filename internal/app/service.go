package app

import (
    "context"
    "errors"
    "fmt"
    "math/rand"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/rs/zerolog"

    "github.com/jaminalder/tictactoe-ai/internal/ai"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrNotAPlayer  = errors.New("not a player")
)

// AIPlayerID occupies the O seat in games against the computer.
const AIPlayerID = "ai"

// Mode selects who plays O.
type Mode uint8

const (
    ModeFriend Mode = iota
    ModeAI
)

func (m Mode) String() string {
    if m == ModeAI {
        return "ai"
    }
    return "friend"
}

// ParseMode accepts "friend" or "ai".
func ParseMode(s string) (Mode, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "", "friend":
        return ModeFriend, nil
    case "ai":
        return ModeAI, nil
    }
    return ModeFriend, fmt.Errorf("invalid mode %q", s)
}

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID         string
    Game       domain.Game
    Mode       Mode
    Difficulty ai.Difficulty
    X          string
    O          string
    // AIThinking is set while a delayed AI reply is pending.
    AIThinking bool
    Created    time.Time
    Updated    time.Time

    // aiTurn numbers scheduled replies; a reply whose number is stale is dropped.
    aiTurn  uint64
    aiTimer *time.Timer
}

// subscriberBuffer fits a human move and the AI reply plus some slack.
const subscriberBuffer = 4

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Option configures a Service.
type Option func(*Service)

// WithAIDelay defers the AI reply by d. Zero replies before Play returns.
func WithAIDelay(d time.Duration) Option { return func(s *Service) { s.aiDelay = d } }

// WithRand sets the random source used by the AI.
func WithRand(rng *rand.Rand) Option { return func(s *Service) { s.chooser = ai.NewChooser(rng) } }

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// Service manages games and subscribers.
type Service struct {
    mu      sync.Mutex
    games   map[string]*GameState
    subs    map[string]map[*subscriber]struct{}
    render  func(GameState) []byte
    chooser *ai.Chooser
    aiDelay time.Duration
    log     zerolog.Logger
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService(opts ...Option) *Service { return NewServiceWithRenderer(nil, opts...) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte, opts ...Option) *Service {
    if renderer == nil {
        renderer = func(gs GameState) []byte { return nil }
    }
    s := &Service{
        games:   make(map[string]*GameState),
        subs:    make(map[string]map[*subscriber]struct{}),
        render:  renderer,
        chooser: ai.NewChooser(rand.New(rand.NewSource(time.Now().UnixNano()))),
        log:     zerolog.Nop(),
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame(mode Mode, difficulty ai.Difficulty) (*GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    id := uuid.NewString()
    now := time.Now()
    gs := &GameState{ID: id, Game: domain.New(), Mode: mode, Difficulty: difficulty, Created: now, Updated: now}
    if mode == ModeAI {
        gs.O = AIPlayerID
    }
    s.games[id] = gs
    s.log.Info().Str("game", id).Stringer("mode", mode).Stringer("difficulty", difficulty).Msg("game created")
    cp := *gs
    return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    cp := *gs
    return &cp, true
}

// Join assigns a seat to the player if available; returns Empty for spectators.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return domain.Empty, nil, ErrNotFound
    }
    side := domain.Empty
    if gs.X == "" || gs.X == playerID {
        gs.X = playerID
        side = domain.X
    } else if gs.O == "" || gs.O == playerID {
        gs.O = playerID
        side = domain.O
    }
    gs.Updated = time.Now()
    cp := *gs
    return side, &cp, nil
}

// Play validates seat and turn, applies a move, updates timestamps, and broadcasts.
// In AI mode the computer replies through the same rules, either before
// returning or after the configured delay.
func (s *Service) Play(id, playerID string, idx int) (*GameState, error) {
    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    seat := seatOf(gs, playerID)
    if seat == domain.Empty || playerID == AIPlayerID {
        s.mu.Unlock()
        return nil, ErrNotAPlayer
    }
    if gs.AIThinking || seat != gs.Game.Turn {
        s.mu.Unlock()
        return nil, ErrNotYourTurn
    }
    if err := gs.Game.PlayAt(idx); err != nil {
        s.mu.Unlock()
        return nil, err
    }
    gs.Updated = time.Now()
    s.log.Debug().Str("game", id).Stringer("player", seat).Int("cell", idx).Msg("move")

    needAI := s.aiTurnLocked(gs)
    gs.aiTurn++
    turn := gs.aiTurn
    if needAI && s.aiDelay > 0 {
        gs.AIThinking = true
        gs.aiTimer = time.AfterFunc(s.aiDelay, func() { s.replyAI(id, turn) })
    }
    s.publishLocked(gs)
    s.mu.Unlock()

    if needAI && s.aiDelay <= 0 {
        s.replyAI(id, turn)
    }
    cp, _ := s.Get(id)
    return cp, nil
}

// Reset starts the game over on an empty board; only seated players may reset.
func (s *Service) Reset(id, playerID string) (*GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, ErrNotFound
    }
    if seatOf(gs, playerID) == domain.Empty || playerID == AIPlayerID {
        return nil, ErrNotAPlayer
    }
    gs.Game.Reset()
    s.cancelAILocked(gs)
    gs.Updated = time.Now()
    s.log.Info().Str("game", id).Msg("game reset")
    s.publishLocked(gs)
    cp := *gs
    return &cp, nil
}

// replyAI plays the computer's move if turn is still the latest reply
// scheduled for the game and the computer is to move.
func (s *Service) replyAI(id string, turn uint64) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok || gs.aiTurn != turn {
        return
    }
    s.cancelAILocked(gs)
    if !s.aiTurnLocked(gs) {
        return
    }
    idx, err := s.chooser.Choose(gs.Game.Board, gs.Game.Turn, gs.Difficulty)
    if err == nil {
        err = gs.Game.PlayAt(idx)
    }
    if err != nil {
        s.log.Error().Err(err).Str("game", id).Str("board", gs.Game.Board.String()).Msg("ai move failed")
        s.publishLocked(gs)
        return
    }
    gs.Updated = time.Now()
    s.log.Debug().Str("game", id).Stringer("difficulty", gs.Difficulty).Int("cell", idx).Msg("ai move")
    s.publishLocked(gs)
}

// cancelAILocked stops a pending reply and invalidates one already firing.
func (s *Service) cancelAILocked(gs *GameState) {
    if gs.aiTimer != nil {
        gs.aiTimer.Stop()
        gs.aiTimer = nil
    }
    gs.aiTurn++
    gs.AIThinking = false
}

func (s *Service) aiTurnLocked(gs *GameState) bool {
    return gs.Mode == ModeAI && !gs.Game.Over && gs.Game.Turn == domain.O
}

func seatOf(gs *GameState, playerID string) domain.Cell {
    switch playerID {
    case "":
        return domain.Empty
    case gs.X:
        return domain.X
    case gs.O:
        return domain.O
    }
    return domain.Empty
}

// publishLocked renders gs and fans it out. Slow subscribers are dropped.
func (s *Service) publishLocked(gs *GameState) {
    payload := s.render(*gs)
    set := s.subs[gs.ID]
    for sub := range set {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            delete(set, sub)
            s.log.Debug().Str("game", gs.ID).Msg("dropped slow subscriber")
        }
    }
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.games[id]; !ok {
        // create lazily to allow subscriptions before CreateGame in some flows
        s.games[id] = &GameState{ID: id, Game: domain.New(), Created: time.Now(), Updated: time.Now()}
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, subscriberBuffer)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            s.mu.Unlock()
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}
