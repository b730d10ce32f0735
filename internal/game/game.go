// Package game is the Hot Zone rules engine. A Game owns one State and exposes
// the player-facing operations; every operation runs to completion, including
// any outbreak cascade it sets off, before it returns. A Game is not safe for
// concurrent use: callers serialize access (see Manager).
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/cubes"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// Options carries the collaborators a Game needs. Every field is optional.
type Options struct {
	// Graph is the board; defaults to board.NorthAmerica().
	Graph *board.Graph
	// Rand drives every shuffle; defaults to a randomly seeded source.
	Rand *rand.Rand
	// Sink receives player-facing log lines; defaults to NopSink.
	Sink Sink
	// Logger receives structured diagnostics; defaults to zap.NewNop().
	Logger *zap.Logger
}

// SeededRand returns a deterministic random source for reproducible games.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Game is a running game: the state plus the collaborators acting on it.
type Game struct {
	state    *State
	graph    *board.Graph
	rng      *rand.Rand
	sink     Sink
	logger   *zap.Logger
	bus      *rules.EventBus
	watchers *rules.WatcherRegistry
}

func newGame(opts Options) *Game {
	g := &Game{
		graph:    opts.Graph,
		rng:      opts.Rand,
		sink:     opts.Sink,
		logger:   opts.Logger,
		bus:      rules.NewEventBus(),
		watchers: rules.NewWatcherRegistry(),
	}
	if g.graph == nil {
		g.graph = board.NorthAmerica()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.sink == nil {
		g.sink = NopSink{}
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	g.bus.Subscribe(g.watchers.NotifyWatchers)
	return g
}

// New sets up a fresh game: seats and roles, shuffled decks, starting hands,
// the player deck with its epidemics and crises, and the initial infections.
func New(setup Setup, opts Options) (*Game, error) {
	if err := setup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid setup: %w", err)
	}

	g := newGame(opts)
	n := setup.Mode.Players()

	players := make([]Player, n)
	for i := range players {
		role := rules.RoleGeneralist
		if i < len(setup.Roles) && setup.Roles[i] != "" {
			role = setup.Roles[i]
		}
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(setup.Names) && setup.Names[i] != "" {
			name = setup.Names[i]
		}
		players[i] = Player{
			ID:       i,
			Name:     name,
			Pawn:     fmt.Sprintf("p%d", i+1),
			Location: board.Hub,
			Hand:     []cards.Card{},
			Role:     role,
		}
	}

	cities := make(map[board.City]cubes.Set, g.graph.Len())
	for _, city := range g.graph.Cities() {
		cities[city] = cubes.New()
	}

	base := cards.NewDeck(append(cards.CityCards(g.graph), cards.EventCards()...)...)
	base.Shuffle(g.rng)
	for r := 0; r < setup.Mode.HandSize(); r++ {
		for p := range players {
			c, ok := base.DrawTop()
			if !ok {
				break
			}
			players[p].Hand = append(players[p].Hand, c)
		}
	}

	crises := cards.NewDeck(cards.CrisisCards()...)
	crises.Shuffle(g.rng)

	g.state = &State{
		Version:          StateVersion,
		GameID:           uuid.NewString(),
		Mode:             setup.Mode,
		Difficulty:       setup.Difficulty,
		Phase:            rules.PhaseActions,
		ActionsLeft:      players[0].Role.BaseActions(),
		Cities:           cities,
		Players:          players,
		InfectionDeck:    cards.InfectionDeck(g.graph, g.rng),
		InfectionDiscard: cards.Deck{},
		PlayerDeck:       cards.BuildPlayerDeck(base, &crises, setup.Difficulty.CrisesPerPile(), g.rng),
		PlayerDiscard:    cards.Deck{},
		Cures:            map[board.Color]bool{board.Blue: false, board.Red: false, board.Yellow: false},
		Supply:           cubes.Full(cubes.SupplyPerColor),
		RemovedFromGame:  cubes.New(),
	}

	g.logf("Game created: mode=%s, players=%d, difficulty=%s", setup.Mode, n, setup.Difficulty)
	for _, p := range g.state.Players {
		g.logf("Role: %s = %s (%s)", p.Name, p.Role, p.Role.Description())
	}
	g.logger.Info("game created",
		zap.String("game_id", g.state.GameID),
		zap.String("mode", string(setup.Mode)),
		zap.String("difficulty", string(setup.Difficulty)),
		zap.Int("players", n),
		zap.Int("player_deck", g.state.PlayerDeck.Len()),
	)

	g.infectInitial()
	return g, nil
}

// Restore wraps an existing state, e.g. one loaded from a save, in a Game.
// Missing optional fields are defaulted.
func Restore(state *State, opts Options) (*Game, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil state", ErrInvalidSave)
	}
	if len(state.Players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidSave)
	}

	g := newGame(opts)
	for _, p := range state.Players {
		if !g.graph.Has(p.Location) {
			return nil, fmt.Errorf("%w: player %q is in unknown city %q", ErrInvalidSave, p.Name, p.Location)
		}
		if !p.Role.Valid() {
			return nil, fmt.Errorf("%w: player %q has unknown role %q", ErrInvalidSave, p.Name, p.Role)
		}
	}

	if state.Version == "" {
		state.Version = StateVersion
	}
	if state.Cities == nil {
		state.Cities = make(map[board.City]cubes.Set, g.graph.Len())
	}
	for _, city := range g.graph.Cities() {
		state.Cities[city] = state.Cities[city].Fill(0)
	}
	if state.Cures == nil {
		state.Cures = make(map[board.Color]bool, len(board.Colors))
	}
	for _, c := range board.Colors {
		if _, ok := state.Cures[c]; !ok {
			state.Cures[c] = false
		}
	}
	state.Supply = state.Supply.Fill(cubes.SupplyPerColor)
	state.RemovedFromGame = state.RemovedFromGame.Fill(0)
	for i := range state.Players {
		if state.Players[i].Hand == nil {
			state.Players[i].Hand = []cards.Card{}
		}
	}
	if state.Ended {
		state.Phase = rules.PhaseGameOver
	}

	g.state = state
	g.logger.Info("game restored",
		zap.String("game_id", state.GameID),
		zap.Int("turn", state.Turn),
		zap.Stringer("phase", state.Phase),
	)
	return g, nil
}

// ID returns the game's identifier.
func (g *Game) ID() string {
	return g.state.GameID
}

// State returns a deep copy of the current state. Callers re-read it after
// every operation.
func (g *Game) State() *State {
	return g.state.Clone()
}

// Graph returns the board the game is played on.
func (g *Game) Graph() *board.Graph {
	return g.graph
}

// SetSink replaces the log sink; nil installs NopSink.
func (g *Game) SetSink(s Sink) {
	if s == nil {
		s = NopSink{}
	}
	g.sink = s
}

// Ended reports whether the game is over.
func (g *Game) Ended() bool {
	return g.state.Ended
}

// EndReason returns why the game ended, or "" while it is running.
func (g *Game) EndReason() string {
	return g.state.EndReason
}

// Won reports whether the game ended in a win.
func (g *Game) Won() bool {
	return g.state.Ended && g.state.CuredCount() >= CuresToWin
}

// CurrentPlayer returns a copy of the player whose turn it is.
func (g *Game) CurrentPlayer() Player {
	p := *g.current()
	p.Hand = append([]cards.Card(nil), p.Hand...)
	return p
}

// TurnsLeft estimates the remaining turns from the player deck size.
func (g *Game) TurnsLeft() int {
	return (g.state.PlayerDeck.Len() + 1) / 2
}

// HandLimit returns the current maximum hand size.
func (g *Game) HandLimit() int {
	if g.state.CrisisInPlay == cards.LimitedOptions {
		return LimitedHandLimit
	}
	return DefaultHandLimit
}

// FlightsGrounded reports whether Planes Grounded is in play.
func (g *Game) FlightsGrounded() bool {
	return g.state.CrisisInPlay == cards.PlanesGrounded
}

// Subscribe registers a listener for every engine event.
func (g *Game) Subscribe(l rules.Listener) int {
	return g.bus.Subscribe(l)
}

// Unsubscribe removes a listener registered with Subscribe.
func (g *Game) Unsubscribe(handle int) {
	g.bus.Unsubscribe(handle)
}

// AddWatcher attaches a watcher to the game's events. Turn-scoped watchers
// are reset whenever a turn ends.
func (g *Game) AddWatcher(w rules.Watcher) {
	g.watchers.AddWatcher(w)
}

// Watcher returns a watcher previously attached with AddWatcher.
func (g *Game) Watcher(key string) rules.Watcher {
	return g.watchers.GetWatcher(key)
}

func (g *Game) current() *Player {
	return &g.state.Players[g.state.CurrentPlayerIndex()]
}

func (g *Game) player(idx int) (*Player, bool) {
	if idx < 0 || idx >= len(g.state.Players) {
		return nil, false
	}
	return &g.state.Players[idx], true
}

func (g *Game) logf(format string, args ...any) {
	g.sink.Record(fmt.Sprintf(format, args...))
}

// refuse logs a validation refusal. The state is left untouched.
func (g *Game) refuse(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	g.sink.Record("Refused: " + line)
	g.logger.Debug("operation refused",
		zap.String("game_id", g.state.GameID),
		zap.String("reason", line),
	)
}

func (g *Game) publish(e rules.Event) {
	g.bus.Publish(e)
}

// live refuses the call when the game is already over.
func (g *Game) live() bool {
	if g.state.Ended {
		g.refuse("the game is over (%s)", g.state.EndReason)
		return false
	}
	return true
}

func (g *Game) spendAction() bool {
	if g.state.ActionsLeft <= 0 {
		g.refuse("%s has no actions left this turn", g.current().Name)
		return false
	}
	g.state.ActionsLeft--
	g.publish(rules.Event{
		Type:   rules.EventActionSpent,
		Player: g.state.CurrentPlayerIndex(),
		Amount: g.state.ActionsLeft,
	})
	return true
}

func (g *Game) setPhase(next rules.Phase) {
	if g.state.Phase == next {
		return
	}
	if !g.state.Phase.CanTransition(next) {
		g.logger.Warn("unexpected phase transition",
			zap.Stringer("from", g.state.Phase),
			zap.Stringer("to", next),
		)
	}
	g.state.Phase = next
	g.publish(rules.Event{Type: rules.EventPhaseChanged, Player: -1, Data: next.String()})
}

// endGame records a terminal condition. Only the first reason sticks.
func (g *Game) endGame(reason string, won bool) {
	if g.state.Ended {
		return
	}
	g.setPhase(rules.PhaseGameOver)
	g.state.Ended = true
	g.state.EndReason = reason

	evt := rules.EventGameLost
	if won {
		evt = rules.EventGameWon
		g.logf("WIN: %s", reason)
	} else {
		g.logf("GAME OVER: %s", reason)
	}
	g.logger.Info("game ended",
		zap.String("game_id", g.state.GameID),
		zap.Bool("won", won),
		zap.String("reason", reason),
		zap.Int("turn", g.state.Turn),
		zap.Int("outbreaks", g.state.Outbreaks),
	)
	g.publish(rules.Event{Type: evt, Player: -1, Description: reason})
}

func (g *Game) checkWin() {
	if g.state.CuredCount() >= CuresToWin {
		g.endGame("All 3 cures discovered!", true)
	}
}
