package game

import (
	"fmt"

	"github.com/hotzone/hotzone-server-go/internal/game/board"
	"github.com/hotzone/hotzone-server-go/internal/game/cards"
	"github.com/hotzone/hotzone-server-go/internal/game/cubes"
	"github.com/hotzone/hotzone-server-go/internal/game/rules"
)

// StateVersion tags the shape of State for saves.
const StateVersion = "hotzone_na_v1"

// MaxOutbreaks is the outbreak marker value that loses the game.
const MaxOutbreaks = 3

// CuresToWin is the number of cured diseases that wins the game.
const CuresToWin = 3

// DefaultHandLimit is the hand size limit outside of Limited Options.
const DefaultHandLimit = 6

// LimitedHandLimit is the hand size limit while Limited Options is in play.
const LimitedHandLimit = 5

// Player is one seat at the table.
type Player struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Pawn     string       `json:"pawn"`
	Location board.City   `json:"location"`
	Hand     []cards.Card `json:"hand"`
	Role     rules.Role   `json:"role"`
}

func (p *Player) findCity(city board.City) int {
	for i, c := range p.Hand {
		if c.IsCity(city) {
			return i
		}
	}
	return -1
}

func (p *Player) findEvent(e cards.Event) int {
	for i, c := range p.Hand {
		if c.IsEvent(e) {
			return i
		}
	}
	return -1
}

func (p *Player) removeCard(idx int) cards.Card {
	c := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return c
}

// State is the whole mutable game. It is a plain value: every field survives a
// JSON round trip, and nothing in it refers to the log sink or random source.
type State struct {
	Version    string     `json:"version"`
	GameID     string     `json:"gameId"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`

	Turn        int         `json:"turn"`
	ActionsLeft int         `json:"actionsLeft"`
	Phase       rules.Phase `json:"phase"`

	Cities  map[board.City]cubes.Set `json:"cities"`
	Players []Player                 `json:"players"`

	InfectionDeck    cards.Deck `json:"infectionDeck"`
	InfectionDiscard cards.Deck `json:"infectionDiscard"`
	PlayerDeck       cards.Deck `json:"playerDeck"`
	PlayerDiscard    cards.Deck `json:"playerDiscard"`

	Cures            map[board.Color]bool `json:"cures"`
	Outbreaks        int                  `json:"outbreak"`
	InfectionRateIdx int                  `json:"infectionRateIdx"`
	Supply           cubes.Set            `json:"supplies"`
	RemovedFromGame  cubes.Set            `json:"removedFromGame"`

	OneQuietNight bool         `json:"oneQuietNight"`
	DoubleInfect  bool         `json:"_doubleInfectThisTurn"`
	CrisisInPlay  cards.Crisis `json:"crisisInPlay"`

	Ended     bool   `json:"ended"`
	EndReason string `json:"endReason,omitempty"`
}

// CurrentPlayerIndex returns the index of the player whose turn it is.
func (s *State) CurrentPlayerIndex() int {
	if len(s.Players) == 0 {
		return 0
	}
	return s.Turn % len(s.Players)
}

// CubesAt returns the cube counts in a city; nil for unknown cities.
func (s *State) CubesAt(city board.City) cubes.Set {
	return s.Cities[city]
}

// CuredCount returns how many diseases are cured.
func (s *State) CuredCount() int {
	n := 0
	for _, c := range board.Colors {
		if s.Cures[c] {
			n++
		}
	}
	return n
}

// BoardCubes returns the number of cubes of a color on the whole board.
func (s *State) BoardCubes(color board.Color) int {
	n := 0
	for _, set := range s.Cities {
		n += set.Get(color)
	}
	return n
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	out := *s

	out.Cities = make(map[board.City]cubes.Set, len(s.Cities))
	for city, set := range s.Cities {
		out.Cities[city] = set.Clone()
	}

	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		if p.Hand != nil {
			p.Hand = append(make([]cards.Card, 0, len(p.Hand)), p.Hand...)
		}
		out.Players[i] = p
	}

	out.InfectionDeck = s.InfectionDeck.Clone()
	out.InfectionDiscard = s.InfectionDiscard.Clone()
	out.PlayerDeck = s.PlayerDeck.Clone()
	out.PlayerDiscard = s.PlayerDiscard.Clone()

	out.Cures = make(map[board.Color]bool, len(s.Cures))
	for c, v := range s.Cures {
		out.Cures[c] = v
	}
	out.Supply = s.Supply.Clone()
	out.RemovedFromGame = s.RemovedFromGame.Clone()
	return &out
}

// Mode selects the table size.
type Mode string

const (
	ModeSolo1 Mode = "solo1"
	ModeSolo2 Mode = "solo2"
	ModeCoop2 Mode = "coop2"
	ModeCoop3 Mode = "coop3"
	ModeCoop4 Mode = "coop4"
)

var modePlayers = map[Mode]int{
	ModeSolo1: 1,
	ModeSolo2: 2,
	ModeCoop2: 2,
	ModeCoop3: 3,
	ModeCoop4: 4,
}

// Players returns the number of pawns the mode uses.
func (m Mode) Players() int {
	return modePlayers[m]
}

// HandSize returns the number of cards dealt to each player at setup.
func (m Mode) HandSize() int {
	switch {
	case m == ModeSolo1:
		return 4
	case m.Players() == 2:
		return 3
	default:
		return 2
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	m := Mode(name)
	if _, ok := modePlayers[m]; !ok {
		return "", fmt.Errorf("unknown mode %q", name)
	}
	return m, nil
}

// Difficulty controls how many crisis cards go into each third of the player deck.
type Difficulty string

const (
	DifficultyIntroductory Difficulty = "introductory"
	DifficultyStandard     Difficulty = "standard"
	DifficultyHeroic       Difficulty = "heroic"
)

var difficultyCrises = map[Difficulty]int{
	DifficultyIntroductory: 0,
	DifficultyStandard:     1,
	DifficultyHeroic:       2,
}

// CrisesPerPile returns the number of crisis cards shuffled into each pile.
func (d Difficulty) CrisesPerPile() int {
	return difficultyCrises[d]
}

// ParseDifficulty converts a difficulty name to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	d := Difficulty(name)
	if _, ok := difficultyCrises[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q", name)
	}
	return d, nil
}

// Setup is everything needed to start a game.
type Setup struct {
	Mode       Mode
	Difficulty Difficulty
	// Roles assigns a role per seat; missing entries default to the Generalist.
	Roles []rules.Role
	// Names overrides the default "Player N" names; missing entries keep the default.
	Names []string
}

// Validate checks the setup before any state is built.
func (s Setup) Validate() error {
	n := s.Mode.Players()
	if n == 0 {
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	if _, ok := difficultyCrises[s.Difficulty]; !ok {
		return fmt.Errorf("unknown difficulty %q", s.Difficulty)
	}
	if len(s.Roles) > n {
		return fmt.Errorf("mode %s seats %d players but %d roles were given", s.Mode, n, len(s.Roles))
	}
	for i, r := range s.Roles {
		if r != "" && !r.Valid() {
			return fmt.Errorf("player %d: unknown role %q", i+1, r)
		}
	}
	if len(s.Names) > n {
		return fmt.Errorf("mode %s seats %d players but %d names were given", s.Mode, n, len(s.Names))
	}
	return nil
}
