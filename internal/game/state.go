package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
	"github.com/peterkuimelis/ptcgx/internal/random"
)

// GameRules holds the match-level configuration knobs.
type GameRules struct {
	Format      Format
	PrizeCards  int
	MaxHandSize int // 0 disables the hand limit
	AutoShuffle bool
	MaxTurns    int // 0 means unlimited

	// TurnTimeLimit is carried for hosts that enforce clocks; the core
	// itself never times anything out.
	TurnTimeLimit time.Duration
}

// DefaultRules returns the standard two-player configuration.
func DefaultRules() GameRules {
	return GameRules{
		Format:      FormatStandard,
		PrizeCards:  6,
		MaxHandSize: 0,
		AutoShuffle: true,
	}
}

// GameConfig configures a new game.
type GameConfig struct {
	Rules  GameRules
	Logger log.EventLogger
	Seed   int64 // 0 picks a random seed
}

// Game is the authoritative state of one match.
type Game struct {
	ID     uuid.UUID
	State  GameState
	Phase  GamePhase
	Rules  GameRules
	CardDB CardDatabase

	Players            map[uuid.UUID]*Player
	TurnOrder          []uuid.UUID
	CurrentPlayerIndex int
	TurnNumber         int
	Winner             uuid.UUID

	Log     log.EventLogger
	Effects *EffectManager
	rng     *rand.Rand

	// Setup bookkeeping.
	MulliganCount     int
	mulligansByPlayer map[uuid.UUID]int
	pendingMulligans  map[uuid.UUID]bool
	compensationTaken map[uuid.UUID]bool
	handsDealt        bool
}

// NewGame creates a game in the Setup state.
func NewGame(db CardDatabase, cfg GameConfig) *Game {
	rules := cfg.Rules
	if rules.PrizeCards == 0 {
		rules.PrizeCards = DefaultRules().PrizeCards
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Game{
		ID:                uuid.New(),
		State:             StateSetup,
		Phase:             PhaseBeginningOfTurn,
		Rules:             rules,
		CardDB:            db,
		Players:           map[uuid.UUID]*Player{},
		Log:               logger,
		Effects:           NewEffectManager(),
		rng:               random.New(cfg.Seed),
		mulligansByPlayer: map[uuid.UUID]int{},
		pendingMulligans:  map[uuid.UUID]bool{},
		compensationTaken: map[uuid.UUID]bool{},
	}
}

// AddPlayer registers a player. Only two players may join, and only
// during setup.
func (g *Game) AddPlayer(p *Player) error {
	if g.State != StateSetup {
		return fmt.Errorf("cannot add players: game is %s", g.State)
	}
	if len(g.Players) >= 2 {
		return fmt.Errorf("game already has two players")
	}
	if _, exists := g.Players[p.ID]; exists {
		return fmt.Errorf("player %s already joined", p.Name)
	}
	g.Players[p.ID] = p
	return nil
}

// SetPlayerDeck validates a deck and loads it into the player's deck zone.
func (g *Game) SetPlayerDeck(playerID uuid.UUID, deck *Deck) error {
	p, ok := g.Players[playerID]
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if g.State != StateSetup {
		return fmt.Errorf("cannot set deck: game is %s", g.State)
	}
	if errs := deck.Validate(g.CardDB); len(errs) > 0 {
		return fmt.Errorf("deck %q is not legal: %w", deck.Name, errs[0])
	}
	p.LoadDeck(deck)
	return nil
}

// Player returns the player with the given id.
func (g *Game) Player(id uuid.UUID) (*Player, bool) {
	p, ok := g.Players[id]
	return p, ok
}

// Opponent returns the other player.
func (g *Game) Opponent(id uuid.UUID) (*Player, bool) {
	for pid, p := range g.Players {
		if pid != id {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayerID returns the id of the player whose turn it is.
func (g *Game) CurrentPlayerID() uuid.UUID {
	if len(g.TurnOrder) == 0 {
		return uuid.Nil
	}
	return g.TurnOrder[g.CurrentPlayerIndex]
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.CurrentPlayerID()]
}

// IsPlayerTurn reports whether it is the given player's turn.
func (g *Game) IsPlayerTurn(id uuid.UUID) bool {
	return g.CurrentPlayerID() == id
}

// Card looks up a card definition in the game's database.
func (g *Game) Card(id CardID) (*Card, bool) {
	return g.CardDB.Card(id)
}

// cardName returns the card's name, or the id string if unknown.
func (g *Game) cardName(id CardID) string {
	if c, ok := g.CardDB.Card(id); ok {
		return c.Name
	}
	return id.String()
}

// emit records an event.
func (g *Game) emit(e log.GameEvent) {
	g.Log.Log(e)
}

// Events returns the full event history.
func (g *Game) Events() []log.GameEvent {
	return g.Log.Events()
}

// EndGame finishes the game with the given winner (zero UUID for a draw).
func (g *Game) EndGame(winner uuid.UUID) {
	if g.State == StateFinished || g.State == StateCancelled {
		return
	}
	g.State = StateFinished
	g.Winner = winner
	name := ""
	if p, ok := g.Players[winner]; ok {
		name = p.Name
	}
	g.emit(log.NewGameEndedEvent(g.TurnNumber, winner, name))
}

// Cancel abandons the game without a winner.
func (g *Game) Cancel() {
	if g.State == StateFinished || g.State == StateCancelled {
		return
	}
	g.State = StateCancelled
	g.emit(log.NewGameEndedEvent(g.TurnNumber, uuid.Nil, ""))
}
