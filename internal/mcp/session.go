// Package mcp exposes the game engine as MCP tools so an agent can play
// matches over stdio.
package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/peterkuimelis/ptcgx/internal/carddata"
	"github.com/peterkuimelis/ptcgx/internal/game"
	"github.com/peterkuimelis/ptcgx/internal/log"
	"github.com/peterkuimelis/ptcgx/internal/net"
)

// GameSession is one hosted match. The agent controls both seats by
// naming the acting player in each submit_action call.
type GameSession struct {
	game    *game.Game
	engine  *game.RuleEngine
	logger  *log.MemoryLogger
	players [2]*game.Player

	// lastSeq tracks which events have already been reported.
	lastSeq int
}

// NewGameSession creates a game from the card file (or the built-in
// demo decks), runs the setup protocol, and returns the session ready
// for actions.
func NewGameSession(cardFile string, seed int64, name1, name2 string) (*GameSession, error) {
	var (
		db    game.MapDatabase
		decks []*game.Deck
	)
	if cardFile != "" {
		var err error
		db, decks, err = carddata.LoadFile(cardFile)
		if err != nil {
			return nil, err
		}
		if len(decks) < 2 {
			return nil, fmt.Errorf("card file %s defines %d deck(s), need 2", cardFile, len(decks))
		}
	} else {
		var d1, d2 *game.Deck
		db, d1, d2 = carddata.DemoDecks()
		decks = []*game.Deck{d1, d2}
	}

	logger := log.NewMemoryLogger()
	g := game.NewGame(db, game.GameConfig{
		Rules:  game.DefaultRules(),
		Logger: logger,
		Seed:   seed,
	})

	sess := &GameSession{game: g, engine: game.StandardEngine(), logger: logger}
	for i, name := range []string{name1, name2} {
		p := game.NewPlayer(name)
		sess.players[i] = p
		if err := g.AddPlayer(p); err != nil {
			return nil, err
		}
		if err := g.SetPlayerDeck(p.ID, decks[i]); err != nil {
			return nil, err
		}
	}

	if err := sess.runSetup(); err != nil {
		return nil, err
	}
	return sess, nil
}

// runSetup drives the setup protocol automatically: mulligans resolve in
// a loop, compensation is taken in full, the first basic in hand becomes
// active, and remaining basics fill the bench.
func (s *GameSession) runSetup() error {
	g := s.game
	if err := g.StartSetup(); err != nil {
		return err
	}
	if err := g.DetermineTurnOrder(); err != nil {
		return err
	}
	if err := g.DealOpeningHands(); err != nil {
		return err
	}
	if _, _, err := g.DeclareNoBasicPokemon(); err != nil {
		return err
	}
	if err := g.PerformPendingMulligans(); err != nil {
		return err
	}
	for _, p := range s.players {
		limit := g.MulliganCompensationLimit(p.ID)
		if err := g.MulliganCompensation(p.ID, limit); err != nil {
			return err
		}
		basics := p.FindBasicPokemonInHand(g.CardDB)
		if len(basics) == 0 {
			return fmt.Errorf("%s has no basic Pokémon after mulligans", p.Name)
		}
		if err := g.SelectActivePokemon(p.ID, basics[0]); err != nil {
			return err
		}
		rest := p.FindBasicPokemonInHand(g.CardDB)
		if len(rest) > game.MaxBenchSize {
			rest = rest[:game.MaxBenchSize]
		}
		if len(rest) > 0 {
			if err := g.SetupBench(p.ID, rest); err != nil {
				return err
			}
		}
	}
	if err := g.PlacePrizeCards(); err != nil {
		return err
	}
	return g.CompleteSetup()
}

// playerByName finds a session player by name.
func (s *GameSession) playerByName(name string) (*game.Player, error) {
	for _, p := range s.players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no player named %q (players: %s, %s)", name, s.players[0].Name, s.players[1].Name)
}

// submit parses and executes one action for the named player.
func (s *GameSession) submit(playerName string, msg net.ActionMsg) ([]game.RuleViolation, error) {
	p, err := s.playerByName(playerName)
	if err != nil {
		return nil, err
	}
	action, err := net.ParseAction(s.game, p, msg)
	if err != nil {
		return nil, err
	}
	return s.game.ExecuteAction(s.engine, action)
}

// ToolResponse is the JSON payload returned by the game tools.
type ToolResponse struct {
	State      *net.StateView  `json:"state,omitempty"`
	Events     []net.EventView `json:"events"`
	Violations []string        `json:"violations,omitempty"`
	Turn       int             `json:"turn"`
	Current    string          `json:"current_player,omitempty"`
	GameOver   bool            `json:"game_over"`
	Winner     string          `json:"winner,omitempty"`
}

// response builds a tool response from the named player's perspective,
// draining events that have not been reported yet.
func (s *GameSession) response(viewerName string, violations []game.RuleViolation) *ToolResponse {
	g := s.game
	resp := &ToolResponse{
		Events:   s.drainEvents(),
		Turn:     g.TurnNumber,
		GameOver: g.State != game.StateInProgress,
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, v.String())
	}
	if cp := g.CurrentPlayer(); cp != nil {
		resp.Current = cp.Name
	}
	if p, ok := g.Player(g.Winner); ok {
		resp.Winner = p.Name
	}
	if viewer, err := s.playerByName(viewerName); err == nil {
		resp.State = net.BuildStateView(g, viewer)
	}
	return resp
}

// drainEvents returns events recorded since the last drain.
func (s *GameSession) drainEvents() []net.EventView {
	views := []net.EventView{}
	for _, e := range s.logger.Events() {
		if e.Seq <= s.lastSeq {
			continue
		}
		s.lastSeq = e.Seq
		views = append(views, net.EventView{
			Turn:    e.Turn,
			Phase:   e.Phase,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return views
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
