package net

import (
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"
	"net/http"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/carddata"
	"github.com/peterkuimelis/ptcgx/internal/game"
	"github.com/peterkuimelis/ptcgx/internal/log"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Addr     string `env:"PTCGX_ADDR" envDefault:":8089"`
	CardFile string `env:"PTCGX_CARD_FILE"`
	Seed     int64  `env:"PTCGX_SEED"`
}

// ConfigFromEnv parses the server configuration from environment
// variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Server hosts matches between pairs of WebSocket clients. Decks come
// from the configured card file, or the built-in demo decks when no
// file is set.
type Server struct {
	cfg   Config
	db    game.MapDatabase
	decks []*game.Deck

	mu    sync.Mutex
	seats []*seat
}

// NewServer builds a server, loading the card pool.
func NewServer(cfg Config) (*Server, error) {
	var (
		db    game.MapDatabase
		decks []*game.Deck
	)
	if cfg.CardFile != "" {
		var err error
		db, decks, err = carddata.LoadFile(cfg.CardFile)
		if err != nil {
			return nil, err
		}
		if len(decks) < 2 {
			return nil, fmt.Errorf("card file %s defines %d deck(s), need 2", cfg.CardFile, len(decks))
		}
	} else {
		var d1, d2 *game.Deck
		db, d1, d2 = carddata.DemoDecks()
		decks = []*game.Deck{d1, d2}
	}
	return &Server{cfg: cfg, db: db, decks: decks}, nil
}

// Run serves until the context is cancelled. Each pair of connections
// gets its own match.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	srv := &http.Server{Addr: s.cfg.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	fmt.Printf("Waiting for players on %s...\n", s.cfg.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// seat is one connected player.
type seat struct {
	conn   *websocket.Conn
	name   string
	player *game.Player
	in     chan ClientMessage

	writeMu sync.Mutex
}

func (st *seat) send(ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	st.writeMu.Lock()
	defer st.writeMu.Unlock()
	return st.conn.Write(ctx, websocket.MessageText, data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		stdlog.Printf("websocket accept: %v", err)
		return
	}

	ctx := r.Context()
	_, data, err := conn.Read(ctx)
	if err != nil {
		conn.CloseNow()
		return
	}
	var join ClientMessage
	if err := json.Unmarshal(data, &join); err != nil || join.Type != "join" {
		conn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}
	name := join.Name
	if name == "" {
		name = "Player"
	}

	st := &seat{conn: conn, name: name, in: make(chan ClientMessage, 4)}

	s.mu.Lock()
	s.seats = append(s.seats, st)
	seatNo := len(s.seats)
	var pair [2]*seat
	ready := false
	if len(s.seats) >= 2 {
		pair[0], pair[1] = s.seats[0], s.seats[1]
		s.seats = s.seats[2:]
		ready = true
	}
	s.mu.Unlock()

	st.send(ctx, ServerMessage{Type: "welcome", Seat: seatNo})
	fmt.Printf("%s connected (seat %d)\n", name, seatNo)

	if ready {
		// The second connection's goroutine drives the match; the first
		// seat's request handler blocks in its read pump below.
		go s.runMatch(context.Background(), pair[0], pair[1])
	}

	// Read pump: everything after the join goes to the match loop.
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			close(st.in)
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		st.in <- msg
	}
}

// runMatch plays one full game between two seats: automated setup, then
// an action loop until the game ends.
func (s *Server) runMatch(ctx context.Context, s1, s2 *seat) {
	bus := log.NewBus()
	g := game.NewGame(s.db, game.GameConfig{
		Rules:  game.DefaultRules(),
		Logger: bus,
		Seed:   s.cfg.Seed,
	})

	seats := []*seat{s1, s2}
	for i, st := range seats {
		st.player = game.NewPlayer(st.name)
		if err := g.AddPlayer(st.player); err != nil {
			s.fail(ctx, seats, err)
			return
		}
		if err := g.SetPlayerDeck(st.player.ID, s.decks[i%len(s.decks)]); err != nil {
			s.fail(ctx, seats, err)
			return
		}
	}

	bus.RegisterHandler(&eventRelay{ctx: ctx, seats: seats})

	if err := s.runSetup(g, seats); err != nil {
		s.fail(ctx, seats, err)
		return
	}

	engine := game.StandardEngine()
	bySeat := map[uuid.UUID]*seat{s1.player.ID: s1, s2.player.ID: s2}

	for g.State == game.StateInProgress {
		for _, st := range seats {
			st.send(ctx, ServerMessage{Type: "state", State: BuildStateView(g, st.player)})
		}

		current := bySeat[g.CurrentPlayerID()]
		msg, ok := <-current.in
		if !ok {
			// Current player disconnected; the opponent wins.
			if opp, found := g.Opponent(current.player.ID); found {
				g.EndGame(opp.ID)
			}
			break
		}
		if msg.Type != "action" || msg.Action == nil {
			current.send(ctx, ServerMessage{Type: "error", Error: "expected an action message"})
			continue
		}

		action, err := ParseAction(g, current.player, *msg.Action)
		if err != nil {
			current.send(ctx, ServerMessage{Type: "error", Error: err.Error()})
			continue
		}
		if _, err := g.ExecuteAction(engine, action); err != nil {
			current.send(ctx, ServerMessage{Type: "error", Error: err.Error()})
		}
	}

	winnerName := ""
	if p, ok := g.Player(g.Winner); ok {
		winnerName = p.Name
	}
	result := "Draw"
	if winnerName != "" {
		result = winnerName + " wins!"
	}
	for _, st := range seats {
		st.send(ctx, ServerMessage{Type: "game_over", Winner: winnerName, Result: result})
		st.conn.Close(websocket.StatusNormalClosure, "game ended")
	}
}

// runSetup drives the setup protocol without player input: mulligans
// resolve automatically, the first basic in hand becomes active, and
// every other basic goes to the bench.
func (s *Server) runSetup(g *game.Game, seats []*seat) error {
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
	for _, st := range seats {
		limit := g.MulliganCompensationLimit(st.player.ID)
		if err := g.MulliganCompensation(st.player.ID, limit); err != nil {
			return err
		}
		basics := st.player.FindBasicPokemonInHand(g.CardDB)
		if len(basics) == 0 {
			return fmt.Errorf("%s has no basic Pokémon after mulligans", st.name)
		}
		if err := g.SelectActivePokemon(st.player.ID, basics[0]); err != nil {
			return err
		}
		rest := st.player.FindBasicPokemonInHand(g.CardDB)
		if len(rest) > game.MaxBenchSize {
			rest = rest[:game.MaxBenchSize]
		}
		if len(rest) > 0 {
			if err := g.SetupBench(st.player.ID, rest); err != nil {
				return err
			}
		}
	}
	if err := g.PlacePrizeCards(); err != nil {
		return err
	}
	return g.CompleteSetup()
}

func (s *Server) fail(ctx context.Context, seats []*seat, err error) {
	stdlog.Printf("match aborted: %v", err)
	for _, st := range seats {
		st.send(ctx, ServerMessage{Type: "error", Error: err.Error()})
		st.conn.Close(websocket.StatusInternalError, "match aborted")
	}
}

// eventRelay pushes every game event to both seats.
type eventRelay struct {
	ctx   context.Context
	seats []*seat
}

func (r *eventRelay) Name() string { return "ws-relay" }

func (r *eventRelay) HandleEvent(e log.GameEvent) {
	view := &EventView{
		Turn:    e.Turn,
		Phase:   e.Phase,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
	for _, st := range r.seats {
		st.send(r.ctx, ServerMessage{Type: "event", Event: view})
	}
}

// ParseAction resolves an ActionMsg's card names against the acting
// player's zones and builds a GameAction.
func ParseAction(g *game.Game, p *game.Player, msg ActionMsg) (game.GameAction, error) {
	switch strings.ToLower(msg.Type) {
	case "draw":
		return game.NewDrawCardAction(p.ID), nil
	case "play":
		card, err := findInHand(g, p, msg.Card)
		if err != nil {
			return game.GameAction{}, err
		}
		if msg.Target != "" {
			target, err := findInPlay(g, p, msg.Target)
			if err != nil {
				return game.GameAction{}, err
			}
			return game.NewEvolveAction(p.ID, card, target), nil
		}
		return game.NewPlayCardAction(p.ID, card), nil
	case "attach":
		card, err := findInHand(g, p, msg.Card)
		if err != nil {
			return game.GameAction{}, err
		}
		target := p.Active
		if msg.Target != "" {
			target, err = findInPlay(g, p, msg.Target)
			if err != nil {
				return game.GameAction{}, err
			}
		}
		return game.NewAttachEnergyAction(p.ID, card, target), nil
	case "attack":
		return game.NewUseAttackAction(p.ID, msg.AttackIndex), nil
	case "retreat":
		target, err := findInPlay(g, p, msg.Target)
		if err != nil {
			return game.GameAction{}, err
		}
		return game.NewRetreatAction(p.ID, target), nil
	case "end":
		return game.NewEndTurnAction(p.ID), nil
	case "pass":
		return game.NewPassAction(p.ID), nil
	default:
		return game.GameAction{}, fmt.Errorf("unknown action %q", msg.Type)
	}
}

func findInHand(g *game.Game, p *game.Player, name string) (game.CardID, error) {
	for _, id := range p.Hand {
		if card, ok := g.Card(id); ok && strings.EqualFold(card.Name, name) {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%q is not in your hand", name)
}

func findInPlay(g *game.Game, p *game.Player, name string) (game.CardID, error) {
	for _, id := range p.PokemonInPlay() {
		if card, ok := g.Card(id); ok && strings.EqualFold(card.Name, name) {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%q is not in play", name)
}

// BuildStateView builds the state from one player's perspective.
func BuildStateView(g *game.Game, viewer *game.Player) *StateView {
	opp, _ := g.Opponent(viewer.ID)
	sv := &StateView{
		You:        playerView(g, viewer, true),
		Turn:       g.TurnNumber,
		Phase:      g.Phase.String(),
		IsYourTurn: g.IsPlayerTurn(viewer.ID),
	}
	if opp != nil {
		sv.Opponent = playerView(g, opp, false)
	}
	return sv
}

func playerView(g *game.Game, p *game.Player, isViewer bool) PlayerView {
	pv := PlayerView{
		Name:         p.Name,
		HandCount:    len(p.Hand),
		DeckCount:    len(p.Deck),
		DiscardCount: len(p.DiscardPile),
		PrizeCount:   len(p.Prizes),
	}
	if isViewer {
		for _, id := range p.Hand {
			if card, ok := g.Card(id); ok {
				pv.Hand = append(pv.Hand, card.Name)
			}
		}
	}
	if p.Active != uuid.Nil {
		v := pokemonView(g, p, p.Active)
		pv.Active = &v
	}
	for _, id := range p.Bench {
		pv.Bench = append(pv.Bench, pokemonView(g, p, id))
	}
	return pv
}

func pokemonView(g *game.Game, p *game.Player, id game.CardID) PokemonView {
	v := PokemonView{Damage: p.DamageCounters[id]}
	if card, ok := g.Card(id); ok {
		v.Name = card.Name
		v.HP = card.HP()
	}
	for _, e := range p.AttachedEnergy[id] {
		v.Energy = append(v.Energy, e.String())
	}
	for _, c := range p.Conditions[id] {
		v.Conditions = append(v.Conditions, c.Kind.String())
	}
	return v
}
