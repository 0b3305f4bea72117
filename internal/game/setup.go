package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
)

// StartSetup begins the setup protocol. Both players must have joined
// with loaded decks. Decks are shuffled here when AutoShuffle is on.
func (g *Game) StartSetup() error {
	if g.State != StateSetup {
		return fmt.Errorf("cannot start setup: game is %s", g.State)
	}
	if len(g.Players) != 2 {
		return fmt.Errorf("setup requires two players, have %d", len(g.Players))
	}
	for _, p := range g.Players {
		if len(p.Deck) == 0 {
			return fmt.Errorf("%s has no deck loaded", p.Name)
		}
	}

	g.emit(log.NewSetupStartedEvent(len(g.Players)))
	if g.Rules.AutoShuffle {
		for _, id := range g.sortedPlayerIDs() {
			p := g.Players[id]
			p.ShuffleDeck(g.rng)
			g.emit(log.NewDeckShuffledEvent(0, "Setup", p.ID, p.Name))
		}
	}
	return nil
}

// DetermineTurnOrder randomizes which player goes first. Both players
// have an equal chance regardless of join order.
func (g *Game) DetermineTurnOrder() error {
	if g.State != StateSetup {
		return fmt.Errorf("cannot determine turn order: game is %s", g.State)
	}
	if len(g.Players) != 2 {
		return fmt.Errorf("turn order requires two players, have %d", len(g.Players))
	}

	order := g.sortedPlayerIDs()
	g.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	g.TurnOrder = order
	g.CurrentPlayerIndex = 0

	first := g.Players[order[0]]
	g.emit(log.NewTurnOrderEvent(first.Name))
	return nil
}

// DealOpeningHands draws the opening hand for each player, in turn order.
func (g *Game) DealOpeningHands() error {
	if g.State != StateSetup {
		return fmt.Errorf("cannot deal hands: game is %s", g.State)
	}
	if len(g.TurnOrder) == 0 {
		return fmt.Errorf("turn order has not been determined")
	}
	if g.handsDealt {
		return fmt.Errorf("opening hands already dealt")
	}

	for _, id := range g.TurnOrder {
		p := g.Players[id]
		if len(p.Deck) < OpeningHandSize {
			return fmt.Errorf("%s's deck has only %d cards", p.Name, len(p.Deck))
		}
		p.DrawCards(OpeningHandSize)
	}
	g.handsDealt = true
	g.emit(log.NewOpeningHandsEvent(OpeningHandSize))
	return nil
}

// CheckForBasicPokemon reports whether the player's hand contains at
// least one basic Pokémon.
func (g *Game) CheckForBasicPokemon(playerID uuid.UUID) (bool, error) {
	p, ok := g.Players[playerID]
	if !ok {
		return false, fmt.Errorf("unknown player %s", playerID)
	}
	return len(p.FindBasicPokemonInHand(g.CardDB)) > 0, nil
}

// DeclareNoBasicPokemon checks every hand and marks players without a
// basic Pokémon for a mulligan. It returns the marked players' ids and
// whether every player was marked.
func (g *Game) DeclareNoBasicPokemon() ([]uuid.UUID, bool, error) {
	if !g.handsDealt {
		return nil, false, fmt.Errorf("opening hands have not been dealt")
	}
	var marked []uuid.UUID
	for _, id := range g.TurnOrder {
		hasBasic, err := g.CheckForBasicPokemon(id)
		if err != nil {
			return nil, false, err
		}
		if !hasBasic {
			g.pendingMulligans[id] = true
			marked = append(marked, id)
		}
	}
	return marked, len(marked) == len(g.TurnOrder), nil
}

// PerformMulligan executes one mulligan for a marked player: both
// players' hands are revealed, then the marked player's hand is
// returned to the deck, the deck reshuffled, and a new hand drawn. It
// reports whether the new hand contains a basic Pokémon; if not, the
// player stays marked.
func (g *Game) PerformMulligan(playerID uuid.UUID) (bool, error) {
	p, ok := g.Players[playerID]
	if !ok {
		return false, fmt.Errorf("unknown player %s", playerID)
	}
	if !g.pendingMulligans[playerID] {
		return false, fmt.Errorf("%s has no pending mulligan", p.Name)
	}

	g.revealHand(p)
	if opp, found := g.Opponent(playerID); found {
		g.revealHand(opp)
	}

	p.ReturnHandToDeck()
	p.ShuffleDeck(g.rng)
	g.emit(log.NewDeckShuffledEvent(0, "Setup", p.ID, p.Name))
	p.DrawCards(OpeningHandSize)

	g.MulliganCount++
	g.mulligansByPlayer[playerID]++
	g.emit(log.NewMulliganEvent(p.ID, p.Name, g.MulliganCount))

	hasBasic := len(p.FindBasicPokemonInHand(g.CardDB)) > 0
	if hasBasic {
		delete(g.pendingMulligans, playerID)
	}
	return hasBasic, nil
}

// PerformPendingMulligans repeats mulligans until every marked player
// draws a hand with a basic Pokémon.
func (g *Game) PerformPendingMulligans() error {
	for _, id := range g.TurnOrder {
		for g.pendingMulligans[id] {
			if _, err := g.PerformMulligan(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// MulliganCompensationLimit returns how many extra cards the player may
// draw: one per mulligan their opponent took.
func (g *Game) MulliganCompensationLimit(playerID uuid.UUID) int {
	limit := 0
	for pid, n := range g.mulligansByPlayer {
		if pid != playerID {
			limit += n
		}
	}
	return limit
}

// MulliganCompensation draws n extra cards for the player, up to the
// limit earned from the opponent's mulligans. Each player may take
// compensation at most once.
func (g *Game) MulliganCompensation(playerID uuid.UUID, n int) error {
	p, ok := g.Players[playerID]
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if g.compensationTaken[playerID] {
		return fmt.Errorf("%s already took mulligan compensation", p.Name)
	}
	limit := g.MulliganCompensationLimit(playerID)
	if n < 0 || n > limit {
		return fmt.Errorf("%s may draw at most %d compensation card(s), asked for %d", p.Name, limit, n)
	}
	g.compensationTaken[playerID] = true
	if n == 0 {
		return nil
	}
	drawn := p.DrawCards(n)
	g.emit(log.NewMulliganCompensationEvent(p.ID, p.Name, len(drawn)))
	return nil
}

// SelectActivePokemon places a basic Pokémon from the player's hand in
// the active spot.
func (g *Game) SelectActivePokemon(playerID uuid.UUID, cardID CardID) error {
	p, ok := g.Players[playerID]
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if g.State != StateSetup {
		return fmt.Errorf("cannot select active: game is %s", g.State)
	}
	if g.pendingMulligans[playerID] {
		return fmt.Errorf("%s must resolve their mulligan first", p.Name)
	}
	card, ok := g.Card(cardID)
	if !ok {
		return fmt.Errorf("unknown card %s", cardID)
	}
	if !card.IsBasicPokemon() {
		return fmt.Errorf("%s is not a basic Pokémon", card.Name)
	}
	if err := p.SetActive(cardID); err != nil {
		return err
	}
	g.emit(log.NewActiveSelectedEvent(p.ID, p.Name, card.Name, cardID))
	return nil
}

// SetupBench places basic Pokémon from the hand onto the bench. The
// whole batch is validated before anything moves: if any card is
// invalid, or the batch would overflow the bench, nothing is placed.
func (g *Game) SetupBench(playerID uuid.UUID, cardIDs []CardID) error {
	p, ok := g.Players[playerID]
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if g.State != StateSetup {
		return fmt.Errorf("cannot set up bench: game is %s", g.State)
	}
	if len(p.Bench)+len(cardIDs) > MaxBenchSize {
		return fmt.Errorf("bench can hold %d Pokémon, %s tried to place %d with %d already benched",
			MaxBenchSize, p.Name, len(cardIDs), len(p.Bench))
	}

	seen := map[CardID]int{}
	for _, id := range cardIDs {
		card, ok := g.Card(id)
		if !ok {
			return fmt.Errorf("unknown card %s", id)
		}
		if !card.IsBasicPokemon() {
			return fmt.Errorf("%s is not a basic Pokémon", card.Name)
		}
		seen[id]++
		copies := 0
		for _, h := range p.Hand {
			if h == id {
				copies++
			}
		}
		if seen[id] > copies {
			return fmt.Errorf("%s has only %d copy(ies) of %s in hand", p.Name, copies, card.Name)
		}
	}

	for _, id := range cardIDs {
		if err := p.BenchPokemon(id); err != nil {
			return err
		}
		g.emit(log.NewBenchedEvent(0, "Setup", p.ID, p.Name, g.cardName(id), id))
	}
	return nil
}

// PlacePrizeCards sets aside each player's prize cards from the top of
// their deck.
func (g *Game) PlacePrizeCards() error {
	if g.State != StateSetup {
		return fmt.Errorf("cannot place prizes: game is %s", g.State)
	}
	for _, id := range g.TurnOrder {
		p := g.Players[id]
		if len(p.Prizes) > 0 {
			return fmt.Errorf("%s's prizes are already placed", p.Name)
		}
		for i := 0; i < g.Rules.PrizeCards && len(p.Deck) > 0; i++ {
			top := p.Deck[len(p.Deck)-1]
			p.Deck = p.Deck[:len(p.Deck)-1]
			p.Prizes = append(p.Prizes, top)
		}
		g.emit(log.NewPrizesPlacedEvent(p.ID, p.Name, len(p.Prizes)))
	}
	return nil
}

// CompleteSetup finishes the setup protocol and starts the first turn.
// Every player must have an active Pokémon and placed prizes.
func (g *Game) CompleteSetup() error {
	if g.State != StateSetup {
		return fmt.Errorf("cannot complete setup: game is %s", g.State)
	}
	if len(g.TurnOrder) == 0 {
		return fmt.Errorf("turn order has not been determined")
	}
	for _, id := range g.TurnOrder {
		p := g.Players[id]
		if g.pendingMulligans[id] {
			return fmt.Errorf("%s has an unresolved mulligan", p.Name)
		}
		if p.Active == uuid.Nil {
			return fmt.Errorf("%s has no active Pokémon", p.Name)
		}
		if len(p.Prizes) == 0 {
			return fmt.Errorf("%s has no prize cards placed", p.Name)
		}
	}

	g.emit(log.NewSetupCompletedEvent())
	g.State = StateInProgress
	g.emit(log.NewGameStartedEvent(len(g.Players)))
	g.StartTurn()
	return nil
}

// revealHand logs the player's full hand by card name.
func (g *Game) revealHand(p *Player) {
	names := make([]string, len(p.Hand))
	for i, id := range p.Hand {
		names[i] = g.cardName(id)
	}
	g.emit(log.NewHandRevealedEvent(p.ID, p.Name, names))
}

// sortedPlayerIDs returns player ids in a stable order.
func (g *Game) sortedPlayerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
