package game

import (
	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
)

// StartTurn begins the current player's turn: per-turn flags reset, the
// turn counter advances on the first player's turn, the player draws a
// card, and start-of-turn effects fire. Failing to draw from an empty
// deck loses the game.
func (g *Game) StartTurn() {
	if g.State != StateInProgress {
		return
	}
	if g.CurrentPlayerIndex == 0 {
		g.TurnNumber++
	}
	if g.Rules.MaxTurns > 0 && g.TurnNumber > g.Rules.MaxTurns {
		g.EndGame(uuid.Nil)
		return
	}

	p := g.CurrentPlayer()
	p.StartTurn()
	g.Phase = PhaseBeginningOfTurn
	g.emit(log.NewTurnStartedEvent(g.TurnNumber, p.ID, p.Name))

	id, ok := p.DrawCard()
	if !ok {
		// Deck-out: unable to draw at the start of the turn.
		g.emit(log.NewCardDrawnEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, "", uuid.Nil))
		if opp, found := g.Opponent(p.ID); found {
			g.EndGame(opp.ID)
		} else {
			g.EndGame(uuid.Nil)
		}
		return
	}
	g.emit(log.NewCardDrawnEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, g.cardName(id), id))

	if g.Effects != nil {
		g.Effects.TriggerEffects(g, p.ID, TriggerStartOfTurn)
		if g.State != StateInProgress {
			return
		}
	}
	g.Phase = PhaseMain
}

// EndTurn finishes the current player's turn: end-of-turn effects fire,
// between-turns condition damage ticks, win conditions are checked, and
// the next player's turn starts.
func (g *Game) EndTurn() {
	if g.State != StateInProgress {
		return
	}
	p := g.CurrentPlayer()
	g.Phase = PhaseEndOfTurn
	g.emit(log.NewTurnEndedEvent(g.TurnNumber, p.ID, p.Name))

	if g.Effects != nil {
		g.Effects.TriggerEffects(g, p.ID, TriggerEndOfTurn)
	}
	g.TickSpecialConditions(p)
	if g.CheckWinConditions() {
		return
	}

	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.TurnOrder)
	g.StartTurn()
}

// NextPhase advances within the turn's phase cycle. Leaving EndOfTurn
// ends the turn.
func (g *Game) NextPhase() {
	if g.State != StateInProgress {
		return
	}
	switch g.Phase {
	case PhaseBeginningOfTurn:
		g.Phase = PhaseMain
	case PhaseMain:
		g.Phase = PhaseAttack
	case PhaseAttack:
		g.Phase = PhaseEndOfTurn
	case PhaseEndOfTurn:
		g.EndTurn()
		return
	}
	g.emit(log.NewPhaseChangedEvent(g.TurnNumber, g.Phase.String()))
}

// TickSpecialConditions applies between-turns damage from the player's
// Pokémon's conditions (poison, burn) and resolves any knockouts.
func (g *Game) TickSpecialConditions(p *Player) {
	for _, id := range p.PokemonInPlay() {
		card, ok := g.Card(id)
		if !ok {
			continue
		}
		for _, cond := range p.Conditions[id] {
			if !cond.TicksDamage() {
				continue
			}
			p.AddDamage(id, cond.DamagePerTurn)
			g.emit(log.NewConditionDamageEvent(g.TurnNumber, g.Phase.String(), p.ID, card.Name, cond.Kind.String(), cond.DamagePerTurn))
		}
		if p.IsKnockedOut(id, g.CardDB) {
			if opp, found := g.Opponent(p.ID); found {
				g.resolveKnockout(p, opp, id, card)
			}
		}
	}

	// A sleeping Pokémon flips to wake up between turns.
	if p.Active != uuid.Nil && p.HasCondition(p.Active, ConditionAsleep) && g.rng.Intn(2) == 0 {
		p.RemoveCondition(p.Active, ConditionAsleep)
		g.emit(log.NewConditionRemovedEvent(g.TurnNumber, g.Phase.String(), p.ID, g.cardName(p.Active), ConditionAsleep.String()))
	}
	// Paralysis wears off at the end of the afflicted player's turn.
	if p.Active != uuid.Nil && p.HasCondition(p.Active, ConditionParalyzed) {
		p.RemoveCondition(p.Active, ConditionParalyzed)
		g.emit(log.NewConditionRemovedEvent(g.TurnNumber, g.Phase.String(), p.ID, g.cardName(p.Active), ConditionParalyzed.String()))
	}
}

// CheckWinConditions ends the game if a player has taken all their
// prizes or an opponent has no Pokémon left. Returns true if the game
// ended.
func (g *Game) CheckWinConditions() bool {
	if g.State != StateInProgress {
		return true
	}
	for id, p := range g.Players {
		if p.HasWon() {
			g.EndGame(id)
			return true
		}
	}
	for id, p := range g.Players {
		if p.HasLost() {
			if opp, ok := g.Opponent(id); ok {
				g.EndGame(opp.ID)
			} else {
				g.EndGame(uuid.Nil)
			}
			return true
		}
	}
	return false
}
