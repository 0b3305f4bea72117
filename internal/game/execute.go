package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
)

// ExecuteAction validates an action against the rule engine and, if it
// passes, mutates game state. No state changes when validation fails:
// the returned violations say why. Violations may also accompany a
// successful action when they are warnings.
func (g *Game) ExecuteAction(engine *RuleEngine, a GameAction) ([]RuleViolation, error) {
	var violations []RuleViolation
	if engine != nil {
		var ok bool
		violations, ok = engine.ApplyAction(g, a)
		if !ok {
			return violations, fmt.Errorf("action %s rejected: %s", a, violations[len(violations)-1].Message)
		}
	}

	p, ok := g.Players[a.Player]
	if !ok {
		return violations, fmt.Errorf("unknown player %s", a.Player)
	}

	var err error
	switch a.Type {
	case ActionDrawCard:
		err = g.executeDraw(p)
	case ActionPlayCard:
		err = g.executePlayCard(p, a)
	case ActionAttachEnergy:
		err = g.executeAttachEnergy(p, a)
	case ActionUseAttack:
		err = g.executeAttack(p, a)
	case ActionRetreat:
		err = g.executeRetreat(p, a)
	case ActionEndTurn:
		g.EndTurn()
	case ActionPass:
		g.emit(log.NewPlayerPassedEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name))
		g.EndTurn()
	default:
		err = fmt.Errorf("unknown action type %d", a.Type)
	}
	return violations, err
}

func (g *Game) executeDraw(p *Player) error {
	id, ok := p.DrawCard()
	if !ok {
		return fmt.Errorf("%s's deck is empty", p.Name)
	}
	g.emit(log.NewCardDrawnEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, g.cardName(id), id))
	return nil
}

func (g *Game) executePlayCard(p *Player, a GameAction) error {
	card, ok := g.Card(a.Card)
	if !ok {
		return fmt.Errorf("unknown card %s", a.Card)
	}
	if !p.HasInHand(a.Card) {
		return fmt.Errorf("%s is not in %s's hand", card.Name, p.Name)
	}

	switch {
	case card.IsTrainer():
		return g.playTrainer(p, card)
	case card.IsPokemon() && card.Pokemon.Stage == StageBasic:
		return g.playBasicPokemon(p, card)
	case card.IsPokemon():
		return g.playEvolution(p, card, a.Target)
	default:
		return fmt.Errorf("%s cannot be played directly, use AttachEnergy", card.Name)
	}
}

func (g *Game) playTrainer(p *Player, card *Card) error {
	if card.Trainer.Type == TrainerSupporter {
		p.SupporterPlayedThisTurn = true
	}
	if err := p.DiscardFromHand(card.ID); err != nil {
		return err
	}
	g.emit(log.NewCardPlayedEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, card.Name, card.ID))
	return nil
}

func (g *Game) playBasicPokemon(p *Player, card *Card) error {
	if p.Active == uuid.Nil {
		if err := p.SetActive(card.ID); err != nil {
			return err
		}
		g.emit(log.NewPromotedEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, card.Name, card.ID))
		return nil
	}
	if err := p.BenchPokemon(card.ID); err != nil {
		return err
	}
	g.emit(log.NewBenchedEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, card.Name, card.ID))
	return nil
}

func (g *Game) playEvolution(p *Player, card *Card, target CardID) error {
	if target == uuid.Nil {
		return fmt.Errorf("playing %s requires an evolution target", card.Name)
	}
	targetCard, ok := g.Card(target)
	if !ok || !targetCard.IsPokemon() {
		return fmt.Errorf("evolution target %s is not a Pokémon", target)
	}
	if !p.InPlay(target) {
		return fmt.Errorf("%s is not in play", targetCard.Name)
	}
	if card.Pokemon.EvolvesFrom != targetCard.Pokemon.Species {
		return fmt.Errorf("%s does not evolve from %s", card.Name, targetCard.Pokemon.Species)
	}
	if err := p.EvolvePokemon(card.ID, target); err != nil {
		return err
	}
	g.emit(log.NewEvolvedEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, targetCard.Name, card.Name, card.ID))
	return nil
}

func (g *Game) executeAttachEnergy(p *Player, a GameAction) error {
	card, ok := g.Card(a.Card)
	if !ok || !card.IsEnergy() {
		return fmt.Errorf("card %s is not an energy card", a.Card)
	}
	target := a.Target
	if target == uuid.Nil {
		target = p.Active
	}
	if target == uuid.Nil {
		return fmt.Errorf("%s has no Pokémon to attach to", p.Name)
	}
	if err := p.AttachEnergy(a.Card, target, card.Energy.Type); err != nil {
		return err
	}
	p.EnergyAttachedThisTurn = true
	g.emit(log.NewEnergyAttachedEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, card.Name, g.cardName(target)))
	return nil
}

func (g *Game) executeAttack(p *Player, a GameAction) error {
	if p.Active == uuid.Nil {
		return fmt.Errorf("%s has no active Pokémon", p.Name)
	}
	attacker, ok := g.Card(p.Active)
	if !ok || !attacker.IsPokemon() {
		return fmt.Errorf("active card %s is not a Pokémon", p.Active)
	}
	for _, cond := range p.Conditions[p.Active] {
		if cond.PreventsAttack() {
			return fmt.Errorf("%s is %s and cannot attack", attacker.Name, cond.Kind)
		}
	}
	if a.AttackIndex < 0 || a.AttackIndex >= len(attacker.Pokemon.Attacks) {
		return fmt.Errorf("%s has no attack %d", attacker.Name, a.AttackIndex)
	}
	attack := attacker.Pokemon.Attacks[a.AttackIndex]
	attached := p.AttachedEnergy[p.Active]
	if !attack.CanPay(attached) {
		return fmt.Errorf("not enough energy for %s (needs %s)", attack.Name, attack.CostString())
	}

	opp, ok := g.Opponent(p.ID)
	if !ok {
		return fmt.Errorf("no opponent in game")
	}
	if opp.Active == uuid.Nil {
		return fmt.Errorf("%s has no active Pokémon to attack", opp.Name)
	}
	defender, ok := g.Card(opp.Active)
	if !ok || !defender.IsPokemon() {
		return fmt.Errorf("defending card %s is not a Pokémon", opp.Active)
	}

	g.Phase = PhaseAttack
	p.HasAttacked = true
	g.emit(log.NewAttackUsedEvent(g.TurnNumber, p.ID, p.Name, attacker.Name, attack.Name))

	// A confused attacker flips a coin; on tails the attack hits itself
	// for 30 instead of resolving.
	if p.HasCondition(p.Active, ConditionConfused) && g.rng.Intn(2) == 1 {
		p.AddDamage(p.Active, 30)
		g.emit(log.NewDamageDealtEvent(g.TurnNumber, p.ID, attacker.Name, p.Active, 30))
		g.resolveKnockout(p, opp, p.Active, attacker)
		g.EndTurn()
		return nil
	}

	damage := attack.ComputeDamage(attached, len(p.PokemonInPlay()), g.rng)
	if damage > 0 {
		if w := defender.Pokemon.Weakness; w != nil && *w == attacker.Pokemon.Type {
			damage *= 2
		}
		if r := defender.Pokemon.Resistance; r != nil && *r == attacker.Pokemon.Type {
			damage -= 30
			if damage < 0 {
				damage = 0
			}
		}
	}
	if damage > 0 {
		opp.AddDamage(opp.Active, damage)
		g.emit(log.NewDamageDealtEvent(g.TurnNumber, p.ID, defender.Name, opp.Active, damage))
	}

	for _, se := range attack.StatusEffects {
		if se.Probability >= 1 || g.rng.Float64() < se.Probability {
			opp.ApplyCondition(opp.Active, NewCondition(se.Condition, g.TurnNumber))
			g.emit(log.NewConditionAppliedEvent(g.TurnNumber, g.Phase.String(), opp.ID, defender.Name, se.Condition.String()))
		}
	}

	g.resolveKnockout(opp, p, opp.Active, defender)
	if g.State == StateInProgress {
		g.EndTurn()
	}
	return nil
}

// resolveKnockout handles a possible knockout of owner's Pokémon, with
// scorer taking a prize. It promotes the owner's next benched Pokémon
// and checks win conditions.
func (g *Game) resolveKnockout(owner, scorer *Player, id CardID, card *Card) {
	if !owner.IsKnockedOut(id, g.CardDB) {
		return
	}
	g.emit(log.NewKnockedOutEvent(g.TurnNumber, g.Phase.String(), owner.ID, card.Name, id))
	wasActive := owner.Active == id
	owner.DiscardPokemon(id)

	if _, ok := scorer.TakePrize(); ok {
		g.emit(log.NewPrizeTakenEvent(g.TurnNumber, scorer.ID, scorer.Name, len(scorer.Prizes)))
	}

	if wasActive && len(owner.Bench) > 0 {
		promoted := owner.Bench[0]
		owner.Bench = owner.Bench[1:]
		owner.Active = promoted
		g.emit(log.NewPromotedEvent(g.TurnNumber, g.Phase.String(), owner.ID, owner.Name, g.cardName(promoted), promoted))
	}

	g.CheckWinConditions()
}

func (g *Game) executeRetreat(p *Player, a GameAction) error {
	if p.Active == uuid.Nil {
		return fmt.Errorf("%s has no active Pokémon", p.Name)
	}
	active, ok := g.Card(p.Active)
	if !ok || !active.IsPokemon() {
		return fmt.Errorf("active card %s is not a Pokémon", p.Active)
	}
	for _, cond := range p.Conditions[p.Active] {
		if cond.PreventsRetreat() {
			return fmt.Errorf("%s is %s and cannot retreat", active.Name, cond.Kind)
		}
	}

	benchIdx := -1
	for i, b := range p.Bench {
		if b == a.Target {
			benchIdx = i
			break
		}
	}
	if benchIdx < 0 {
		return fmt.Errorf("retreat replacement %s is not on %s's bench", a.Target, p.Name)
	}

	cost := active.Pokemon.RetreatCost
	attached := p.AttachedEnergy[p.Active]
	if len(attached) < cost {
		return fmt.Errorf("%s needs %d energy to retreat, has %d", active.Name, cost, len(attached))
	}
	if cost > 0 {
		p.AttachedEnergy[p.Active] = attached[cost:]
	}

	// Swap active and the chosen bench slot. Conditions on the retreating
	// Pokémon are removed when it goes to the bench.
	old := p.Active
	p.Active = a.Target
	p.Bench[benchIdx] = old
	p.ClearConditions(old)

	g.emit(log.NewRetreatEvent(g.TurnNumber, g.Phase.String(), p.ID, p.Name, active.Name, g.cardName(p.Active)))
	return nil
}
