package game

import (
	"testing"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
)

func TestAttachEnergyOncePerTurn(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)
	engine := StandardEngine()

	atk, _ := attackerDefender(g)

	var energies []CardID
	for _, id := range atk.Hand {
		if c, ok := g.Card(id); ok && c.IsEnergy() {
			energies = append(energies, id)
		}
	}
	if len(energies) < 2 {
		t.Fatalf("need two energy cards in hand, have %d", len(energies))
	}

	if _, err := g.ExecuteAction(engine, NewAttachEnergyAction(atk.ID, energies[0], atk.Active)); err != nil {
		t.Fatalf("first attachment: %v", err)
	}
	if len(atk.AttachedEnergy[atk.Active]) != 1 {
		t.Fatalf("attached = %d, want 1", len(atk.AttachedEnergy[atk.Active]))
	}

	violations, err := g.ExecuteAction(engine, NewAttachEnergyAction(atk.ID, energies[1], atk.Active))
	if err == nil {
		t.Fatal("second attachment in one turn should be rejected")
	}
	if !hasViolation(violations, "energy-attachment") {
		t.Errorf("expected energy-attachment violation, got %v", violations)
	}
	if len(atk.AttachedEnergy[atk.Active]) != 1 {
		t.Error("rejected attachment must not change state")
	}
}

func TestAttachEnergyValidatesHandAndTarget(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)
	engine := StandardEngine()

	atk, def := attackerDefender(g)

	var energy CardID
	for _, id := range atk.Hand {
		if c, ok := g.Card(id); ok && c.IsEnergy() {
			energy = id
			break
		}
	}
	if energy == uuid.Nil {
		t.Fatal("need an energy card in hand")
	}

	// An energy card the player does not hold is an illegal action, not
	// an execution error.
	violations, err := g.ExecuteAction(engine, NewAttachEnergyAction(atk.ID, pool.wEnergy.ID, atk.Active))
	if err == nil {
		t.Fatal("attaching an energy outside the hand should be rejected")
	}
	if !hasViolation(violations, "energy-attachment") {
		t.Errorf("expected energy-attachment violation, got %v", violations)
	}

	// So is a target that is not among the player's Pokémon in play.
	violations, err = g.ExecuteAction(engine, NewAttachEnergyAction(atk.ID, energy, def.Active))
	if err == nil {
		t.Fatal("attaching to an opponent's Pokémon should be rejected")
	}
	if !hasViolation(violations, "energy-attachment") {
		t.Errorf("expected energy-attachment violation, got %v", violations)
	}
	if atk.EnergyAttachedThisTurn {
		t.Error("rejected attachments must not consume the per-turn attachment")
	}
}

func TestOffTurnActionRejected(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)
	engine := StandardEngine()

	_, def := attackerDefender(g)
	violations, err := g.ExecuteAction(engine, NewDrawCardAction(def.ID))
	if err == nil {
		t.Fatal("off-turn draw should be rejected")
	}
	if !hasViolation(violations, "turn-order") {
		t.Errorf("expected turn-order violation, got %v", violations)
	}
}

func TestAttackDealsDamageAndEndsTurn(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, logger := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	atk.AttachedEnergy[atk.Active] = []EnergyType{EnergyFighting}
	defActive := def.Active

	// Jab: 20 damage for [Fighting]. No rule engine: this exercises the
	// action semantics directly.
	if _, err := g.ExecuteAction(nil, NewUseAttackAction(atk.ID, 0)); err != nil {
		t.Fatalf("UseAttack: %v", err)
	}

	if def.DamageCounters[defActive] != 20 {
		t.Errorf("defender damage = %d, want 20", def.DamageCounters[defActive])
	}
	if len(logger.EventsOfType(log.EventAttackUsed)) != 1 {
		t.Error("expected an AttackUsed event")
	}
	dmg := logger.EventsOfType(log.EventDamageDealt)
	if len(dmg) != 1 {
		t.Fatalf("DamageDealt events = %d, want 1", len(dmg))
	}

	// Attacking ends the turn.
	if g.CurrentPlayerID() != def.ID {
		t.Error("turn should pass to the defender after an attack")
	}
}

func TestAttackRequiresEnergy(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	before := def.DamageCounters[def.Active]

	if _, err := g.ExecuteAction(nil, NewUseAttackAction(atk.ID, 0)); err == nil {
		t.Fatal("attack without energy should fail")
	}
	if def.DamageCounters[def.Active] != before {
		t.Error("failed attack must not deal damage")
	}
	if g.CurrentPlayerID() != atk.ID {
		t.Error("failed attack must not end the turn")
	}
}

func TestWeaknessDoublesDamage(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)

	// Put Sparky (weak to Fighting, 40 HP) in the defender's active spot
	// with no damage, and give the attacker one Fighting energy.
	def.Hand = append(def.Hand, pool.sparky.ID)
	def.Bench = nil
	def.Active = pool.sparky.ID
	atk.Active = pool.brawler.ID
	atk.AttachedEnergy[atk.Active] = []EnergyType{EnergyFighting}

	if _, err := g.ExecuteAction(nil, NewUseAttackAction(atk.ID, 0)); err != nil {
		t.Fatalf("UseAttack: %v", err)
	}

	// Jab 20, doubled to 40, knocks out the 40 HP Sparky.
	if def.InPlay(pool.sparky.ID) {
		t.Error("Sparky should be knocked out by weakness-doubled damage")
	}
	if len(atk.Prizes) != 5 {
		t.Errorf("attacker prizes = %d, want 5 after taking one", len(atk.Prizes))
	}
}

func TestKnockoutPromotesFromBench(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, logger := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)

	def.Hand = append(def.Hand, pool.sparky.ID, pool.tideling.ID)
	def.Active = pool.sparky.ID
	def.Bench = []CardID{pool.tideling.ID}
	atk.AttachedEnergy[atk.Active] = []EnergyType{EnergyFighting}

	if _, err := g.ExecuteAction(nil, NewUseAttackAction(atk.ID, 0)); err != nil {
		t.Fatalf("UseAttack: %v", err)
	}

	if len(logger.EventsOfType(log.EventPokemonKnockedOut)) != 1 {
		t.Fatal("expected a knockout event")
	}
	if def.Active != pool.tideling.ID {
		t.Error("benched Pokémon should be promoted after the knockout")
	}
	if len(def.Bench) != 0 {
		t.Errorf("bench = %d after promotion, want 0", len(def.Bench))
	}
	if len(logger.EventsOfType(log.EventPrizeTaken)) != 1 {
		t.Error("expected a PrizeTaken event")
	}
	if g.State != StateInProgress {
		t.Errorf("State = %s, game should continue", g.State)
	}
}

func TestEvolutionCarriesDamageAndEnergy(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, logger := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.Active = pool.brawler.ID
	atk.Hand = append(atk.Hand, pool.bruiser.ID)
	atk.AttachedEnergy[atk.Active] = []EnergyType{EnergyFighting, EnergyFighting}
	atk.DamageCounters[atk.Active] = 30
	atk.ApplyCondition(atk.Active, NewPoisoned(1))

	if _, err := g.ExecuteAction(nil, NewEvolveAction(atk.ID, pool.bruiser.ID, pool.brawler.ID)); err != nil {
		t.Fatalf("evolve: %v", err)
	}

	if atk.Active != pool.bruiser.ID {
		t.Fatal("active should now be the evolution")
	}
	if atk.DamageCounters[pool.bruiser.ID] != 30 {
		t.Errorf("damage = %d after evolving, want 30", atk.DamageCounters[pool.bruiser.ID])
	}
	if len(atk.AttachedEnergy[pool.bruiser.ID]) != 2 {
		t.Errorf("energy = %d after evolving, want 2", len(atk.AttachedEnergy[pool.bruiser.ID]))
	}
	if atk.HasCondition(pool.bruiser.ID, ConditionPoisoned) {
		t.Error("evolving should cure special conditions")
	}
	if len(logger.EventsOfType(log.EventPokemonEvolved)) != 1 {
		t.Error("expected an Evolved event")
	}
}

func TestEvolutionRequiresMatchingSpecies(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.Active = pool.tideling.ID
	atk.Hand = append(atk.Hand, pool.bruiser.ID)

	if _, err := g.ExecuteAction(nil, NewEvolveAction(atk.ID, pool.bruiser.ID, pool.tideling.ID)); err == nil {
		t.Error("Bruiser should not evolve from Tideling")
	}
}

func TestRetreatPaysCostAndSwaps(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, logger := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.Active = pool.brawler.ID
	atk.Hand = append(atk.Hand, pool.tideling.ID)
	atk.Bench = []CardID{pool.tideling.ID}
	atk.AttachedEnergy[atk.Active] = []EnergyType{EnergyFighting, EnergyFighting}

	if _, err := g.ExecuteAction(nil, NewRetreatAction(atk.ID, pool.tideling.ID)); err != nil {
		t.Fatalf("retreat: %v", err)
	}

	if atk.Active != pool.tideling.ID {
		t.Error("replacement should be active after retreating")
	}
	if atk.Bench[0] != pool.brawler.ID {
		t.Error("old active should be on the bench")
	}
	// Retreat cost 1 was paid from the two attached energy.
	if len(atk.AttachedEnergy[pool.brawler.ID]) != 1 {
		t.Errorf("energy = %d after paying retreat cost, want 1", len(atk.AttachedEnergy[pool.brawler.ID]))
	}
	if len(logger.EventsOfType(log.EventRetreat)) != 1 {
		t.Error("expected a Retreat event")
	}
}

func TestRetreatBlockedWithoutEnergy(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.Active = pool.brawler.ID
	atk.Bench = []CardID{pool.tideling.ID}
	delete(atk.AttachedEnergy, atk.Active)

	if _, err := g.ExecuteAction(nil, NewRetreatAction(atk.ID, pool.tideling.ID)); err == nil {
		t.Error("retreat without energy for the cost should fail")
	}
	if atk.Active != pool.brawler.ID {
		t.Error("failed retreat must not swap")
	}
}

func TestRetreatBlockedWhileParalyzed(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.Active = pool.brawler.ID
	atk.Bench = []CardID{pool.tideling.ID}
	atk.AttachedEnergy[atk.Active] = []EnergyType{EnergyFighting}
	atk.ApplyCondition(atk.Active, NewCondition(ConditionParalyzed, 1))

	if _, err := g.ExecuteAction(nil, NewRetreatAction(atk.ID, pool.tideling.ID)); err == nil {
		t.Error("paralyzed Pokémon should not retreat")
	}
}

func TestSupporterOncePerTurn(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)
	engine := StandardEngine()

	atk, _ := attackerDefender(g)
	atk.Hand = append(atk.Hand, pool.mentor.ID, pool.mentor.ID)

	if _, err := g.ExecuteAction(engine, NewPlayCardAction(atk.ID, pool.mentor.ID)); err != nil {
		t.Fatalf("first supporter: %v", err)
	}
	violations, err := g.ExecuteAction(engine, NewPlayCardAction(atk.ID, pool.mentor.ID))
	if err == nil {
		t.Fatal("second supporter in one turn should be rejected")
	}
	if !hasViolation(violations, "supporter") {
		t.Errorf("expected supporter violation, got %v", violations)
	}
}

func TestPlayBasicToBench(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, logger := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.Hand = append(atk.Hand, pool.sparky.ID)

	if _, err := g.ExecuteAction(nil, NewPlayCardAction(atk.ID, pool.sparky.ID)); err != nil {
		t.Fatalf("play basic: %v", err)
	}
	if !atk.InPlay(pool.sparky.ID) {
		t.Error("played basic should be on the bench")
	}
	if len(logger.EventsOfType(log.EventPokemonBenched)) == 0 {
		t.Error("expected a Benched event")
	}
}

func hasViolation(violations []RuleViolation, ruleName string) bool {
	for _, v := range violations {
		if v.RuleName == ruleName {
			return true
		}
	}
	return false
}
