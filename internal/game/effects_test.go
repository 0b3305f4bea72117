package game

import (
	"testing"

	"github.com/google/uuid"
)

func TestEffectManagerRegistry(t *testing.T) {
	m := NewEffectManager()
	heal := NewEffect("Soothing Aura", EffectHeal, TargetOwnActive, TriggerEndOfTurn)
	heal.Amount = 10

	id := m.Register(heal)
	got, ok := m.Effect(id)
	if !ok || got.Name != "Soothing Aura" {
		t.Fatalf("Effect(%s) = %v, %v", id, got, ok)
	}

	card := newCardID()
	if err := m.Attach(id, card); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !m.HasEffects(card) {
		t.Error("card should have an attached effect")
	}
	if effects := m.CardEffects(card); len(effects) != 1 || effects[0].ID != id {
		t.Errorf("CardEffects = %v", effects)
	}

	m.Detach(id, card)
	if m.HasEffects(card) {
		t.Error("detached card should have no effects")
	}
}

func TestAttachUnregisteredEffectFails(t *testing.T) {
	m := NewEffectManager()
	unregistered := NewEffect("Ghost", EffectHeal, TargetOwnActive, TriggerManual)
	if err := m.Attach(unregistered.ID, newCardID()); err == nil {
		t.Error("attaching an unregistered effect should fail")
	}
}

func TestRemoveCardEffects(t *testing.T) {
	m := NewEffectManager()
	a := m.Register(NewEffect("A", EffectHeal, TargetOwnActive, TriggerManual))
	b := m.Register(NewEffect("B", EffectDraw, TargetOwnPlayer, TriggerManual))
	card := newCardID()
	if err := m.Attach(a, card); err != nil {
		t.Fatal(err)
	}
	if err := m.Attach(b, card); err != nil {
		t.Fatal(err)
	}

	m.RemoveCardEffects(card)
	if m.HasEffects(card) {
		t.Error("RemoveCardEffects should drop every attachment")
	}
	// The registry itself is untouched.
	if _, ok := m.Effect(a); !ok {
		t.Error("registered effects should survive RemoveCardEffects")
	}
}

func TestEffectsByTrigger(t *testing.T) {
	m := NewEffectManager()
	onPlay := m.Register(NewEffect("OnPlay", EffectDraw, TargetOwnPlayer, TriggerOnPlay))
	endOfTurn := m.Register(NewEffect("EoT", EffectHeal, TargetOwnActive, TriggerEndOfTurn))
	both := m.Register(NewEffect("Both", EffectDamage, TargetOpponentActive, TriggerOnPlay, TriggerEndOfTurn))

	card := newCardID()
	for _, id := range []EffectID{onPlay, endOfTurn, both} {
		if err := m.Attach(id, card); err != nil {
			t.Fatal(err)
		}
	}

	byPlay := m.EffectsByTrigger(TriggerOnPlay)
	if len(byPlay[card]) != 2 {
		t.Errorf("OnPlay effects = %d, want 2", len(byPlay[card]))
	}
	byEnd := m.EffectsByTrigger(TriggerEndOfTurn)
	if len(byEnd[card]) != 2 {
		t.Errorf("EndOfTurn effects = %d, want 2", len(byEnd[card]))
	}
	if len(m.EffectsByTrigger(TriggerManual)) != 0 {
		t.Error("no Manual effects were attached")
	}
}

func TestTriggerHealEffect(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	atk.DamageCounters[atk.Active] = 30

	m := NewEffectManager()
	heal := NewEffect("Soothing Aura", EffectHeal, TargetOwnActive, TriggerEndOfTurn)
	heal.Amount = 20
	if err := m.Attach(m.Register(heal), atk.Active); err != nil {
		t.Fatal(err)
	}

	results := m.TriggerEffects(g, atk.ID, TriggerEndOfTurn)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("effect failed: %v", results[0].Err)
	}
	if atk.DamageCounters[atk.Active] != 10 {
		t.Errorf("damage = %d after healing 20, want 10", atk.DamageCounters[atk.Active])
	}
	out := results[0].Outcomes
	if len(out) != 1 || out[0].Kind != EffectHeal || out[0].Amount != 20 {
		t.Errorf("outcome = %v", out)
	}
}

func TestTriggerDrawEffect(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, _ := attackerDefender(g)
	before := len(atk.Hand)

	m := NewEffectManager()
	draw := NewEffect("Insight", EffectDraw, TargetOwnPlayer, TriggerOnPlay)
	draw.Amount = 2
	if err := m.Attach(m.Register(draw), atk.Active); err != nil {
		t.Fatal(err)
	}

	results := m.TriggerEffects(g, atk.ID, TriggerOnPlay)
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %v", results)
	}
	if len(atk.Hand) != before+2 {
		t.Errorf("hand = %d, want %d", len(atk.Hand), before+2)
	}
}

func TestTriggerDamageEffectCanKnockOut(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	def.Hand = append(def.Hand, pool.sparky.ID, pool.tideling.ID)
	def.Active = pool.sparky.ID // 40 HP
	def.Bench = []CardID{pool.tideling.ID}

	m := NewEffectManager()
	burn := NewEffect("Eruption", EffectDamage, TargetOpponentActive, TriggerOnAttack)
	burn.Amount = 40
	if err := m.Attach(m.Register(burn), atk.Active); err != nil {
		t.Fatal(err)
	}

	results := m.TriggerEffects(g, atk.ID, TriggerOnAttack)
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %v", results)
	}
	if def.InPlay(pool.sparky.ID) {
		t.Error("40 effect damage should knock out the 40 HP target")
	}
	if def.Active != pool.tideling.ID {
		t.Error("the bench replacement should be promoted")
	}
}

func TestTriggerConditionEffects(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)

	m := NewEffectManager()
	poison := NewEffect("Toxic Spores", EffectApplyCondition, TargetOpponentActive, TriggerOnAttack)
	poison.Condition = ConditionPoisoned
	if err := m.Attach(m.Register(poison), atk.Active); err != nil {
		t.Fatal(err)
	}

	if results := m.TriggerEffects(g, atk.ID, TriggerOnAttack); results[0].Err != nil {
		t.Fatalf("apply condition: %v", results[0].Err)
	}
	if !def.HasCondition(def.Active, ConditionPoisoned) {
		t.Fatal("opponent's active should be poisoned")
	}

	cure := NewEffect("Full Cleanse", EffectRemoveCondition, TargetOwnActive, TriggerManual)
	cure.Condition = ConditionPoisoned
	cm := NewEffectManager()
	if err := cm.Attach(cm.Register(cure), def.Active); err != nil {
		t.Fatal(err)
	}
	if results := cm.TriggerEffects(g, def.ID, TriggerManual); results[0].Err != nil {
		t.Fatalf("remove condition: %v", results[0].Err)
	}
	if def.HasCondition(def.Active, ConditionPoisoned) {
		t.Error("the condition should be removed")
	}
}

func TestTriggerDiscardEnergyEffect(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	def.AttachedEnergy[def.Active] = []EnergyType{EnergyWater, EnergyWater, EnergyWater}

	m := NewEffectManager()
	crush := NewEffect("Energy Crush", EffectDiscardEnergy, TargetOpponentActive, TriggerOnAttack)
	crush.Amount = 2
	if err := m.Attach(m.Register(crush), atk.Active); err != nil {
		t.Fatal(err)
	}

	results := m.TriggerEffects(g, atk.ID, TriggerOnAttack)
	if results[0].Err != nil {
		t.Fatalf("discard energy: %v", results[0].Err)
	}
	if len(def.AttachedEnergy[def.Active]) != 1 {
		t.Errorf("energy = %d, want 1", len(def.AttachedEnergy[def.Active]))
	}
	if results[0].Outcomes[0].Amount != 2 {
		t.Errorf("outcome amount = %d, want 2", results[0].Outcomes[0].Amount)
	}
}

func TestGameFiresTurnBoundaryEffects(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	atk.DamageCounters[atk.Active] = 30

	heal := NewEffect("Soothing Aura", EffectHeal, TargetOwnActive, TriggerEndOfTurn)
	heal.Amount = 20
	if err := g.Effects.Attach(g.Effects.Register(heal), atk.Active); err != nil {
		t.Fatal(err)
	}
	draw := NewEffect("Morning Insight", EffectDraw, TargetOwnPlayer, TriggerStartOfTurn)
	draw.Amount = 1
	if err := g.Effects.Attach(g.Effects.Register(draw), def.Active); err != nil {
		t.Fatal(err)
	}

	defHand := len(def.Hand)
	g.EndTurn()

	// End-of-turn effects fire for the player whose turn just ended.
	if atk.DamageCounters[atk.Active] != 10 {
		t.Errorf("damage = %d after end-of-turn heal, want 10", atk.DamageCounters[atk.Active])
	}
	// Start-of-turn effects fire for the incoming player, on top of the
	// mandatory turn draw.
	if len(def.Hand) != defHand+2 {
		t.Errorf("hand = %d, want %d (turn draw plus effect draw)", len(def.Hand), defHand+2)
	}
}

func TestEffectCannotApplyWithoutTarget(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	def.Active = uuid.Nil
	def.Bench = nil

	m := NewEffectManager()
	hit := NewEffect("Snipe", EffectDamage, TargetOpponentActive, TriggerManual)
	hit.Amount = 10
	if err := m.Attach(m.Register(hit), atk.Active); err != nil {
		t.Fatal(err)
	}

	results := m.TriggerEffects(g, atk.ID, TriggerManual)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Err == nil {
		t.Error("an effect with no target should report an error result")
	}
}

func TestEffectResultsAreIndependent(t *testing.T) {
	pool := newTestPool()
	g, alice, bob, _ := newTestGame(t, pool, 21)
	runFullSetup(t, g, pool, alice, bob)

	atk, def := attackerDefender(g)
	def.Active = uuid.Nil
	def.Bench = nil
	atk.DamageCounters[atk.Active] = 20

	m := NewEffectManager()
	broken := NewEffect("Snipe", EffectDamage, TargetOpponentActive, TriggerManual)
	broken.Amount = 10
	heal := NewEffect("Mend", EffectHeal, TargetOwnActive, TriggerManual)
	heal.Amount = 20
	if err := m.Attach(m.Register(broken), atk.Active); err != nil {
		t.Fatal(err)
	}
	if err := m.Attach(m.Register(heal), atk.Active); err != nil {
		t.Fatal(err)
	}

	results := m.TriggerEffects(g, atk.ID, TriggerManual)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("failed = %d, succeeded = %d; one effect's failure must not stop the other", failed, succeeded)
	}
	if atk.DamageCounters[atk.Active] != 0 {
		t.Error("the heal should have applied despite the other effect failing")
	}
}

func newCardID() CardID {
	return uuid.New()
}
