package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
)

// EffectID uniquely identifies a registered effect.
type EffectID = uuid.UUID

// EffectTrigger is the moment an effect fires.
type EffectTrigger int

const (
	TriggerOnPlay EffectTrigger = iota
	TriggerOnAttack
	TriggerOnDamaged
	TriggerOnKnockout
	TriggerStartOfTurn
	TriggerEndOfTurn
	TriggerManual
)

func (t EffectTrigger) String() string {
	switch t {
	case TriggerOnPlay:
		return "OnPlay"
	case TriggerOnAttack:
		return "OnAttack"
	case TriggerOnDamaged:
		return "OnDamaged"
	case TriggerOnKnockout:
		return "OnKnockout"
	case TriggerStartOfTurn:
		return "StartOfTurn"
	case TriggerEndOfTurn:
		return "EndOfTurn"
	case TriggerManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

// EffectKind selects what an effect does. The set is closed: dispatch is
// a switch, and adding a kind means extending the switch.
type EffectKind int

const (
	EffectDamage EffectKind = iota
	EffectHeal
	EffectDraw
	EffectApplyCondition
	EffectRemoveCondition
	EffectDiscardEnergy
)

func (k EffectKind) String() string {
	switch k {
	case EffectDamage:
		return "Damage"
	case EffectHeal:
		return "Heal"
	case EffectDraw:
		return "Draw"
	case EffectApplyCondition:
		return "ApplyCondition"
	case EffectRemoveCondition:
		return "RemoveCondition"
	case EffectDiscardEnergy:
		return "DiscardEnergy"
	default:
		return "Unknown"
	}
}

// TargetKind selects who an effect acts on, relative to its controller.
type TargetKind int

const (
	TargetOwnActive TargetKind = iota
	TargetOpponentActive
	TargetOwnPlayer
	TargetOpponentPlayer
)

func (t TargetKind) String() string {
	switch t {
	case TargetOwnActive:
		return "OwnActive"
	case TargetOpponentActive:
		return "OpponentActive"
	case TargetOwnPlayer:
		return "OwnPlayer"
	case TargetOpponentPlayer:
		return "OpponentPlayer"
	default:
		return "Unknown"
	}
}

// Effect is one registered effect. Only the fields its Kind reads are
// meaningful.
type Effect struct {
	ID       EffectID
	Name     string
	Kind     EffectKind
	Triggers []EffectTrigger
	Target   TargetKind

	Amount    int           // damage, healing, or cards drawn
	Condition ConditionKind // for ApplyCondition / RemoveCondition
}

// NewEffect creates an effect with a fresh id.
func NewEffect(name string, kind EffectKind, target TargetKind, triggers ...EffectTrigger) *Effect {
	return &Effect{
		ID:       uuid.New(),
		Name:     name,
		Kind:     kind,
		Triggers: triggers,
		Target:   target,
	}
}

// TriggersOn reports whether the effect fires on the given trigger.
func (e *Effect) TriggersOn(t EffectTrigger) bool {
	for _, tr := range e.Triggers {
		if tr == t {
			return true
		}
	}
	return false
}

// EffectContext carries the situation an effect fires in.
type EffectContext struct {
	SourceCard CardID
	Controller uuid.UUID
	Trigger    EffectTrigger
}

// EffectOutcome records what one effect application did.
type EffectOutcome struct {
	Kind        EffectKind
	Target      CardID    // affected Pokémon (if any)
	Player      uuid.UUID // affected player
	Amount      int
	Condition   ConditionKind
	Description string
}

// EffectResult is the result of one effect firing during a trigger pass.
type EffectResult struct {
	EffectID EffectID
	Source   CardID
	Outcomes []EffectOutcome
	Err      error
}

// CanApply reports whether the effect can fire in the given context,
// without mutating anything.
func (e *Effect) CanApply(g *Game, ctx EffectContext) bool {
	controller, ok := g.Players[ctx.Controller]
	if !ok {
		return false
	}
	opp, _ := g.Opponent(ctx.Controller)

	switch e.Target {
	case TargetOwnActive:
		return controller.Active != uuid.Nil
	case TargetOpponentActive:
		return opp != nil && opp.Active != uuid.Nil
	case TargetOwnPlayer:
		return true
	case TargetOpponentPlayer:
		return opp != nil
	default:
		return false
	}
}

// Apply fires the effect, mutating game state. Callers should check
// CanApply first; Apply returns an error when the target is missing.
func (e *Effect) Apply(g *Game, ctx EffectContext) ([]EffectOutcome, error) {
	controller, ok := g.Players[ctx.Controller]
	if !ok {
		return nil, fmt.Errorf("unknown controller %s", ctx.Controller)
	}
	opp, _ := g.Opponent(ctx.Controller)

	targetPlayer := controller
	if e.Target == TargetOpponentActive || e.Target == TargetOpponentPlayer {
		if opp == nil {
			return nil, fmt.Errorf("effect %s has no opponent to target", e.Name)
		}
		targetPlayer = opp
	}

	switch e.Kind {
	case EffectDamage, EffectHeal, EffectApplyCondition, EffectRemoveCondition, EffectDiscardEnergy:
		target := targetPlayer.Active
		if target == uuid.Nil {
			return nil, fmt.Errorf("effect %s has no active Pokémon to target", e.Name)
		}
		return e.applyToPokemon(g, targetPlayer, target)
	case EffectDraw:
		drawn := targetPlayer.DrawCards(e.Amount)
		for _, id := range drawn {
			g.emit(log.NewCardDrawnEvent(g.TurnNumber, g.Phase.String(), targetPlayer.ID, targetPlayer.Name, g.cardName(id), id))
		}
		return []EffectOutcome{{
			Kind:        EffectDraw,
			Player:      targetPlayer.ID,
			Amount:      len(drawn),
			Description: fmt.Sprintf("%s drew %d card(s)", targetPlayer.Name, len(drawn)),
		}}, nil
	default:
		return nil, fmt.Errorf("unknown effect kind %d", e.Kind)
	}
}

func (e *Effect) applyToPokemon(g *Game, p *Player, target CardID) ([]EffectOutcome, error) {
	name := g.cardName(target)
	switch e.Kind {
	case EffectDamage:
		p.AddDamage(target, e.Amount)
		g.emit(log.NewDamageDealtEvent(g.TurnNumber, p.ID, name, target, e.Amount))
		if opp, ok := g.Opponent(p.ID); ok {
			if card, found := g.Card(target); found {
				g.resolveKnockout(p, opp, target, card)
			}
		}
		return []EffectOutcome{{
			Kind: EffectDamage, Target: target, Player: p.ID, Amount: e.Amount,
			Description: fmt.Sprintf("%s took %d damage", name, e.Amount),
		}}, nil
	case EffectHeal:
		p.HealDamage(target, e.Amount)
		return []EffectOutcome{{
			Kind: EffectHeal, Target: target, Player: p.ID, Amount: e.Amount,
			Description: fmt.Sprintf("%s healed %d damage", name, e.Amount),
		}}, nil
	case EffectApplyCondition:
		p.ApplyCondition(target, NewCondition(e.Condition, g.TurnNumber))
		g.emit(log.NewConditionAppliedEvent(g.TurnNumber, g.Phase.String(), p.ID, name, e.Condition.String()))
		return []EffectOutcome{{
			Kind: EffectApplyCondition, Target: target, Player: p.ID, Condition: e.Condition,
			Description: fmt.Sprintf("%s is now %s", name, e.Condition),
		}}, nil
	case EffectRemoveCondition:
		p.RemoveCondition(target, e.Condition)
		g.emit(log.NewConditionRemovedEvent(g.TurnNumber, g.Phase.String(), p.ID, name, e.Condition.String()))
		return []EffectOutcome{{
			Kind: EffectRemoveCondition, Target: target, Player: p.ID, Condition: e.Condition,
			Description: fmt.Sprintf("%s is no longer %s", name, e.Condition),
		}}, nil
	case EffectDiscardEnergy:
		attached := p.AttachedEnergy[target]
		n := e.Amount
		if n > len(attached) {
			n = len(attached)
		}
		p.AttachedEnergy[target] = attached[n:]
		return []EffectOutcome{{
			Kind: EffectDiscardEnergy, Target: target, Player: p.ID, Amount: n,
			Description: fmt.Sprintf("%s lost %d energy", name, n),
		}}, nil
	default:
		return nil, fmt.Errorf("effect kind %s does not target a Pokémon", e.Kind)
	}
}

// --- EffectManager ---

// EffectManager keeps the registry of known effects and tracks which
// effects are attached to which in-play cards.
type EffectManager struct {
	effects  map[EffectID]*Effect
	attached map[CardID][]EffectID
}

// NewEffectManager creates an empty manager.
func NewEffectManager() *EffectManager {
	return &EffectManager{
		effects:  map[EffectID]*Effect{},
		attached: map[CardID][]EffectID{},
	}
}

// Register adds an effect to the registry.
func (m *EffectManager) Register(e *Effect) EffectID {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.effects[e.ID] = e
	return e.ID
}

// Effect returns a registered effect.
func (m *EffectManager) Effect(id EffectID) (*Effect, bool) {
	e, ok := m.effects[id]
	return e, ok
}

// Attach binds a registered effect to a card. Attaching an unregistered
// effect is an error.
func (m *EffectManager) Attach(effectID EffectID, card CardID) error {
	if _, ok := m.effects[effectID]; !ok {
		return fmt.Errorf("effect %s is not registered", effectID)
	}
	m.attached[card] = append(m.attached[card], effectID)
	return nil
}

// Detach removes one binding of the effect from the card.
func (m *EffectManager) Detach(effectID EffectID, card CardID) {
	ids := m.attached[card]
	for i, id := range ids {
		if id == effectID {
			m.attached[card] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(m.attached[card]) == 0 {
		delete(m.attached, card)
	}
}

// RemoveCardEffects drops every effect attached to the card, e.g. when
// it leaves play.
func (m *EffectManager) RemoveCardEffects(card CardID) {
	delete(m.attached, card)
}

// CardEffects returns the effects attached to a card.
func (m *EffectManager) CardEffects(card CardID) []*Effect {
	var out []*Effect
	for _, id := range m.attached[card] {
		if e, ok := m.effects[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// HasEffects reports whether the card has any attached effects.
func (m *EffectManager) HasEffects(card CardID) bool {
	return len(m.attached[card]) > 0
}

// EffectsByTrigger returns every attachment whose effect fires on the
// trigger, as (card, effect) pairs.
func (m *EffectManager) EffectsByTrigger(t EffectTrigger) map[CardID][]*Effect {
	out := map[CardID][]*Effect{}
	for card, ids := range m.attached {
		for _, id := range ids {
			if e, ok := m.effects[id]; ok && e.TriggersOn(t) {
				out[card] = append(out[card], e)
			}
		}
	}
	return out
}

// TriggerEffects fires every attached effect matching the trigger. The
// attachment index is snapshotted first, so effects that attach or
// detach other effects do not change this pass. Each effect's result is
// independent: one failure does not stop the others.
func (m *EffectManager) TriggerEffects(g *Game, controller uuid.UUID, t EffectTrigger) []EffectResult {
	type binding struct {
		card   CardID
		effect *Effect
	}
	var pass []binding
	for card, ids := range m.attached {
		for _, id := range ids {
			if e, ok := m.effects[id]; ok && e.TriggersOn(t) {
				pass = append(pass, binding{card, e})
			}
		}
	}

	var results []EffectResult
	for _, b := range pass {
		ctx := EffectContext{SourceCard: b.card, Controller: controller, Trigger: t}
		res := EffectResult{EffectID: b.effect.ID, Source: b.card}
		if !b.effect.CanApply(g, ctx) {
			res.Err = fmt.Errorf("effect %s cannot apply", b.effect.Name)
			results = append(results, res)
			continue
		}
		res.Outcomes, res.Err = b.effect.Apply(g, ctx)
		results = append(results, res)
	}
	return results
}
