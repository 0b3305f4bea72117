package game

import (
	"fmt"

	"github.com/google/uuid"
)

// StandardEngine returns a rule engine loaded with the standard
// two-player ruleset.
func StandardEngine() *RuleEngine {
	return StandardEngineWith(DefaultRuleConfig())
}

// StandardEngineWith returns the standard ruleset under a custom
// engine configuration.
func StandardEngineWith(config RuleConfig) *RuleEngine {
	e := NewRuleEngine(config)
	e.AddRule(GameInProgressRule{})
	e.AddRule(TurnOrderRule{})
	e.AddRule(EnergyAttachmentRule{})
	e.AddRule(SupporterRule{})
	e.AddRule(AttackOncePerTurnRule{})
	e.AddRule(HandLimitRule{})
	return e
}

// --- GameInProgressRule: actions only while the game runs ---

type GameInProgressRule struct{}

func (GameInProgressRule) Name() string { return "game-in-progress" }

func (GameInProgressRule) Validate(g *Game, a GameAction) *RuleViolation {
	if g.State != StateInProgress {
		return &RuleViolation{
			RuleName: "game-in-progress",
			Message:  fmt.Sprintf("game is %s, no actions allowed", g.State),
			Severity: SeverityFatal,
		}
	}
	return nil
}

func (GameInProgressRule) Apply(g *Game, a GameAction) *RuleViolation { return nil }

// --- TurnOrderRule: only the current player may act ---

type TurnOrderRule struct{}

func (TurnOrderRule) Name() string { return "turn-order" }

func (TurnOrderRule) Validate(g *Game, a GameAction) *RuleViolation {
	if !g.IsPlayerTurn(a.Player) {
		name := a.Player.String()
		if p, ok := g.Players[a.Player]; ok {
			name = p.Name
		}
		return &RuleViolation{
			RuleName: "turn-order",
			Message:  fmt.Sprintf("it is not %s's turn", name),
			Severity: SeverityError,
		}
	}
	return nil
}

func (TurnOrderRule) Apply(g *Game, a GameAction) *RuleViolation { return nil }

// --- EnergyAttachmentRule: one manual energy attachment per turn ---

type EnergyAttachmentRule struct{}

func (EnergyAttachmentRule) Name() string { return "energy-attachment" }

func (EnergyAttachmentRule) Validate(g *Game, a GameAction) *RuleViolation {
	if a.Type != ActionAttachEnergy {
		return nil
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return &RuleViolation{
			RuleName: "energy-attachment",
			Message:  fmt.Sprintf("unknown player %s", a.Player),
			Severity: SeverityError,
		}
	}
	if p.EnergyAttachedThisTurn {
		return &RuleViolation{
			RuleName: "energy-attachment",
			Message:  fmt.Sprintf("%s already attached energy this turn", p.Name),
			Severity: SeverityError,
		}
	}
	card, ok := g.Card(a.Card)
	if !ok || !card.IsEnergy() {
		return &RuleViolation{
			RuleName: "energy-attachment",
			Message:  fmt.Sprintf("card %s is not an energy card", a.Card),
			Severity: SeverityError,
		}
	}
	if !p.HasInHand(a.Card) {
		return &RuleViolation{
			RuleName: "energy-attachment",
			Message:  fmt.Sprintf("%s does not have %s in hand", p.Name, card.Name),
			Severity: SeverityError,
		}
	}
	if a.Target != uuid.Nil && !p.InPlay(a.Target) {
		return &RuleViolation{
			RuleName: "energy-attachment",
			Message:  fmt.Sprintf("target %s is not one of %s's Pokémon in play", a.Target, p.Name),
			Severity: SeverityError,
		}
	}
	return nil
}

func (EnergyAttachmentRule) Apply(g *Game, a GameAction) *RuleViolation { return nil }

// --- SupporterRule: one supporter per turn ---

type SupporterRule struct{}

func (SupporterRule) Name() string { return "supporter" }

func (SupporterRule) Validate(g *Game, a GameAction) *RuleViolation {
	if a.Type != ActionPlayCard {
		return nil
	}
	card, ok := g.Card(a.Card)
	if !ok || !card.IsTrainer() || card.Trainer.Type != TrainerSupporter {
		return nil
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return nil
	}
	if p.SupporterPlayedThisTurn {
		return &RuleViolation{
			RuleName: "supporter",
			Message:  fmt.Sprintf("%s already played a supporter this turn", p.Name),
			Severity: SeverityError,
		}
	}
	return nil
}

func (SupporterRule) Apply(g *Game, a GameAction) *RuleViolation { return nil }

// --- AttackOncePerTurnRule: attacking ends the offensive part of a turn ---

type AttackOncePerTurnRule struct{}

func (AttackOncePerTurnRule) Name() string { return "attack-once-per-turn" }

func (AttackOncePerTurnRule) Validate(g *Game, a GameAction) *RuleViolation {
	if a.Type != ActionUseAttack {
		return nil
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return nil
	}
	if p.HasAttacked {
		return &RuleViolation{
			RuleName: "attack-once-per-turn",
			Message:  fmt.Sprintf("%s already attacked this turn", p.Name),
			Severity: SeverityError,
		}
	}
	return nil
}

func (AttackOncePerTurnRule) Apply(g *Game, a GameAction) *RuleViolation { return nil }

// --- HandLimitRule: warns when a draw would exceed the hand limit ---

type HandLimitRule struct{}

func (HandLimitRule) Name() string { return "hand-limit" }

func (HandLimitRule) Validate(g *Game, a GameAction) *RuleViolation {
	if a.Type != ActionDrawCard || g.Rules.MaxHandSize <= 0 {
		return nil
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return nil
	}
	if len(p.Hand) >= g.Rules.MaxHandSize {
		return &RuleViolation{
			RuleName: "hand-limit",
			Message:  fmt.Sprintf("%s's hand is at the limit of %d", p.Name, g.Rules.MaxHandSize),
			Severity: SeverityWarning,
		}
	}
	return nil
}

func (HandLimitRule) Apply(g *Game, a GameAction) *RuleViolation { return nil }
