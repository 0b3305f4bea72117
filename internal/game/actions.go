package game

import (
	"fmt"

	"github.com/google/uuid"
)

// ActionType enumerates the actions a player can take on their turn.
type ActionType int

const (
	ActionDrawCard ActionType = iota
	ActionPlayCard
	ActionAttachEnergy
	ActionUseAttack
	ActionRetreat
	ActionEndTurn
	ActionPass
)

func (t ActionType) String() string {
	switch t {
	case ActionDrawCard:
		return "DrawCard"
	case ActionPlayCard:
		return "PlayCard"
	case ActionAttachEnergy:
		return "AttachEnergy"
	case ActionUseAttack:
		return "UseAttack"
	case ActionRetreat:
		return "Retreat"
	case ActionEndTurn:
		return "EndTurn"
	case ActionPass:
		return "Pass"
	default:
		return "Unknown"
	}
}

// GameAction is one player intent. Card and Target carry the ids the
// action needs; unused fields stay zero.
type GameAction struct {
	Type        ActionType
	Player      uuid.UUID
	Card        CardID // card being played / attached / evolving
	Target      CardID // attachment or evolution target, retreat replacement
	AttackIndex int    // index into the active Pokémon's attacks
}

func (a GameAction) String() string {
	switch a.Type {
	case ActionUseAttack:
		return fmt.Sprintf("%s(attack %d)", a.Type, a.AttackIndex)
	case ActionPlayCard, ActionAttachEnergy:
		return fmt.Sprintf("%s(%s)", a.Type, a.Card)
	default:
		return a.Type.String()
	}
}

// --- Constructors ---

func NewDrawCardAction(player uuid.UUID) GameAction {
	return GameAction{Type: ActionDrawCard, Player: player}
}

func NewPlayCardAction(player uuid.UUID, card CardID) GameAction {
	return GameAction{Type: ActionPlayCard, Player: player, Card: card}
}

// NewEvolveAction plays an evolution card onto an in-play Pokémon.
func NewEvolveAction(player uuid.UUID, card, target CardID) GameAction {
	return GameAction{Type: ActionPlayCard, Player: player, Card: card, Target: target}
}

func NewAttachEnergyAction(player uuid.UUID, energy, target CardID) GameAction {
	return GameAction{Type: ActionAttachEnergy, Player: player, Card: energy, Target: target}
}

func NewUseAttackAction(player uuid.UUID, attackIndex int) GameAction {
	return GameAction{Type: ActionUseAttack, Player: player, AttackIndex: attackIndex}
}

// NewRetreatAction retreats the active Pokémon, promoting the given
// benched Pokémon.
func NewRetreatAction(player uuid.UUID, replacement CardID) GameAction {
	return GameAction{Type: ActionRetreat, Player: player, Target: replacement}
}

func NewEndTurnAction(player uuid.UUID) GameAction {
	return GameAction{Type: ActionEndTurn, Player: player}
}

func NewPassAction(player uuid.UUID) GameAction {
	return GameAction{Type: ActionPass, Player: player}
}
