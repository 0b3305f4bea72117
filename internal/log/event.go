package log

import "github.com/google/uuid"

// EventType enumerates all observable game events.
type EventType int

const (
	EventSetupStarted EventType = iota
	EventTurnOrderDetermined
	EventOpeningHandsDealt
	EventHandRevealed
	EventMulligan
	EventMulliganCompensation
	EventActiveSelected
	EventPokemonBenched
	EventPrizesPlaced
	EventSetupCompleted
	EventGameStarted
	EventTurnStarted
	EventCardDrawn
	EventCardPlayed
	EventPokemonEvolved
	EventPokemonPromoted
	EventEnergyAttached
	EventAttackUsed
	EventDamageDealt
	EventPokemonKnockedOut
	EventPrizeTaken
	EventRetreat
	EventConditionApplied
	EventConditionDamage
	EventConditionRemoved
	EventCardDiscarded
	EventDeckShuffled
	EventPhaseChanged
	EventPlayerPassed
	EventTurnEnded
	EventGameEnded
)

func (e EventType) String() string {
	switch e {
	case EventSetupStarted:
		return "SetupStarted"
	case EventTurnOrderDetermined:
		return "TurnOrderDetermined"
	case EventOpeningHandsDealt:
		return "OpeningHandsDealt"
	case EventHandRevealed:
		return "HandRevealed"
	case EventMulligan:
		return "Mulligan"
	case EventMulliganCompensation:
		return "MulliganCompensation"
	case EventActiveSelected:
		return "ActiveSelected"
	case EventPokemonBenched:
		return "PokemonBenched"
	case EventPrizesPlaced:
		return "PrizesPlaced"
	case EventSetupCompleted:
		return "SetupCompleted"
	case EventGameStarted:
		return "GameStarted"
	case EventTurnStarted:
		return "TurnStarted"
	case EventCardDrawn:
		return "CardDrawn"
	case EventCardPlayed:
		return "CardPlayed"
	case EventPokemonEvolved:
		return "PokemonEvolved"
	case EventPokemonPromoted:
		return "PokemonPromoted"
	case EventEnergyAttached:
		return "EnergyAttached"
	case EventAttackUsed:
		return "AttackUsed"
	case EventDamageDealt:
		return "DamageDealt"
	case EventPokemonKnockedOut:
		return "PokemonKnockedOut"
	case EventPrizeTaken:
		return "PrizeTaken"
	case EventRetreat:
		return "Retreat"
	case EventConditionApplied:
		return "ConditionApplied"
	case EventConditionDamage:
		return "ConditionDamage"
	case EventConditionRemoved:
		return "ConditionRemoved"
	case EventCardDiscarded:
		return "CardDiscarded"
	case EventDeckShuffled:
		return "DeckShuffled"
	case EventPhaseChanged:
		return "PhaseChanged"
	case EventPlayerPassed:
		return "PlayerPassed"
	case EventTurnEnded:
		return "TurnEnded"
	case EventGameEnded:
		return "GameEnded"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based; 0 during setup)
	Phase   string    // current phase name ("Setup" before the game starts)
	Player  uuid.UUID // acting player (zero UUID for game-wide events)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	CardID  uuid.UUID // card id (if applicable)
	Details string    // human-readable detail string
}
