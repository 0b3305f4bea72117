package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// EventLogger is the interface for recording game events. Implementations
// own the append-only history of a match.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// Handler receives every event synchronously at emission time.
type Handler interface {
	Name() string
	HandleEvent(event GameEvent)
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- Bus: a MemoryLogger that also pushes events to registered handlers ---

// Bus keeps the full history and fans each event out to handlers
// synchronously, in registration order.
type Bus struct {
	MemoryLogger
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// RegisterHandler adds a handler. A handler registered twice receives
// each event twice.
func (b *Bus) RegisterHandler(h Handler) {
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Log(event GameEvent) {
	b.MemoryLogger.Log(event)
	// The stored copy carries the assigned Seq; forward that one.
	stored := b.MemoryLogger.LastEvent()
	for _, h := range b.handlers {
		h.HandleEvent(stored)
	}
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewSetupStartedEvent(players int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventSetupStarted,
		Details: fmt.Sprintf("Setup started with %d players", players),
	}
}

func NewTurnOrderEvent(first string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventTurnOrderDetermined,
		Details: fmt.Sprintf("Turn order determined: %s goes first", first),
	}
}

func NewOpeningHandsEvent(handSize int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventOpeningHandsDealt,
		Details: fmt.Sprintf("Opening hands dealt (%d cards each)", handSize),
	}
}

func NewHandRevealedEvent(player uuid.UUID, playerName string, cards []string) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventHandRevealed,
		Details: fmt.Sprintf("%s reveals hand: %s", playerName, strings.Join(cards, ", ")),
	}
}

func NewMulliganEvent(player uuid.UUID, playerName string, total int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventMulligan,
		Details: fmt.Sprintf("%s mulligans (match total: %d)", playerName, total),
	}
}

func NewMulliganCompensationEvent(player uuid.UUID, playerName string, count int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventMulliganCompensation,
		Details: fmt.Sprintf("%s draws %d compensation card(s)", playerName, count),
	}
}

func NewActiveSelectedEvent(player uuid.UUID, playerName string, card string, cardID uuid.UUID) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventActiveSelected,
		Card:    card,
		CardID:  cardID,
		Details: fmt.Sprintf("%s puts %s in the active spot", playerName, card),
	}
}

func NewBenchedEvent(turn int, phase string, player uuid.UUID, playerName string, card string, cardID uuid.UUID) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPokemonBenched,
		Card:    card,
		CardID:  cardID,
		Details: fmt.Sprintf("%s benches %s", playerName, card),
	}
}

func NewPrizesPlacedEvent(player uuid.UUID, playerName string, count int) GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Player:  player,
		Type:    EventPrizesPlaced,
		Details: fmt.Sprintf("%s sets aside %d prize card(s)", playerName, count),
	}
}

func NewSetupCompletedEvent() GameEvent {
	return GameEvent{
		Phase:   "Setup",
		Type:    EventSetupCompleted,
		Details: "Setup complete",
	}
}

func NewGameStartedEvent(players int) GameEvent {
	return GameEvent{
		Type:    EventGameStarted,
		Details: fmt.Sprintf("Game started with %d players", players),
	}
}

func NewTurnStartedEvent(turn int, player uuid.UUID, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "BeginningOfTurn",
		Player:  player,
		Type:    EventTurnStarted,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName),
	}
}

func NewCardDrawnEvent(turn int, phase string, player uuid.UUID, playerName string, card string, cardID uuid.UUID) GameEvent {
	details := fmt.Sprintf("%s draws %s", playerName, card)
	if card == "" {
		details = fmt.Sprintf("%s cannot draw (deck empty)", playerName)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardDrawn,
		Card:    card,
		CardID:  cardID,
		Details: details,
	}
}

func NewCardPlayedEvent(turn int, phase string, player uuid.UUID, playerName string, card string, cardID uuid.UUID) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardPlayed,
		Card:    card,
		CardID:  cardID,
		Details: fmt.Sprintf("%s plays %s", playerName, card),
	}
}

func NewEvolvedEvent(turn int, phase string, player uuid.UUID, playerName string, from, into string, cardID uuid.UUID) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPokemonEvolved,
		Card:    into,
		CardID:  cardID,
		Details: fmt.Sprintf("%s evolves %s into %s", playerName, from, into),
	}
}

func NewPromotedEvent(turn int, phase string, player uuid.UUID, playerName string, card string, cardID uuid.UUID) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPokemonPromoted,
		Card:    card,
		CardID:  cardID,
		Details: fmt.Sprintf("%s promotes %s to the active spot", playerName, card),
	}
}

func NewEnergyAttachedEvent(turn int, phase string, player uuid.UUID, playerName string, energy, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEnergyAttached,
		Card:    energy,
		Details: fmt.Sprintf("%s attaches %s to %s", playerName, energy, target),
	}
}

func NewAttackUsedEvent(turn int, player uuid.UUID, playerName string, attacker, attack string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventAttackUsed,
		Card:    attacker,
		Details: fmt.Sprintf("%s's %s uses %s", playerName, attacker, attack),
	}
}

func NewDamageDealtEvent(turn int, player uuid.UUID, target string, targetID uuid.UUID, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventDamageDealt,
		Card:    target,
		CardID:  targetID,
		Details: fmt.Sprintf("%s takes %d damage", target, damage),
	}
}

func NewKnockedOutEvent(turn int, phase string, player uuid.UUID, card string, cardID uuid.UUID) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPokemonKnockedOut,
		Card:    card,
		CardID:  cardID,
		Details: fmt.Sprintf("%s is knocked out", card),
	}
}

func NewPrizeTakenEvent(turn int, player uuid.UUID, playerName string, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Attack",
		Player:  player,
		Type:    EventPrizeTaken,
		Details: fmt.Sprintf("%s takes a prize card (%d remaining)", playerName, remaining),
	}
}

func NewRetreatEvent(turn int, phase string, player uuid.UUID, playerName string, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRetreat,
		Card:    from,
		Details: fmt.Sprintf("%s retreats %s for %s", playerName, from, to),
	}
}

func NewConditionAppliedEvent(turn int, phase string, player uuid.UUID, card, condition string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventConditionApplied,
		Card:    card,
		Details: fmt.Sprintf("%s is now %s", card, condition),
	}
}

func NewConditionDamageEvent(turn int, phase string, player uuid.UUID, card, condition string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventConditionDamage,
		Card:    card,
		Details: fmt.Sprintf("%s takes %d damage from %s", card, damage, condition),
	}
}

func NewConditionRemovedEvent(turn int, phase string, player uuid.UUID, card, condition string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventConditionRemoved,
		Card:    card,
		Details: fmt.Sprintf("%s is no longer %s", card, condition),
	}
}

func NewCardDiscardedEvent(turn int, phase string, player uuid.UUID, playerName string, card string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardDiscarded,
		Card:    card,
		Details: fmt.Sprintf("%s discards %s", playerName, card),
	}
}

func NewDeckShuffledEvent(turn int, phase string, player uuid.UUID, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeckShuffled,
		Details: fmt.Sprintf("%s shuffled their deck", playerName),
	}
}

func NewPhaseChangedEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChanged,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewPlayerPassedEvent(turn int, phase string, player uuid.UUID, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayerPassed,
		Details: fmt.Sprintf("%s passes", playerName),
	}
}

func NewTurnEndedEvent(turn int, player uuid.UUID, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "EndOfTurn",
		Player:  player,
		Type:    EventTurnEnded,
		Details: fmt.Sprintf("%s ends their turn", playerName),
	}
}

func NewGameEndedEvent(turn int, winner uuid.UUID, winnerName string) GameEvent {
	details := "Game over (no winner)"
	if winnerName != "" {
		details = fmt.Sprintf("%s wins!", winnerName)
	}
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventGameEnded,
		Details: details,
	}
}
