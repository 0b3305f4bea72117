package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// OpeningHandSize is the number of cards drawn during setup.
const OpeningHandSize = 7

// CardLocation names a zone a card can occupy.
type CardLocation int

const (
	LocationHand CardLocation = iota
	LocationDeck
	LocationDiscard
	LocationActive
	LocationBench
	LocationPrizes
)

func (l CardLocation) String() string {
	switch l {
	case LocationHand:
		return "Hand"
	case LocationDeck:
		return "Deck"
	case LocationDiscard:
		return "Discard"
	case LocationActive:
		return "Active"
	case LocationBench:
		return "Bench"
	case LocationPrizes:
		return "Prizes"
	default:
		return "Unknown"
	}
}

// Player holds one player's complete board state. The top of the deck is
// the last element of Deck. An empty active spot is the zero UUID.
type Player struct {
	ID   uuid.UUID
	Name string

	Hand        []CardID
	Deck        []CardID
	DiscardPile []CardID
	Active      CardID
	Bench       []CardID
	Prizes      []CardID

	// Per-Pokémon state, keyed by the card in play.
	AttachedEnergy map[CardID][]EnergyType
	DamageCounters map[CardID]int
	Conditions     map[CardID][]SpecialCondition
	Evolutions     map[CardID][]CardID // evolution stack beneath each Pokémon

	// Per-turn flags, reset by StartTurn.
	HasAttacked             bool
	SupporterPlayedThisTurn bool
	EnergyAttachedThisTurn  bool
}

// NewPlayer creates a player with empty zones.
func NewPlayer(name string) *Player {
	return &Player{
		ID:             uuid.New(),
		Name:           name,
		AttachedEnergy: map[CardID][]EnergyType{},
		DamageCounters: map[CardID]int{},
		Conditions:     map[CardID][]SpecialCondition{},
		Evolutions:     map[CardID][]CardID{},
	}
}

// LoadDeck fills the player's deck zone from a deck list. Copies of the
// same card appear as repeated ids.
func (p *Player) LoadDeck(d *Deck) {
	p.Deck = p.Deck[:0]
	for id, n := range d.Cards {
		for i := 0; i < n; i++ {
			p.Deck = append(p.Deck, id)
		}
	}
}

// ShuffleDeck shuffles the deck zone in place.
func (p *Player) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// DrawCard moves the top card of the deck to the hand. Returns false if
// the deck is empty.
func (p *Player) DrawCard() (CardID, bool) {
	if len(p.Deck) == 0 {
		return uuid.Nil, false
	}
	id := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, id)
	return id, true
}

// DrawCards draws up to n cards and returns the ids actually drawn.
func (p *Player) DrawCards(n int) []CardID {
	var drawn []CardID
	for i := 0; i < n; i++ {
		id, ok := p.DrawCard()
		if !ok {
			break
		}
		drawn = append(drawn, id)
	}
	return drawn
}

// ReturnHandToDeck moves the whole hand back into the deck (mulligan).
func (p *Player) ReturnHandToDeck() {
	p.Deck = append(p.Deck, p.Hand...)
	p.Hand = p.Hand[:0]
}

// HasInHand reports whether the hand contains the card.
func (p *Player) HasInHand(id CardID) bool {
	for _, c := range p.Hand {
		if c == id {
			return true
		}
	}
	return false
}

// removeFromHand removes one copy of the card from the hand.
func (p *Player) removeFromHand(id CardID) bool {
	for i, c := range p.Hand {
		if c == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// DiscardFromHand moves one copy of the card from hand to discard pile.
func (p *Player) DiscardFromHand(id CardID) error {
	if !p.removeFromHand(id) {
		return fmt.Errorf("card %s is not in %s's hand", id, p.Name)
	}
	p.DiscardPile = append(p.DiscardPile, id)
	return nil
}

// SetActive moves a card from the hand to the active spot. A previous
// active Pokémon is pushed to the bench if there is room.
func (p *Player) SetActive(id CardID) error {
	if !p.HasInHand(id) {
		return fmt.Errorf("card %s is not in %s's hand", id, p.Name)
	}
	if p.Active != uuid.Nil {
		if len(p.Bench) >= MaxBenchSize {
			return fmt.Errorf("%s's bench is full", p.Name)
		}
		p.Bench = append(p.Bench, p.Active)
	}
	p.removeFromHand(id)
	p.Active = id
	return nil
}

// BenchPokemon moves a card from the hand to the bench.
func (p *Player) BenchPokemon(id CardID) error {
	if !p.HasInHand(id) {
		return fmt.Errorf("card %s is not in %s's hand", id, p.Name)
	}
	if len(p.Bench) >= MaxBenchSize {
		return fmt.Errorf("%s's bench is full (%d)", p.Name, MaxBenchSize)
	}
	p.removeFromHand(id)
	p.Bench = append(p.Bench, id)
	return nil
}

// InPlay reports whether the card is the active Pokémon or on the bench.
func (p *Player) InPlay(id CardID) bool {
	if p.Active == id && id != uuid.Nil {
		return true
	}
	for _, b := range p.Bench {
		if b == id {
			return true
		}
	}
	return false
}

// PokemonInPlay returns the active Pokémon (if any) followed by the bench.
func (p *Player) PokemonInPlay() []CardID {
	var out []CardID
	if p.Active != uuid.Nil {
		out = append(out, p.Active)
	}
	out = append(out, p.Bench...)
	return out
}

// AttachEnergy records an energy attachment on an in-play Pokémon. The
// energy card itself moves from hand to the attachment record.
func (p *Player) AttachEnergy(energyCard CardID, target CardID, energyType EnergyType) error {
	if !p.HasInHand(energyCard) {
		return fmt.Errorf("energy card %s is not in %s's hand", energyCard, p.Name)
	}
	if !p.InPlay(target) {
		return fmt.Errorf("target %s is not in play", target)
	}
	p.removeFromHand(energyCard)
	p.AttachedEnergy[target] = append(p.AttachedEnergy[target], energyType)
	return nil
}

// AddDamage places damage counters on an in-play Pokémon.
func (p *Player) AddDamage(id CardID, damage int) {
	if damage <= 0 {
		return
	}
	p.DamageCounters[id] += damage
}

// HealDamage removes up to n damage from a Pokémon.
func (p *Player) HealDamage(id CardID, n int) {
	p.DamageCounters[id] -= n
	if p.DamageCounters[id] <= 0 {
		delete(p.DamageCounters, id)
	}
}

// IsKnockedOut reports whether the Pokémon's damage meets or exceeds its HP.
func (p *Player) IsKnockedOut(id CardID, db CardDatabase) bool {
	card, ok := db.Card(id)
	if !ok || !card.IsPokemon() {
		return false
	}
	return p.DamageCounters[id] >= card.HP()
}

// ApplyCondition adds a special condition, replacing an existing condition
// of the same kind.
func (p *Player) ApplyCondition(id CardID, cond SpecialCondition) {
	p.RemoveCondition(id, cond.Kind)
	p.Conditions[id] = append(p.Conditions[id], cond)
}

// HasCondition reports whether the Pokémon has a condition of the kind.
func (p *Player) HasCondition(id CardID, kind ConditionKind) bool {
	for _, c := range p.Conditions[id] {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// RemoveCondition clears a condition kind from the Pokémon.
func (p *Player) RemoveCondition(id CardID, kind ConditionKind) {
	conds := p.Conditions[id]
	for i, c := range conds {
		if c.Kind == kind {
			p.Conditions[id] = append(conds[:i], conds[i+1:]...)
			break
		}
	}
	if len(p.Conditions[id]) == 0 {
		delete(p.Conditions, id)
	}
}

// ClearConditions removes every condition from the Pokémon.
func (p *Player) ClearConditions(id CardID) {
	delete(p.Conditions, id)
}

// RemoveFromPlay clears a knocked-out or retreating Pokémon's spot. The
// card, its evolution stack, and its attached energy are not moved here;
// callers decide where they go.
func (p *Player) RemoveFromPlay(id CardID) {
	if p.Active == id {
		p.Active = uuid.Nil
	}
	for i, b := range p.Bench {
		if b == id {
			p.Bench = append(p.Bench[:i], p.Bench[i+1:]...)
			break
		}
	}
	delete(p.AttachedEnergy, id)
	delete(p.DamageCounters, id)
	delete(p.Conditions, id)
}

// DiscardPokemon moves an in-play Pokémon and its evolution stack to the
// discard pile. Attached energy is removed with it.
func (p *Player) DiscardPokemon(id CardID) {
	stack := p.Evolutions[id]
	delete(p.Evolutions, id)
	p.RemoveFromPlay(id)
	p.DiscardPile = append(p.DiscardPile, id)
	p.DiscardPile = append(p.DiscardPile, stack...)
}

// EvolvePokemon replaces an in-play Pokémon with an evolution from the
// hand. Damage and attachments carry over; special conditions are cured.
func (p *Player) EvolvePokemon(evolution CardID, target CardID) error {
	if !p.HasInHand(evolution) {
		return fmt.Errorf("card %s is not in %s's hand", evolution, p.Name)
	}
	if !p.InPlay(target) {
		return fmt.Errorf("target %s is not in play", target)
	}
	p.removeFromHand(evolution)

	// The pre-evolution goes under the new card.
	p.Evolutions[evolution] = append([]CardID{target}, p.Evolutions[target]...)
	delete(p.Evolutions, target)

	if dmg, ok := p.DamageCounters[target]; ok {
		p.DamageCounters[evolution] = dmg
		delete(p.DamageCounters, target)
	}
	if energy, ok := p.AttachedEnergy[target]; ok {
		p.AttachedEnergy[evolution] = energy
		delete(p.AttachedEnergy, target)
	}
	delete(p.Conditions, target) // evolving cures special conditions

	if p.Active == target {
		p.Active = evolution
	} else {
		for i, b := range p.Bench {
			if b == target {
				p.Bench[i] = evolution
				break
			}
		}
	}
	return nil
}

// TakePrize moves one prize card into the hand. Returns false if no
// prizes remain.
func (p *Player) TakePrize() (CardID, bool) {
	if len(p.Prizes) == 0 {
		return uuid.Nil, false
	}
	id := p.Prizes[len(p.Prizes)-1]
	p.Prizes = p.Prizes[:len(p.Prizes)-1]
	p.Hand = append(p.Hand, id)
	return id, true
}

// StartTurn resets the player's per-turn flags.
func (p *Player) StartTurn() {
	p.HasAttacked = false
	p.SupporterPlayedThisTurn = false
	p.EnergyAttachedThisTurn = false
}

// HasWon reports whether the player has taken all their prizes.
func (p *Player) HasWon() bool {
	return len(p.Prizes) == 0
}

// HasLost reports whether the player has no Pokémon left in play and
// none to promote.
func (p *Player) HasLost() bool {
	return p.Active == uuid.Nil && len(p.Bench) == 0
}

// FindCardLocation reports which zone holds the card.
func (p *Player) FindCardLocation(id CardID) (CardLocation, bool) {
	if p.Active == id && id != uuid.Nil {
		return LocationActive, true
	}
	for _, c := range p.Bench {
		if c == id {
			return LocationBench, true
		}
	}
	for _, c := range p.Hand {
		if c == id {
			return LocationHand, true
		}
	}
	for _, c := range p.Deck {
		if c == id {
			return LocationDeck, true
		}
	}
	for _, c := range p.DiscardPile {
		if c == id {
			return LocationDiscard, true
		}
	}
	for _, c := range p.Prizes {
		if c == id {
			return LocationPrizes, true
		}
	}
	return 0, false
}

// FindBasicPokemonInHand returns the ids of all basic Pokémon in the hand.
func (p *Player) FindBasicPokemonInHand(db CardDatabase) []CardID {
	var out []CardID
	for _, id := range p.Hand {
		if card, ok := db.Card(id); ok && card.IsBasicPokemon() {
			out = append(out, id)
		}
	}
	return out
}
