package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// CardID uniquely identifies a card definition.
type CardID = uuid.UUID

// Card is a single card definition. Exactly one of Pokemon, Energy, or
// Trainer is non-nil, matching Kind.
type Card struct {
	ID        CardID
	Name      string
	Kind      CardKind
	SetName   string
	SetNumber string
	Rarity    Rarity
	Pokemon   *PokemonData
	Energy    *EnergyData
	Trainer   *TrainerData
	Rules     []string // rule box / flavor restrictions printed on the card
}

// PokemonData holds the Pokémon-specific fields of a card.
type PokemonData struct {
	Species     string
	HP          int
	Type        EnergyType
	Stage       Stage
	EvolvesFrom string // species name, empty for basics
	RetreatCost int
	Weakness    *EnergyType
	Resistance  *EnergyType
	Attacks     []Attack
	Abilities   []Ability
}

// EnergyData holds the Energy-specific fields of a card.
type EnergyData struct {
	Type    EnergyType
	IsBasic bool
	Provide int // units of energy provided (usually 1)
}

// TrainerData holds the Trainer-specific fields of a card.
type TrainerData struct {
	Type   TrainerType
	Effect string
}

// Ability is a passive or activated Pokémon ability.
type Ability struct {
	Name string
	Text string
}

// Attack is one attack printed on a Pokémon card.
type Attack struct {
	Name          string
	Cost          []EnergyType
	Damage        int
	Effect        string
	DamageMode    *DamageMode
	StatusEffects []StatusEffect
	Target        AttackTarget
}

// StatusEffect is a special condition an attack may inflict, with a
// probability in [0,1] (1 = always).
type StatusEffect struct {
	Condition   ConditionKind
	Probability float64
}

// DamageModeKind selects how an attack's damage is computed.
type DamageModeKind int

const (
	DamageFixed DamageModeKind = iota
	DamagePerEnergy
	DamageCoinFlip
	DamagePerPokemon
	DamageVariable
)

// DamageMode describes non-fixed damage computation. Only the fields
// relevant to Mode are set.
type DamageMode struct {
	Mode DamageModeKind

	// PerEnergy: Base + Bonus per attached energy (optionally of one type).
	// PerPokemon: Bonus per Pokémon the player has in play.
	Base       int
	Bonus      int
	EnergyType *EnergyType

	// CoinFlip: Flips coins, dealing Heads per head (plus Base).
	Flips int
	Heads int

	// Variable: damage anywhere in [Min, Max].
	Min int
	Max int
}

// IsPokemon reports whether the card is a Pokémon card.
func (c *Card) IsPokemon() bool { return c.Kind == KindPokemon && c.Pokemon != nil }

// IsEnergy reports whether the card is an Energy card.
func (c *Card) IsEnergy() bool { return c.Kind == KindEnergy && c.Energy != nil }

// IsTrainer reports whether the card is a Trainer card.
func (c *Card) IsTrainer() bool { return c.Kind == KindTrainer && c.Trainer != nil }

// IsBasicPokemon reports whether the card is a Basic-stage Pokémon.
func (c *Card) IsBasicPokemon() bool {
	return c.IsPokemon() && c.Pokemon.Stage == StageBasic
}

// IsBasicEnergy reports whether the card is a basic Energy card.
func (c *Card) IsBasicEnergy() bool {
	return c.IsEnergy() && c.Energy.IsBasic
}

// HP returns the card's hit points, or 0 for non-Pokémon.
func (c *Card) HP() int {
	if c.IsPokemon() {
		return c.Pokemon.HP
	}
	return 0
}

// EnergyType returns the energy color of an Energy card.
func (c *Card) EnergyType() (EnergyType, bool) {
	if c.IsEnergy() {
		return c.Energy.Type, true
	}
	return 0, false
}

// String returns a short human-readable card description.
func (c *Card) String() string {
	switch {
	case c.IsPokemon():
		return fmt.Sprintf("%s (%s %s, %d HP)", c.Name, c.Pokemon.Stage, c.Pokemon.Type, c.Pokemon.HP)
	case c.IsEnergy():
		return fmt.Sprintf("%s (%s Energy)", c.Name, c.Energy.Type)
	case c.IsTrainer():
		return fmt.Sprintf("%s (%s)", c.Name, c.Trainer.Type)
	default:
		return c.Name
	}
}

// CostString formats an attack cost like "[Fire][Fire][Colorless]".
func (a Attack) CostString() string {
	s := ""
	for _, e := range a.Cost {
		s += "[" + e.String() + "]"
	}
	return s
}

// CanPay reports whether the given attached energy satisfies the attack
// cost. Colorless cost slots accept any energy; colored slots are matched
// first, colorless last.
func (a Attack) CanPay(attached []EnergyType) bool {
	remaining := make([]EnergyType, len(attached))
	copy(remaining, attached)

	colorless := 0
	for _, cost := range a.Cost {
		if cost == EnergyColorless {
			colorless++
			continue
		}
		found := false
		for i, have := range remaining {
			if have == cost {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(remaining) >= colorless
}

// UsableAttacks returns the indices of this Pokémon's attacks whose costs
// are payable with the given attached energy.
func (p *PokemonData) UsableAttacks(attached []EnergyType) []int {
	var usable []int
	for i, a := range p.Attacks {
		if a.CanPay(attached) {
			usable = append(usable, i)
		}
	}
	return usable
}

// ComputeDamage resolves an attack's base damage before weakness and
// resistance. Coin flips and variable rolls use rng.
func (a Attack) ComputeDamage(attached []EnergyType, pokemonInPlay int, rng *rand.Rand) int {
	if a.DamageMode == nil {
		return a.Damage
	}
	m := a.DamageMode
	switch m.Mode {
	case DamagePerEnergy:
		count := 0
		for _, e := range attached {
			if m.EnergyType == nil || e == *m.EnergyType {
				count++
			}
		}
		return m.Base + m.Bonus*count
	case DamageCoinFlip:
		heads := 0
		for i := 0; i < m.Flips; i++ {
			if rng.Intn(2) == 0 {
				heads++
			}
		}
		return m.Base + m.Heads*heads
	case DamagePerPokemon:
		return m.Base + m.Bonus*pokemonInPlay
	case DamageVariable:
		if m.Max <= m.Min {
			return m.Min
		}
		return m.Min + rng.Intn(m.Max-m.Min+1)
	default:
		return a.Damage
	}
}

// CardDatabase resolves card ids to definitions.
type CardDatabase interface {
	Card(id CardID) (*Card, bool)
}

// MapDatabase is a CardDatabase backed by a map.
type MapDatabase map[CardID]*Card

func (db MapDatabase) Card(id CardID) (*Card, bool) {
	c, ok := db[id]
	return c, ok
}

// Add inserts a card, assigning it a fresh id if it has none.
func (db MapDatabase) Add(c *Card) CardID {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	db[c.ID] = c
	return c.ID
}
