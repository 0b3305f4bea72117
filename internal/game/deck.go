package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Format is a deck-construction format.
type Format int

const (
	FormatStandard Format = iota
	FormatExpanded
	FormatUnlimited
)

func (f Format) String() string {
	switch f {
	case FormatStandard:
		return "Standard"
	case FormatExpanded:
		return "Expanded"
	case FormatUnlimited:
		return "Unlimited"
	default:
		return "Unknown"
	}
}

// Deck size and copy limits for constructed formats.
const (
	DeckSize     = 60
	MaxCopies    = 4
	MaxBenchSize = 5
)

// Deck is a named collection of card counts.
type Deck struct {
	ID     uuid.UUID
	Name   string
	Format Format
	Cards  map[CardID]int
}

// NewDeck creates an empty deck.
func NewDeck(name string, format Format) *Deck {
	return &Deck{
		ID:     uuid.New(),
		Name:   name,
		Format: format,
		Cards:  map[CardID]int{},
	}
}

// AddCard adds n copies of a card to the deck.
func (d *Deck) AddCard(id CardID, n int) {
	d.Cards[id] += n
}

// RemoveCard removes up to n copies of a card from the deck.
func (d *Deck) RemoveCard(id CardID, n int) {
	d.Cards[id] -= n
	if d.Cards[id] <= 0 {
		delete(d.Cards, id)
	}
}

// Size returns the total number of cards in the deck.
func (d *Deck) Size() int {
	total := 0
	for _, n := range d.Cards {
		total += n
	}
	return total
}

// --- Validation ---

// DeckErrorKind identifies the category of a deck validation error.
type DeckErrorKind int

const (
	DeckTooFewCards DeckErrorKind = iota
	DeckTooManyCards
	DeckTooManyCopies
	DeckNoBasicPokemon
	DeckUnknownCard
)

// DeckValidationError is one problem found while validating a deck.
type DeckValidationError struct {
	Kind     DeckErrorKind
	CardName string // for TooManyCopies / UnknownCard
	Minimum  int
	Maximum  int
	Actual   int
}

func (e DeckValidationError) Error() string {
	switch e.Kind {
	case DeckTooFewCards:
		return fmt.Sprintf("deck has too few cards: %d (minimum %d)", e.Actual, e.Minimum)
	case DeckTooManyCards:
		return fmt.Sprintf("deck has too many cards: %d (maximum %d)", e.Actual, e.Maximum)
	case DeckTooManyCopies:
		return fmt.Sprintf("too many copies of %q: %d (maximum %d)", e.CardName, e.Actual, e.Maximum)
	case DeckNoBasicPokemon:
		return "deck contains no basic Pokémon"
	case DeckUnknownCard:
		return fmt.Sprintf("unknown card %q", e.CardName)
	default:
		return "invalid deck"
	}
}

// Validate checks the deck against its format's construction rules and
// returns every violation found. An empty result means the deck is legal.
//
// Standard and Expanded require exactly 60 cards, at most 4 copies of any
// card except basic Energy, and at least one basic Pokémon. Unlimited
// only requires the basic Pokémon.
func (d *Deck) Validate(db CardDatabase) []DeckValidationError {
	var errs []DeckValidationError

	size := d.Size()
	if d.Format == FormatStandard || d.Format == FormatExpanded {
		if size < DeckSize {
			errs = append(errs, DeckValidationError{Kind: DeckTooFewCards, Minimum: DeckSize, Actual: size})
		}
		if size > DeckSize {
			errs = append(errs, DeckValidationError{Kind: DeckTooManyCards, Maximum: DeckSize, Actual: size})
		}
	}

	hasBasic := false
	for id, n := range d.Cards {
		card, ok := db.Card(id)
		if !ok {
			errs = append(errs, DeckValidationError{Kind: DeckUnknownCard, CardName: id.String()})
			continue
		}
		if card.IsBasicPokemon() {
			hasBasic = true
		}
		if d.Format != FormatUnlimited && n > MaxCopies && !card.IsBasicEnergy() {
			errs = append(errs, DeckValidationError{
				Kind:     DeckTooManyCopies,
				CardName: card.Name,
				Maximum:  MaxCopies,
				Actual:   n,
			})
		}
	}
	if !hasBasic {
		errs = append(errs, DeckValidationError{Kind: DeckNoBasicPokemon})
	}

	return errs
}

// IsLegal reports whether the deck passes validation.
func (d *Deck) IsLegal(db CardDatabase) bool {
	return len(d.Validate(db)) == 0
}

// --- Statistics ---

// DeckStatistics summarizes a deck's composition.
type DeckStatistics struct {
	Total        int
	Pokemon      int
	Energy       int
	Trainer      int
	BasicPokemon int
	ByEnergyType map[EnergyType]int
}

// Statistics computes composition counts for the deck. Cards missing from
// the database are counted in Total only.
func (d *Deck) Statistics(db CardDatabase) DeckStatistics {
	stats := DeckStatistics{ByEnergyType: map[EnergyType]int{}}
	for id, n := range d.Cards {
		stats.Total += n
		card, ok := db.Card(id)
		if !ok {
			continue
		}
		switch {
		case card.IsPokemon():
			stats.Pokemon += n
			stats.ByEnergyType[card.Pokemon.Type] += n
			if card.IsBasicPokemon() {
				stats.BasicPokemon += n
			}
		case card.IsEnergy():
			stats.Energy += n
		case card.IsTrainer():
			stats.Trainer += n
		}
	}
	return stats
}

// ExportText renders the deck as a shareable text list, grouped by card
// category and sorted by name.
func (d *Deck) ExportText(db CardDatabase) string {
	type line struct {
		count int
		name  string
	}
	groups := map[CardKind][]line{}
	for id, n := range d.Cards {
		card, ok := db.Card(id)
		if !ok {
			continue
		}
		groups[card.Kind] = append(groups[card.Kind], line{n, card.Name})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s, %d cards)\n", d.Name, d.Format, d.Size())
	for _, kind := range []CardKind{KindPokemon, KindTrainer, KindEnergy} {
		lines := groups[kind]
		if len(lines) == 0 {
			continue
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })
		total := 0
		for _, l := range lines {
			total += l.count
		}
		fmt.Fprintf(&sb, "\n%s (%d)\n", kind, total)
		for _, l := range lines {
			fmt.Fprintf(&sb, "  %d %s\n", l.count, l.name)
		}
	}
	return sb.String()
}
