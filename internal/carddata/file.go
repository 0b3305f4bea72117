// Package carddata loads card definitions and deck lists from YAML files
// and provides a built-in demo set.
package carddata

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/ptcgx/internal/game"
)

// File is the top-level YAML document: a card pool and optional deck
// lists referencing cards by name.
type File struct {
	Cards []CardDef `yaml:"cards"`
	Decks []DeckDef `yaml:"decks"`
}

type CardDef struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"`
	Set     string      `yaml:"set"`
	Number  string      `yaml:"number"`
	Rarity  string      `yaml:"rarity"`
	Pokemon *PokemonDef `yaml:"pokemon"`
	Energy  *EnergyDef  `yaml:"energy"`
	Trainer *TrainerDef `yaml:"trainer"`
	Rules   []string    `yaml:"rules"`
}

type PokemonDef struct {
	Species     string      `yaml:"species"`
	HP          int         `yaml:"hp"`
	Type        string      `yaml:"type"`
	Stage       string      `yaml:"stage"`
	EvolvesFrom string      `yaml:"evolves_from"`
	RetreatCost int         `yaml:"retreat_cost"`
	Weakness    string      `yaml:"weakness"`
	Resistance  string      `yaml:"resistance"`
	Attacks     []AttackDef `yaml:"attacks"`
}

type AttackDef struct {
	Name   string   `yaml:"name"`
	Cost   []string `yaml:"cost"`
	Damage int      `yaml:"damage"`
	Effect string   `yaml:"effect"`
}

type EnergyDef struct {
	Type  string `yaml:"type"`
	Basic bool   `yaml:"basic"`
}

type TrainerDef struct {
	Type   string `yaml:"type"`
	Effect string `yaml:"effect"`
}

type DeckDef struct {
	Name   string         `yaml:"name"`
	Format string         `yaml:"format"`
	Cards  []DeckEntryDef `yaml:"cards"`
}

type DeckEntryDef struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Load parses a YAML card file into a card database and deck lists.
// Deck entries reference cards by name; an entry naming an unknown card
// is an error.
func Load(r io.Reader) (game.MapDatabase, []*game.Deck, error) {
	var f File
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("parse card file: %w", err)
	}

	db := game.MapDatabase{}
	byName := map[string]game.CardID{}
	for i, def := range f.Cards {
		card, err := buildCard(def)
		if err != nil {
			return nil, nil, fmt.Errorf("card %d (%q): %w", i, def.Name, err)
		}
		id := db.Add(card)
		byName[card.Name] = id
	}

	var decks []*game.Deck
	for _, dd := range f.Decks {
		format, err := parseFormat(dd.Format)
		if err != nil {
			return nil, nil, fmt.Errorf("deck %q: %w", dd.Name, err)
		}
		deck := game.NewDeck(dd.Name, format)
		for _, entry := range dd.Cards {
			id, ok := byName[entry.Name]
			if !ok {
				return nil, nil, fmt.Errorf("deck %q references unknown card %q", dd.Name, entry.Name)
			}
			count := entry.Count
			if count == 0 {
				count = 1
			}
			deck.AddCard(id, count)
		}
		decks = append(decks, deck)
	}
	return db, decks, nil
}

// LoadFile loads a YAML card file from disk.
func LoadFile(path string) (game.MapDatabase, []*game.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open card file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func buildCard(def CardDef) (*game.Card, error) {
	card := &game.Card{
		Name:      def.Name,
		SetName:   def.Set,
		SetNumber: def.Number,
		Rules:     def.Rules,
	}
	if def.Name == "" {
		return nil, fmt.Errorf("card has no name")
	}
	if def.Rarity != "" {
		r, err := parseRarity(def.Rarity)
		if err != nil {
			return nil, err
		}
		card.Rarity = r
	}

	switch strings.ToLower(def.Kind) {
	case "pokemon":
		if def.Pokemon == nil {
			return nil, fmt.Errorf("pokemon card missing pokemon block")
		}
		card.Kind = game.KindPokemon
		p, err := buildPokemon(*def.Pokemon, def.Name)
		if err != nil {
			return nil, err
		}
		card.Pokemon = p
	case "energy":
		if def.Energy == nil {
			return nil, fmt.Errorf("energy card missing energy block")
		}
		card.Kind = game.KindEnergy
		t, err := parseEnergyType(def.Energy.Type)
		if err != nil {
			return nil, err
		}
		card.Energy = &game.EnergyData{Type: t, IsBasic: def.Energy.Basic, Provide: 1}
	case "trainer":
		if def.Trainer == nil {
			return nil, fmt.Errorf("trainer card missing trainer block")
		}
		card.Kind = game.KindTrainer
		t, err := parseTrainerType(def.Trainer.Type)
		if err != nil {
			return nil, err
		}
		card.Trainer = &game.TrainerData{Type: t, Effect: def.Trainer.Effect}
	default:
		return nil, fmt.Errorf("unknown card kind %q", def.Kind)
	}
	return card, nil
}

func buildPokemon(def PokemonDef, cardName string) (*game.PokemonData, error) {
	t, err := parseEnergyType(def.Type)
	if err != nil {
		return nil, err
	}
	stage, err := parseStage(def.Stage)
	if err != nil {
		return nil, err
	}
	species := def.Species
	if species == "" {
		species = cardName
	}
	p := &game.PokemonData{
		Species:     species,
		HP:          def.HP,
		Type:        t,
		Stage:       stage,
		EvolvesFrom: def.EvolvesFrom,
		RetreatCost: def.RetreatCost,
	}
	if def.Weakness != "" {
		w, err := parseEnergyType(def.Weakness)
		if err != nil {
			return nil, err
		}
		p.Weakness = &w
	}
	if def.Resistance != "" {
		r, err := parseEnergyType(def.Resistance)
		if err != nil {
			return nil, err
		}
		p.Resistance = &r
	}
	for _, ad := range def.Attacks {
		var cost []game.EnergyType
		for _, c := range ad.Cost {
			e, err := parseEnergyType(c)
			if err != nil {
				return nil, fmt.Errorf("attack %q: %w", ad.Name, err)
			}
			cost = append(cost, e)
		}
		p.Attacks = append(p.Attacks, game.Attack{
			Name:   ad.Name,
			Cost:   cost,
			Damage: ad.Damage,
			Effect: ad.Effect,
		})
	}
	return p, nil
}

func parseEnergyType(s string) (game.EnergyType, error) {
	switch strings.ToLower(s) {
	case "grass":
		return game.EnergyGrass, nil
	case "fire":
		return game.EnergyFire, nil
	case "water":
		return game.EnergyWater, nil
	case "lightning", "electric":
		return game.EnergyLightning, nil
	case "psychic":
		return game.EnergyPsychic, nil
	case "fighting":
		return game.EnergyFighting, nil
	case "darkness", "dark":
		return game.EnergyDarkness, nil
	case "metal", "steel":
		return game.EnergyMetal, nil
	case "fairy":
		return game.EnergyFairy, nil
	case "dragon":
		return game.EnergyDragon, nil
	case "colorless", "normal":
		return game.EnergyColorless, nil
	default:
		return 0, fmt.Errorf("unknown energy type %q", s)
	}
}

func parseStage(s string) (game.Stage, error) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "", "basic":
		return game.StageBasic, nil
	case "stage1", "stage-1":
		return game.Stage1, nil
	case "stage2", "stage-2":
		return game.Stage2, nil
	case "mega":
		return game.StageMega, nil
	case "gx":
		return game.StageGX, nil
	case "ex":
		return game.StageEX, nil
	case "v":
		return game.StageV, nil
	case "vmax":
		return game.StageVMax, nil
	default:
		return 0, fmt.Errorf("unknown stage %q", s)
	}
}

func parseTrainerType(s string) (game.TrainerType, error) {
	switch strings.ToLower(s) {
	case "", "item":
		return game.TrainerItem, nil
	case "supporter":
		return game.TrainerSupporter, nil
	case "stadium":
		return game.TrainerStadium, nil
	case "tool":
		return game.TrainerTool, nil
	default:
		return 0, fmt.Errorf("unknown trainer type %q", s)
	}
}

func parseRarity(s string) (game.Rarity, error) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "common":
		return game.RarityCommon, nil
	case "uncommon":
		return game.RarityUncommon, nil
	case "rare":
		return game.RarityRare, nil
	case "rareholo", "holo":
		return game.RarityRareHolo, nil
	case "ultrarare", "ultra":
		return game.RarityUltraRare, nil
	case "secretrare", "secret":
		return game.RaritySecretRare, nil
	case "promo":
		return game.RarityPromo, nil
	default:
		return 0, fmt.Errorf("unknown rarity %q", s)
	}
}

func parseFormat(s string) (game.Format, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return game.FormatStandard, nil
	case "expanded":
		return game.FormatExpanded, nil
	case "unlimited":
		return game.FormatUnlimited, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}
