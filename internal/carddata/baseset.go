package carddata

import "github.com/peterkuimelis/ptcgx/internal/game"

// BaseSet builds the built-in demo card pool and returns the database
// together with a name index.
func BaseSet() (game.MapDatabase, map[string]game.CardID) {
	db := game.MapDatabase{}
	byName := map[string]game.CardID{}
	add := func(c *game.Card) {
		id := db.Add(c)
		byName[c.Name] = id
	}

	water := game.EnergyWater
	fire := game.EnergyFire

	// Fire line
	add(pokemon("Charmander", "Charmander", 50, game.EnergyFire, game.StageBasic, "", 1, &water,
		attack("Scratch", 10, game.EnergyColorless),
		attack("Ember", 30, game.EnergyFire, game.EnergyColorless),
	))
	add(pokemon("Charmeleon", "Charmeleon", 80, game.EnergyFire, game.Stage1, "Charmander", 1, &water,
		attack("Slash", 30, game.EnergyColorless, game.EnergyColorless, game.EnergyColorless),
		withStatus(attack("Flamethrower", 50, game.EnergyFire, game.EnergyFire, game.EnergyColorless),
			game.ConditionBurned, 0.5),
	))
	add(pokemon("Charizard", "Charizard", 120, game.EnergyFire, game.Stage2, "Charmeleon", 3, &water,
		withDamageMode(attack("Fire Spin", 0, game.EnergyFire, game.EnergyFire, game.EnergyFire, game.EnergyFire),
			&game.DamageMode{Mode: game.DamagePerEnergy, Base: 60, Bonus: 10, EnergyType: &fire}),
	))
	add(pokemon("Growlithe", "Growlithe", 60, game.EnergyFire, game.StageBasic, "", 1, &water,
		attack("Flare", 20, game.EnergyFire, game.EnergyColorless),
	))
	add(pokemon("Arcanine", "Arcanine", 100, game.EnergyFire, game.Stage1, "Growlithe", 3, &water,
		attack("Flamethrower", 50, game.EnergyFire, game.EnergyFire, game.EnergyColorless),
		withDamageMode(attack("Take Down", 0, game.EnergyFire, game.EnergyFire, game.EnergyColorless, game.EnergyColorless),
			&game.DamageMode{Mode: game.DamageCoinFlip, Base: 30, Flips: 2, Heads: 20}),
	))
	add(pokemon("Ponyta", "Ponyta", 40, game.EnergyFire, game.StageBasic, "", 1, &water,
		attack("Smash Kick", 20, game.EnergyColorless, game.EnergyColorless),
		attack("Flame Tail", 30, game.EnergyFire, game.EnergyFire),
	))

	// Water line
	add(pokemon("Squirtle", "Squirtle", 40, game.EnergyWater, game.StageBasic, "", 1, nil,
		attack("Bubble", 10, game.EnergyWater),
		withStatus(attack("Withdraw", 0, game.EnergyWater, game.EnergyColorless), game.ConditionParalyzed, 0.5),
	))
	add(pokemon("Wartortle", "Wartortle", 70, game.EnergyWater, game.Stage1, "Squirtle", 1, nil,
		attack("Bite", 40, game.EnergyWater, game.EnergyColorless, game.EnergyColorless),
	))
	add(pokemon("Blastoise", "Blastoise", 100, game.EnergyWater, game.Stage2, "Wartortle", 3, nil,
		withDamageMode(attack("Hydro Pump", 0, game.EnergyWater, game.EnergyWater, game.EnergyWater),
			&game.DamageMode{Mode: game.DamagePerEnergy, Base: 40, Bonus: 10, EnergyType: &water}),
	))
	add(pokemon("Staryu", "Staryu", 40, game.EnergyWater, game.StageBasic, "", 1, nil,
		attack("Slap", 20, game.EnergyWater, game.EnergyColorless),
	))
	add(pokemon("Starmie", "Starmie", 60, game.EnergyWater, game.Stage1, "Staryu", 1, nil,
		withStatus(attack("Star Freeze", 20, game.EnergyWater, game.EnergyWater, game.EnergyColorless),
			game.ConditionParalyzed, 0.5),
	))
	add(pokemon("Seel", "Seel", 60, game.EnergyWater, game.StageBasic, "", 1, nil,
		attack("Headbutt", 10, game.EnergyWater),
	))

	// Fighting splash for a third type
	add(pokemon("Hitmonchan", "Hitmonchan", 70, game.EnergyFighting, game.StageBasic, "", 2, nil,
		attack("Jab", 20, game.EnergyFighting),
		attack("Special Punch", 40, game.EnergyFighting, game.EnergyFighting, game.EnergyColorless),
	))

	// Trainers
	add(trainer("Potion", game.TrainerItem, "Heal 20 damage from one of your Pokémon."))
	add(trainer("Switch", game.TrainerItem, "Switch your active Pokémon with one on your bench."))
	add(trainer("Bill", game.TrainerItem, "Draw 2 cards."))
	add(trainer("Professor Oak", game.TrainerSupporter, "Discard your hand and draw 7 cards."))

	// Basic energy
	add(energy("Fire Energy", game.EnergyFire))
	add(energy("Water Energy", game.EnergyWater))
	add(energy("Fighting Energy", game.EnergyFighting))

	return db, byName
}

// DemoDecks returns two legal 60-card decks built from the base set.
func DemoDecks() (game.MapDatabase, *game.Deck, *game.Deck) {
	db, byName := BaseSet()

	fire := game.NewDeck("Blaze Starter", game.FormatStandard)
	for name, n := range map[string]int{
		"Charmander": 4, "Charmeleon": 3, "Charizard": 2,
		"Growlithe": 4, "Arcanine": 3, "Ponyta": 4,
		"Potion": 4, "Bill": 4, "Switch": 2,
		"Fire Energy": 30,
	} {
		fire.AddCard(byName[name], n)
	}

	water := game.NewDeck("Tide Starter", game.FormatStandard)
	for name, n := range map[string]int{
		"Squirtle": 4, "Wartortle": 3, "Blastoise": 2,
		"Staryu": 4, "Starmie": 3, "Seel": 4,
		"Potion": 4, "Professor Oak": 4, "Switch": 2,
		"Water Energy": 30,
	} {
		water.AddCard(byName[name], n)
	}

	return db, fire, water
}

// --- construction helpers ---

func pokemon(name, species string, hp int, t game.EnergyType, stage game.Stage, evolvesFrom string, retreat int, weakness *game.EnergyType, attacks ...game.Attack) *game.Card {
	return &game.Card{
		Name:    name,
		Kind:    game.KindPokemon,
		SetName: "Base",
		Pokemon: &game.PokemonData{
			Species:     species,
			HP:          hp,
			Type:        t,
			Stage:       stage,
			EvolvesFrom: evolvesFrom,
			RetreatCost: retreat,
			Weakness:    weakness,
			Attacks:     attacks,
		},
	}
}

func trainer(name string, t game.TrainerType, effect string) *game.Card {
	return &game.Card{
		Name:    name,
		Kind:    game.KindTrainer,
		SetName: "Base",
		Trainer: &game.TrainerData{Type: t, Effect: effect},
	}
}

func energy(name string, t game.EnergyType) *game.Card {
	return &game.Card{
		Name:    name,
		Kind:    game.KindEnergy,
		SetName: "Base",
		Energy:  &game.EnergyData{Type: t, IsBasic: true, Provide: 1},
	}
}

func attack(name string, damage int, cost ...game.EnergyType) game.Attack {
	return game.Attack{Name: name, Cost: cost, Damage: damage}
}

func withStatus(a game.Attack, cond game.ConditionKind, prob float64) game.Attack {
	a.StatusEffects = append(a.StatusEffects, game.StatusEffect{Condition: cond, Probability: prob})
	return a
}

func withDamageMode(a game.Attack, m *game.DamageMode) game.Attack {
	a.DamageMode = m
	return a
}
