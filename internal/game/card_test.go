package game

import (
	"testing"

	"github.com/peterkuimelis/ptcgx/internal/random"
)

func TestAttackCanPay(t *testing.T) {
	attack := simpleAttack("Blast", 50, EnergyFire, EnergyFire, EnergyColorless)

	cases := []struct {
		name     string
		attached []EnergyType
		want     bool
	}{
		{"exact", []EnergyType{EnergyFire, EnergyFire, EnergyWater}, true},
		{"extra energy", []EnergyType{EnergyFire, EnergyFire, EnergyFire, EnergyWater}, true},
		{"colorless paid by anything", []EnergyType{EnergyFire, EnergyFire, EnergyGrass}, true},
		{"missing a colored", []EnergyType{EnergyFire, EnergyWater, EnergyWater}, false},
		{"too few", []EnergyType{EnergyFire, EnergyFire}, false},
		{"nothing", nil, false},
	}
	for _, tc := range cases {
		if got := attack.CanPay(tc.attached); got != tc.want {
			t.Errorf("%s: CanPay(%v) = %v, want %v", tc.name, tc.attached, got, tc.want)
		}
	}
}

func TestCanPayColoredBeforeColorless(t *testing.T) {
	// Two colorless and one fire: the fire requirement must not be
	// consumed by a colorless slot first.
	attack := simpleAttack("Swipe", 30, EnergyColorless, EnergyColorless, EnergyFire)
	if !attack.CanPay([]EnergyType{EnergyFire, EnergyWater, EnergyWater}) {
		t.Error("one fire plus two others should pay [C][C][F]")
	}
	if attack.CanPay([]EnergyType{EnergyWater, EnergyWater, EnergyWater}) {
		t.Error("no fire attached cannot pay the fire slot")
	}
}

func TestUsableAttacks(t *testing.T) {
	pd := &PokemonData{
		Attacks: []Attack{
			simpleAttack("Cheap", 10, EnergyColorless),
			simpleAttack("Pricey", 60, EnergyFire, EnergyFire),
		},
	}
	usable := pd.UsableAttacks([]EnergyType{EnergyFire})
	if len(usable) != 1 || usable[0] != 0 {
		t.Errorf("usable = %v, want [0]", usable)
	}
	usable = pd.UsableAttacks([]EnergyType{EnergyFire, EnergyFire})
	if len(usable) != 2 {
		t.Errorf("usable = %v, want both", usable)
	}
}

func TestComputeDamageFixed(t *testing.T) {
	rng := random.New(7)
	attack := simpleAttack("Hit", 30, EnergyFire)
	if got := attack.ComputeDamage(nil, 1, rng); got != 30 {
		t.Errorf("fixed damage = %d, want 30", got)
	}
}

func TestComputeDamagePerEnergy(t *testing.T) {
	rng := random.New(7)
	water := EnergyWater
	attack := Attack{
		Name:   "Hydro Pump",
		Cost:   []EnergyType{EnergyWater},
		Damage: 40,
		DamageMode: &DamageMode{
			Mode:       DamagePerEnergy,
			Base:       40,
			Bonus:      10,
			EnergyType: &water,
		},
	}
	attached := []EnergyType{EnergyWater, EnergyWater, EnergyWater}
	if got := attack.ComputeDamage(attached, 1, rng); got != 70 {
		t.Errorf("per-energy damage = %d, want 40 + 3*10", got)
	}
	if got := attack.ComputeDamage(nil, 1, rng); got != 40 {
		t.Errorf("per-energy with nothing attached = %d, want base 40", got)
	}
}

func TestComputeDamageCoinFlipBounds(t *testing.T) {
	rng := random.New(7)
	attack := Attack{
		Name: "Fury Swipes",
		Cost: []EnergyType{EnergyColorless},
		DamageMode: &DamageMode{
			Mode:  DamageCoinFlip,
			Flips: 3,
			Heads: 10,
		},
	}
	for i := 0; i < 50; i++ {
		got := attack.ComputeDamage(nil, 1, rng)
		if got < 0 || got > 30 || got%10 != 0 {
			t.Fatalf("coin-flip damage = %d, want a multiple of 10 in [0, 30]", got)
		}
	}
}

func TestComputeDamagePerPokemon(t *testing.T) {
	rng := random.New(7)
	attack := Attack{
		Name: "Rally",
		Cost: []EnergyType{EnergyColorless},
		DamageMode: &DamageMode{
			Mode:  DamagePerPokemon,
			Bonus: 20,
		},
	}
	if got := attack.ComputeDamage(nil, 4, rng); got != 80 {
		t.Errorf("per-pokemon damage = %d, want 80", got)
	}
}

func TestCardKindHelpers(t *testing.T) {
	pool := newTestPool()
	if !pool.brawler.IsPokemon() || pool.brawler.IsEnergy() || pool.brawler.IsTrainer() {
		t.Error("Brawler kind helpers are wrong")
	}
	if !pool.brawler.IsBasicPokemon() {
		t.Error("Brawler should be basic")
	}
	if pool.bruiser.IsBasicPokemon() {
		t.Error("Bruiser is a stage 1, not basic")
	}
	if !pool.fEnergy.IsBasicEnergy() {
		t.Error("Fighting Energy should be basic energy")
	}
	if pool.brawler.HP() != 60 {
		t.Errorf("HP() = %d, want 60", pool.brawler.HP())
	}
}

func TestMapDatabase(t *testing.T) {
	db := MapDatabase{}
	c := basicPokemon("Thing", 50, EnergyGrass)
	id := db.Add(c)
	got, ok := db.Card(id)
	if !ok || got.Name != "Thing" {
		t.Fatalf("Card(%s) = %v, %v", id, got, ok)
	}
	if _, ok := db.Card(newCardID()); ok {
		t.Error("unknown id should miss")
	}
}
