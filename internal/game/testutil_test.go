package game

import (
	"testing"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/log"
)

// --- Test card helpers ---

func basicPokemon(name string, hp int, t EnergyType, attacks ...Attack) *Card {
	return &Card{
		ID:   uuid.New(),
		Name: name,
		Kind: KindPokemon,
		Pokemon: &PokemonData{
			Species:     name,
			HP:          hp,
			Type:        t,
			Stage:       StageBasic,
			RetreatCost: 1,
			Attacks:     attacks,
		},
	}
}

func stage1Pokemon(name string, hp int, t EnergyType, evolvesFrom string, attacks ...Attack) *Card {
	c := basicPokemon(name, hp, t, attacks...)
	c.Pokemon.Stage = Stage1
	c.Pokemon.EvolvesFrom = evolvesFrom
	return c
}

func basicEnergy(name string, t EnergyType) *Card {
	return &Card{
		ID:     uuid.New(),
		Name:   name,
		Kind:   KindEnergy,
		Energy: &EnergyData{Type: t, IsBasic: true, Provide: 1},
	}
}

func itemCard(name string) *Card {
	return &Card{
		ID:      uuid.New(),
		Name:    name,
		Kind:    KindTrainer,
		Trainer: &TrainerData{Type: TrainerItem},
	}
}

func supporterCard(name string) *Card {
	return &Card{
		ID:      uuid.New(),
		Name:    name,
		Kind:    KindTrainer,
		Trainer: &TrainerData{Type: TrainerSupporter},
	}
}

func simpleAttack(name string, damage int, cost ...EnergyType) Attack {
	return Attack{Name: name, Cost: cost, Damage: damage}
}

// testPool is the shared card pool for scenario tests.
type testPool struct {
	db MapDatabase

	brawler  *Card // 60 HP Fighting basic, Jab 20 [F]
	bruiser  *Card // 90 HP Fighting stage 1, evolves from Brawler
	tideling *Card // 50 HP Water basic, Splash 10 [W]
	sparky   *Card // 40 HP Lightning basic, Zap 20 [L], weak to Fighting
	fEnergy  *Card
	wEnergy  *Card
	lEnergy  *Card
	potion   *Card
	mentor   *Card // supporter
}

func newTestPool() *testPool {
	p := &testPool{db: MapDatabase{}}

	p.brawler = basicPokemon("Brawler", 60, EnergyFighting,
		simpleAttack("Jab", 20, EnergyFighting),
		simpleAttack("Double Punch", 40, EnergyFighting, EnergyFighting))
	p.bruiser = stage1Pokemon("Bruiser", 90, EnergyFighting, "Brawler",
		simpleAttack("Slam", 50, EnergyFighting, EnergyFighting))
	p.tideling = basicPokemon("Tideling", 50, EnergyWater,
		simpleAttack("Splash", 10, EnergyWater))
	p.sparky = basicPokemon("Sparky", 40, EnergyLightning,
		simpleAttack("Zap", 20, EnergyLightning))
	fighting := EnergyFighting
	p.sparky.Pokemon.Weakness = &fighting

	p.fEnergy = basicEnergy("Fighting Energy", EnergyFighting)
	p.wEnergy = basicEnergy("Water Energy", EnergyWater)
	p.lEnergy = basicEnergy("Lightning Energy", EnergyLightning)
	p.potion = itemCard("Potion")
	p.mentor = supporterCard("Mentor")

	for _, c := range []*Card{p.brawler, p.bruiser, p.tideling, p.sparky,
		p.fEnergy, p.wEnergy, p.lEnergy, p.potion, p.mentor} {
		p.db.Add(c)
	}
	return p
}

// legalDeck builds a 60-card Standard deck from the pool: 4 of each
// Pokémon, a few trainers, and basic energy filler.
func (p *testPool) legalDeck(name string) *Deck {
	d := NewDeck(name, FormatStandard)
	d.AddCard(p.brawler.ID, 4)
	d.AddCard(p.bruiser.ID, 4)
	d.AddCard(p.tideling.ID, 4)
	d.AddCard(p.sparky.ID, 4)
	d.AddCard(p.potion.ID, 4)
	d.AddCard(p.mentor.ID, 4)
	d.AddCard(p.fEnergy.ID, 36)
	return d
}

// stackDeck fills a player's deck zone directly: filler at the bottom,
// then top cards so that top[0] is drawn first.
func stackDeck(p *Player, filler CardID, size int, top ...CardID) {
	p.Deck = p.Deck[:0]
	for i := 0; i < size-len(top); i++ {
		p.Deck = append(p.Deck, filler)
	}
	for i := len(top) - 1; i >= 0; i-- {
		p.Deck = append(p.Deck, top[i])
	}
}

// newTestGame creates a two-player game with a memory logger and no
// automatic shuffling, so stacked decks stay in order.
func newTestGame(t *testing.T, pool *testPool, seed int64) (*Game, *Player, *Player, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	rules := DefaultRules()
	rules.AutoShuffle = false
	g := NewGame(pool.db, GameConfig{Rules: rules, Logger: logger, Seed: seed})

	alice := NewPlayer("Alice")
	bob := NewPlayer("Bob")
	for _, p := range []*Player{alice, bob} {
		if err := g.AddPlayer(p); err != nil {
			t.Fatalf("AddPlayer(%s): %v", p.Name, err)
		}
	}
	return g, alice, bob, logger
}

// runFullSetup drives the whole setup protocol. Both players' decks are
// stacked with a basic Pokémon on top so no mulligans occur; the first
// drawn basic becomes active.
func runFullSetup(t *testing.T, g *Game, pool *testPool, players ...*Player) {
	t.Helper()
	for _, p := range players {
		if len(p.Deck) == 0 {
			stackDeck(p, pool.fEnergy.ID, 60, pool.brawler.ID, pool.tideling.ID)
		}
	}
	if err := g.StartSetup(); err != nil {
		t.Fatalf("StartSetup: %v", err)
	}
	if err := g.DetermineTurnOrder(); err != nil {
		t.Fatalf("DetermineTurnOrder: %v", err)
	}
	if err := g.DealOpeningHands(); err != nil {
		t.Fatalf("DealOpeningHands: %v", err)
	}
	marked, _, err := g.DeclareNoBasicPokemon()
	if err != nil {
		t.Fatalf("DeclareNoBasicPokemon: %v", err)
	}
	if len(marked) > 0 {
		if err := g.PerformPendingMulligans(); err != nil {
			t.Fatalf("PerformPendingMulligans: %v", err)
		}
	}
	for _, p := range players {
		basics := p.FindBasicPokemonInHand(g.CardDB)
		if len(basics) == 0 {
			t.Fatalf("%s has no basic Pokémon after setup draws", p.Name)
		}
		if err := g.SelectActivePokemon(p.ID, basics[0]); err != nil {
			t.Fatalf("SelectActivePokemon(%s): %v", p.Name, err)
		}
	}
	if err := g.PlacePrizeCards(); err != nil {
		t.Fatalf("PlacePrizeCards: %v", err)
	}
	if err := g.CompleteSetup(); err != nil {
		t.Fatalf("CompleteSetup: %v", err)
	}
}

// attackerDefender returns (current player, opponent) after setup.
func attackerDefender(g *Game) (*Player, *Player) {
	atk := g.CurrentPlayer()
	def, _ := g.Opponent(atk.ID)
	return atk, def
}
