package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgx/internal/carddata"
	"github.com/peterkuimelis/ptcgx/internal/game"
	"github.com/peterkuimelis/ptcgx/internal/log"
	ptcgxnet "github.com/peterkuimelis/ptcgx/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		runServe(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	case "demo":
		runDemo(os.Args[2:])
	case "decks":
		runDecks(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  ptcgx serve [--addr ADDR] [--cards FILE] [--seed N]")
	fmt.Println("  ptcgx join [--addr ADDR] [--name NAME]")
	fmt.Println("  ptcgx demo [--seed N] [--turns N]")
	fmt.Println("  ptcgx decks [--cards FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve   Host matches between WebSocket clients")
	fmt.Println("  join    Connect to a match server and play in the terminal")
	fmt.Println("  demo    Play a scripted local match with full event output")
	fmt.Println("  decks   Validate and print the deck lists in a card file")
	fmt.Println()
	fmt.Println("serve also reads PTCGX_ADDR, PTCGX_CARD_FILE, and PTCGX_SEED")
	fmt.Println("from the environment; flags override.")
}

func runServe(args []string) {
	cfg, err := ptcgxnet.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "address to listen on")
	cards := fs.String("cards", cfg.CardFile, "path to card pool YAML (empty = built-in demo set)")
	seed := fs.Int64("seed", cfg.Seed, "shuffle seed (0 = random)")
	fs.Parse(args)

	cfg.Addr = *addr
	cfg.CardFile = *cards
	cfg.Seed = *seed

	srv, err := ptcgxnet.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := srv.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8089", "server address to connect to")
	name := fs.String("name", "Player", "player name")
	fs.Parse(args)

	if err := ptcgxnet.Connect(context.Background(), *addr, *name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runDemo plays a short scripted match between two local players so the
// whole pipeline can be watched from the terminal.
func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "shuffle seed (0 = random)")
	turns := fs.Int("turns", 20, "maximum number of turns")
	fs.Parse(args)

	db, fireDeck, waterDeck := carddata.DemoDecks()

	rules := game.DefaultRules()
	rules.MaxTurns = *turns
	g := game.NewGame(db, game.GameConfig{
		Rules:  rules,
		Logger: log.NewTextLogger(os.Stdout),
		Seed:   *seed,
	})

	ash := game.NewPlayer("Ash")
	gary := game.NewPlayer("Gary")
	for _, p := range []*game.Player{ash, gary} {
		if err := g.AddPlayer(p); err != nil {
			fatal(err)
		}
	}
	if err := g.SetPlayerDeck(ash.ID, fireDeck); err != nil {
		fatal(err)
	}
	if err := g.SetPlayerDeck(gary.ID, waterDeck); err != nil {
		fatal(err)
	}

	if err := setupDemo(g, ash, gary); err != nil {
		fatal(err)
	}

	engine := game.StandardEngine()
	for g.State == game.StateInProgress {
		p := g.CurrentPlayer()
		a := pickDemoAction(g, p)
		if _, err := g.ExecuteAction(engine, a); err != nil {
			// Fall back to ending the turn when the pick is not legal.
			g.ExecuteAction(engine, game.NewEndTurnAction(p.ID))
		}
	}

	if p, ok := g.Player(g.Winner); ok {
		fmt.Printf("\nWinner: %s\n", p.Name)
	} else {
		fmt.Println("\nDraw")
	}
}

func setupDemo(g *game.Game, players ...*game.Player) error {
	if err := g.StartSetup(); err != nil {
		return err
	}
	if err := g.DetermineTurnOrder(); err != nil {
		return err
	}
	if err := g.DealOpeningHands(); err != nil {
		return err
	}
	if _, _, err := g.DeclareNoBasicPokemon(); err != nil {
		return err
	}
	if err := g.PerformPendingMulligans(); err != nil {
		return err
	}
	for _, p := range players {
		if err := g.MulliganCompensation(p.ID, g.MulliganCompensationLimit(p.ID)); err != nil {
			return err
		}
		basics := p.FindBasicPokemonInHand(g.CardDB)
		if err := g.SelectActivePokemon(p.ID, basics[0]); err != nil {
			return err
		}
		rest := p.FindBasicPokemonInHand(g.CardDB)
		if len(rest) > game.MaxBenchSize {
			rest = rest[:game.MaxBenchSize]
		}
		if len(rest) > 0 {
			if err := g.SetupBench(p.ID, rest); err != nil {
				return err
			}
		}
	}
	if err := g.PlacePrizeCards(); err != nil {
		return err
	}
	return g.CompleteSetup()
}

// pickDemoAction plays a simple greedy line: attach energy, attack when
// possible, otherwise end the turn.
func pickDemoAction(g *game.Game, p *game.Player) game.GameAction {
	if !p.EnergyAttachedThisTurn && p.Active != uuid.Nil {
		for _, id := range p.Hand {
			if card, ok := g.Card(id); ok && card.IsEnergy() {
				return game.NewAttachEnergyAction(p.ID, id, p.Active)
			}
		}
	}
	if active, ok := g.Card(p.Active); ok && active.IsPokemon() {
		usable := active.Pokemon.UsableAttacks(p.AttachedEnergy[p.Active])
		if len(usable) > 0 {
			// Prefer the strongest usable attack.
			best := usable[len(usable)-1]
			return game.NewUseAttackAction(p.ID, best)
		}
	}
	return game.NewEndTurnAction(p.ID)
}

func runDecks(args []string) {
	fs := flag.NewFlagSet("decks", flag.ExitOnError)
	cards := fs.String("cards", "", "path to card pool YAML (empty = built-in demo set)")
	fs.Parse(args)

	var (
		db    game.MapDatabase
		decks []*game.Deck
		err   error
	)
	if *cards != "" {
		db, decks, err = carddata.LoadFile(*cards)
		if err != nil {
			fatal(err)
		}
	} else {
		var d1, d2 *game.Deck
		db, d1, d2 = carddata.DemoDecks()
		decks = []*game.Deck{d1, d2}
	}

	for _, d := range decks {
		fmt.Println(d.ExportText(db))
		stats := d.Statistics(db)
		fmt.Printf("Pokemon %d (basic %d) | Trainer %d | Energy %d\n",
			stats.Pokemon, stats.BasicPokemon, stats.Trainer, stats.Energy)
		if errs := d.Validate(db); len(errs) > 0 {
			for _, e := range errs {
				fmt.Printf("  INVALID: %s\n", e.Error())
			}
		} else {
			fmt.Println("  Legal for " + d.Format.String())
		}
		fmt.Println()
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
