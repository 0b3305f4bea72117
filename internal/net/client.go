package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coder/websocket"
)

// Client connects to a match server and provides a terminal REPL.
type Client struct {
	conn *websocket.Conn
	name string
}

// Connect dials a server, joins with the given player name, and runs
// the REPL until the game ends.
func Connect(ctx context.Context, addr, name string) error {
	url := addr
	if !strings.Contains(url, "://") {
		url = "ws://" + url + "/ws"
	}
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.CloseNow()

	c := &Client{conn: conn, name: name}
	if err := c.send(ctx, ClientMessage{Type: "join", Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")
	return c.RunREPL(ctx)
}

func (c *Client) send(ctx context.Context, msg ClientMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// RunREPL reads server messages and prompts for actions when it is this
// player's turn.
func (c *Client) RunREPL(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		var msg ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "welcome":
			fmt.Printf("Seated as player %d\n", msg.Seat)

		case "event":
			c.renderEvent(msg.Event)

		case "error":
			fmt.Printf("!! %s\n", msg.Error)

		case "state":
			c.renderState(msg.State)
			if msg.State != nil && msg.State.IsYourTurn {
				action := c.readAction(reader)
				if err := c.send(ctx, ClientMessage{Type: "action", Action: &action}); err != nil {
					return fmt.Errorf("send action: %w", err)
				}
			}

		case "game_over":
			fmt.Println()
			fmt.Println("═══════════════════════════════════")
			fmt.Println("          GAME OVER")
			fmt.Println("═══════════════════════════════════")
			fmt.Println(msg.Result)
			fmt.Println("═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	if phase == "" {
		phase = "          "
	}
	for len(phase) < 16 {
		phase += " "
	}
	fmt.Printf("T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Printf("║  %s  Hand: %d  Deck: %d  Discard: %d  Prizes: %d\n",
		opp.Name, opp.HandCount, opp.DeckCount, opp.DiscardCount, opp.PrizeCount)
	fmt.Printf("║  Active: %s\n", formatPokemon(opp.Active))
	fmt.Printf("║  Bench:  %s\n", formatBench(opp.Bench))

	fmt.Println("║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Printf("║  Bench:  %s\n", formatBench(you.Bench))
	fmt.Printf("║  Active: %s\n", formatPokemon(you.Active))
	fmt.Printf("║  %s (YOU)  Hand: %d  Deck: %d  Discard: %d  Prizes: %d\n",
		you.Name, you.HandCount, you.DeckCount, you.DiscardCount, you.PrizeCount)
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Println(turnInfo)

	if len(you.Hand) > 0 {
		fmt.Printf("\nHand: ")
		for i, name := range you.Hand {
			fmt.Printf("[%d] %s  ", i+1, name)
		}
		fmt.Println()
	}
}

func formatPokemon(pv *PokemonView) string {
	if pv == nil {
		return "[ ]"
	}
	s := fmt.Sprintf("[%s %d/%d", pv.Name, pv.HP-pv.Damage, pv.HP)
	if len(pv.Energy) > 0 {
		s += " E:" + strconv.Itoa(len(pv.Energy))
	}
	if len(pv.Conditions) > 0 {
		s += " " + strings.Join(pv.Conditions, ",")
	}
	return s + "]"
}

func formatBench(bench []PokemonView) string {
	if len(bench) == 0 {
		return "[ ]"
	}
	parts := make([]string, len(bench))
	for i := range bench {
		parts[i] = formatPokemon(&bench[i])
	}
	return strings.Join(parts, " ")
}

// readAction prompts for one action line. Commands:
//
//	draw | play <card> [onto <target>] | attach <energy> [to <target>]
//	attack <n> | retreat <replacement> | end | pass
func (c *Client) readAction(reader *bufio.Reader) ActionMsg {
	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		cmd := strings.ToLower(fields[0])
		rest := fields[1:]

		switch cmd {
		case "draw", "end", "pass":
			return ActionMsg{Type: cmd}
		case "attack":
			n := 1
			if len(rest) > 0 {
				if v, err := strconv.Atoi(rest[0]); err == nil {
					n = v
				}
			}
			return ActionMsg{Type: "attack", AttackIndex: n - 1}
		case "retreat":
			if len(rest) == 0 {
				fmt.Println("retreat needs a replacement Pokémon name")
				continue
			}
			return ActionMsg{Type: "retreat", Target: strings.Join(rest, " ")}
		case "play", "attach":
			card, target := splitCardTarget(rest)
			if card == "" {
				fmt.Printf("%s needs a card name\n", cmd)
				continue
			}
			return ActionMsg{Type: cmd, Card: card, Target: target}
		default:
			fmt.Println("commands: draw, play, attach, attack, retreat, end, pass")
		}
	}
}

// splitCardTarget splits "<card> onto <target>" or "<card> to <target>".
func splitCardTarget(fields []string) (card, target string) {
	for i, f := range fields {
		if f == "onto" || f == "to" {
			return strings.Join(fields[:i], " "), strings.Join(fields[i+1:], " ")
		}
	}
	return strings.Join(fields, " "), ""
}
