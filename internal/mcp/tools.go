package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/ptcgx/internal/game"
	"github.com/peterkuimelis/ptcgx/internal/net"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// cardFile is the path to the card pool YAML file, set by main. Empty
// means the built-in demo decks.
var cardFile string

// SetCardFile sets the path to the card pool YAML file.
func SetCardFile(path string) {
	cardFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(newGameTool(), handleNewGame)
	s.AddTool(submitActionTool(), handleSubmitAction)
	s.AddTool(gameStateTool(), handleGameState)
	s.AddTool(eventLogTool(), handleEventLog)
}

// --- Tool definitions ---

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new two-player match. Setup (shuffling, opening hands, "+
			"mulligans, active and bench placement, prizes) runs automatically. Returns the "+
			"initial state from player one's perspective."),
		mcp.WithString("player1", mcp.Description("Name of the first player (default 'P1')")),
		mcp.WithString("player2", mcp.Description("Name of the second player (default 'P2')")),
		mcp.WithNumber("seed", mcp.Description("Seed for deterministic shuffling (0 = random)")),
	)
}

func submitActionTool() mcp.Tool {
	return mcp.NewTool("submit_action",
		mcp.WithDescription("Submit one action for the named player. Types: draw, play, attach, "+
			"attack, retreat, end, pass. Cards are referenced by name. Returns the resulting state "+
			"and any rule violations."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Name of the acting player")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Action type: draw, play, attach, attack, retreat, end, pass")),
		mcp.WithString("card", mcp.Description("Card name (for play / attach)")),
		mcp.WithString("target", mcp.Description("Target Pokémon name (for attach / evolve / retreat)")),
		mcp.WithNumber("attack_index", mcp.Description("0-based attack index (for attack)")),
	)
}

func gameStateTool() mcp.Tool {
	return mcp.NewTool("game_state",
		mcp.WithDescription("Get the current state from the named player's perspective. Read-only."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Name of the viewing player")),
	)
}

func eventLogTool() mcp.Tool {
	return mcp.NewTool("event_log",
		mcp.WithDescription("Get the full event history of the current match. Read-only."),
	)
}

// --- Tool handlers ---

func handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil && activeSession.game.State == game.StateInProgress {
		return mcp.NewToolResultError("A game is already running. Finish it before starting another."), nil
	}

	p1 := request.GetString("player1", "P1")
	p2 := request.GetString("player2", "P2")
	seed := int64(request.GetInt("seed", 0))

	sess, err := NewGameSession(cardFile, seed, p1, p2)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.response(p1, nil))), nil
}

func handleSubmitAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use new_game first."), nil
	}
	sess := activeSession

	player := request.GetString("player", "")
	msg := net.ActionMsg{
		Type:        request.GetString("type", ""),
		Card:        request.GetString("card", ""),
		Target:      request.GetString("target", ""),
		AttackIndex: request.GetInt("attack_index", 0),
	}

	violations, err := sess.submit(player, msg)
	if err != nil {
		resp := sess.response(player, violations)
		resp.Violations = append(resp.Violations, err.Error())
		return mcp.NewToolResultText(respondJSON(resp)), nil
	}

	resp := sess.response(player, violations)
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use new_game first."), nil
	}
	player := request.GetString("player", "")
	return mcp.NewToolResultText(respondJSON(activeSession.response(player, nil))), nil
}

func handleEventLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use new_game first."), nil
	}
	var views []net.EventView
	for _, e := range activeSession.logger.Events() {
		views = append(views, net.EventView{
			Turn:    e.Turn,
			Phase:   e.Phase,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}
