package net

// Message types for the JSON protocol over WebSocket.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "welcome"
	Seat int `json:"seat,omitempty"`

	// For "event"
	Event *EventView `json:"event,omitempty"`

	// For "state"
	State *StateView `json:"state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
}

// PlayerView shows one side of the board. Hand names are only filled in
// for the viewing player.
type PlayerView struct {
	Name         string        `json:"name"`
	HandCount    int           `json:"hand_count"`
	Hand         []string      `json:"hand,omitempty"`
	Active       *PokemonView  `json:"active,omitempty"`
	Bench        []PokemonView `json:"bench,omitempty"`
	DeckCount    int           `json:"deck_count"`
	DiscardCount int           `json:"discard_count"`
	PrizeCount   int           `json:"prize_count"`
}

// PokemonView describes one in-play Pokémon.
type PokemonView struct {
	Name       string   `json:"name"`
	HP         int      `json:"hp"`
	Damage     int      `json:"damage"`
	Energy     []string `json:"energy,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`

	// For "action"
	Action *ActionMsg `json:"action,omitempty"`
}

// ActionMsg names a player action. Cards are referenced by name; the
// server resolves names against the acting player's zones.
type ActionMsg struct {
	Type        string `json:"type"` // draw, play, attach, attack, retreat, end, pass
	Card        string `json:"card,omitempty"`
	Target      string `json:"target,omitempty"`
	AttackIndex int    `json:"attack_index,omitempty"`
}
