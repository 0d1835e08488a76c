package model

import "encoding/json"

// Inbound event names. The three move events match the ActionKind values so
// a pending action can be checked against the requested event directly.
const (
	EventCreateGame       = "create-game"
	EventJoinGame         = "join-game"
	EventChooseColor      = "choose-color"
	EventRollDice         = "roll-dice"
	EventConfirmRoll      = "confirm-roll-result"
	EventMoveFromInitial  = string(ActionMoveFromInitial)
	EventMoveOnRoad       = string(ActionMoveOnRoad)
	EventMoveToFinal      = string(ActionMoveToFinal)
	EventMoveAcknowledged = "move-acknowledged"
)

// Outbound event names.
const (
	EventGameUpdated = "game-updated"
	EventError       = "error"
)

// ClientMessage is the envelope read from a websocket client.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is the envelope written to a websocket client.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type JoinGamePayload struct {
	Game string `json:"game"`
}

type ChooseColorPayload struct {
	Color string `json:"color,omitempty"`
}

type MovePayload struct {
	Pawn int `json:"pawn"`
}

// ErrorPayload answers a rejected action; it goes only to the requester.
type ErrorPayload struct {
	Error string `json:"error"`
}
