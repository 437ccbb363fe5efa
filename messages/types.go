package messages

import "antworld/models"

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeLook     MessageType = "look"
	MessageTypeInteract MessageType = "interact"
	MessageTypeCommand  MessageType = "command"
	MessageTypeState    MessageType = "state"
	MessageTypeEvent    MessageType = "event"
	MessageTypeError    MessageType = "error"
)

// Error codes sent back to the UI
const (
	CodeOutOfBounds   = "OUT_OF_BOUNDS"
	CodeUnknownIntent = "UNKNOWN_INTENT"
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnknownType   = "UNKNOWN_MESSAGE_TYPE"
	CodeInternal      = "INTERNAL"
)

// BaseMessage is the envelope for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// TargetMessage asks to look at or interact with a cell
type TargetMessage struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CommandMessage carries recognized speech or typed text
type CommandMessage struct {
	Text string `json:"text"`
}

// EventMessage reports the result of an action to every client
type EventMessage struct {
	Event models.Event `json:"event"`
}

// StateMessage is a full snapshot for rendering
type StateMessage struct {
	State models.WorldState `json:"state"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
