package messages

import "encoding/json"

// InboundMessage is an envelope whose payload is decoded once the type is
// known
type InboundMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
