package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	"antworld/messages"
	"antworld/models"
	"antworld/network"
	"antworld/services"
)

// ClientHandler manages a single UI connection. Results of look and
// interact reach the client through the manager's event broadcast; the
// handler itself only answers with errors and state.
type ClientHandler struct {
	conn          *network.Connection
	sim           *services.Simulation
	clientManager *ClientManager
	ctx           context.Context
}

// HandleClientConnection serves a websocket until it closes
func HandleClientConnection(ctx context.Context, wsConn *websocket.Conn, sim *services.Simulation, clientManager *ClientManager) {
	conn := network.NewConnection(wsConn)
	handler := &ClientHandler{
		conn:          conn,
		sim:           sim,
		clientManager: clientManager,
		ctx:           ctx,
	}

	id := clientManager.AddClient(handler)
	log.Printf("Client %d connected from %s", id, conn.RemoteAddr())
	defer func() {
		clientManager.RemoveClient(id)
		log.Printf("Client %d disconnected", id)
	}()

	go conn.WritePump()

	handler.sendState()
	conn.ReadPump(handler)
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var msg messages.InboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		h.sendError(messages.CodeBadRequest, "Malformed message")
		return
	}

	switch msg.Type {
	case messages.MessageTypeLook:
		h.handleTarget(msg, h.sim.Look)
	case messages.MessageTypeInteract:
		h.handleTarget(msg, h.sim.Interact)
	case messages.MessageTypeCommand:
		h.handleCommand(msg)
	case messages.MessageTypeState:
		h.sendState()
	default:
		log.Printf("Unknown message type: %s", msg.Type)
		h.sendError(messages.CodeUnknownType, "Unknown message type received")
	}
}

func (h *ClientHandler) handleTarget(msg messages.InboundMessage, act func(context.Context, int, int) (models.Event, error)) {
	var target messages.TargetMessage
	if err := json.Unmarshal(msg.Payload, &target); err != nil {
		h.sendError(messages.CodeBadRequest, "Malformed target")
		return
	}

	if _, err := act(h.ctx, target.X, target.Y); err != nil {
		log.Printf("Error handling %s at (%d, %d): %v", msg.Type, target.X, target.Y, err)
		h.sendSimError(err)
	}
}

func (h *ClientHandler) handleCommand(msg messages.InboundMessage) {
	var cmd messages.CommandMessage
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		h.sendError(messages.CodeBadRequest, "Malformed command")
		return
	}

	if _, err := h.sim.Command(h.ctx, cmd.Text); err != nil {
		log.Printf("Error handling command %q: %v", cmd.Text, err)
		h.sendSimError(err)
	}
}

func (h *ClientHandler) sendState() {
	msg := messages.BaseMessage{
		Type:    messages.MessageTypeState,
		Payload: messages.StateMessage{State: h.sim.State()},
	}
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending state: %v", err)
	}
}

func (h *ClientHandler) sendSimError(err error) {
	errMsg, _ := errorResponse(err)
	h.sendError(errMsg.Code, errMsg.Message)
}

func (h *ClientHandler) sendError(code, message string) {
	errMsg := messages.BaseMessage{
		Type: messages.MessageTypeError,
		Payload: messages.ErrorMessage{
			Code:    code,
			Message: message,
		},
	}
	h.conn.SendMessage(errMsg)
}
