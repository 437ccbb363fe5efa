package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"antworld/messages"
	"antworld/models"
	"antworld/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The UI is served from the app bundle, not from this origin
		return true
	},
}

// API serves the simulation over HTTP and websocket
type API struct {
	ctx           context.Context
	sim           *services.Simulation
	clientManager *ClientManager
}

// NewRouter configures all routes. ctx bounds the lifetime of websocket
// clients.
func NewRouter(ctx context.Context, sim *services.Simulation, clientManager *ClientManager) http.Handler {
	api := &API{ctx: ctx, sim: sim, clientManager: clientManager}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/ws", api.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/map", api.GetMap)
		r.Get("/map/{x}/{y}", api.GetCell)
		r.Get("/ant", api.GetAnt)
		r.Post("/look", api.Look)
		r.Post("/interact", api.Interact)
		r.Post("/command", api.Command)
	})

	return r
}

// ServeWS upgrades the request and serves the client until it disconnects
func (a *API) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	HandleClientConnection(a.ctx, conn, a.sim, a.clientManager)
}

// GetMap handles GET /api/map
func (a *API) GetMap(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.sim.State())
}

// GetCell handles GET /api/map/{x}/{y}
func (a *API) GetCell(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		respondError(w, http.StatusBadRequest, messages.CodeBadRequest, "Invalid x coordinate")
		return
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		respondError(w, http.StatusBadRequest, messages.CodeBadRequest, "Invalid y coordinate")
		return
	}

	entity, err := a.sim.World().At(x, y)
	if err != nil {
		respondSimError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entity)
}

// GetAnt handles GET /api/ant
func (a *API) GetAnt(w http.ResponseWriter, r *http.Request) {
	ant := a.sim.Ant()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"position": ant.Position(),
		"food":     ant.Food(),
	})
}

// Look handles POST /api/look
func (a *API) Look(w http.ResponseWriter, r *http.Request) {
	a.handleTarget(w, r, a.sim.Look)
}

// Interact handles POST /api/interact
func (a *API) Interact(w http.ResponseWriter, r *http.Request) {
	a.handleTarget(w, r, a.sim.Interact)
}

func (a *API) handleTarget(w http.ResponseWriter, r *http.Request, act func(context.Context, int, int) (models.Event, error)) {
	var target messages.TargetMessage
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		respondError(w, http.StatusBadRequest, messages.CodeBadRequest, "Invalid target")
		return
	}

	event, err := act(r.Context(), target.X, target.Y)
	if err != nil {
		respondSimError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// Command handles POST /api/command
func (a *API) Command(w http.ResponseWriter, r *http.Request) {
	var cmd messages.CommandMessage
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, messages.CodeBadRequest, "Invalid command")
		return
	}

	event, err := a.sim.Command(r.Context(), cmd.Text)
	if err != nil {
		respondSimError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, messages.ErrorMessage{Code: code, Message: message})
}

func respondSimError(w http.ResponseWriter, err error) {
	errMsg, status := errorResponse(err)
	respondJSON(w, status, errMsg)
}
