package handlers

import (
	"log"
	"net/http"

	"society-backend/internal/events"
	"society-backend/internal/services"
	"society-backend/pkg/utils"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type DashboardHandler struct {
	Service *services.DashboardService
	Hub     *events.Hub
}

func NewDashboardHandler(service *services.DashboardService, hub *events.Hub) *DashboardHandler {
	return &DashboardHandler{Service: service, Hub: hub}
}

// Stats returns the four dashboard counters.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// RecentActivities returns the latest activity feed entries.
func (h *DashboardHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.RecentActivities())
}

// liveUpdate is one websocket frame: the triggering event (nil on the
// initial frame) plus the recomputed counters.
type liveUpdate struct {
	Event *events.Event            `json:"event,omitempty"`
	Stats *services.DashboardStats `json:"stats"`
}

// Live streams dashboard updates over a websocket. Each change event
// triggers a recompute and a frame; closing the socket releases the hub
// subscription.
func (h *DashboardHandler) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	sub := h.Hub.Subscribe(32)
	defer sub.Close()

	// Reads are only watched to notice the peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	ctx := r.Context()

	stats, err := h.Service.Stats(ctx)
	if err == nil {
		if err := conn.WriteJSON(liveUpdate{Stats: stats}); err != nil {
			return
		}
	}

	for e := range sub.C {
		stats, err := h.Service.Stats(ctx)
		if err != nil {
			log.Printf("[Dashboard] stats recompute failed: %v", err)
			continue
		}
		event := e
		if err := conn.WriteJSON(liveUpdate{Event: &event, Stats: stats}); err != nil {
			return
		}
	}
}
