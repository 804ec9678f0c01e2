package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/parking-app/models"
)

// Event types
const (
	EventSlotCreate      = "slot_create"
	EventSlotUpdate      = "slot_update"
	EventSlotDelete      = "slot_delete"
	EventSessionStart    = "session_start"
	EventSessionExit     = "session_exit"
	EventAutoClear       = "auto_clear"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard parkir dan melakukan broadcast
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastSlotUpdate -> update status slot (occupied/free)
func BroadcastSlotUpdate(slot models.ParkingSlot) {
	broadcast(Message{
		Event: EventSlotUpdate,
		Data:  slot,
	})
}

// BroadcastSlotCreate -> slot baru dibuat
func BroadcastSlotCreate(slot models.ParkingSlot) {
	broadcast(Message{
		Event: EventSlotCreate,
		Data:  slot,
	})
}

// BroadcastSlotDelete -> slot dihapus
func BroadcastSlotDelete(slotID uint) {
	broadcast(Message{
		Event: EventSlotDelete,
		Data:  map[string]interface{}{"slot_id": slotID},
	})
}

// BroadcastSessionStart -> kendaraan masuk
func BroadcastSessionStart(session models.ParkingSession) {
	broadcast(Message{
		Event: EventSessionStart,
		Data:  session,
	})
}

// BroadcastSessionExit -> kendaraan keluar
func BroadcastSessionExit(session models.ParkingSession) {
	broadcast(Message{
		Event: EventSessionExit,
		Data:  session,
	})
}

// BroadcastAutoClear -> hasil bulk clear harian
func BroadcastAutoClear(clearedSessions int64, freedSlots int64) {
	broadcast(Message{
		Event: EventAutoClear,
		Data: map[string]interface{}{
			"cleared_sessions": clearedSessions,
			"freed_slots":      freedSlots,
		},
	})
}

// BroadcastDashboardUpdate -> update statistik dashboard
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
