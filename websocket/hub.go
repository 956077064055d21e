package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"school-appointment-api/services"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var pushes = make(chan services.AppointmentEvent, 64)

// PushAppointmentEvent feeds the hub from the event bus. Dashboards receive
// the authoritative post-transition record instead of patching local state.
func PushAppointmentEvent(event services.AppointmentEvent) {
	select {
	case pushes <- event:
	default:
		log.Printf("Push buffer full, dropping %s for appointment %s", event.Kind, event.Appointment.ID)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-pushes:
			deliver(event, event.Appointment.StudentID, event.Appointment.TeacherID)
		}
	}
}

type staleConn struct {
	id   uuid.UUID
	conn *websocket.Conn
}

func deliver(event services.AppointmentEvent, recipients ...uuid.UUID) {
	var stale []staleConn

	clientsMu.RLock()
	for _, id := range recipients {
		conn, ok := clients[id]
		if !ok {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error pushing %s to client %s: %v", event.Kind, id, err)
			conn.Close()
			stale = append(stale, staleConn{id: id, conn: conn})
		}
	}
	clientsMu.RUnlock()

	if len(stale) > 0 {
		removeStale(stale)
	}
}

// removeStale drops dead connections from the table. The user may have
// reconnected between the failed write and this cleanup, so an entry is
// removed only while it still maps to the connection that failed.
func removeStale(stale []staleConn) {
	clientsMu.Lock()
	for _, s := range stale {
		if clients[s.id] == s.conn {
			delete(clients, s.id)
		}
	}
	clientsMu.Unlock()
}
