package websocket

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

func TestRemoveStale_KeepsReconnectedClient(t *testing.T) {
	userID := uuid.New()
	dead := &websocket.Conn{}
	fresh := &websocket.Conn{}

	clientsMu.Lock()
	clients[userID] = fresh
	clientsMu.Unlock()
	defer func() {
		clientsMu.Lock()
		delete(clients, userID)
		clientsMu.Unlock()
	}()

	// The failed write happened on the old connection, but the user has
	// already reconnected. Cleanup must leave the new connection in place.
	removeStale([]staleConn{{id: userID, conn: dead}})

	clientsMu.RLock()
	got := clients[userID]
	clientsMu.RUnlock()
	if got != fresh {
		t.Fatal("cleanup removed a connection it did not own")
	}
}

func TestRemoveStale_DropsDeadConnection(t *testing.T) {
	userID := uuid.New()
	dead := &websocket.Conn{}

	clientsMu.Lock()
	clients[userID] = dead
	clientsMu.Unlock()

	removeStale([]staleConn{{id: userID, conn: dead}})

	clientsMu.RLock()
	_, ok := clients[userID]
	clientsMu.RUnlock()
	if ok {
		t.Fatal("dead connection should have been removed")
	}
}
