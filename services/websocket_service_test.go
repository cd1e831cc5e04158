package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Slow clients are dropped mid-broadcast, which mutates the client map while
// the refresh loop and the health endpoint read it concurrently. Run with
// -race to cover the locking.
func TestDashboardHubDropsSlowClientsUnderConcurrentReads(t *testing.T) {
	hub := NewDashboardHub(nil, time.Hour)
	go hub.run()
	defer hub.Stop()

	// Unbuffered send channels with no write pump, so every broadcast hits
	// the drop path.
	for i := 0; i < 8; i++ {
		hub.register <- &dashboardClient{hub: hub, send: make(chan []byte)}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			hub.ConnectedClients()
		}
	}()

	for i := 0; i < 20; i++ {
		hub.broadcast <- []byte(`{"snapshot":1}`)
	}
	<-done

	deadline := time.Now().Add(time.Second)
	for hub.ConnectedClients() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.ConnectedClients())
}

func TestDashboardHubRegisterUnregister(t *testing.T) {
	hub := NewDashboardHub(nil, time.Hour)
	go hub.run()
	defer hub.Stop()

	client := &dashboardClient{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client

	deadline := time.Now().Add(time.Second)
	for hub.ConnectedClients() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 1, hub.ConnectedClients())

	hub.unregister <- client
	for hub.ConnectedClients() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.ConnectedClients())

	_, open := <-client.send
	assert.False(t, open, "send channel must be closed on unregister")
}
