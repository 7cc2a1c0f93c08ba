package websockets

import (
	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/events"
	"speedballhub/internal/logger"

	"github.com/gofiber/websocket/v2"
)

// Manager relays entity-change events to connected dashboard clients so
// collection views can re-fetch without polling.
type Manager struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	return &Manager{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("websockets"),
	}, nil
}

// HandleWebSocket streams events to a single connection. Reads are drained in
// the background purely to detect the client going away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")
	log.Info("Client connected", "remote", c.RemoteAddr().String())

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	eventCh := m.eventBus.Subscribe()
	defer m.eventBus.Unsubscribe(eventCh)

	for {
		select {
		case <-closed:
			log.Info("Client disconnected", "remote", c.RemoteAddr().String())
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if err := c.WriteJSON(event); err != nil {
				log.Er("failed to write event to client", err)
				return
			}
		}
	}
}
