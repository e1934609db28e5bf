package realtime

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains topic subscriptions and fans events out to subscribers.
// Topics follow the "project:{id}" convention.
type Hub struct {
	mu             sync.RWMutex
	topicToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			topicToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Subscribe adds a client to a topic.
func (h *Hub) Subscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.topicToClients[topic]; !ok {
		h.topicToClients[topic] = make(map[Client]struct{})
	}
	h.topicToClients[topic][client] = struct{}{}
}

// Unsubscribe removes a client; if the topic has no more clients, cleans up the map.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.topicToClients[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.topicToClients, topic)
		}
	}
}

// envelope is the wire shape sent to subscribers.
type envelope struct {
	Event   string `json:"event"`
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// Publish marshals the event and sends it to every subscriber of the topic.
// It satisfies the coordinator's Publisher contract: an error means the
// payload could not be encoded; individual slow or dead clients are skipped,
// not surfaced.
func (h *Hub) Publish(topic, event string, payload any) error {
	message, err := json.Marshal(envelope{Event: event, Topic: topic, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topicToClients[topic] {
		if ok := c.Send(message); !ok {
			// client write failed; the ws handler cleans it up on its side
			log.WithField("topic", topic).Debug("dropping message to dead client")
		}
	}
	return nil
}
