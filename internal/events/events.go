package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/logger"

	"github.com/valkey-io/valkey-go"
)

// Event describes a change to an entity, published after a successful
// mutation so connected dashboard clients can refresh.
type Event struct {
	ID        string    `json:"id"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	// BroadcastChannel carries every entity-change event.
	BroadcastChannel = "speedballhub:changes"
)

// EventBus fans entity-change events through valkey pub/sub. Publishing is
// best-effort: a failed publish is logged and never fails the mutation that
// triggered it.
type EventBus struct {
	cache  database.CacheClient
	log    logger.Logger
	cancel context.CancelFunc

	mu          sync.RWMutex
	subscribers []chan Event
}

func New(cache database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		cache: cache,
		log:   logger.New("events"),
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	if b.cache == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "event", event)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.cache.Do(ctx, b.cache.B().Publish().Channel(channel).Message(string(payload)).Build()).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe starts the valkey subscription on first use and returns a channel
// that receives every broadcast event.
func (b *EventBus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 16)
	b.subscribers = append(b.subscribers, ch)

	if b.cancel == nil && b.cache != nil {
		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		go b.receive(ctx)
	}

	return ch
}

// Unsubscribe removes the channel from the fan-out set and closes it. A
// channel that was never subscribed, or already unsubscribed, is a no-op.
func (b *EventBus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

func (b *EventBus) receive(ctx context.Context) {
	log := b.log.Function("receive")

	err := b.cache.Receive(ctx, b.cache.B().Subscribe().Channel(BroadcastChannel).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to decode event", err, "payload", msg.Message)
				return
			}
			b.dispatch(event)
		})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription ended", err)
	}
}

func (b *EventBus) dispatch(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.log.Function("dispatch").Warn("subscriber channel full, dropping event", "event", event.ID)
		}
	}
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}

	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil

	return nil
}
