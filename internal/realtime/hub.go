package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Event struct {
	Type   string      `json:"type"`
	UserID uint        `json:"user_id"`
	Data   interface{} `json:"data"`
}

// Publisher delivers events to a user's live connections. Delivery is best
// effort: a slow or absent subscriber never blocks the caller.
type Publisher interface {
	Publish(userID uint, event Event)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(uint, Event) {}

type subscriber struct {
	ch chan Event
}

// Hub fans events out to subscribers on this instance. With a redis client
// it publishes through a pub/sub channel instead, and Run delivers what
// arrives on that channel, so every instance reaches its own subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint][]*subscriber
	rdb         *redis.Client
	channel     string
	log         zerolog.Logger
}

func NewHub(rdb *redis.Client, channel string, log zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[uint][]*subscriber),
		rdb:         rdb,
		channel:     channel,
		log:         log.With().Str("component", "realtime").Logger(),
	}
}

func (h *Hub) Subscribe(userID uint) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, 64)}
	h.subscribers[userID] = append(h.subscribers[userID], sub)

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			subs := h.subscribers[userID]
			for i, s := range subs {
				if s == sub {
					h.subscribers[userID] = append(subs[:i], subs[i+1:]...)
					close(sub.ch)
					break
				}
			}
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
		})
	}
	return sub.ch, unsub
}

func (h *Hub) Publish(userID uint, event Event) {
	event.UserID = userID
	if h.rdb == nil {
		h.deliver(event)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warn().Err(err).Msg("marshal realtime event")
		return
	}
	if err := h.rdb.Publish(context.Background(), h.channel, data).Err(); err != nil {
		h.log.Warn().Err(err).Uint("user_id", userID).Msg("redis publish failed, delivering locally")
		h.deliver(event)
	}
}

// Run relays events from redis until ctx is done. It returns immediately
// when the hub has no redis client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	pubsub := h.rdb.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn().Err(err).Msg("decode realtime event")
				continue
			}
			h.deliver(ev)
		}
	}
}

func (h *Hub) SubscriberCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

func (h *Hub) deliver(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[event.UserID] {
		select {
		case sub.ch <- event:
		default:
			h.log.Debug().Uint("user_id", event.UserID).Msg("subscriber buffer full, dropping event")
		}
	}
}
